// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fountain

import "log/slog"

// The original C++ implementation (src/lt.cpp, src/rlf.cpp) carries
// spdlog::trace calls throughout the peeling loop and the Gauss-Jordan
// passes, compiled in only under an ENABLE_TRACE_LOG macro. This
// package carries the equivalent optional, structured instrumentation
// with the standard library's log/slog rather than a third-party
// logger: the choice of handler (pretty console output, JSON, etc.) is
// a concern for whatever binary links this package, not for the
// package itself, which has no cmd/ entry point of its own.

// defaultLogger is used by any codec that hasn't been given one via
// SetLogger.
var defaultLogger = slog.Default()
