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

import "github.com/pkg/errors"

// Construction-time precondition errors. These are the only errors
// this package returns: the decode/feed protocol itself never fails
// with an error, only with a bool (spec §7 — IncompleteGraph,
// InsufficientSymbols and SingularMatrix are all reported as `false`,
// not as errors).
var (
	// ErrZeroSymbolLength is returned by SetSymbolLength(0).
	ErrZeroSymbolLength = errors.New("fountain: symbol length must be positive")

	// ErrInputSizeNotMultiple is returned when the input data size is
	// not an exact multiple of the configured symbol length (spec §3:
	// "trailing partial symbol is not supported; callers zero-pad").
	ErrInputSizeNotMultiple = errors.New("fountain: input data size is not a multiple of the symbol length")

	// ErrInputLengthMismatch is returned by SetInputData when the
	// supplied buffer's length disagrees with the previously
	// configured input data size.
	ErrInputLengthMismatch = errors.New("fountain: input buffer length does not match configured input data size")

	// ErrNoSourceSymbols is returned by SetSymbolLength when k would be
	// zero (no input size configured yet, or a zero-length input).
	ErrNoSourceSymbols = errors.New("fountain: no source symbols to encode or decode")
)

// wrapf wraps err with a formatted message using github.com/pkg/errors,
// matching the boundary-validation style mewkiz/flac uses the same
// dependency for.
func wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
