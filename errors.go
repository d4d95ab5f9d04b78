// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package galign

import "github.com/pkg/errors"

// Sentinel errors for the error kinds in the package. Use errors.Is to test
// for a kind; the wrapped message carries the offending input.
var (
	// ErrInvalidScoring is returned when a ScoringParams value fails one of
	// its preconditions.
	ErrInvalidScoring = errors.New("galign: invalid scoring parameters")

	// ErrInvalidMode is returned by Align for an unrecognized mode string.
	ErrInvalidMode = errors.New("galign: invalid alignment mode")

	// ErrLengthMismatch is returned when a CIGAR's ref/query consumption
	// does not match the sequence lengths supplied alongside it.
	ErrLengthMismatch = errors.New("galign: cigar length does not match sequence")

	// ErrOpNotFound is returned when a CigarOp lookup (by character or by
	// bin code) fails.
	ErrOpNotFound = errors.New("galign: cigar operation not found")

	// ErrInvalidOperatorType is returned when a polymorphic operator
	// identifier is none of CigarOp, byte, or bin code.
	ErrInvalidOperatorType = errors.New("galign: invalid cigar operator type")

	// ErrTrailingDigits is returned when a CIGAR string ends in digits with
	// no terminating operation character.
	ErrTrailingDigits = errors.New("galign: cigar string ends in trailing digits")

	// ErrUnsupportedInverse is returned by Invert when a run's operation has
	// no defined inverse.
	ErrUnsupportedInverse = errors.New("galign: cigar operation has no inverse")

	// ErrEmptySequence is returned by Pop on an empty CigarSequence.
	ErrEmptySequence = errors.New("galign: cigar sequence is empty")

	// ErrInvalidClip is returned by Invert for a negative clip count.
	ErrInvalidClip = errors.New("galign: negative clip length")

	// ErrOutOfMemory is returned when growing a CigarSequence's backing
	// buffer fails.
	ErrOutOfMemory = errors.New("galign: failed to grow cigar buffer")

	// ErrInvalidEditOperation is returned when a traceback stops on a cell
	// that offers no direction bit and isn't a legitimate stopping point
	// for the mode in progress. This signals a corrupted flag matrix, not
	// a caller error; it should never surface from correct DP fill code.
	ErrInvalidEditOperation = errors.New("galign: traceback produced an unknown edit operation")
)
