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

// negInf seeds forbidden D/I plane states. It is small enough that adding
// two gap penalties to it never approaches a reachable score, but far from
// math.MinInt64 so a single addition can't wrap around.
const negInf int64 = -(1 << 62) + 1_000_000

// ScoringParams holds the four signed scoring weights shared by every
// kernel in this package. It plays the role the teacher's Penalties/Options
// structs play: the sole configuration surface, validated once up front.
type ScoringParams struct {
	Match     int64
	Mismatch  int64
	GapOpen   int64
	GapExtend int64
}

// DefaultScoringParams matches spec.md §6's stated defaults.
func DefaultScoringParams() ScoringParams {
	return ScoringParams{Match: 10, Mismatch: -9, GapOpen: -15, GapExtend: -6}
}

// Validate checks the four scoring preconditions, failing with
// ErrInvalidScoring naming the violated one.
func (p ScoringParams) Validate() error {
	if !(p.Match > p.Mismatch) {
		return errors.Wrapf(ErrInvalidScoring, "match (%d) must exceed mismatch (%d)", p.Match, p.Mismatch)
	}
	if !(p.Match > p.GapOpen) {
		return errors.Wrapf(ErrInvalidScoring, "match (%d) must exceed gap_open (%d)", p.Match, p.GapOpen)
	}
	if !(p.Match > p.GapExtend) {
		return errors.Wrapf(ErrInvalidScoring, "match (%d) must exceed gap_extend (%d)", p.Match, p.GapExtend)
	}
	if !(p.GapOpen <= p.GapExtend) {
		return errors.Wrapf(ErrInvalidScoring, "gap_open (%d) must be <= gap_extend (%d)", p.GapOpen, p.GapExtend)
	}
	return nil
}

// matchScore returns Match or Mismatch for a pair of reference/query bytes.
func (p ScoringParams) matchScore(refByte, queryByte byte) int64 {
	if refByte == queryByte {
		return p.Match
	}
	return p.Mismatch
}
