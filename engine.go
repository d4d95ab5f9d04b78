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

import (
	"strings"

	"github.com/pkg/errors"
)

// Alignment is the result of Align or AlignAltschulErickson. RefStart and
// QueryStart are -1 when produced by a score-only call, mirroring spec.md
// §3's "Starts are none"; Cigar is nil in that case too.
type Alignment struct {
	Ref        []byte
	RefStart   int
	RefStop    int
	Query      []byte
	QueryStart int
	QueryStop  int
	Cigar      *CigarSequence
	Score      int64
}

// AlignOptions configures Align. Scoring may be left nil to use
// DefaultScoringParams.
type AlignOptions struct {
	Mode          string
	ScoreOnly     bool
	Scoring       *ScoringParams
	ExtendedCigar bool
	SoftClip      bool
}

func resolveScoring(p *ScoringParams) ScoringParams {
	if p == nil {
		return DefaultScoringParams()
	}
	return *p
}

// parseMode resolves a case-insensitive mode string to its internal enum,
// failing with ErrInvalidMode for anything else.
func parseMode(s string) (alignMode, error) {
	switch strings.ToLower(s) {
	case "global":
		return modeGlobal, nil
	case "local":
		return modeLocal, nil
	case "glocal":
		return modeGlocal, nil
	case "local_global":
		return modeLocalGlobal, nil
	default:
		return 0, errors.Wrapf(ErrInvalidMode, "%q", s)
	}
}

// Align is the alignment engine's sole public entry point (spec.md §6): it
// dispatches on opts.Mode and opts.ScoreOnly and runs the matching Gotoh
// kernel. A score-only call skips the traceback matrix entirely and
// returns only the score and end coordinates.
func Align(ref, query []byte, opts AlignOptions) (*Alignment, error) {
	mode, err := parseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	scoring := resolveScoring(opts.Scoring)
	if err := scoring.Validate(); err != nil {
		return nil, err
	}

	res := gotohFill(ref, query, scoring, mode, !opts.ScoreOnly)

	if opts.ScoreOnly {
		return &Alignment{
			Ref:        ref,
			RefStart:   -1,
			RefStop:    res.endI,
			Query:      query,
			QueryStart: -1,
			QueryStop:  res.endJ,
			Cigar:      nil,
			Score:      res.score,
		}, nil
	}

	defer res.mat.release()
	cigar, refStart, queryStart, err := gotohTraceback(ref, query, res.mat, mode, res.endI, res.endJ, opts.ExtendedCigar, opts.SoftClip)
	if err != nil {
		return nil, err
	}
	return &Alignment{
		Ref:        ref,
		RefStart:   refStart,
		RefStop:    res.endI,
		Query:      query,
		QueryStart: queryStart,
		QueryStop:  res.endJ,
		Cigar:      cigar,
		Score:      res.score,
	}, nil
}
