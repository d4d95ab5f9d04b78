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
	"errors"
	"testing"
)

func TestAlignScenarios(t *testing.T) {
	cases := []struct {
		name       string
		ref, query string
		mode       string
		scoring    ScoringParams
		score      int64
		cigar      string
		checkSpan  bool
		refStart   int
		refStop    int
		queryStart int
		queryStop  int
	}{
		{
			name: "local basic", ref: "b", query: "abc", mode: "local",
			scoring: DefaultScoringParams(),
			score:   10, cigar: "1M", checkSpan: true,
			refStart: 0, refStop: 1, queryStart: 1, queryStop: 2,
		},
		{
			name: "local with gaps", ref: "abbcbbd", query: "acd", mode: "local",
			scoring: ScoringParams{Match: 30, Mismatch: -9, GapOpen: -15, GapExtend: -6},
			score:   48, cigar: "1M2D1M2D1M", checkSpan: true,
			refStart: 0, refStop: 7, queryStart: 0, queryStop: 3,
		},
		{
			name: "local long", ref: "AGACCAAGTCTCTGCTACCGTACATACTCGTACTGAGACTGCCAAGGCACACAGGGGATAG", query: "GCTGGTGCGACACAT",
			mode:    "local",
			scoring: ScoringParams{Match: 10, Mismatch: -20, GapOpen: -15, GapExtend: -6},
			score:   55, cigar: "2M1I5M", checkSpan: true,
			refStart: 46, refStop: 53, queryStart: 6, queryStop: 14,
		},
		{
			name: "global", ref: "abc", query: "b", mode: "global",
			scoring: DefaultScoringParams(),
			score:   -20, cigar: "1D1M1D",
		},
		{
			name: "glocal", ref: "AGACCAAGTCTCTGCTACCGTACATACTCGTACTGAGACTGCCAAGGCACACAGGGGATAG", query: "GCTGGTGCGACACAT",
			mode:    "glocal",
			scoring: ScoringParams{Match: 10, Mismatch: -20, GapOpen: -15, GapExtend: -6},
			score: 27, cigar: "1M1D3M4D1M1I2M1I5M1I",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Align([]byte(tc.ref), []byte(tc.query), AlignOptions{
				Mode:    tc.mode,
				Scoring: &tc.scoring,
			})
			if err != nil {
				t.Fatalf("Align: %v", err)
			}
			if a.Score != tc.score {
				t.Errorf("score = %d, want %d", a.Score, tc.score)
			}
			if got := a.Cigar.String(); got != tc.cigar {
				t.Errorf("cigar = %q, want %q", got, tc.cigar)
			}
			if !tc.checkSpan {
				return
			}
			if a.RefStart != tc.refStart || a.RefStop != tc.refStop {
				t.Errorf("ref span = [%d,%d), want [%d,%d)", a.RefStart, a.RefStop, tc.refStart, tc.refStop)
			}
			if a.QueryStart != tc.queryStart || a.QueryStop != tc.queryStop {
				t.Errorf("query span = [%d,%d), want [%d,%d)", a.QueryStart, a.QueryStop, tc.queryStart, tc.queryStop)
			}
		})
	}
}

func TestAlignScoreOnlyMatchesFull(t *testing.T) {
	modes := []string{"global", "local", "glocal", "local_global"}
	ref := []byte("AGACCAAGTCTCTGCTACCGTACATACTCGTACTGAGACTGCCAAGGCACACAGGGGATAG")
	query := []byte("GCTGGTGCGACACAT")
	scoring := DefaultScoringParams()

	for _, mode := range modes {
		full, err := Align(ref, query, AlignOptions{Mode: mode, Scoring: &scoring})
		if err != nil {
			t.Fatalf("%s: full Align: %v", mode, err)
		}
		scoreOnly, err := Align(ref, query, AlignOptions{Mode: mode, Scoring: &scoring, ScoreOnly: true})
		if err != nil {
			t.Fatalf("%s: score-only Align: %v", mode, err)
		}
		if full.Score != scoreOnly.Score {
			t.Errorf("%s: full score %d != score-only score %d", mode, full.Score, scoreOnly.Score)
		}
		if scoreOnly.Cigar != nil {
			t.Errorf("%s: score-only Cigar should be nil", mode)
		}
		if scoreOnly.RefStart != -1 || scoreOnly.QueryStart != -1 {
			t.Errorf("%s: score-only starts should be -1, got ref=%d query=%d", mode, scoreOnly.RefStart, scoreOnly.QueryStart)
		}
	}
}

func TestAlignGlobalCigarConsumesWholeInputs(t *testing.T) {
	ref := []byte("AGACCAAGTCTCTGCTACCGTACATACTCGT")
	query := []byte("AGACACTCTCTGATACCGTACATACTCGT")
	scoring := DefaultScoringParams()
	a, err := Align(ref, query, AlignOptions{Mode: "global", Scoring: &scoring})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := a.Cigar.RefLen(-1); int(got) != len(ref) {
		t.Errorf("ref_len() = %d, want %d", got, len(ref))
	}
	if got := a.Cigar.QueryLen(-1, true); int(got) != len(query) {
		t.Errorf("query_len(include_soft_clip=true) = %d, want %d", got, len(query))
	}
}

func TestAlignLocalNoSoftClipSpanMatchesCigar(t *testing.T) {
	ref := []byte("AGACCAAGTCTCTGCTACCGTACATACTCGTACTGAGACTGCCAAGGCACACAGGGGATAG")
	query := []byte("GCTGGTGCGACACAT")
	scoring := ScoringParams{Match: 10, Mismatch: -20, GapOpen: -15, GapExtend: -6}
	a, err := Align(ref, query, AlignOptions{Mode: "local", Scoring: &scoring})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := a.Cigar.RefLen(-1); int(got) != a.RefStop-a.RefStart {
		t.Errorf("ref_len() = %d, want %d", got, a.RefStop-a.RefStart)
	}
	if got := a.Cigar.QueryLen(-1, false); int(got) != a.QueryStop-a.QueryStart {
		t.Errorf("query_len() = %d, want %d", got, a.QueryStop-a.QueryStart)
	}
}

func TestAlignInvalidMode(t *testing.T) {
	_, err := Align([]byte("a"), []byte("a"), AlignOptions{Mode: "bogus"})
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("err = %v, want ErrInvalidMode", err)
	}
}

func TestAlignInvalidScoring(t *testing.T) {
	bad := ScoringParams{Match: 1, Mismatch: 1, GapOpen: -1, GapExtend: -1}
	_, err := Align([]byte("a"), []byte("a"), AlignOptions{Mode: "global", Scoring: &bad})
	if !errors.Is(err, ErrInvalidScoring) {
		t.Errorf("err = %v, want ErrInvalidScoring", err)
	}
}

func TestAlignAltschulEricksonMatchesGotohScore(t *testing.T) {
	ref := []byte("abc")
	query := []byte("b")
	scoring := DefaultScoringParams()
	gotoh, err := Align(ref, query, AlignOptions{Mode: "global", Scoring: &scoring})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	ae, err := AlignAltschulErickson(ref, query, &scoring, false)
	if err != nil {
		t.Fatalf("AlignAltschulErickson: %v", err)
	}
	if ae.Score != gotoh.Score {
		t.Errorf("AE score = %d, want %d", ae.Score, gotoh.Score)
	}
	if got := ae.Cigar.RefLen(-1); int(got) != len(ref) {
		t.Errorf("AE ref_len() = %d, want %d", got, len(ref))
	}
}
