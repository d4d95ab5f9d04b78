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

// alignMode is the resolved, validated form of the mode string accepted at
// the public API edge.
type alignMode int

const (
	modeGlobal alignMode = iota
	modeLocal
	modeGlocal
	modeLocalGlobal
)

func max64(vs ...int64) int64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// gotohResult carries everything the traceback stage needs out of the DP
// fill: the optimal score, the mode-selected terminal cell, and (in full
// mode) the flag matrix. mat is nil for a score-only fill.
type gotohResult struct {
	score  int64
	endI   int
	endJ   int
	mat    *tracebackMatrix
}

// gotohFill runs the Gotoh affine-gap recurrences over ref x query, keeping
// only the previous row of S and D live (spec.md §4.3): row i's S and D
// values are computed in place over the row i-1 buffers, with a scalar
// "diag" carrying S(i-1,j-1) and a scalar "left" carrying S(i,j-1) (I's
// horizontal neighbor) across the column sweep. When full is true, it also
// fills a dense (n+1)x(m+1) traceback flag matrix; the caller owns that
// matrix's lifetime and must call release() on it.
func gotohFill(ref, query []byte, p ScoringParams, mode alignMode, full bool) gotohResult {
	n, m := len(ref), len(query)
	rows := newScoreRows(m + 1)
	defer rows.release()
	prevS, prevD := rows.s, rows.d

	var mat *tracebackMatrix
	if full {
		mat = newTracebackMatrix(n+1, m+1)
	}

	floorZero := mode == modeLocal
	freeLeadingGaps := mode != modeGlobal

	// Row 0 boundary.
	for j := 0; j <= m; j++ {
		if freeLeadingGaps {
			prevS[j] = 0
		} else if j == 0 {
			prevS[j] = 0
		} else {
			prevS[j] = p.GapOpen + int64(j-1)*p.GapExtend
		}
		prevD[j] = negInf
	}

	var localBest int64
	var localEndI, localEndJ int
	lastRowBest, lastColBest := negInf, negInf
	var lastRowJ, lastColI int

	for i := 1; i <= n; i++ {
		var diag int64 // S(i-1, j-1), seeded with S(i-1, 0)
		var left int64 // S(i, j-1)
		var iPrev int64 = negInf

		diag = prevS[0]
		if freeLeadingGaps {
			left = 0
		} else {
			left = p.GapOpen + int64(i-1)*p.GapExtend
		}
		prevS[0] = left
		prevD[0] = negInf

		for j := 1; j <= m; j++ {
			sAbove := prevS[j] // S(i-1, j)
			dAbove := prevD[j] // D(i-1, j)

			dOpen := sAbove + p.GapOpen
			dExtend := dAbove + p.GapExtend
			dVal := max64(dOpen, dExtend)

			mVal := diag + p.matchScore(ref[i-1], query[j-1])

			iOpen := left + p.GapOpen
			iExtend := iPrev + p.GapExtend
			iVal := max64(iOpen, iExtend)

			sVal := max64(mVal, dVal, iVal)
			if floorZero && sVal < 0 {
				sVal = 0
			}

			if mat != nil {
				var flags byte
				if sVal == mVal {
					flags |= traceMatch
				}
				if sVal == dVal {
					flags |= traceDel
				}
				if sVal == iVal {
					flags |= traceIns
				}
				if dVal == dExtend {
					flags |= traceNextDel
				}
				if iVal == iExtend {
					flags |= traceNextIns
				}
				mat.set(i, j, flags)
			}

			if mode == modeLocal && sVal > localBest {
				localBest, localEndI, localEndJ = sVal, i, j
			}
			if i == n && sVal > lastRowBest {
				lastRowBest, lastRowJ = sVal, j
			}
			if j == m && sVal > lastColBest {
				lastColBest, lastColI = sVal, i
			}

			diag = sAbove
			left = sVal
			iPrev = iVal
			prevS[j] = sVal
			prevD[j] = dVal
		}
	}

	switch mode {
	case modeGlobal, modeLocalGlobal:
		return gotohResult{score: prevS[m], endI: n, endJ: m, mat: mat}
	case modeLocal:
		return gotohResult{score: localBest, endI: localEndI, endJ: localEndJ, mat: mat}
	case modeGlocal:
		if lastColBest >= lastRowBest {
			return gotohResult{score: lastColBest, endI: lastColI, endJ: m, mat: mat}
		}
		return gotohResult{score: lastRowBest, endI: n, endJ: lastRowJ, mat: mat}
	default:
		panic("galign: unreachable alignment mode")
	}
}
