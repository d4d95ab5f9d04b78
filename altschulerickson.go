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

// The Altschul-Erickson global kernel uses seven flag bits per cell instead
// of the Gotoh kernel's five. aeMatch/aeDel/aeIns mirror traceMatch/
// traceDel/traceIns. The remaining four split what traceNextDel/
// traceNextIns collapse into one bit each: aeDelContinue/aeDelOpen record
// separately whether D(i,j) is achievable by extending the D plane and by
// opening a fresh gap from S, symmetrically for insertion. A cell can have
// both continue and open bits set on a tie; the post-pass below is what
// makes the eventual traceback path unique.
const (
	aeMatch byte = 1 << iota
	aeDel
	aeIns
	aeDelContinue
	aeDelOpen
	aeInsContinue
	aeInsOpen
)

// aeFill runs the same affine-gap recurrences as the Gotoh global kernel,
// but records the seven-bit flag set instead of five.
func aeFill(ref, query []byte, p ScoringParams) (int64, *tracebackMatrix) {
	n, m := len(ref), len(query)
	rows := newScoreRows(m + 1)
	defer rows.release()
	prevS, prevD := rows.s, rows.d
	mat := newTracebackMatrix(n+1, m+1)

	for j := 0; j <= m; j++ {
		if j == 0 {
			prevS[j] = 0
		} else {
			prevS[j] = p.GapOpen + int64(j-1)*p.GapExtend
		}
		prevD[j] = negInf
	}

	for i := 1; i <= n; i++ {
		diag := prevS[0]
		left := p.GapOpen + int64(i-1)*p.GapExtend
		var iPrev int64 = negInf
		prevS[0] = left
		prevD[0] = negInf

		for j := 1; j <= m; j++ {
			sAbove := prevS[j]
			dAbove := prevD[j]

			dOpen := sAbove + p.GapOpen
			dExtend := dAbove + p.GapExtend
			dVal := max64(dOpen, dExtend)

			mVal := diag + p.matchScore(ref[i-1], query[j-1])

			iOpen := left + p.GapOpen
			iExtend := iPrev + p.GapExtend
			iVal := max64(iOpen, iExtend)

			sVal := max64(mVal, dVal, iVal)

			var flags byte
			if sVal == mVal {
				flags |= aeMatch
			}
			if sVal == dVal {
				flags |= aeDel
			}
			if sVal == iVal {
				flags |= aeIns
			}
			if dVal == dExtend {
				flags |= aeDelContinue
			}
			if dVal == dOpen {
				flags |= aeDelOpen
			}
			if iVal == iExtend {
				flags |= aeInsContinue
			}
			if iVal == iOpen {
				flags |= aeInsOpen
			}
			mat.set(i, j, flags)

			diag = sAbove
			left = sVal
			iPrev = iVal
			prevS[j] = sVal
			prevD[j] = dVal
		}
	}
	return prevS[m], mat
}

// aePostPass walks the matrix and, at every cell where a gap plane's
// continuation bit ties with its open bit, clears the continuation bit.
// After this pass, a traceback that always prefers continuing the current
// gap plane when the bit is set has no remaining ambiguity: the bit only
// survives where continuation is the sole way to reach that value.
func aePostPass(mat *tracebackMatrix) {
	for i := mat.rows - 1; i >= 0; i-- {
		for j := mat.cols - 1; j >= 0; j-- {
			flags := mat.at(i, j)
			if flags&aeDelContinue != 0 && flags&aeDelOpen != 0 {
				flags &^= aeDelContinue
			}
			if flags&aeInsContinue != 0 && flags&aeInsOpen != 0 {
				flags &^= aeInsContinue
			}
			mat.set(i, j, flags)
		}
	}
}

// aeTraceback is gotohTraceback's counterpart for the post-passed
// seven-bit matrix: global only, no soft-clip, same MATCH > DELETION >
// INSERTION priority and the same i-counted deletion pad (see the Open
// Question in spec.md §9).
func aeTraceback(ref, query []byte, mat *tracebackMatrix, extended bool) (*CigarSequence, int, int, error) {
	cigar := &CigarSequence{}
	i, j := mat.rows-1, mat.cols-1
	prev := dirNone
	var prevFlags byte // flags of the cell the last step left
	for i > 0 || j > 0 {
		var flags byte
		if i > 0 && j > 0 {
			flags = mat.at(i, j)
		}

		var step direction
		switch {
		case prev == dirDel && prevFlags&aeDelContinue != 0:
			step = dirDel
		case prev == dirIns && prevFlags&aeInsContinue != 0:
			step = dirIns
		case flags&aeMatch != 0:
			step = dirMatch
		case flags&aeDel != 0:
			step = dirDel
		case flags&aeIns != 0:
			step = dirIns
		default:
			step = dirNone
		}

		if step == dirNone {
			break
		}

		switch step {
		case dirMatch:
			op := OpMatch
			if extended {
				if ref[i-1] == query[j-1] {
					op = OpSeqMatch
				} else {
					op = OpSeqMismatch
				}
			}
			if err := cigar.AppendOp(op, 1); err != nil {
				return nil, 0, 0, err
			}
			i--
			j--
		case dirDel:
			if err := cigar.AppendOp(OpDeletion, 1); err != nil {
				return nil, 0, 0, err
			}
			i--
		case dirIns:
			if err := cigar.AppendOp(OpInsertion, 1); err != nil {
				return nil, 0, 0, err
			}
			j--
		}
		prev = step
		prevFlags = flags
	}

	if i > 0 {
		if err := cigar.AppendOp(OpDeletion, uint32(i)); err != nil {
			return nil, 0, 0, err
		}
	}
	if j > 0 {
		if err := cigar.AppendOp(OpInsertion, uint32(j)); err != nil {
			return nil, 0, 0, err
		}
	}
	cigar.Reverse()
	return cigar, 0, 0, nil
}

// AlignAltschulErickson computes a global alignment with the
// Altschul-Erickson traceback encoding (spec.md §4.3): same score as
// Align with Mode "global" would produce, but a canonical, tie-free cigar. scoring may
// be nil to use DefaultScoringParams.
func AlignAltschulErickson(ref, query []byte, scoring *ScoringParams, extendedCigar bool) (*Alignment, error) {
	p := resolveScoring(scoring)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	score, mat := aeFill(ref, query, p)
	defer mat.release()
	aePostPass(mat)
	cigar, refStart, queryStart, err := aeTraceback(ref, query, mat, extendedCigar)
	if err != nil {
		return nil, err
	}
	return &Alignment{
		Ref:        ref,
		RefStart:   refStart,
		RefStop:    len(ref),
		Query:      query,
		QueryStart: queryStart,
		QueryStop:  len(query),
		Cigar:      cigar,
		Score:      score,
	}, nil
}
