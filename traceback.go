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

// direction is the edit operation a single traceback step moved in. dirNone
// is both the starting "virtual MATCH" state and the stop signal.
type direction byte

const (
	dirNone direction = iota
	dirMatch
	dirDel
	dirIns
)

// gotohTraceback unwinds a filled tracebackMatrix from (endI, endJ) back to
// a stopping cell, per spec.md §4.3. It walks the matrix from the
// mode-selected terminal cell, preferring a gap-plane continuation
// (TRACE_NEXT_DEL/TRACE_NEXT_INS) over re-deriving direction from the
// current cell's bits whenever the previous step stayed in that plane,
// otherwise preferring MATCH, then DELETION, then INSERTION. global and
// local_global pad any remaining reference/query with DELETION/INSERTION to
// reach (0, 0); local and glocal stop as soon as no direction bit is set and
// report that cell as the alignment start.
func gotohTraceback(ref, query []byte, mat *tracebackMatrix, mode alignMode, endI, endJ int, extended, softClip bool) (*CigarSequence, int, int, error) {
	cigar := &CigarSequence{}
	queryLen := len(query)

	if softClip && (mode == modeLocal || mode == modeGlocal) {
		if trailing := queryLen - endJ; trailing > 0 {
			if err := cigar.AppendOp(OpSoftClip, uint32(trailing)); err != nil {
				return nil, 0, 0, err
			}
		}
	}

	i, j := endI, endJ
	prev := dirNone
	// prevFlags holds the flags of the cell the last step left: its
	// TRACE_NEXT_DEL/TRACE_NEXT_INS bit says whether the gap it was in
	// extends into the cell now being visited.
	var prevFlags byte
	for i > 0 || j > 0 {
		var flags byte
		if i > 0 && j > 0 {
			flags = mat.at(i, j)
		}

		var step direction
		switch {
		case prev == dirDel && prevFlags&traceNextDel != 0:
			step = dirDel
		case prev == dirIns && prevFlags&traceNextIns != 0:
			step = dirIns
		case flags&traceMatch != 0:
			step = dirMatch
		case flags&traceDel != 0:
			step = dirDel
		case flags&traceIns != 0:
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

	if mode == modeGlobal || mode == modeLocalGlobal {
		if i > 0 && j > 0 {
			// The fill never floors a score in these modes, so every
			// interior cell's S must trace to M, D, or I; stopping here
			// with both coordinates still positive means the flag matrix
			// is corrupt, not that we've reached a legitimate boundary.
			return nil, 0, 0, errors.Wrapf(ErrInvalidEditOperation, "stopped at (%d, %d)", i, j)
		}
		// See the Open Question in spec.md §9: the deletion pad's count is
		// i, the remaining unconsumed reference, not j.
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
		i, j = 0, 0
	}

	refStart, queryStart := i, j
	if softClip && (mode == modeLocal || mode == modeGlocal) && queryStart > 0 {
		if err := cigar.AppendOp(OpSoftClip, uint32(queryStart)); err != nil {
			return nil, 0, 0, err
		}
	}
	cigar.Reverse()
	return cigar, refStart, queryStart, nil
}
