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
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// AlignmentText renders a three-line diagnostic view of a full alignment:
// the query, a pipe-and-space match bar, and the reference. It fails if a
// was produced by a score-only call (no cigar to walk).
func (a *Alignment) AlignmentText() (string, error) {
	if a.Cigar == nil {
		return "", errors.New("galign: alignment has no cigar (score-only)")
	}
	var refLine, midLine, queryLine bytes.Buffer
	refPos, queryPos := a.RefStart, a.QueryStart
	// A leading soft clip covers the query bases before QueryStart.
	if a.Cigar.RunCount() > 0 {
		if op, n := a.Cigar.At(0); op == OpSoftClip {
			queryPos -= int(n)
		}
	}

	for _, rc := range a.Cigar.ToDescriptorList() {
		n := int(rc.Count)
		switch rc.Op {
		case OpMatch:
			for k := 0; k < n; k++ {
				rb, qb := a.Ref[refPos], a.Query[queryPos]
				refLine.WriteByte(rb)
				queryLine.WriteByte(qb)
				if rb == qb {
					midLine.WriteByte('|')
				} else {
					midLine.WriteByte(' ')
				}
				refPos++
				queryPos++
			}
		case OpSeqMatch:
			refLine.Write(a.Ref[refPos : refPos+n])
			queryLine.Write(a.Query[queryPos : queryPos+n])
			midLine.Write(bytes.Repeat([]byte{'|'}, n))
			refPos += n
			queryPos += n
		case OpSeqMismatch:
			refLine.Write(a.Ref[refPos : refPos+n])
			queryLine.Write(a.Query[queryPos : queryPos+n])
			midLine.Write(bytes.Repeat([]byte{' '}, n))
			refPos += n
			queryPos += n
		case OpDeletion, OpSkipped:
			refLine.Write(a.Ref[refPos : refPos+n])
			queryLine.Write(bytes.Repeat([]byte{'-'}, n))
			midLine.Write(bytes.Repeat([]byte{' '}, n))
			refPos += n
		case OpInsertion, OpSoftClip:
			queryLine.Write(a.Query[queryPos : queryPos+n])
			refLine.Write(bytes.Repeat([]byte{'-'}, n))
			midLine.Write(bytes.Repeat([]byte{' '}, n))
			queryPos += n
		case OpHardClip, OpPadding:
			// Consumes neither coordinate; nothing to render.
		}
	}

	return strings.Join([]string{queryLine.String(), midLine.String(), refLine.String()}, "\n"), nil
}

// dumpMatrix renders a tracebackMatrix as one glyph per cell: 'M', 'D', or
// 'I' for whichever direction bit has traceback priority at that cell, '.'
// when none is set. A debugging aid for the DP state behind a traceback;
// no test in this package calls it. Not part of the public surface since the
// matrix itself isn't (it's pooled scratch, released as soon as the
// traceback that consumes it returns).
func dumpMatrix(mat *tracebackMatrix) string {
	var buf bytes.Buffer
	for i := 0; i < mat.rows; i++ {
		for j := 0; j < mat.cols; j++ {
			flags := mat.at(i, j)
			switch {
			case flags&traceMatch != 0:
				buf.WriteByte('M')
			case flags&traceDel != 0:
				buf.WriteByte('D')
			case flags&traceIns != 0:
				buf.WriteByte('I')
			default:
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
