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

import "sync"

// Traceback flag bits, one byte per cell of the full-alignment matrix. A
// cell may carry any subset of the three direction bits on a score tie.
const (
	traceMatch   byte = 1 << iota // TRACE_MATCH: M achieved S(i,j)
	traceDel                      // TRACE_DEL: D achieved S(i,j)
	traceIns                      // TRACE_INS: I achieved S(i,j)
	traceNextDel                  // TRACE_NEXT_DEL: D(i,j) extends D(i-1,j)
	traceNextIns                  // TRACE_NEXT_INS: I(i,j) extends I(i,j-1)
)

// tracebackMatrix is a dense, row-major (n+1)x(m+1) byte grid of traceback
// flags, allocated as one contiguous block per spec.md §9 (never a
// matrix-of-matrices). Instances are pooled since repeated calls with
// similar-sized inputs are the common case for a library entry point
// called once per alignment.
type tracebackMatrix struct {
	rows, cols int
	flags      []byte
}

var matrixPool = sync.Pool{New: func() interface{} { return new(tracebackMatrix) }}

// newTracebackMatrix returns a zeroed rows x cols matrix, reusing pooled
// backing storage when it's large enough.
func newTracebackMatrix(rows, cols int) *tracebackMatrix {
	m := matrixPool.Get().(*tracebackMatrix)
	need := rows * cols
	if cap(m.flags) < need {
		m.flags = make([]byte, need)
	} else {
		m.flags = m.flags[:need]
		for i := range m.flags {
			m.flags[i] = 0
		}
	}
	m.rows, m.cols = rows, cols
	return m
}

// release returns m to the pool. The caller must not use m afterwards.
func (m *tracebackMatrix) release() {
	m.rows, m.cols = 0, 0
	matrixPool.Put(m)
}

func (m *tracebackMatrix) at(i, j int) byte     { return m.flags[i*m.cols+j] }
func (m *tracebackMatrix) set(i, j int, v byte) { m.flags[i*m.cols+j] = v }

// scoreRows holds the O(m) rolling state the Gotoh fill keeps live: the
// previous row of S, the previous row of D (one per column), and a scalar I
// that walks rightward within the current row. Pooled for the same reason
// as tracebackMatrix.
type scoreRows struct {
	s []int64 // S(i-1, *), length cols
	d []int64 // D(i-1, *), length cols
}

var scoreRowsPool = sync.Pool{New: func() interface{} { return new(scoreRows) }}

func newScoreRows(cols int) *scoreRows {
	r := scoreRowsPool.Get().(*scoreRows)
	if cap(r.s) < cols {
		r.s = make([]int64, cols)
		r.d = make([]int64, cols)
	} else {
		r.s = r.s[:cols]
		r.d = r.d[:cols]
	}
	return r
}

func (r *scoreRows) release() {
	scoreRowsPool.Put(r)
}
