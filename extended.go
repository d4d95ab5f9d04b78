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

// ToExtendedCigar expands every MATCH run of base into adjacent SEQ_MATCH /
// SEQ_MISMATCH runs by comparing ref and query byte-for-byte, coalescing as
// it goes. Every other operation is copied unchanged. refStart/queryStart
// are the offsets into ref/query at which base's first run begins; pass 0
// for both when base already starts at the beginning of both sequences.
// Fails with ErrLengthMismatch if base consumes more reference or query
// bases than the supplied slices (from the given offsets) contain.
func ToExtendedCigar(base *CigarSequence, ref, query []byte, refStart, queryStart int) (*CigarSequence, error) {
	out := &CigarSequence{}
	refPos, queryPos := refStart, queryStart
	for _, w := range base.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if op != OpMatch {
			if op.consumesRef {
				if refPos+int(count) > len(ref) {
					return nil, errors.Wrapf(ErrLengthMismatch, "cigar consumes past end of reference (need %d, have %d)", refPos+int(count), len(ref))
				}
				refPos += int(count)
			}
			if op.consumesRead {
				if queryPos+int(count) > len(query) {
					return nil, errors.Wrapf(ErrLengthMismatch, "cigar consumes past end of query (need %d, have %d)", queryPos+int(count), len(query))
				}
				queryPos += int(count)
			}
			if err := out.AppendOp(op, count); err != nil {
				return nil, err
			}
			continue
		}
		if refPos+int(count) > len(ref) || queryPos+int(count) > len(query) {
			return nil, errors.Wrapf(ErrLengthMismatch, "match run consumes past end of reference or query")
		}
		for k := uint32(0); k < count; k++ {
			var sub *CigarOp
			if ref[refPos] == query[queryPos] {
				sub = OpSeqMatch
			} else {
				sub = OpSeqMismatch
			}
			if err := out.AppendOp(sub, 1); err != nil {
				return nil, err
			}
			refPos++
			queryPos++
		}
	}
	return out, nil
}
