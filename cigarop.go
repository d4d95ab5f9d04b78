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

// CigarOp is a descriptor for one of the nine alignment edit operations. The
// registry below is the closed, process-wide set of values; CigarOp is never
// constructed outside this file.
type CigarOp struct {
	name         string
	codeChar     byte
	binCode      uint8
	consumesRef  bool
	consumesRead bool
	inverse      *CigarOp
}

// Name returns the descriptor's human label, e.g. "MATCH".
func (op *CigarOp) Name() string { return op.name }

// Char returns the one-byte CIGAR string character, e.g. 'M'.
func (op *CigarOp) Char() byte { return op.codeChar }

// BinCode returns the small integer (0-8) used by the packed binary
// encoding.
func (op *CigarOp) BinCode() uint8 { return op.binCode }

// ConsumesRef reports whether the operation advances the reference
// coordinate.
func (op *CigarOp) ConsumesRef() bool { return op.consumesRef }

// ConsumesRead reports whether the operation advances the query coordinate.
func (op *CigarOp) ConsumesRead() bool { return op.consumesRead }

// Inverse returns the operation's strand-flip counterpart and true, or nil
// and false if this operation has none.
func (op *CigarOp) Inverse() (*CigarOp, bool) {
	if op.inverse == nil {
		return nil, false
	}
	return op.inverse, true
}

func (op *CigarOp) String() string { return op.name }

// The nine singleton descriptors, in spec order. bin codes match the
// htslib/SAM packed CIGAR encoding bit-for-bit (biogo/hts's
// sam.CigarOpType carries the identical ordering and a tenth, CigarBack,
// operator that this registry's closed set has no use for: nothing in
// this engine ever produces a negative reference skip).
var (
	opMatch        = CigarOp{name: "MATCH", codeChar: 'M', binCode: 0, consumesRef: true, consumesRead: true}
	opInsertion    = CigarOp{name: "INSERTION", codeChar: 'I', binCode: 1, consumesRef: false, consumesRead: true}
	opDeletion     = CigarOp{name: "DELETION", codeChar: 'D', binCode: 2, consumesRef: true, consumesRead: false}
	opSkipped      = CigarOp{name: "SKIPPED", codeChar: 'N', binCode: 3, consumesRef: true, consumesRead: false}
	opSoftClip     = CigarOp{name: "SOFT_CLIP", codeChar: 'S', binCode: 4, consumesRef: false, consumesRead: true}
	opHardClip     = CigarOp{name: "HARD_CLIP", codeChar: 'H', binCode: 5, consumesRef: false, consumesRead: false}
	opPadding      = CigarOp{name: "PADDING", codeChar: 'P', binCode: 6, consumesRef: false, consumesRead: false}
	opSeqMatch     = CigarOp{name: "SEQ_MATCH", codeChar: '=', binCode: 7, consumesRef: true, consumesRead: true}
	opSeqMismatch  = CigarOp{name: "SEQ_MISMATCH", codeChar: 'X', binCode: 8, consumesRef: true, consumesRead: true}
)

// Exported singleton pointers. Callers compare by pointer identity or by
// BinCode/Char; the registry never mutates after init.
var (
	OpMatch       = &opMatch
	OpInsertion   = &opInsertion
	OpDeletion    = &opDeletion
	OpSkipped     = &opSkipped
	OpSoftClip    = &opSoftClip
	OpHardClip    = &opHardClip
	OpPadding     = &opPadding
	OpSeqMatch    = &opSeqMatch
	OpSeqMismatch = &opSeqMismatch
)

func init() {
	opMatch.inverse = &opMatch
	opInsertion.inverse = &opDeletion
	opDeletion.inverse = &opInsertion
	opSeqMatch.inverse = &opSeqMatch
	opSeqMismatch.inverse = &opSeqMismatch
	// SKIPPED, SOFT_CLIP, HARD_CLIP, PADDING keep a nil inverse: Invert on
	// a run carrying one of these fails with ErrUnsupportedInverse.

	for _, op := range opsByBinCode {
		opsByChar[op.codeChar] = op
	}
}

// opsByBinCode indexes the registry by its small-integer code; this doubles
// as the binary CIGAR word decode table.
var opsByBinCode = [9]*CigarOp{
	OpMatch, OpInsertion, OpDeletion, OpSkipped, OpSoftClip,
	OpHardClip, OpPadding, OpSeqMatch, OpSeqMismatch,
}

// opsByChar indexes the registry by its one-byte CIGAR character.
var opsByChar [256]*CigarOp

// LookupChar returns the descriptor for a single CIGAR operation character,
// e.g. LookupChar('M'). It fails with ErrOpNotFound for any byte outside
// "MIDNSHP=X".
func LookupChar(c byte) (*CigarOp, error) {
	if op := opsByChar[c]; op != nil {
		return op, nil
	}
	return nil, errors.Wrapf(ErrOpNotFound, "character %q", c)
}

// LookupCharString is LookupChar for a single-character bytestring; it fails
// with ErrOpNotFound if b is not exactly one byte long.
func LookupCharString(b []byte) (*CigarOp, error) {
	if len(b) != 1 {
		return nil, errors.Wrapf(ErrOpNotFound, "operator string %q is not a single character", b)
	}
	return LookupChar(b[0])
}

// LookupBinCode returns the descriptor for a small-integer code. It fails
// with ErrOpNotFound for any code outside 0-8.
func LookupBinCode(code int) (*CigarOp, error) {
	if code < 0 || code >= len(opsByBinCode) {
		return nil, errors.Wrapf(ErrOpNotFound, "bin code %d", code)
	}
	return opsByBinCode[code], nil
}

// allOps returns the registry in bin-code order, for iteration.
func allOps() []*CigarOp { return opsByBinCode[:] }
