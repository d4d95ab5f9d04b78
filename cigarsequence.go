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
	"strconv"

	"github.com/pkg/errors"
)

// maxCigarWords bounds how large a CigarSequence's backing array may grow.
// Go's allocator panics rather than returning a recoverable error on actual
// exhaustion, so this sanity ceiling is what stands in for "allocation
// returns no memory" in spec terms; a CigarSequence that needs more than a
// billion runs has already blown past the O(n*m) budget this engine is
// scoped to (spec.md §1 Non-goals: callers limit input size).
const maxCigarWords = 1 << 30

// CigarSequence is a mutable run-length sequence of (CigarOp, count) pairs,
// packed one per 32-bit word as (count<<4)|binCode. No two adjacent words
// ever share an operation code; every mutator that can create adjacency
// coalesces it away immediately except where spec says otherwise (Slice with
// a step other than ±1, and ConvertNToS).
type CigarSequence struct {
	words []uint32
}

func encodeWord(code uint8, count uint32) uint32 { return count<<4 | uint32(code) }
func decodeWord(w uint32) (code uint8, count uint32) {
	return uint8(w & 0xf), w >> 4
}

// NewCigarSequence returns an empty CigarSequence.
func NewCigarSequence() *CigarSequence { return &CigarSequence{} }

// ParseCigarString builds a CigarSequence from a CIGAR string such as
// "150M3I5D". A bare operation character with no preceding digits counts as
// 1. Trailing digits with no terminating operation character fail with
// ErrTrailingDigits.
func ParseCigarString(s []byte) (*CigarSequence, error) {
	c := &CigarSequence{}
	var count uint32
	var haveDigits bool
	for _, b := range s {
		if b >= '0' && b <= '9' {
			count = count*10 + uint32(b-'0')
			haveDigits = true
			continue
		}
		op, err := LookupChar(b)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing cigar string %q", s)
		}
		n := count
		if !haveDigits {
			n = 1
		}
		if err := c.AppendOp(op, n); err != nil {
			return nil, err
		}
		count, haveDigits = 0, false
	}
	if haveDigits {
		return nil, errors.Wrapf(ErrTrailingDigits, "%q", s)
	}
	return c, nil
}

// NewCigarSequenceFromBinary builds a CigarSequence from a buffer of packed
// 32-bit words in the (count<<4)|binCode layout used by the binary CIGAR
// surface (spec.md §6). Counts are trusted not to overflow 28 bits.
func NewCigarSequenceFromBinary(words []uint32) (*CigarSequence, error) {
	c := &CigarSequence{}
	if err := c.ExtendBinary(words); err != nil {
		return nil, err
	}
	return c, nil
}

// PackedCigarSource is the minimal seam this package needs to ingest a
// third-party aligned-read record's CIGAR without reading that format
// itself (spec.md §1): anything that can hand back its packed CIGAR words.
type PackedCigarSource interface {
	CigarWords() []uint32
}

// NewCigarSequenceFromPackedSource builds a CigarSequence from any
// PackedCigarSource, e.g. a wrapper around a third-party aligned-read
// record.
func NewCigarSequenceFromPackedSource(src PackedCigarSource) (*CigarSequence, error) {
	return NewCigarSequenceFromBinary(src.CigarWords())
}

// CigarPair is one element of the polymorphic pair-sequence construction
// shape: Op may be a *CigarOp, a single-character []byte/string, a byte
// holding the operation character, or a small integer bin code (int or
// int32).
type CigarPair struct {
	Op    interface{}
	Count uint32
}

// NewCigarSequenceFromPairs builds a CigarSequence from a list of
// (op_identifier, count) pairs, decoding each identifier polymorphically.
func NewCigarSequenceFromPairs(pairs []CigarPair) (*CigarSequence, error) {
	c := &CigarSequence{}
	for _, p := range pairs {
		op, err := resolveOpIdentifier(p.Op)
		if err != nil {
			return nil, err
		}
		if err := c.AppendOp(op, p.Count); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Clone returns a deep copy of c.
func (c *CigarSequence) Clone() *CigarSequence {
	out := &CigarSequence{words: make([]uint32, len(c.words))}
	copy(out.words, c.words)
	return out
}

func resolveOpIdentifier(v interface{}) (*CigarOp, error) {
	switch t := v.(type) {
	case *CigarOp:
		return t, nil
	case []byte:
		return LookupCharString(t)
	case string:
		return LookupCharString([]byte(t))
	case byte:
		return LookupChar(t)
	case int:
		return LookupBinCode(t)
	case int32:
		return LookupBinCode(int(t))
	default:
		return nil, errors.Wrapf(ErrInvalidOperatorType, "%T", v)
	}
}

// grow ensures the backing array has room for at least minCap words,
// doubling capacity (minimum 4) as needed.
func (c *CigarSequence) grow(minCap int) error {
	newCap := cap(c.words)
	if newCap < 4 {
		newCap = 4
	}
	for newCap < minCap {
		if newCap > maxCigarWords/2 {
			return ErrOutOfMemory
		}
		newCap *= 2
	}
	if newCap == cap(c.words) {
		return nil
	}
	buf := make([]uint32, len(c.words), newCap)
	copy(buf, c.words)
	c.words = buf
	return nil
}

// push appends a raw word with no coalescing.
func (c *CigarSequence) push(word uint32) error {
	if len(c.words) == cap(c.words) {
		if err := c.grow(len(c.words) + 1); err != nil {
			return err
		}
	}
	c.words = append(c.words, word)
	return nil
}

// AppendOp appends n copies of op, merging into the trailing run when its
// code matches. n == 0 is a no-op.
func (c *CigarSequence) AppendOp(op *CigarOp, n uint32) error {
	if n == 0 {
		return nil
	}
	if l := len(c.words); l > 0 {
		code, count := decodeWord(c.words[l-1])
		if code == op.binCode {
			c.words[l-1] = encodeWord(code, count+n)
			return nil
		}
	}
	return c.push(encodeWord(op.binCode, n))
}

// Append is the polymorphic form of AppendOp, decoding op identically to
// NewCigarSequenceFromPairs.
func (c *CigarSequence) Append(opIdentifier interface{}, n uint32) error {
	op, err := resolveOpIdentifier(opIdentifier)
	if err != nil {
		return err
	}
	return c.AppendOp(op, n)
}

// ExtendBinary appends a raw packed-word buffer, coalescing only the
// boundary between c's current tail and the buffer's first word (spec.md
// §4.2): the remaining words are trusted to already be internally
// normalized and are copied verbatim.
func (c *CigarSequence) ExtendBinary(words []uint32) error {
	for i, w := range words {
		if i == 0 {
			code, count := decodeWord(w)
			if err := c.AppendOp(opsByBinCode[code], count); err != nil {
				return err
			}
			continue
		}
		if err := c.push(w); err != nil {
			return err
		}
	}
	return nil
}

// Extend appends another CigarSequence's runs, with the same boundary-only
// coalescing as ExtendBinary.
func (c *CigarSequence) Extend(other *CigarSequence) error {
	return c.ExtendBinary(other.words)
}

// Pop removes and returns the last run. It fails with ErrEmptySequence if c
// has no runs.
func (c *CigarSequence) Pop() (*CigarOp, uint32, error) {
	l := len(c.words)
	if l == 0 {
		return nil, 0, ErrEmptySequence
	}
	code, count := decodeWord(c.words[l-1])
	c.words = c.words[:l-1]
	return opsByBinCode[code], count, nil
}

// Reverse reverses the order of runs in place.
func (c *CigarSequence) Reverse() {
	for i, j := 0, len(c.words)-1; i < j; i, j = i+1, j-1 {
		c.words[i], c.words[j] = c.words[j], c.words[i]
	}
}

// clampSliceIndex applies Python-style index clamping/wraparound for a
// sequence of length n.
func clampSliceIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}

// Slice returns a new CigarSequence built from c.words[start:stop:step],
// Python-slice style (step may be negative to reverse). When step is not
// ±1, adjacent runs of the result may share an operation code; they are
// deliberately not re-coalesced, so the caller sees the original words.
func (c *CigarSequence) Slice(start, stop, step int) (*CigarSequence, error) {
	if step == 0 {
		return nil, errors.New("galign: slice step cannot be zero")
	}
	n := len(c.words)
	rawStart, rawStop := start, stop
	start = clampSliceIndex(start, n)
	stop = clampSliceIndex(stop, n)
	if step < 0 {
		// A negative step clamps to [-1, n-1] rather than [0, n], as
		// Python does: a start past the end begins at the last run, and a
		// stop below -n lets the walk reach run 0.
		if start == n || rawStart < -n {
			start = min(start, n) - 1
		}
		if stop == n || rawStop < -n {
			stop = min(stop, n) - 1
		}
	}
	out := &CigarSequence{}
	if step > 0 {
		for i := start; i < stop; i += step {
			if err := out.push(c.words[i]); err != nil {
				return nil, err
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if i < 0 || i >= n {
				break
			}
			if err := out.push(c.words[i]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Invert produces a new CigarSequence representing the reverse-role
// alignment (reference <-> query). HARD_CLIP and SOFT_CLIP runs are
// stripped from the body; the count of the first stripped SOFT_CLIP run is
// returned as sLeft, and of any later one as sRight. Every remaining run is
// replaced by its inverse operation, failing with ErrUnsupportedInverse if
// one has none. leftClip/rightClip, if positive, bracket the result with
// fresh SOFT_CLIP runs; either being negative fails with ErrInvalidClip.
func (c *CigarSequence) Invert(leftClip, rightClip int) (out *CigarSequence, sLeft, sRight int, err error) {
	if leftClip < 0 || rightClip < 0 {
		return nil, 0, 0, ErrInvalidClip
	}
	out = &CigarSequence{}
	if leftClip > 0 {
		if err = out.AppendOp(OpSoftClip, uint32(leftClip)); err != nil {
			return nil, 0, 0, err
		}
	}
	var seenSoftClip bool
	for _, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if op == OpHardClip || op == OpSoftClip {
			if op == OpSoftClip {
				if !seenSoftClip {
					sLeft = int(count)
					seenSoftClip = true
				} else {
					sRight = int(count)
				}
			}
			continue
		}
		inv, ok := op.Inverse()
		if !ok {
			return nil, 0, 0, errors.Wrapf(ErrUnsupportedInverse, "%s", op.Name())
		}
		if err = out.AppendOp(inv, count); err != nil {
			return nil, 0, 0, err
		}
	}
	if rightClip > 0 {
		if err = out.AppendOp(OpSoftClip, uint32(rightClip)); err != nil {
			return nil, 0, 0, err
		}
	}
	return out, sLeft, sRight, nil
}

// ConvertNToS rewrites every SKIPPED run's operation code to SOFT_CLIP in
// place, leaving counts untouched. Runs are deliberately not re-coalesced
// afterwards, preserving the original run boundaries.
func (c *CigarSequence) ConvertNToS() {
	for i, w := range c.words {
		code, count := decodeWord(w)
		if code == OpSkipped.binCode {
			c.words[i] = encodeWord(OpSoftClip.binCode, count)
		}
	}
}

// RunCount returns the number of runs (not bases) in c.
func (c *CigarSequence) RunCount() int { return len(c.words) }

// IsEmpty reports whether c has no runs.
func (c *CigarSequence) IsEmpty() bool { return len(c.words) == 0 }

// At returns the operation and count of the i'th run.
func (c *CigarSequence) At(i int) (*CigarOp, uint32) {
	code, count := decodeWord(c.words[i])
	return opsByBinCode[code], count
}

// Count returns the total bases across all runs matching opIdentifier
// (polymorphically decoded, as with Append).
func (c *CigarSequence) Count(opIdentifier interface{}) (uint32, error) {
	op, err := resolveOpIdentifier(opIdentifier)
	if err != nil {
		return 0, err
	}
	var total uint32
	for _, w := range c.words {
		code, count := decodeWord(w)
		if code == op.binCode {
			total += count
		}
	}
	return total, nil
}

// GappedLen returns the sum of counts of runs that consume reference or
// query bases. SOFT_CLIP only contributes when includeSoftClip is true.
func (c *CigarSequence) GappedLen(includeSoftClip bool) uint32 {
	var total uint32
	for _, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if op == OpSoftClip {
			if includeSoftClip {
				total += count
			}
			continue
		}
		if op.consumesRef || op.consumesRead {
			total += count
		}
	}
	return total
}

// RefLen returns the number of reference bases consumed. If queryBases is
// non-negative, accumulation stops as soon as the query-consuming total
// would meet or exceed queryBases, counting only the fitting portion of the
// run that crosses the boundary.
func (c *CigarSequence) RefLen(queryBases int) uint32 {
	var refTotal, readTotal uint32
	for _, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if queryBases >= 0 && op.consumesRead {
			remaining := uint32(queryBases) - readTotal
			if count >= remaining {
				if op.consumesRef {
					refTotal += remaining
				}
				return refTotal
			}
			readTotal += count
			if op.consumesRef {
				refTotal += count
			}
			continue
		}
		if op.consumesRef {
			refTotal += count
		}
	}
	return refTotal
}

// QueryLen returns the number of query bases consumed, optionally including
// SOFT_CLIP runs. If refBases is non-negative, accumulation stops as soon
// as the reference-consuming total would meet or exceed refBases, counting
// only the fitting portion of the run that crosses the boundary.
func (c *CigarSequence) QueryLen(refBases int, includeSoftClip bool) uint32 {
	var refTotal, readTotal uint32
	for _, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if refBases >= 0 && op.consumesRef {
			remaining := uint32(refBases) - refTotal
			if count >= remaining {
				if op.consumesRead {
					readTotal += remaining
				}
				return readTotal
			}
			refTotal += count
			if op.consumesRead {
				readTotal += count
			}
			continue
		}
		if op == OpSoftClip {
			if includeSoftClip {
				readTotal += count
			}
			continue
		}
		if op.consumesRead {
			readTotal += count
		}
	}
	return readTotal
}

// Lengths returns RefLen(-1) and QueryLen(-1, true) in one pass, mirroring
// biogo/hts's sam.Cigar.Lengths convenience.
func (c *CigarSequence) Lengths() (ref, query uint32) {
	for _, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if op.consumesRef {
			ref += count
		}
		if op.consumesRead {
			query += count
		}
	}
	return ref, query
}

// Validate reports whether c is a plausible CIGAR for a query of the given
// length: its query-consuming total must equal queryLen, and HARD_CLIP /
// SOFT_CLIP may only appear as the first and/or last run. Grounded on
// biogo/hts's sam.Cigar.IsValid; this is a convenience for callers that
// build a CigarSequence by hand and is not a precondition of any other
// operation in this package.
func (c *CigarSequence) Validate(queryLen int) error {
	var query uint32
	for i, w := range c.words {
		code, count := decodeWord(w)
		op := opsByBinCode[code]
		if (op == OpHardClip || op == OpSoftClip) && i != 0 && i != len(c.words)-1 {
			return errors.Errorf("galign: %s run only allowed at the ends of a cigar", op.Name())
		}
		if op.consumesRead {
			query += count
		}
	}
	if int(query) != queryLen {
		return errors.Wrapf(ErrLengthMismatch, "cigar consumes %d query bases, want %d", query, queryLen)
	}
	return nil
}

// Equal reports whether c and other have identical run sequences.
func (c *CigarSequence) Equal(other *CigarSequence) bool {
	if other == nil || len(c.words) != len(other.words) {
		return false
	}
	for i, w := range c.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// ToBinary returns a copy of c's packed words, in the layout used by the
// binary CIGAR surface (spec.md §6).
func (c *CigarSequence) ToBinary() []uint32 {
	out := make([]uint32, len(c.words))
	copy(out, c.words)
	return out
}

// CigarCodeCount is one (small-integer code, count) pair, as returned by
// ToPairList.
type CigarCodeCount struct {
	Code  uint8
	Count uint32
}

// ToPairList returns c's runs as (bin code, count) pairs.
func (c *CigarSequence) ToPairList() []CigarCodeCount {
	out := make([]CigarCodeCount, len(c.words))
	for i, w := range c.words {
		code, count := decodeWord(w)
		out[i] = CigarCodeCount{Code: code, Count: count}
	}
	return out
}

// CigarOpCount is one (descriptor, count) pair, as returned by
// ToDescriptorList.
type CigarOpCount struct {
	Op    *CigarOp
	Count uint32
}

// ToDescriptorList returns c's runs as (descriptor, count) pairs.
func (c *CigarSequence) ToDescriptorList() []CigarOpCount {
	out := make([]CigarOpCount, len(c.words))
	for i, w := range c.words {
		code, count := decodeWord(w)
		out[i] = CigarOpCount{Op: opsByBinCode[code], Count: count}
	}
	return out
}

// ToString renders c as a CIGAR string, e.g. "150M3I5D". Counts are always
// explicit, including 1.
func (c *CigarSequence) ToString() []byte {
	if len(c.words) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(c.words)*4)
	for _, w := range c.words {
		code, count := decodeWord(w)
		buf = strconv.AppendUint(buf, uint64(count), 10)
		buf = append(buf, opsByBinCode[code].codeChar)
	}
	return buf
}

func (c *CigarSequence) String() string { return string(c.ToString()) }
