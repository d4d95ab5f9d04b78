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
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"
)

type CigarSequenceSuite struct{}

var _ = check.Suite(&CigarSequenceSuite{})

func (s *CigarSequenceSuite) TestParseRoundTrip(c *check.C) {
	for _, str := range []string{"150M3I5D", "1M", "6H5S4M3I5M2D6S11H", "10M", ""} {
		cs, err := ParseCigarString([]byte(str))
		c.Assert(err, check.IsNil)
		c.Check(string(cs.ToString()), check.Equals, str)
	}
}

func (s *CigarSequenceSuite) TestNoAdjacentRunsShareCode(c *check.C) {
	cs, err := ParseCigarString([]byte("3M4M2I1I5D"))
	c.Assert(err, check.IsNil)
	c.Log(utter.Sdump(cs.ToPairList()))
	c.Check(string(cs.ToString()), check.Equals, "7M3I5D")

	for i := 1; i < cs.RunCount(); i++ {
		prev, _ := cs.At(i - 1)
		cur, _ := cs.At(i)
		c.Check(prev, check.Not(check.Equals), cur)
	}
}

func (s *CigarSequenceSuite) TestTrailingDigitsFails(c *check.C) {
	_, err := ParseCigarString([]byte("10M5"))
	c.Assert(err, check.NotNil)
}

func (s *CigarSequenceSuite) TestBareCharMeansCountOne(c *check.C) {
	cs, err := ParseCigarString([]byte("M"))
	c.Assert(err, check.IsNil)
	c.Check(string(cs.ToString()), check.Equals, "1M")
}

func (s *CigarSequenceSuite) TestFromBinaryCoalescesBoundary(c *check.C) {
	cs, err := NewCigarSequenceFromBinary([]uint32{encodeWord(0, 3)})
	c.Assert(err, check.IsNil)
	err = cs.ExtendBinary([]uint32{encodeWord(0, 4), encodeWord(2, 5)})
	c.Assert(err, check.IsNil)
	c.Check(string(cs.ToString()), check.Equals, "7M5D")
}

func (s *CigarSequenceSuite) TestFromPairsPolymorphicIdentifier(c *check.C) {
	cs, err := NewCigarSequenceFromPairs([]CigarPair{
		{Op: OpMatch, Count: 3},
		{Op: byte('I'), Count: 2},
		{Op: []byte("D"), Count: 1},
		{Op: 7, Count: 4},
	})
	c.Assert(err, check.IsNil)
	c.Check(string(cs.ToString()), check.Equals, "3M2I1D4=")

	_, err = NewCigarSequenceFromPairs([]CigarPair{{Op: 3.14, Count: 1}})
	c.Assert(err, check.NotNil)
}

// TestScenarioSixLengths is the concrete length-query scenario from the
// worked examples: CigarSequence(b"6H5S4M3I5M2D6S11H").
func (s *CigarSequenceSuite) TestScenarioSixLengths(c *check.C) {
	cs, err := ParseCigarString([]byte("6H5S4M3I5M2D6S11H"))
	c.Assert(err, check.IsNil)

	c.Check(cs.GappedLen(false), check.Equals, uint32(14))
	c.Check(cs.GappedLen(true), check.Equals, uint32(25))
	c.Check(cs.RefLen(-1), check.Equals, uint32(11))
	c.Check(cs.QueryLen(5, false), check.Equals, uint32(8))
	c.Check(cs.QueryLen(5, true), check.Equals, uint32(13))

	n, err := cs.Count(OpHardClip)
	c.Assert(err, check.IsNil)
	c.Check(n, check.Equals, uint32(17))
}

func (s *CigarSequenceSuite) TestReverse(c *check.C) {
	cs, err := ParseCigarString([]byte("3M2I5D"))
	c.Assert(err, check.IsNil)
	cs.Reverse()
	c.Check(string(cs.ToString()), check.Equals, "5D2I3M")
}

func (s *CigarSequenceSuite) TestSliceDefaultStepNoRecoalesce(c *check.C) {
	cs, err := ParseCigarString([]byte("3M2I5D4M"))
	c.Assert(err, check.IsNil)

	sub, err := cs.Slice(0, 2, 1)
	c.Assert(err, check.IsNil)
	c.Check(string(sub.ToString()), check.Equals, "3M2I")

	stepped, err := cs.Slice(0, 4, 2)
	c.Assert(err, check.IsNil)
	c.Check(stepped.RunCount(), check.Equals, 2)
	op0, _ := stepped.At(0)
	op1, _ := stepped.At(1)
	c.Check(op0, check.Equals, OpMatch)
	c.Check(op1, check.Equals, OpDeletion)

	// Negative step walks backward from start down to (but excluding) stop,
	// the same convention Python uses for an explicit integer stop; a full
	// reversal is Reverse(), not a Slice call.
	rev, err := cs.Slice(3, 0, -1)
	c.Assert(err, check.IsNil)
	c.Check(string(rev.ToString()), check.Equals, "4M5D2I")
}

func (s *CigarSequenceSuite) TestPopEmptyFails(c *check.C) {
	cs := NewCigarSequence()
	_, _, err := cs.Pop()
	c.Assert(err, check.NotNil)

	cs2, err := ParseCigarString([]byte("3M2I"))
	c.Assert(err, check.IsNil)
	op, n, err := cs2.Pop()
	c.Assert(err, check.IsNil)
	c.Check(op, check.Equals, OpInsertion)
	c.Check(n, check.Equals, uint32(2))
	c.Check(string(cs2.ToString()), check.Equals, "3M")
}

func (s *CigarSequenceSuite) TestInvertRoundTrip(c *check.C) {
	cs, err := ParseCigarString([]byte("3M2I5D4M"))
	c.Assert(err, check.IsNil)

	inv, sLeft, sRight, err := cs.Invert(0, 0)
	c.Assert(err, check.IsNil)
	c.Check(sLeft, check.Equals, 0)
	c.Check(sRight, check.Equals, 0)
	c.Check(string(inv.ToString()), check.Equals, "3M2D5I4M")

	back, sLeft2, sRight2, err := inv.Invert(0, 0)
	c.Assert(err, check.IsNil)
	c.Check(sLeft2, check.Equals, 0)
	c.Check(sRight2, check.Equals, 0)
	c.Check(back.Equal(cs), check.Equals, true)
}

func (s *CigarSequenceSuite) TestInvertStripsClipsAndBrackets(c *check.C) {
	cs, err := ParseCigarString([]byte("4H5S3M2D4M6S"))
	c.Assert(err, check.IsNil)

	inv, sLeft, sRight, err := cs.Invert(2, 3)
	c.Assert(err, check.IsNil)
	c.Check(sLeft, check.Equals, 5)
	c.Check(sRight, check.Equals, 6)
	c.Check(string(inv.ToString()), check.Equals, "2S3M2I4M3S")
}

func (s *CigarSequenceSuite) TestInvertNegativeClipFails(c *check.C) {
	cs, err := ParseCigarString([]byte("3M"))
	c.Assert(err, check.IsNil)
	_, _, _, err = cs.Invert(-1, 0)
	c.Assert(err, check.NotNil)
}

func (s *CigarSequenceSuite) TestInvertUnsupportedFails(c *check.C) {
	cs, err := ParseCigarString([]byte("3M2N"))
	c.Assert(err, check.IsNil)
	_, _, _, err = cs.Invert(0, 0)
	c.Assert(err, check.NotNil)
}

func (s *CigarSequenceSuite) TestConvertNToSNoRecoalesce(c *check.C) {
	cs, err := ParseCigarString([]byte("3M2N4S"))
	c.Assert(err, check.IsNil)
	cs.ConvertNToS()
	c.Check(string(cs.ToString()), check.Equals, "3M2S4S")
}

func (s *CigarSequenceSuite) TestValidate(c *check.C) {
	cs, err := ParseCigarString([]byte("4S10M6S"))
	c.Assert(err, check.IsNil)
	c.Assert(cs.Validate(20), check.IsNil)
	c.Assert(cs.Validate(19), check.NotNil)

	bad, err := ParseCigarString([]byte("4S5M2S5M6S"))
	c.Assert(err, check.IsNil)
	c.Assert(bad.Validate(22), check.NotNil)
}

func (s *CigarSequenceSuite) TestLengthsMatchesSeparateQueries(c *check.C) {
	cs, err := ParseCigarString([]byte("6H5S4M3I5M2D6S11H"))
	c.Assert(err, check.IsNil)
	ref, query := cs.Lengths()
	c.Check(ref, check.Equals, cs.RefLen(-1))
	c.Check(query, check.Equals, cs.QueryLen(-1, true))
}

func (s *CigarSequenceSuite) TestToExtendedCigar(c *check.C) {
	cs, err := ParseCigarString([]byte("5M"))
	c.Assert(err, check.IsNil)
	ref := []byte("ACGAT")
	query := []byte("ACTAT")
	ext, err := ToExtendedCigar(cs, ref, query, 0, 0)
	c.Assert(err, check.IsNil)
	c.Check(string(ext.ToString()), check.Equals, "2=1X2=")

	_, err = ToExtendedCigar(cs, ref[:3], query, 0, 0)
	c.Assert(err, check.NotNil)
}
