package headerscan

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/sys/cpu"
)

// Tier selects the line feed search implementation
type Tier int

// Tiers in order of lane width. TierAuto resolves to DetectTier() when a scanner is created.
const (
	TierAuto Tier = iota
	TierScalar
	TierWide16
	TierWide32
)

func (t Tier) String() string {
	switch t {
	case TierAuto:
		return "auto"
	case TierScalar:
		return "scalar"
	case TierWide16:
		return "wide16"
	case TierWide32:
		return "wide32"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier parses a tier name
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return TierAuto, nil
	case "scalar":
		return TierScalar, nil
	case "wide16":
		return TierWide16, nil
	case "wide32":
		return TierWide32, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// DetectTier returns the widest tier the running cpu handles natively
func DetectTier() Tier {
	switch {
	case cpu.X86.HasAVX2:
		return TierWide32
	case cpu.X86.HasSSE2, cpu.ARM64.HasASIMD:
		return TierWide16
	}
	return TierScalar
}

// Strategy finds line feeds
type Strategy interface {
	// FindLineFeed returns the index of the first '\n' in buf at or after from, or -1.
	FindLineFeed(buf []byte, from int) int
}

// StrategyFor returns the Strategy for a tier
func StrategyFor(t Tier) Strategy {
	if t == TierAuto {
		t = DetectTier()
	}
	switch t {
	case TierWide16:
		return wide16
	case TierWide32:
		return wide32
	}
	return scalar
}

var (
	scalar Strategy = scalarStrategy{}
	wide16 Strategy = wideStrategy{words: 2}
	wide32 Strategy = wideStrategy{words: 4}
)

type scalarStrategy struct{}

func (scalarStrategy) FindLineFeed(buf []byte, from int) int {
	for i := from; i < len(buf); i++ {
		if buf[i] == '\n' {
			return i
		}
	}
	return -1
}

const (
	lanesLF = 0x0a0a0a0a0a0a0a0a
	low7    = 0x7f7f7f7f7f7f7f7f
	gather  = 0x0102040810204080
)

// wideStrategy compares 8*words lanes per step.
type wideStrategy struct {
	words int
}

func (w wideStrategy) FindLineFeed(buf []byte, from int) int {
	width := 8 * w.words
	i := from
	for ; len(buf)-i >= width; i += width {
		var mask uint32
		for k := 0; k < w.words; k++ {
			word := binary.LittleEndian.Uint64(buf[i+8*k:])
			mask |= laneMask(word) << (8 * k)
		}
		if mask != 0 {
			return i + bits.TrailingZeros32(mask)
		}
	}
	return scalar.FindLineFeed(buf, i)
}

// laneMask returns a byte with bit k set iff byte k of word is '\n'.
func laneMask(word uint64) uint32 {
	x := word ^ lanesLF
	// high bit of each byte is set iff that byte of x is zero
	z := ^((x&low7 + low7) | x | low7)
	return uint32(((z >> 7) * gather) >> 56)
}
