package css

import (
	"strconv"

	"github.com/npillmayer/tyse/core/dimen"
)

// Px renders n as a pixel length, e.g. "10px".
func Px[N ~int | ~int32 | ~int64 | ~uint32 | ~float64](n N) string {
	return number(float64(n)) + "px"
}

// Ch renders n as a length relative to the width of the "0" glyph.
func Ch[N ~int | ~int32 | ~int64 | ~uint32 | ~float64](n N) string {
	return number(float64(n)) + "ch"
}

// Percent renders n as a percentage, e.g. "40%".
func Percent[N ~int | ~int32 | ~int64 | ~uint32 | ~float64](n N) string {
	return number(float64(n)) + "%"
}

// Pt renders a typesetting dimension as a point length.
func Pt(d dimen.DU) string {
	return number(float64(d)/float64(dimen.PT)) + "pt"
}

func number(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f
)

// DimenT is an option type for CSS dimensions.
//
//    type DimenT
//        = Auto
//        | Inherit
//        | Initial
//        | JustDimen dimen
type DimenT struct {
	d     dimen.DU
	flags uint32
}

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// IsNone is true for the zero value, which does not denote any dimension.
func (d DimenT) IsNone() bool {
	return d.flags&kindMask == dimenNone
}

// String renders d as a CSS value. The zero value renders as the empty
// string, which style groups treat as an absent value.
func (d DimenT) String() string {
	switch d.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	case dimenAbsolute:
		return Pt(d.d)
	}
	return ""
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	if (m.dimen.flags & kindMask) == (d.flags & kindMask) {
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}
