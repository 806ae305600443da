package models

import (
	"fmt"

	"surveysync/internal/structures"
)

type PositionKind string

const (
	KindSide   PositionKind = "side"
	KindCorner PositionKind = "corner"
	KindScreen PositionKind = "screen"
)

// Anchors per kind. The string values are the wire values of the "position" parameter.
const (
	AnchorLeft        = "left"
	AnchorRight       = "right"
	AnchorTopLeft     = "topleft"
	AnchorTopRight    = "topright"
	AnchorBottomLeft  = "bottomleft"
	AnchorBottomRight = "bottomright"
	AnchorTop         = "top"
	AnchorBottom      = "bottom"
)

type SideSize int

const (
	SideNormal SideSize = 60
	SideSmall  SideSize = 30
)

// Position is the banner layout slot: a side strip, a corner tile or a
// screen-wide notification.
type Position struct {
	Kind   PositionKind `json:"type"`
	Anchor string       `json:"anchor"`
	Size   SideSize     `json:"size,omitempty"`
}

func Side(anchor string, size SideSize) Position {
	return Position{Kind: KindSide, Anchor: anchor, Size: size}
}

func Corner(anchor string) Position {
	return Position{Kind: KindCorner, Anchor: anchor}
}

func Screen(anchor string) Position {
	return Position{Kind: KindScreen, Anchor: anchor}
}

// ParsePosition converts the configuration representation into a Position.
func ParsePosition(c structures.PositionConfig) (Position, error) {
	switch PositionKind(c.Type) {
	case KindSide:
		if c.Anchor != AnchorLeft && c.Anchor != AnchorRight {
			return Position{}, fmt.Errorf("invalid side anchor %q", c.Anchor)
		}
		size := SideNormal
		switch c.Size {
		case "", "normal":
		case "small":
			size = SideSmall
		default:
			return Position{}, fmt.Errorf("invalid side size %q", c.Size)
		}
		return Side(c.Anchor, size), nil
	case KindCorner:
		switch c.Anchor {
		case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight:
			return Corner(c.Anchor), nil
		}
		return Position{}, fmt.Errorf("invalid corner anchor %q", c.Anchor)
	case KindScreen:
		if c.Anchor != AnchorTop && c.Anchor != AnchorBottom {
			return Position{}, fmt.Errorf("invalid screen anchor %q", c.Anchor)
		}
		return Screen(c.Anchor), nil
	}
	return Position{}, fmt.Errorf("invalid position type %q", c.Type)
}

// Width and Height are in points, before device scaling.
func (p Position) Width() int {
	switch p.Kind {
	case KindSide:
		if p.Size == 0 {
			return int(SideNormal)
		}
		return int(p.Size)
	case KindCorner:
		return 160
	default:
		return 320
	}
}

func (p Position) Height() int {
	switch p.Kind {
	case KindSide:
		return 400
	case KindCorner:
		return 160
	default:
		return 72
	}
}

// DeviceMetrics describes the host screen the banner is laid out on.
type DeviceMetrics struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      int     `json:"scale"`
	SafeTop    float64 `json:"safe_top"`
	SafeBottom float64 `json:"safe_bottom"`
}

func DeviceMetricsFromConfig(c structures.ScreenConfig) DeviceMetrics {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return DeviceMetrics{Width: c.Width, Height: c.Height, Scale: scale, SafeTop: c.SafeTop, SafeBottom: c.SafeBottom}
}

type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Frame places the banner on the given screen.
func (p Position) Frame(d DeviceMetrics) Frame {
	w := float64(p.Width())
	h := float64(p.Height())
	f := Frame{Width: w, Height: h}

	switch p.Kind {
	case KindSide:
		if p.Anchor == AnchorRight {
			f.X = d.Width - w
		}
		f.Y = (d.Height - h) / 2
	case KindCorner:
		if p.Anchor == AnchorTopRight || p.Anchor == AnchorBottomRight {
			f.X = d.Width - w
		}
		if p.Anchor == AnchorBottomLeft || p.Anchor == AnchorBottomRight {
			f.Y = d.Height - h
		}
	case KindScreen:
		f.X = (d.Width - w) / 2
		if p.Anchor == AnchorTop {
			f.Y = d.SafeTop
		} else {
			f.Y = d.Height - h - d.SafeBottom
		}
	}
	return f
}
