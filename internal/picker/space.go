package picker

import (
	"github.com/jsvensson/chromapick/internal/color"
)

// Space is a color space in the picker's display vocabulary.
type Space string

const (
	OKLab      Space = "oklab"
	OKLCH      Space = "oklch"
	Lab        Space = "lab"
	LCH        Space = "lch"
	HSL        Space = "hsl"
	HWB        Space = "hwb"
	SRGB       Space = "srgb"
	SRGBLinear Space = "srgb-linear"
	DisplayP3  Space = "display-p3"
	A98RGB     Space = "a98-rgb"
	Rec2020    Space = "rec2020"
	ProPhoto   Space = "prophoto"
	XYZ        Space = "xyz"
	XYZD50     Space = "xyz-d50"
	XYZD65     Space = "xyz-d65"
)

// AlphaIndex is the channel index of alpha in SetChannel and ChannelChanged.
const AlphaIndex = 3

// Channel describes one editable channel and its slider range.
type Channel struct {
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Percent bool
}

// format controls how a decomposed coordinate is written as channel text.
type format struct {
	scale    float64 // multiplier applied to the coordinate
	clamp    bool    // clamp the scaled value to [0, 100]
	decimals int
	hue      bool // NaN becomes 0
}

var (
	fmtPercent = format{scale: 100, clamp: true}
	fmtBounded = format{scale: 1, clamp: true}
	fmtInt     = format{scale: 1}
	fmtFixed2  = format{scale: 1, decimals: 2}
	fmtHue     = format{scale: 1, hue: true}
)

type spaceDef struct {
	channels [3]Channel
	formats  [3]format
	defaults ChannelGroup
	rgb      bool
}

var (
	alphaChannel = Channel{Name: "Alpha", Min: 0, Max: 100, Step: 1, Percent: true}
	hueChannel   = Channel{Name: "Hue", Min: 0, Max: 360, Step: 1}
)

func rgbDef() spaceDef {
	return spaceDef{
		channels: [3]Channel{
			{Name: "Red", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Green", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Blue", Min: 0, Max: 100, Step: 1, Percent: true},
		},
		formats:  [3]format{fmtPercent, fmtPercent, fmtPercent},
		defaults: ChannelGroup{Values: [3]string{"0", "100", "100"}, Alpha: "100"},
		rgb:      true,
	}
}

var spaceOrder = []Space{
	OKLab, OKLCH, Lab, LCH, HSL, HWB,
	SRGB, SRGBLinear, DisplayP3, A98RGB, Rec2020, ProPhoto,
	XYZ, XYZD50, XYZD65,
}

var spaces = map[Space]spaceDef{
	OKLab: {
		channels: [3]Channel{
			{Name: "Lightness", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "a", Min: -0.5, Max: 0.5, Step: 0.01},
			{Name: "b", Min: -0.5, Max: 0.5, Step: 0.01},
		},
		formats:  [3]format{{scale: 100, clamp: true, decimals: 2}, fmtFixed2, fmtFixed2},
		defaults: ChannelGroup{Values: [3]string{"100", "-0.2", "0.5"}, Alpha: "100"},
	},
	OKLCH: {
		channels: [3]Channel{
			{Name: "Lightness", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Chroma", Min: 0, Max: 0.5, Step: 0.01},
			hueChannel,
		},
		formats:  [3]format{fmtPercent, fmtFixed2, fmtHue},
		defaults: ChannelGroup{Values: [3]string{"50", "0.5", "220"}, Alpha: "100"},
	},
	Lab: {
		channels: [3]Channel{
			{Name: "Lightness", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "a", Min: -160, Max: 160, Step: 1},
			{Name: "b", Min: -160, Max: 160, Step: 1},
		},
		formats:  [3]format{fmtBounded, fmtInt, fmtInt},
		defaults: ChannelGroup{Values: [3]string{"100", "-20", "160"}, Alpha: "100"},
	},
	LCH: {
		channels: [3]Channel{
			{Name: "Lightness", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Chroma", Min: 0, Max: 230, Step: 1},
			hueChannel,
		},
		formats:  [3]format{fmtBounded, fmtInt, fmtHue},
		defaults: ChannelGroup{Values: [3]string{"50", "100", "220"}, Alpha: "100"},
	},
	HSL: {
		channels: [3]Channel{
			hueChannel,
			{Name: "Saturation", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Lightness", Min: 0, Max: 100, Step: 1, Percent: true},
		},
		formats:  [3]format{fmtHue, fmtBounded, fmtBounded},
		defaults: ChannelGroup{Values: [3]string{"220", "100", "50"}, Alpha: "100"},
	},
	HWB: {
		channels: [3]Channel{
			hueChannel,
			{Name: "Whiteness", Min: 0, Max: 100, Step: 1, Percent: true},
			{Name: "Blackness", Min: 0, Max: 100, Step: 1, Percent: true},
		},
		formats:  [3]format{fmtHue, fmtBounded, fmtBounded},
		defaults: ChannelGroup{Values: [3]string{"323", "0", "0"}, Alpha: "100"},
	},
	SRGB:       rgbDef(),
	SRGBLinear: rgbDef(),
	DisplayP3:  rgbDef(),
	A98RGB:     rgbDef(),
	Rec2020:    rgbDef(),
	ProPhoto:   rgbDef(),
	XYZ:        rgbDef(),
	XYZD50:     rgbDef(),
	XYZD65:     rgbDef(),
}

// ParseSpace returns the display space named name.
func ParseSpace(name string) (Space, error) {
	s := Space(name)
	if !s.Known() {
		return "", &color.UnsupportedSpaceError{Space: name}
	}
	return s, nil
}

// Spaces returns the display spaces in menu order.
func Spaces() []Space {
	out := make([]Space, len(spaceOrder))
	copy(out, spaceOrder)
	return out
}

// Known reports whether s is one of the display spaces.
func (s Space) Known() bool {
	_, ok := spaces[s]
	return ok
}

// AdapterID returns the color package's id for s.
func (s Space) AdapterID() color.Space {
	return color.SpaceID(string(s))
}

// IsRGB reports whether s is an RGB-family space written with percent
// channels.
func (s Space) IsRGB() bool {
	return spaces[s].rgb
}

// Channels returns the three channels of s followed by alpha, or nil for an
// unknown space.
func Channels(s Space) []Channel {
	def, ok := spaces[s]
	if !ok {
		return nil
	}
	return []Channel{def.channels[0], def.channels[1], def.channels[2], alphaChannel}
}

// DefaultGroup returns the initial channel values of s.
func DefaultGroup(s Space) ChannelGroup {
	return spaces[s].defaults
}

func defaultGroups() map[Space]ChannelGroup {
	groups := make(map[Space]ChannelGroup, len(spaces))
	for s, def := range spaces {
		groups[s] = def.defaults
	}
	return groups
}
