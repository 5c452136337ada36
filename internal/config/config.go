package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/picker"
)

// Config is a fully-resolved picker configuration.
type Config struct {
	Color    string
	Space    picker.Space
	GamutMap color.GamutMethod
	Palette  map[string]string
	Channels map[picker.Space]picker.ChannelGroup
	Log      Log
}

// Log holds logging settings.
type Log struct {
	Verbosity int
	File      string
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// PickerBlock holds the initial picker state.
type PickerBlock struct {
	Color    string `hcl:"color,optional"`
	Space    string `hcl:"space,optional"`
	GamutMap string `hcl:"gamut_map,optional"`
}

// ChannelsBlock seeds the channel group of one space.
type ChannelsBlock struct {
	Space  string   `hcl:"space,label"`
	Values []string `hcl:"values"`
	Alpha  string   `hcl:"alpha,optional"`
}

// LogBlock holds logging settings.
type LogBlock struct {
	Verbosity int    `hcl:"verbosity,optional"`
	File      string `hcl:"file,optional"`
}

// ResolvedConfig decodes the blocks that may reference palette and call
// color functions.
type ResolvedConfig struct {
	Picker   *PickerBlock    `hcl:"picker,block"`
	Channels []ChannelsBlock `hcl:"channels,block"`
	Log      *LogBlock       `hcl:"log,block"`
}

// Load reads and resolves the config file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse resolves HCL config source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: palette holds literal colors only.
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	palette := make(map[string]string)
	if raw.Palette != nil {
		if err := parsePalette(raw.Palette.Entries, palette); err != nil {
			return nil, fmt.Errorf("parsing palette: %w", err)
		}
	}

	// Second pass: everything else, with palette and functions in scope.
	var resolved ResolvedConfig
	if diags := gohcl.DecodeBody(raw.Remain, EvalContext(palette), &resolved); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %s", diags.Error())
	}

	cfg := &Config{
		GamutMap: color.Clip,
		Palette:  palette,
		Channels: make(map[picker.Space]picker.ChannelGroup),
	}
	if err := cfg.applyPicker(resolved.Picker); err != nil {
		return nil, err
	}
	for _, block := range resolved.Channels {
		if err := cfg.applyChannels(block); err != nil {
			return nil, err
		}
	}
	if resolved.Log != nil {
		cfg.Log = Log{Verbosity: resolved.Log.Verbosity, File: resolved.Log.File}
	}
	return cfg, nil
}

func (c *Config) applyPicker(block *PickerBlock) error {
	if block == nil {
		return nil
	}

	if block.Color != "" {
		if _, err := color.Parse(block.Color); err != nil {
			return fmt.Errorf("picker.color: %w", err)
		}
		c.Color = block.Color
	}

	if block.Space != "" {
		s, err := picker.ParseSpace(block.Space)
		if err != nil {
			return fmt.Errorf("picker.space: %w", err)
		}
		c.Space = s
	}

	method, err := ParseGamutMethod(block.GamutMap)
	if err != nil {
		return fmt.Errorf("picker.gamut_map: %w", err)
	}
	c.GamutMap = method
	return nil
}

func (c *Config) applyChannels(block ChannelsBlock) error {
	s, err := picker.ParseSpace(block.Space)
	if err != nil {
		return fmt.Errorf("channels %q: %w", block.Space, err)
	}
	if len(block.Values) != 3 {
		return fmt.Errorf("channels %q: expected 3 values, got %d", block.Space, len(block.Values))
	}
	if _, dup := c.Channels[s]; dup {
		return fmt.Errorf("channels %q: duplicate block", block.Space)
	}

	g := picker.ChannelGroup{Alpha: block.Alpha}
	copy(g.Values[:], block.Values)
	if g.Alpha == "" {
		g.Alpha = "100"
	}
	c.Channels[s] = g
	return nil
}

// ParseGamutMethod maps "clip" and "css" to a gamut method. Empty means clip.
func ParseGamutMethod(name string) (color.GamutMethod, error) {
	switch name {
	case "", "clip":
		return color.Clip, nil
	case "css":
		return color.CSS, nil
	}
	return 0, fmt.Errorf("unknown gamut mapping %q (want clip or css)", name)
}

// Options returns the picker options described by the config.
func (c *Config) Options() []picker.Option {
	opts := []picker.Option{picker.WithGamutMap(c.GamutMap)}

	spaces := make([]string, 0, len(c.Channels))
	for s := range c.Channels {
		spaces = append(spaces, string(s))
	}
	sort.Strings(spaces)
	for _, s := range spaces {
		opts = append(opts, picker.WithChannels(picker.Space(s), c.Channels[picker.Space(s)]))
	}

	if c.Color != "" {
		opts = append(opts, picker.WithColor(c.Color))
	}
	if c.Space != "" {
		opts = append(opts, picker.WithSpace(c.Space))
	}
	return opts
}

// parsePalette reads flat name = "color" attributes. Palette entries cannot
// reference each other.
func parsePalette(body hcl.Body, dest map[string]string) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("getting attributes: %s", diags.Error())
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		if val.Type() != cty.String {
			return fmt.Errorf("%s: expected a color string", name)
		}
		text := val.AsString()
		if _, err := color.Parse(text); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		dest[name] = text
	}
	return nil
}

// paletteToCty converts the palette to a cty object for the EvalContext.
func paletteToCty(palette map[string]string) cty.Value {
	if len(palette) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(palette))
	for k, v := range palette {
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}

// EvalContext returns the evaluation context for blocks that may reference
// the palette and call the color functions.
func EvalContext(palette map[string]string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": paletteToCty(palette),
		},
		Functions: map[string]function.Function{
			"convert":  makeConvertFunc(),
			"contrast": makeContrastFunc(),
			"gamut":    makeGamutFunc(),
			"hex":      makeHexFunc(),
		},
	}
}
