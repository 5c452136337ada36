// Package chromapick is a color picker core: a canonical CSS color string
// kept in sync with editable channel text in a choice of color spaces.
package chromapick

import (
	"fmt"

	"github.com/jsvensson/chromapick/internal/clipboard"
	"github.com/jsvensson/chromapick/internal/config"
	"github.com/jsvensson/chromapick/internal/picker"
)

type (
	// Picker keeps a canonical color string synchronized with per-space
	// channel text.
	Picker = picker.Picker
	// Space is a display color space.
	Space = picker.Space
	// ChannelGroup is the channel text of one space.
	ChannelGroup = picker.ChannelGroup
	// State is a snapshot of a Picker.
	State = picker.State
	// Option configures a Picker.
	Option = picker.Option
	// Event is a user action applied with Picker.Handle.
	Event = picker.Event

	ChannelChanged = picker.ChannelChanged
	SpaceSelected  = picker.SpaceSelected
	ColorSet       = picker.ColorSet
)

// New returns a picker with the default state, adjusted by opts.
func New(opts ...Option) *Picker {
	return picker.New(opts...)
}

// Open loads the config file at path and returns a picker seeded from it.
// The picker copies to the system clipboard.
func Open(path string, opts ...Option) (*Picker, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	all := append([]Option{picker.WithClipboard(clipboard.System{})}, cfg.Options()...)
	return picker.New(append(all, opts...)...), nil
}
