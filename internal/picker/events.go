package picker

import "fmt"

// Event is a discrete UI event delivered to Handle.
type Event interface {
	event()
}

// ChannelChanged carries new raw text for a channel of the active space.
type ChannelChanged struct {
	Index int
	Text  string
}

// SpaceSelected selects a new active space.
type SpaceSelected struct {
	Space Space
}

// ColorSet sets the picker from a color string.
type ColorSet struct {
	Text string
}

func (ChannelChanged) event() {}
func (SpaceSelected) event()  {}
func (ColorSet) event()       {}

// Handle applies e synchronously.
func (p *Picker) Handle(e Event) error {
	switch e := e.(type) {
	case ChannelChanged:
		return p.SetChannel(e.Index, e.Text)
	case SpaceSelected:
		p.SelectSpace(e.Space)
		return nil
	case ColorSet:
		return p.SetColor(e.Text)
	default:
		return fmt.Errorf("unknown event %T", e)
	}
}
