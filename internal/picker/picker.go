package picker

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/chromapick/internal/clipboard"
	"github.com/jsvensson/chromapick/internal/color"
)

// Initial picker state.
const (
	DefaultColor       = "oklch(75% .3 180deg)"
	DefaultSpace Space = OKLCH
)

// State is a snapshot of the picker.
type State struct {
	Color             string
	Space             Space
	Group             ChannelGroup
	TextOverlay       string
	BackgroundOverlay string
	Gamut             string
}

// Picker keeps a canonical color string synchronized with per-space
// channel text. A Picker is owned by a single goroutine.
type Picker struct {
	color  string
	space  Space
	groups map[Space]ChannelGroup

	textOverlay       string
	backgroundOverlay string
	gamut             string

	method      color.GamutMethod
	clipboard   clipboard.Writer
	log         commonlog.Logger
	subscribers []subscriber
	nextID      int
}

type subscriber struct {
	id int
	fn func(State)
}

type options struct {
	color     string
	space     Space
	channels  map[Space]ChannelGroup
	method    color.GamutMethod
	clipboard clipboard.Writer
	log       commonlog.Logger
}

// Option configures a Picker.
type Option func(*options)

// WithColor sets the initial color as if by SetColor. An invalid color is
// logged and the default is kept.
func WithColor(text string) Option {
	return func(o *options) { o.color = text }
}

// WithSpace selects the initial active space after the initial color is set.
// Without WithColor, a space seeded by WithChannels composes the initial
// color from its seed.
func WithSpace(s Space) Option {
	return func(o *options) { o.space = s }
}

// WithChannels seeds the channel group of s.
func WithChannels(s Space, g ChannelGroup) Option {
	return func(o *options) {
		if o.channels == nil {
			o.channels = make(map[Space]ChannelGroup)
		}
		o.channels[s] = g
	}
}

// WithGamutMap sets how colors are brought into a bounded space when it is
// selected. The default is color.Clip.
func WithGamutMap(method color.GamutMethod) Option {
	return func(o *options) { o.method = method }
}

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(w clipboard.Writer) Option {
	return func(o *options) { o.clipboard = w }
}

// WithLogger replaces the picker's logger.
func WithLogger(log commonlog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New returns a picker seeded with the default channel groups, the default
// canonical color and the default active space, then applies opts.
func New(opts ...Option) *Picker {
	o := options{method: color.Clip}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = commonlog.GetLogger("chromapick.picker")
	}

	p := &Picker{
		color:     DefaultColor,
		space:     DefaultSpace,
		groups:    defaultGroups(),
		method:    o.method,
		clipboard: o.clipboard,
		log:       o.log,
	}
	for s, g := range o.channels {
		p.groups[s] = g
	}

	if o.color != "" {
		if err := p.setColor(o.color); err != nil {
			p.log.Warningf("ignoring initial color: %s", err)
		}
	}
	if o.space != "" {
		if _, seeded := o.channels[o.space]; seeded && o.color == "" {
			// The seed of the initial space is the initial color.
			p.space = o.space
			p.compose()
		} else {
			p.selectSpace(o.space)
		}
	}
	p.recompute()
	return p
}

// Color returns the canonical color string.
func (p *Picker) Color() string { return p.color }

// Space returns the active space.
func (p *Picker) Space() Space { return p.space }

// Group returns the channel group of s.
func (p *Picker) Group(s Space) ChannelGroup { return p.groups[s] }

// TextOverlay returns "white" or "black", whichever reads best on the color.
func (p *Picker) TextOverlay() string { return p.textOverlay }

// BackgroundOverlay returns the opposite of TextOverlay.
func (p *Picker) BackgroundOverlay() string { return p.backgroundOverlay }

// Gamut returns the narrowest gamut label containing the color.
func (p *Picker) Gamut() string { return p.gamut }

// State returns a snapshot of the picker.
func (p *Picker) State() State {
	return State{
		Color:             p.color,
		Space:             p.space,
		Group:             p.groups[p.space],
		TextOverlay:       p.textOverlay,
		BackgroundOverlay: p.backgroundOverlay,
		Gamut:             p.gamut,
	}
}

// SetChannel replaces the text of channel index in the active group and
// regenerates the canonical color. Index AlphaIndex addresses alpha.
func (p *Picker) SetChannel(index int, text string) error {
	if index < 0 || index > AlphaIndex {
		return fmt.Errorf("channel index %d out of range", index)
	}

	g := p.groups[p.space]
	if index == AlphaIndex {
		g.Alpha = text
	} else {
		g.Values[index] = text
	}
	p.groups[p.space] = g

	p.compose()
	p.changed()
	return nil
}

// SetAlpha replaces the alpha text of the active group.
func (p *Picker) SetAlpha(text string) {
	_ = p.SetChannel(AlphaIndex, text)
}

// SelectSpace makes s active: the canonical color is decomposed into the
// group of s, which then regenerates the canonical color.
func (p *Picker) SelectSpace(s Space) {
	p.selectSpace(s)
	p.changed()
}

func (p *Picker) selectSpace(s Space) {
	p.space = s

	if s.Known() {
		if c, err := color.Parse(p.color); err != nil {
			p.log.Warningf("keeping %s channels: %s", s, err)
		} else if g, err := decompose(c, s, p.method); err != nil {
			p.log.Errorf("keeping %s channels: %s", s, err)
		} else {
			p.groups[s] = g
		}
	}
	p.compose()
}

// SetColor parses text, makes its space active, fills that space's group
// and regenerates the canonical color. On a parse error the picker is left
// unchanged and the *color.ParseError is returned.
func (p *Picker) SetColor(text string) error {
	if err := p.setColor(text); err != nil {
		return err
	}
	p.changed()
	return nil
}

func (p *Picker) setColor(text string) error {
	c, err := color.Parse(text)
	if err != nil {
		return err
	}

	s := Space(color.DisplayName(c.Space))
	g, err := decompose(c, s, p.method)
	if err != nil {
		return err
	}

	p.space = s
	p.groups[s] = g
	p.compose()
	return nil
}

// compose regenerates the canonical color from the active group.
func (p *Picker) compose() {
	text, ok := Compose(p.space, p.groups[p.space])
	if !ok {
		p.log.Errorf("%s", &color.UnsupportedSpaceError{Space: string(p.space)})
		text = FallbackColor
	}
	p.color = text
}

func (p *Picker) recompute() {
	p.textOverlay = color.ContrastColor(p.color)
	p.backgroundOverlay = color.ContrastColor(p.textOverlay)
	p.gamut = color.GamutOf(p.color)
}

func (p *Picker) changed() {
	p.recompute()
	p.log.Debugf("color %s in %s", p.color, p.space)

	state := p.State()
	for _, sub := range p.subscribers {
		sub.fn(state)
	}
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned function removes the subscription.
func (p *Picker) Subscribe(fn func(State)) (cancel func()) {
	p.nextID++
	id := p.nextID
	p.subscribers = append(p.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range p.subscribers {
			if sub.id == id {
				p.subscribers = append(p.subscribers[:i:i], p.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Copy writes the canonical color to the clipboard without blocking. The
// outcome is delivered on the returned channel; picker state is unaffected.
func (p *Picker) Copy() <-chan error {
	return clipboard.Copy(p.clipboard, p.color)
}
