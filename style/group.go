package style

import (
	"errors"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/npillmayer/livestyle/maybe"
	"github.com/npillmayer/livestyle/signal"
)

// ErrGroupSubmitted is returned when a group is submitted a second time.
var ErrGroupSubmitted = errors.New("style group has already been submitted")

// PropValue is the value of a static property.
type PropValue struct {
	Value     Property
	Important bool
}

// StaticProps holds static properties. Iteration is ordered by name.
type StaticProps map[string]PropValue

// Insert sets a property.
func (sp StaticProps) Insert(name string, value string) {
	sp[name] = PropValue{Value: Property(value)}
}

// InsertImportant sets a property with priority "important".
func (sp StaticProps) InsertImportant(name string, value string) {
	sp[name] = PropValue{Value: Property(value), Important: true}
}

// Remove deletes a property, returning its former value.
func (sp StaticProps) Remove(name string) (PropValue, bool) {
	v, ok := sp[name]
	delete(sp, name)
	return v, ok
}

// Names returns the property names in order.
func (sp StaticProps) Names() []string {
	return slices.Sorted(maps.Keys(sp))
}

// CSSSignal is the stream of values of a dynamic property. Nothing removes
// the property.
type CSSSignal = signal.Signal[maybe.Maybe[string]]

// DynamicProps maps property names to value streams.
type DynamicProps map[string]CSSSignal

// Names returns the property names in order.
func (dp DynamicProps) Names() []string {
	return slices.Sorted(maps.Keys(dp))
}

// StaticClasses is a set of class tokens.
type StaticClasses map[string]struct{}

// Names returns the class tokens in order.
func (sc StaticClasses) Names() []string {
	return slices.Sorted(maps.Keys(sc))
}

// DynamicClasses maps class tokens to streams toggling them.
type DynamicClasses map[string]signal.Signal[bool]

// Names returns the class tokens in order.
func (dc DynamicClasses) Names() []string {
	return slices.Sorted(maps.Keys(dc))
}

// ResizeHandler is called with a new width and height.
type ResizeHandler func(width, height uint32)

// Group is a set of CSS styles for one selector.
// Build it with NewGroup and the chaining methods, then submit it to a
// stylesheet owner (see package sheet). After submission a group must not
// be modified.
type Group struct {
	selector       string
	static         StaticProps
	dynamic        DynamicProps
	classes        StaticClasses
	dynamicClasses DynamicClasses
	resize         []ResizeHandler
	submitted      atomic.Bool
}

// NewGroup creates an empty group of styles for a CSS selector, e.g.
// ".button" or ":hover".
func NewGroup(selector string) *Group {
	return &Group{
		selector:       selector,
		static:         make(StaticProps),
		dynamic:        make(DynamicProps),
		classes:        make(StaticClasses),
		dynamicClasses: make(DynamicClasses),
	}
}

// Style adds a static property.
func (g *Group) Style(name string, value string) *Group {
	g.static.Insert(name, value)
	return g
}

// StyleImportant adds a static property with priority "important".
func (g *Group) StyleImportant(name string, value string) *Group {
	g.static.InsertImportant(name, value)
	return g
}

// StyleSignal adds a property driven by a signal. Every Just(v) sets the
// property to v, every Nothing removes it.
func (g *Group) StyleSignal(name string, value CSSSignal) *Group {
	g.dynamic[name] = value
	return g
}

// StyleSignalString adds a property driven by a signal of strings.
// The empty string removes the property.
func (g *Group) StyleSignalString(name string, value signal.Signal[string]) *Group {
	return g.StyleSignal(name, signal.NonEmpty(value))
}

// Class adds a static class token.
func (g *Group) Class(class string) *Group {
	g.classes[class] = struct{}{}
	return g
}

// ClassSignal adds a class token which is present while enabled yields true.
func (g *Group) ClassSignal(class string, enabled signal.Signal[bool]) *Group {
	g.dynamicClasses[class] = enabled
	return g
}

// OnResize adds a handler, called whenever the owner of the group is
// resized.
func (g *Group) OnResize(handler ResizeHandler) *Group {
	g.resize = append(g.resize, handler)
	return g
}

// Styler is implemented by typed style helpers which contribute properties
// to a group.
type Styler interface {
	MergeWithGroup(*Group) *Group
}

// With merges typed styles into the group, in order.
func (g *Group) With(stylers ...Styler) *Group {
	for _, s := range stylers {
		g = s.MergeWithGroup(g)
	}
	return g
}

// Merge copies all entries of other into g. Entries of other win.
// other must not have been submitted; it is marked as submitted afterwards.
func (g *Group) Merge(other *Group) *Group {
	if err := other.Submit(); err != nil {
		panic(err)
	}
	maps.Copy(g.static, other.static)
	maps.Copy(g.dynamic, other.dynamic)
	maps.Copy(g.classes, other.classes)
	maps.Copy(g.dynamicClasses, other.dynamicClasses)
	g.resize = append(g.resize, other.resize...)
	return g
}

// --- Read access for stylesheet owners ---------------------------------

// Selector returns the selector of the group.
func (g *Group) Selector() string { return g.selector }

// StaticProps returns the static properties.
func (g *Group) StaticProps() StaticProps { return g.static }

// DynamicProps returns the signal-driven properties.
func (g *Group) DynamicProps() DynamicProps { return g.dynamic }

// StaticClasses returns the static class tokens.
func (g *Group) StaticClasses() StaticClasses { return g.classes }

// DynamicClasses returns the signal-driven class tokens.
func (g *Group) DynamicClasses() DynamicClasses { return g.dynamicClasses }

// ResizeHandlers returns the resize handlers.
func (g *Group) ResizeHandlers() []ResizeHandler { return g.resize }

// Submit marks the group as consumed. It fails if the group has been
// submitted before.
func (g *Group) Submit() error {
	if !g.submitted.CompareAndSwap(false, true) {
		tracer().Errorf("style group %q submitted twice", g.selector)
		return ErrGroupSubmitted
	}
	return nil
}
