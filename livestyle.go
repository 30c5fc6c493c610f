/*
Package livestyle keeps CSS rules in a live stylesheet in sync with
application state.

Rules are described as groups (package style): a selector with static
properties, properties driven by signals (package signal), classes and
resize handlers. A group is applied to a stylesheet owner (package
style/sheet), either permanently or scoped to a handle. Releasing the handle
stops every binding of the group, then removes its rule.

Most applications use a single, process-wide owner:

    livestyle.GlobalStyles().Apply(style.NewGroup(".button").
        Style("background", "purple"))

By default the global owner manages an in-memory stylesheet (package
style/cssom/douceuradapter). Hosts which bring their own engine install a
factory with UseStyleSheet before first use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package livestyle

import (
	"sync"

	"github.com/npillmayer/livestyle/style/cssom"
	"github.com/npillmayer/livestyle/style/cssom/douceuradapter"
	"github.com/npillmayer/livestyle/style/sheet"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'livestyle'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle")
}

// StyleSheetFactory creates the stylesheet of the global owner.
type StyleSheetFactory func() (cssom.StyleSheet, error)

var global struct {
	sync.Mutex
	factory StyleSheetFactory
	options []sheet.Option
	styles  *sheet.Styles
}

func inMemoryStyleSheet() (cssom.StyleSheet, error) {
	return douceuradapter.New(), nil
}

// UseStyleSheet installs the factory for the global owner's stylesheet,
// together with options for the owner. It has no effect once GlobalStyles
// has been called, and reports false in that case.
func UseStyleSheet(factory StyleSheetFactory, opts ...sheet.Option) bool {
	global.Lock()
	defer global.Unlock()
	if global.styles != nil {
		tracer().Errorf("global styles already in use, stylesheet factory ignored")
		return false
	}
	global.factory = factory
	global.options = opts
	return true
}

// GlobalStyles returns the process-wide stylesheet owner, creating it on
// first use. If the stylesheet cannot be created, GlobalStyles panics with
// a *sheet.ResourceError.
func GlobalStyles() *sheet.Styles {
	global.Lock()
	defer global.Unlock()
	if global.styles != nil {
		return global.styles
	}
	factory := global.factory
	if factory == nil {
		factory = inMemoryStyleSheet
	}
	s, err := factory()
	if err != nil {
		panic(&sheet.ResourceError{Op: "create stylesheet", Err: err})
	}
	global.styles = sheet.New(s, global.options...)
	tracer().Debugf("global styles created")
	return global.styles
}

// resetGlobal forgets the global owner. Tests only.
func resetGlobal() {
	global.Lock()
	defer global.Unlock()
	global.factory, global.options, global.styles = nil, nil, nil
}
