/*
Package style describes groups of CSS rules before they are projected onto
a live stylesheet.

A Group combines a selector with static properties, signal-driven
properties, static classes, signal-driven classes and resize handlers.
Groups are handed to package sheet, which turns each of them into one
stylesheet rule plus one live binding per dynamic entry. A group is consumed
on submission and may not be submitted twice.

    g := style.NewGroup(".button").
        Style("background", "purple").
        StyleImportant("padding", css.Px(10)).
        StyleSignalString("color", hovered)

The package also knows the set of CSS property names an in-memory engine
accepts, grouped by topic, and the list of vendor prefixes tried when an
engine rejects a property.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'livestyle.style'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.style")
}
