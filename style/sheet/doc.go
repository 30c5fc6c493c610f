/*
Package sheet projects style groups onto a live stylesheet.

A Styles value owns a stylesheet (or, more precisely, the tail of it: rules
present at construction time are left alone). Every group applied to it
becomes exactly one rule, appended at the end of the rule table:

    styles := sheet.New(s)
    styles.Apply(style.NewGroup("body").Style("margin", "0"))   // permanent
    h := styles.ApplyScoped(style.NewGroup(".dialog").
        StyleSignal("display", signal.When(open, "block")))       // scoped
    …
    h.Release()

Static properties are written once, in name order. Every dynamic property
and every dynamic class gets its own task, which writes each value of its
signal to the rule's declaration block. Permanent bindings live as long as
the process; scoped bindings are cancelled by Handle.Release before the
rule is deleted, so no binding ever writes to a removed rule.

If an engine refuses a property, SetProperty retries with vendor prefixes
on the name and the value, see VendorPrefixes.

Errors

Configuration mistakes (an unparseable selector, a property no engine
accepts under any prefix, an invalid class token, a group submitted twice)
are programming errors and make Apply panic with a *ConfigurationError.
A broken stylesheet makes it panic with a *ResourceError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sheet

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'livestyle.sheet'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.sheet")
}
