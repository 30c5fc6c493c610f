/*
Package signal implements reactive value sources.

A Signal is a recipe for a stream of values. Subscribing to it starts the
stream, which lasts until the source ends or the subscriber's context is
cancelled; in both cases the channel is closed. Every subscription is
independent and is meant to be consumed by exactly one reader.

Mutable holds a current value. Subscribers first see the value current at
the time of subscription and afterwards the latest value after every change.
Changes occurring faster than a subscriber reads may be coalesced, only the
latest one being delivered.

    visible := signal.NewMutable(true)
    display := signal.When(visible.Signal(), "block")   // Just("block") or Nothing
    visible.Set(false)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package signal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'livestyle.signal'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.signal")
}
