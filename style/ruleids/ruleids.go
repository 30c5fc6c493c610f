/*
Package ruleids maps stable rule identifiers to positions in a live
stylesheet.

A stylesheet's rule table is an ordered list; inserting or deleting a rule
shifts the position of every rule behind it. Clients therefore never hold on
to positions. Instead they hold an ID, and ask for the ID's current index
right before touching the rule table.

The registry keeps just the sequence of live IDs in allocation order. The
index of an ID is its rank within this sequence, computed on demand.

Both structural operations, AddNewID and RemoveID, return a Guard. The
registry stays locked until the guard is released, and clients are expected
to perform the matching insertion or deletion on the rule table while
holding it:

    id, index, guard := ids.AddNewID()
    err := sheet.InsertRule(text, index)
    if err != nil {
        guard.Rollback()
        …
    }
    guard.Unlock()

The guard must not be held across anything which may block for long.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ruleids

import (
	"fmt"
	"slices"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'livestyle.ruleids'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.ruleids")
}

// ID identifies a rule independently of its position.
type ID uint32

// MonotonicIDs allocates IDs in increasing order. The zero value is ready
// to use.
type MonotonicIDs struct {
	mu   sync.Mutex
	next ID
	live []ID // in allocation order
}

// Guard is a held critical section of a MonotonicIDs.
type Guard struct {
	ids      *MonotonicIDs
	rollback func()
	once     sync.Once
}

// Unlock releases the critical section.
func (g *Guard) Unlock() {
	g.once.Do(g.ids.mu.Unlock)
}

// Rollback reverts the bookkeeping step the guard was created for, then
// releases the critical section. Use it if the matching rule table
// operation failed.
func (g *Guard) Rollback() {
	g.once.Do(func() {
		if g.rollback != nil {
			g.rollback()
		}
		g.ids.mu.Unlock()
	})
}

// AddNewID allocates the next ID and returns the index at which its rule
// has to be inserted, which always is the tail of the rule table.
// The returned guard has to be released by the caller.
func (ids *MonotonicIDs) AddNewID() (ID, int, *Guard) {
	ids.mu.Lock()
	id := ids.next
	ids.next++
	index := len(ids.live)
	ids.live = append(ids.live, id)
	tracer().Debugf("rule id %d allocated at index %d", id, index)
	g := &Guard{ids: ids, rollback: func() {
		ids.live = ids.live[:len(ids.live)-1]
		tracer().Debugf("rule id %d rolled back", id)
	}}
	return id, index, g
}

// RemoveID looks up the current index of id and removes id from the set
// of live IDs. The returned guard has to be released by the caller after
// the rule at the index has been deleted.
//
// Removing an ID which is not live is a programming error and panics.
func (ids *MonotonicIDs) RemoveID(id ID) (int, *Guard) {
	ids.mu.Lock()
	index := slices.Index(ids.live, id)
	if index < 0 {
		ids.mu.Unlock()
		assertThat(false, "rule id %d is not live", id)
	}
	ids.live = slices.Delete(ids.live, index, index+1)
	tracer().Debugf("rule id %d removed from index %d", id, index)
	g := &Guard{ids: ids, rollback: func() {
		ids.live = slices.Insert(ids.live, index, id)
	}}
	return index, g
}

// Index returns the current index of id, if id is live.
func (ids *MonotonicIDs) Index(id ID) (int, bool) {
	ids.mu.Lock()
	defer ids.mu.Unlock()
	index := slices.Index(ids.live, id)
	return index, index >= 0
}

// Len returns the number of live IDs.
func (ids *MonotonicIDs) Len() int {
	ids.mu.Lock()
	defer ids.mu.Unlock()
	return len(ids.live)
}

// Live returns a copy of the live IDs in index order.
func (ids *MonotonicIDs) Live() []ID {
	ids.mu.Lock()
	defer ids.mu.Unlock()
	return slices.Clone(ids.live)
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("ruleids: "+msg, msgargs...)
		panic(msg)
	}
}
