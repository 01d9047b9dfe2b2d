// Package table implements the in-memory routing table: a map from OUI to
// RoutingEntry plus the height of the last applied update, owned
// exclusively by the Router component.
package table

import (
	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/internal/router/filter"
)

// RouterEndpoint is a lazily-connected handle to one remote router's
// unary route RPC.
type RouterEndpoint interface {
	URI() string
}

// RoutingEntry is one row of the routing table: immutable after
// construction; updates replace entries wholesale.
type RoutingEntry struct {
	OUI       uint32
	Filters   []filter.EuiFilter
	Subnets   []filter.DevAddrFilter
	Endpoints []RouterEndpoint
}

// MatchesEUI reports whether this entry's filters claim the given
// join-request EUI pair.
func (e RoutingEntry) MatchesEUI(appEUI, devEUI uint64) bool {
	for _, f := range e.Filters {
		if f.Contains(appEUI, devEUI) {
			return true
		}
	}
	return false
}

// MatchesDevAddr reports whether this entry's subnets claim the given
// DevAddr.
func (e RoutingEntry) MatchesDevAddr(devAddr link.DevAddr) bool {
	for _, s := range e.Subnets {
		if s.Contains(uint32(devAddr)) {
			return true
		}
	}
	return false
}

// Table is a mapping from OUI to RoutingEntry plus the height of the last
// applied update; that height can go down (see SetHeight).
// It is not safe for concurrent use; the Router serializes all access
// from its own main loop.
type Table struct {
	entries map[uint32]RoutingEntry
	height  uint64
}

// New returns an empty table at height 0.
func New() *Table {
	return &Table{entries: make(map[uint32]RoutingEntry)}
}

// Height returns the table's current height.
func (t *Table) Height() uint64 {
	return t.height
}

// Put inserts or replaces the entry for entry.OUI.
func (t *Table) Put(entry RoutingEntry) {
	t.entries[entry.OUI] = entry
}

// SetHeight unconditionally sets the table's height. Called after
// applying every row of a RoutingResponse, even when that response's
// height was not strictly greater than the current one — see
// Router.handleRoutingUpdate for why this is preserved rather than guarded.
func (t *Table) SetHeight(height uint64) {
	t.height = height
}

// MatchEUI returns the union of endpoints across every entry whose
// filters claim (appEUI, devEUI). Order is unspecified; duplicates across
// entries are not deduplicated.
func (t *Table) MatchEUI(appEUI, devEUI uint64) []RouterEndpoint {
	var out []RouterEndpoint
	for _, e := range t.entries {
		if e.MatchesEUI(appEUI, devEUI) {
			out = append(out, e.Endpoints...)
		}
	}
	return out
}

// MatchDevAddr returns the union of endpoints across every entry whose
// subnets claim devAddr.
func (t *Table) MatchDevAddr(devAddr link.DevAddr) []RouterEndpoint {
	var out []RouterEndpoint
	for _, e := range t.entries {
		if e.MatchesDevAddr(devAddr) {
			out = append(out, e.Endpoints...)
		}
	}
	return out
}

// Match resolves a RoutingKey against the table, per §4.3: EUI keys test
// EuiFilters, DevAddr keys test DevAddrFilters. An empty result means no
// entry claimed the key; the caller is expected to fall back to defaults.
func (t *Table) Match(key link.RoutingKey) []RouterEndpoint {
	switch key.Kind {
	case link.RoutingKeyEUI:
		return t.MatchEUI(key.AppEUI, key.DevEUI)
	case link.RoutingKeyDevAddr:
		return t.MatchDevAddr(key.DevAddr)
	default:
		return nil
	}
}
