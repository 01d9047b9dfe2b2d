package table

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/loraforward/gateway-bridge/internal/link"
	"github.com/loraforward/gateway-bridge/internal/router/filter"
)

type fakeEndpoint struct{ uri string }

func (f fakeEndpoint) URI() string { return f.uri }

func TestTableHeightUnionLastWriterWins(t *testing.T) {
	assert := assert.New(t)

	tbl := New()

	f1, err := filter.NewEuiFilter(nil)
	assert.NoError(err)

	tbl.Put(RoutingEntry{OUI: 1, Filters: []filter.EuiFilter{f1}, Endpoints: []RouterEndpoint{fakeEndpoint{"r1"}}})
	tbl.SetHeight(10)
	assert.EqualValues(10, tbl.Height())

	// replace OUI 1, last-writer-wins
	tbl.Put(RoutingEntry{OUI: 1, Endpoints: []RouterEndpoint{fakeEndpoint{"r1-new"}}})
	tbl.SetHeight(11)
	assert.EqualValues(11, tbl.Height())
	assert.Len(tbl.entries, 1)
	assert.Equal("r1-new", tbl.entries[1].Endpoints[0].URI())
}

func TestTableStaleHeightStillApplied(t *testing.T) {
	assert := assert.New(t)

	tbl := New()
	tbl.SetHeight(10)
	tbl.Put(RoutingEntry{OUI: 2, Endpoints: []RouterEndpoint{fakeEndpoint{"r2"}}})
	// a stale (non-increasing) update is still applied, and height is still
	// overwritten unconditionally -- the router logs a warning, but the
	// table itself has no opinion on ordering.
	tbl.SetHeight(7)
	assert.EqualValues(7, tbl.Height())
	assert.Contains(tbl.entries, uint32(2))
}

func TestTableMatchUnmatchedReturnsEmpty(t *testing.T) {
	assert := assert.New(t)

	tbl := New()
	out := tbl.Match(link.DevAddrRoutingKey(link.DevAddr(0x01020304)))
	assert.Empty(out)
}

// TestTableMatchUnionsAcrossOUIs confirms that a DevAddr matching subnets
// in more than one OUI's entry is routed to every matching OUI's
// endpoints, not just the first.
func TestTableMatchUnionsAcrossOUIs(t *testing.T) {
	devAddr := link.DevAddr(0x00000010)

	wideSubnet, err := filter.NewDevAddrFilter(devAddrRecord(0x00000000, 0x00000000))
	assert.NoError(t, err)
	narrowSubnet, err := filter.NewDevAddrFilter(devAddrRecord(0x00000010, 0xFFFFFFFF))
	assert.NoError(t, err)

	tbl := New()
	tbl.Put(RoutingEntry{OUI: 1, Subnets: []filter.DevAddrFilter{wideSubnet}, Endpoints: []RouterEndpoint{fakeEndpoint{"r1"}}})
	tbl.Put(RoutingEntry{OUI: 2, Subnets: []filter.DevAddrFilter{narrowSubnet}, Endpoints: []RouterEndpoint{fakeEndpoint{"r2"}}})

	var uris []string
	for _, e := range tbl.Match(link.DevAddrRoutingKey(devAddr)) {
		uris = append(uris, e.URI())
	}
	sort.Strings(uris)

	if diff := cmp.Diff([]string{"r1", "r2"}, uris); diff != "" {
		t.Errorf("matched endpoint set mismatch (-want +got):\n%s", diff)
	}
}

func devAddrRecord(base, mask uint32) []byte {
	b := make([]byte, 8)
	b[0] = byte(base >> 24)
	b[1] = byte(base >> 16)
	b[2] = byte(base >> 8)
	b[3] = byte(base)
	b[4] = byte(mask >> 24)
	b[5] = byte(mask >> 16)
	b[6] = byte(mask >> 8)
	b[7] = byte(mask)
	return b
}
