// Package filter implements the two opaque membership tests the control
// plane hands down as binary blobs: EuiFilter over (app_eui, dev_eui)
// pairs, and DevAddrFilter over DevAddr subnets. Both expose nothing but
// construction from bytes and a pure Contains check.
package filter

import (
	"encoding/binary"
	"fmt"
)

const euiRecordLen = 16 // 8 bytes app_eui + 8 bytes dev_eui

// EuiFilter is a compact membership test over (app_eui, dev_eui) pairs,
// as used to match join-request routing keys. The wire blob is a
// concatenation of fixed-size records; this preserves the control
// plane's bit-exact format while keeping construction a pure parse.
type EuiFilter struct {
	pairs map[[2]uint64]struct{}
}

// NewEuiFilter parses a blob into a filter. The blob length must be a
// multiple of 16 bytes (8 bytes app_eui + 8 bytes dev_eui, big-endian).
func NewEuiFilter(blob []byte) (EuiFilter, error) {
	if len(blob)%euiRecordLen != 0 {
		return EuiFilter{}, fmt.Errorf("filter: eui blob length %d not a multiple of %d", len(blob), euiRecordLen)
	}

	n := len(blob) / euiRecordLen
	pairs := make(map[[2]uint64]struct{}, n)
	for i := 0; i < n; i++ {
		rec := blob[i*euiRecordLen : (i+1)*euiRecordLen]
		appEUI := binary.BigEndian.Uint64(rec[0:8])
		devEUI := binary.BigEndian.Uint64(rec[8:16])
		pairs[[2]uint64{appEUI, devEUI}] = struct{}{}
	}
	return EuiFilter{pairs: pairs}, nil
}

// Contains reports whether (appEUI, devEUI) is a member of the filter.
func (f EuiFilter) Contains(appEUI, devEUI uint64) bool {
	_, ok := f.pairs[[2]uint64{appEUI, devEUI}]
	return ok
}
