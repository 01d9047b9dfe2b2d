package filter

import (
	"encoding/binary"
	"fmt"
)

const devAddrRecordLen = 8 // 4 bytes base + 4 bytes mask

// DevAddrFilter is a membership test over DevAddr space: one or more
// (base, mask) subnet records. A DevAddr is a member of a record if
// devAddr & mask == base & mask.
type DevAddrFilter struct {
	records [][2]uint32
}

// NewDevAddrFilter parses a blob into a filter. The blob length must be a
// multiple of 8 bytes (4 bytes base DevAddr + 4 bytes mask, big-endian).
func NewDevAddrFilter(blob []byte) (DevAddrFilter, error) {
	if len(blob)%devAddrRecordLen != 0 {
		return DevAddrFilter{}, fmt.Errorf("filter: devaddr blob length %d not a multiple of %d", len(blob), devAddrRecordLen)
	}

	n := len(blob) / devAddrRecordLen
	records := make([][2]uint32, n)
	for i := 0; i < n; i++ {
		rec := blob[i*devAddrRecordLen : (i+1)*devAddrRecordLen]
		records[i] = [2]uint32{
			binary.BigEndian.Uint32(rec[0:4]),
			binary.BigEndian.Uint32(rec[4:8]),
		}
	}
	return DevAddrFilter{records: records}, nil
}

// Contains reports whether devAddr falls within any subnet record.
func (f DevAddrFilter) Contains(devAddr uint32) bool {
	for _, r := range f.records {
		base, mask := r[0], r[1]
		if devAddr&mask == base&mask {
			return true
		}
	}
	return false
}
