package filter

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func euiBlob(pairs [][2]uint64) []byte {
	out := make([]byte, 0, len(pairs)*euiRecordLen)
	for _, p := range pairs {
		b := make([]byte, euiRecordLen)
		binary.BigEndian.PutUint64(b[0:8], p[0])
		binary.BigEndian.PutUint64(b[8:16], p[1])
		out = append(out, b...)
	}
	return out
}

func TestEuiFilterContains(t *testing.T) {
	assert := assert.New(t)

	blob := euiBlob([][2]uint64{{1, 2}, {3, 4}})
	f, err := NewEuiFilter(blob)
	assert.NoError(err)

	assert.True(f.Contains(1, 2))
	assert.True(f.Contains(3, 4))
	assert.False(f.Contains(1, 4))
	assert.False(f.Contains(5, 6))

	_, err = NewEuiFilter([]byte{1, 2, 3})
	assert.Error(err)
}

func TestEuiFilterBoundaryRandom(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(1))

	var pairs [][2]uint64
	present := make(map[[2]uint64]bool)
	for i := 0; i < 50; i++ {
		p := [2]uint64{rng.Uint64(), rng.Uint64()}
		pairs = append(pairs, p)
		present[p] = true
	}

	f, err := NewEuiFilter(euiBlob(pairs))
	assert.NoError(err)

	for p := range present {
		assert.True(f.Contains(p[0], p[1]))
	}
	for i := 0; i < 50; i++ {
		app, dev := rng.Uint64(), rng.Uint64()
		assert.Equal(present[[2]uint64{app, dev}], f.Contains(app, dev))
	}
}

func devAddrBlob(records [][2]uint32) []byte {
	out := make([]byte, 0, len(records)*devAddrRecordLen)
	for _, r := range records {
		b := make([]byte, devAddrRecordLen)
		binary.BigEndian.PutUint32(b[0:4], r[0])
		binary.BigEndian.PutUint32(b[4:8], r[1])
		out = append(out, b...)
	}
	return out
}

func TestDevAddrFilterContains(t *testing.T) {
	assert := assert.New(t)

	// subnet 0x01000000/0xff000000 matches any devaddr starting with 0x01
	blob := devAddrBlob([][2]uint32{{0x01000000, 0xff000000}})
	f, err := NewDevAddrFilter(blob)
	assert.NoError(err)

	assert.True(f.Contains(0x01020304))
	assert.False(f.Contains(0x02020304))

	_, err = NewDevAddrFilter([]byte{1, 2, 3})
	assert.Error(err)
}
