package util

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/spaolacci/murmur3"
)

const (
	bitsPerByte = 8
	// 7 hash locations per key keeps the false-positive rate near
	// optimal for the load factors a dedupe set sees in practice.
	// http://pages.cs.wisc.edu/~cao/papers/summary-cache/node8.html
	bloomHashes = 7
)

// BloomFilter is a fixed-size set sketch used to remember info hashes
// already seen. False positives are possible, false negatives are not.
type BloomFilter struct {
	mu sync.RWMutex

	bits uint64
	n    uint64
	keys []byte
}

func NewBloomFilter(bits uint64) *BloomFilter {
	return &BloomFilter{
		bits: bits,
		keys: make([]byte, (bits+bitsPerByte-1)/bitsPerByte),
	}
}

// LoadBloomFilter restores a filter previously written with Save.
func LoadBloomFilter(reader io.Reader) (*BloomFilter, error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, err
	}
	keys, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return &BloomFilter{
		bits: binary.BigEndian.Uint64(header[:8]),
		n:    binary.BigEndian.Uint64(header[8:]),
		keys: keys,
	}, nil
}

func (f *BloomFilter) Add(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, loc := range f.locations(data) {
		f.keys[loc/bitsPerByte] |= 1 << (loc % bitsPerByte)
	}
	f.n++
}

func (f *BloomFilter) Exists(data []byte) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, loc := range f.locations(data) {
		if f.keys[loc/bitsPerByte]&(1<<(loc%bitsPerByte)) == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of Add calls, not distinct keys.
func (f *BloomFilter) Count() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.n
}

func (f *BloomFilter) Save(writer io.Writer) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	header := make([]byte, 16)
	binary.BigEndian.PutUint64(header[:8], f.bits)
	binary.BigEndian.PutUint64(header[8:], f.n)
	if _, err := writer.Write(header); err != nil {
		return err
	}
	_, err := writer.Write(f.keys)
	return err
}

func (f *BloomFilter) locations(data []byte) []uint64 {
	locations := make([]uint64, bloomHashes)
	seeded := make([]byte, len(data)+1)
	copy(seeded, data)
	for i := 0; i < bloomHashes; i++ {
		seeded[len(data)] = byte(i)
		locations[i] = murmur3.Sum64(seeded) % f.bits
	}
	return locations
}
