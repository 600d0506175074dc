package bencode

import (
	"bytes"

	"github.com/elliotchance/orderedmap"
)

// Value is one node of a decoded bencode tree. Integer, ByteString, List
// and *Dictionary are the only implementations; the unexported marker
// method keeps the set closed, so Encode is total over every Value.
type Value interface {
	bencodeValue()
}

// Integer is a signed 64-bit bencode integer.
type Integer int64

// ByteString holds arbitrary bytes. No text encoding is assumed.
type ByteString []byte

// List is an ordered sequence of Values.
type List []Value

// Dictionary maps byte-string keys to Values and remembers insertion
// order, so a leniently decoded tree can still report what it saw.
type Dictionary struct {
	m *orderedmap.OrderedMap

	// Set by the decoder only. raw is the exact input span this
	// dictionary was parsed from; canonical reports whether the decoder
	// verified that span canonical (strict mode).
	raw       []byte
	canonical bool
}

func (Integer) bencodeValue()     {}
func (ByteString) bencodeValue()  {}
func (List) bencodeValue()        {}
func (*Dictionary) bencodeValue() {}

func NewDictionary() *Dictionary {
	return &Dictionary{m: orderedmap.NewOrderedMap()}
}

func (d *Dictionary) Set(key string, v Value) {
	d.m.Set(key, v)
	// Hand-set entries invalidate any decoder-verified span.
	d.raw = nil
	d.canonical = false
}

func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

func (d *Dictionary) Len() int {
	return d.m.Len()
}

// Keys returns the keys in insertion order, which for a strictly decoded
// dictionary is also canonical byte order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, d.m.Len())
	for _, k := range d.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// CanonicalBytes returns the input span this dictionary was decoded from,
// if the decoder verified it canonical (sorted keys, minimal integers).
// Hand-built and leniently decoded dictionaries report false; callers
// must re-encode those before hashing.
func (d *Dictionary) CanonicalBytes() ([]byte, bool) {
	if d.canonical && d.raw != nil {
		return d.raw, true
	}
	return nil, false
}

// set is the decoder's entry point; unlike Set it leaves raw/canonical
// alone so decodeDict can stamp them once the span is known.
func (d *Dictionary) set(key string, v Value) {
	d.m.Set(key, v)
}

// Equal reports structural equality of two trees. Dictionaries compare
// by content, not insertion order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case ByteString:
		bv, ok := b.(ByteString)
		return ok && bytes.Equal(av, bv)
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		bv, ok := b.(*Dictionary)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			x, _ := av.Get(k)
			y, ok := bv.Get(k)
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	}
	return false
}
