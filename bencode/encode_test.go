package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_encodeDict(t *testing.T) {
	dict := NewDictionary()
	// Inserted out of order on purpose; canonical output sorts.
	dict.Set("t", ByteString("aa"))
	dict.Set("y", ByteString("q"))
	dict.Set("q", ByteString("ping"))
	inner := NewDictionary()
	inner.Set("id", ByteString("abcdefghij0123456789"))
	dict.Set("a", inner)

	assert.Equal(t, "d1:ad2:id20:abcdefghij0123456789e1:q4:ping1:t2:aa1:y1:qe", string(Encode(dict)))
}

func Test_encodeScalars(t *testing.T) {
	assert.Equal(t, "i0e", string(Encode(Integer(0))))
	assert.Equal(t, "i-42e", string(Encode(Integer(-42))))
	assert.Equal(t, "0:", string(Encode(ByteString(nil))))
	assert.Equal(t, "4:spam", string(Encode(ByteString("spam"))))
	assert.Equal(t, "le", string(Encode(List{})))
	assert.Equal(t, "li123e2:aae", string(Encode(List{Integer(123), ByteString("aa")})))
}

func TestEncode_RoundTrip(t *testing.T) {
	inputs := []string{
		"i0e",
		"i-1000000e",
		"0:",
		"4:spam",
		"le",
		"l6:stringi0ei0ee",
		"de",
		"d5:first5:value4:listli-1000e11:lastelementee",
		"d8:announce31:http://tracker.example/announce4:infod6:lengthi351731e4:name9:image.isoee",
	}
	for _, input := range inputs {
		v, err := Decode([]byte(input))
		if !assert.NoError(t, err, input) {
			continue
		}
		encoded := Encode(v)
		// Canonical input re-encodes byte-identically.
		assert.Equal(t, input, string(encoded))

		again, err := Decode(encoded)
		if assert.NoError(t, err, input) {
			assert.True(t, Equal(v, again), input)
		}
	}
}

func TestEncode_Idempotence(t *testing.T) {
	v, err := DecodeWithOptions([]byte("d1:b0:1:ai007ee"), Options{Mode: ModeLenient})
	assert.NoError(t, err)

	first := Encode(v)
	second, err := Decode(first)
	if assert.NoError(t, err) {
		assert.Equal(t, first, Encode(second))
	}
}

func TestEncode_CanonicalizesLenientTree(t *testing.T) {
	// Unsorted keys and a non-minimal integer normalize on encode.
	v, err := DecodeWithOptions([]byte("d1:b0:1:ai007ee"), Options{Mode: ModeLenient})
	if assert.NoError(t, err) {
		assert.Equal(t, "d1:ai7e1:b0:e", string(Encode(v)))
	}
}
