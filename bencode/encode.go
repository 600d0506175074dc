package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// Encode serializes v into canonical bencode: dictionary keys sorted by
// raw byte order and integers in minimal digit form, regardless of how
// the tree was built. The Value union is closed, so encoding cannot
// fail at runtime.
func Encode(v Value) []byte {
	buf := &bytes.Buffer{}
	encodeAny(buf, v)
	return buf.Bytes()
}

func encodeAny(buf *bytes.Buffer, v Value) {
	switch val := v.(type) {
	case Integer:
		encodeInt(buf, int64(val))
	case ByteString:
		encodeBytes(buf, val)
	case List:
		encodeList(buf, val)
	case *Dictionary:
		encodeDict(buf, val)
	}
}

func encodeInt(buf *bytes.Buffer, n int64) {
	buf.WriteByte('i')
	buf.WriteString(strconv.FormatInt(n, 10))
	buf.WriteByte('e')
}

func encodeBytes(buf *bytes.Buffer, data []byte) {
	buf.WriteString(strconv.Itoa(len(data)))
	buf.WriteByte(':')
	buf.Write(data)
}

func encodeList(buf *bytes.Buffer, list List) {
	buf.WriteByte('l')
	for _, item := range list {
		encodeAny(buf, item)
	}
	buf.WriteByte('e')
}

func encodeDict(buf *bytes.Buffer, dict *Dictionary) {
	keys := dict.Keys()
	sort.Strings(keys)
	buf.WriteByte('d')
	for _, k := range keys {
		encodeBytes(buf, []byte(k))
		v, _ := dict.Get(k)
		encodeAny(buf, v)
	}
	buf.WriteByte('e')
}
