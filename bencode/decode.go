package bencode

import (
	"fmt"
	"strconv"
)

type Mode int

const (
	// ModeStrict rejects any input that is not in canonical form:
	// dictionary keys must be strictly increasing and integers minimal.
	ModeStrict Mode = iota
	// ModeLenient accepts unsorted keys and non-minimal integers for
	// read-only extraction. Trees decoded leniently are not marked
	// canonical and must be re-encoded before hashing.
	ModeLenient
)

// DefaultMaxDepth bounds container nesting when Options.MaxDepth is not
// set. Real torrents nest a handful of levels; this exists to stop
// adversarial input from exhausting the stack.
const DefaultMaxDepth = 64

type Options struct {
	Mode     Mode
	MaxDepth int
}

type ErrorCode int

const (
	UnexpectedEOF ErrorCode = iota
	UnexpectedByte
	InvalidInteger
	InvalidLength
	UnterminatedContainer
	DuplicateKey
	UnsortedKeys
	NestingTooDeep
	TrailingData
)

func (c ErrorCode) String() string {
	switch c {
	case UnexpectedEOF:
		return "unexpected end of input"
	case UnexpectedByte:
		return "unexpected byte"
	case InvalidInteger:
		return "invalid integer"
	case InvalidLength:
		return "invalid string length"
	case UnterminatedContainer:
		return "unterminated container"
	case DuplicateKey:
		return "duplicate dictionary key"
	case UnsortedKeys:
		return "dictionary keys out of order"
	case NestingTooDeep:
		return "nesting too deep"
	case TrailingData:
		return "trailing data after value"
	default:
		return "unknown error"
	}
}

// DecodeError reports a grammar violation and the byte offset at which
// it was detected.
type DecodeError struct {
	Code   ErrorCode
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Code, e.Offset)
}

func errAt(code ErrorCode, offset int) error {
	return &DecodeError{Code: code, Offset: offset}
}

// Decode parses buf as a single bencode value in strict mode with the
// default nesting bound.
func Decode(buf []byte) (Value, error) {
	return DecodeWithOptions(buf, Options{})
}

// DecodeWithOptions parses buf as exactly one bencode value. The whole
// buffer must be consumed; trailing bytes are rejected. ByteString
// values alias buf, so the buffer must not be mutated afterwards.
func DecodeWithOptions(buf []byte, opts Options) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	d := &decoder{buf: buf, opts: opts}
	v, next, err := d.decodeAny(0, 0)
	if err != nil {
		return nil, err
	}
	if next != len(buf) {
		return nil, errAt(TrailingData, next)
	}
	return v, nil
}

type decoder struct {
	buf  []byte
	opts Options
}

func (d *decoder) decodeAny(pos, depth int) (Value, int, error) {
	if pos >= len(d.buf) {
		return nil, 0, errAt(UnexpectedEOF, pos)
	}
	switch c := d.buf[pos]; {
	case c == 'i':
		return d.decodeInt(pos)
	case c >= '0' && c <= '9':
		return d.decodeBytes(pos)
	case c == 'l':
		return d.decodeList(pos, depth)
	case c == 'd':
		return d.decodeDict(pos, depth)
	default:
		return nil, 0, errAt(UnexpectedByte, pos)
	}
}

func (d *decoder) decodeInt(pos int) (Value, int, error) {
	end := pos + 1
	for end < len(d.buf) && d.buf[end] != 'e' {
		end++
	}
	if end == len(d.buf) {
		return nil, 0, errAt(UnexpectedEOF, end)
	}
	digits := d.buf[pos+1 : end]
	if err := d.checkIntForm(digits, pos); err != nil {
		return nil, 0, err
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, 0, errAt(InvalidInteger, pos)
	}
	return Integer(n), end + 1, nil
}

// checkIntForm enforces the integer grammar: non-empty digit run with an
// optional single leading minus. -0 is invalid in both modes; leading
// zeros are rejected in strict mode only.
func (d *decoder) checkIntForm(digits []byte, pos int) error {
	if len(digits) == 0 {
		return errAt(InvalidInteger, pos)
	}
	body := digits
	if body[0] == '-' {
		body = body[1:]
		if len(body) == 0 || body[0] == '0' {
			return errAt(InvalidInteger, pos)
		}
	}
	for _, c := range body {
		if c < '0' || c > '9' {
			return errAt(InvalidInteger, pos)
		}
	}
	if d.opts.Mode == ModeStrict && len(body) > 1 && body[0] == '0' {
		return errAt(InvalidInteger, pos)
	}
	return nil
}

func (d *decoder) decodeBytes(pos int) (Value, int, error) {
	sep := pos
	for sep < len(d.buf) && d.buf[sep] != ':' {
		if d.buf[sep] < '0' || d.buf[sep] > '9' {
			return nil, 0, errAt(InvalidLength, sep)
		}
		sep++
	}
	if sep == len(d.buf) {
		return nil, 0, errAt(UnexpectedEOF, sep)
	}
	lenDigits := d.buf[pos:sep]
	if d.opts.Mode == ModeStrict && len(lenDigits) > 1 && lenDigits[0] == '0' {
		return nil, 0, errAt(InvalidLength, pos)
	}
	n, err := strconv.ParseInt(string(lenDigits), 10, 64)
	if err != nil {
		return nil, 0, errAt(InvalidLength, pos)
	}
	start := sep + 1
	if n > int64(len(d.buf)-start) {
		return nil, 0, errAt(UnexpectedEOF, len(d.buf))
	}
	end := start + int(n)
	return ByteString(d.buf[start:end]), end, nil
}

func (d *decoder) decodeList(pos, depth int) (Value, int, error) {
	if depth+1 > d.opts.MaxDepth {
		return nil, 0, errAt(NestingTooDeep, pos)
	}
	list := make(List, 0)
	i := pos + 1
	for {
		if i >= len(d.buf) {
			return nil, 0, errAt(UnterminatedContainer, pos)
		}
		if d.buf[i] == 'e' {
			return list, i + 1, nil
		}
		item, next, err := d.decodeAny(i, depth+1)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, item)
		i = next
	}
}

func (d *decoder) decodeDict(pos, depth int) (Value, int, error) {
	if depth+1 > d.opts.MaxDepth {
		return nil, 0, errAt(NestingTooDeep, pos)
	}
	dict := NewDictionary()
	prev := ""
	i := pos + 1
	for {
		if i >= len(d.buf) {
			return nil, 0, errAt(UnterminatedContainer, pos)
		}
		if d.buf[i] == 'e' {
			dict.raw = d.buf[pos : i+1]
			dict.canonical = d.opts.Mode == ModeStrict
			return dict, i + 1, nil
		}
		if d.buf[i] < '0' || d.buf[i] > '9' {
			// Keys must be byte strings.
			return nil, 0, errAt(UnexpectedByte, i)
		}
		keyPos := i
		rawKey, next, err := d.decodeBytes(i)
		if err != nil {
			return nil, 0, err
		}
		key := string(rawKey.(ByteString))
		if _, ok := dict.Get(key); ok {
			return nil, 0, errAt(DuplicateKey, keyPos)
		}
		if d.opts.Mode == ModeStrict && dict.Len() > 0 && key < prev {
			return nil, 0, errAt(UnsortedKeys, keyPos)
		}
		val, afterVal, err := d.decodeAny(next, depth+1)
		if err != nil {
			return nil, 0, err
		}
		dict.set(key, val)
		prev = key
		i = afterVal
	}
}
