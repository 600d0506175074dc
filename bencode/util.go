package bencode

import (
	"strings"
)

// GetByPath walks a dot-separated key path through nested dictionaries
// and returns the value found, or nil. Path segments never contain
// dots in torrent metadata, so no escaping is supported.
func GetByPath(dict *Dictionary, path string) Value {
	parts := strings.Split(path, ".")
	var cur Value = dict
	for _, part := range parts {
		d, ok := cur.(*Dictionary)
		if !ok {
			return nil
		}
		next, ok := d.Get(part)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func GetString(dict *Dictionary, path string) (string, bool) {
	if b, ok := GetByPath(dict, path).(ByteString); ok {
		return string(b), true
	}
	return "", false
}

func GetBytes(dict *Dictionary, path string) ([]byte, bool) {
	if b, ok := GetByPath(dict, path).(ByteString); ok {
		return b, true
	}
	return nil, false
}

func GetInt(dict *Dictionary, path string) (int64, bool) {
	if i, ok := GetByPath(dict, path).(Integer); ok {
		return int64(i), true
	}
	return 0, false
}

func GetList(dict *Dictionary, path string) (List, bool) {
	if l, ok := GetByPath(dict, path).(List); ok {
		return l, true
	}
	return nil, false
}

func GetDict(dict *Dictionary, path string) (*Dictionary, bool) {
	if d, ok := GetByPath(dict, path).(*Dictionary); ok {
		return d, true
	}
	return nil, false
}

// CheckPath reports whether the dot-separated key path resolves to any
// value.
func CheckPath(dict *Dictionary, path string) bool {
	return GetByPath(dict, path) != nil
}
