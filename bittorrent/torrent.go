package bittorrent

import (
	"fmt"

	"torrentmeta/bencode"
)

type ExtractErrorCode int

const (
	// NoDictionary: the top-level value is not a dictionary.
	NoDictionary ExtractErrorCode = iota
	// MissingKey: a required key is absent. Key names it.
	MissingKey
	// WrongType: a required key holds the wrong bencode type. Key names it.
	WrongType
	// AmbiguousLayout: info has both "length" and "files", or neither.
	AmbiguousLayout
	// InvalidPieceLength: "piece length" is not positive (Key "piece
	// length") or the "pieces" blob is not a multiple of 20 bytes
	// (Key "pieces").
	InvalidPieceLength
	// EmptyPieceList: "pieces" is present but holds zero digests.
	EmptyPieceList
	// EmptyPath: a multi-file entry has an empty path list.
	EmptyPath
)

func (c ExtractErrorCode) String() string {
	switch c {
	case NoDictionary:
		return "top-level value is not a dictionary"
	case MissingKey:
		return "missing required key"
	case WrongType:
		return "wrong type for key"
	case AmbiguousLayout:
		return "exactly one of length and files must be present"
	case InvalidPieceLength:
		return "invalid piece length"
	case EmptyPieceList:
		return "empty piece list"
	case EmptyPath:
		return "empty file path"
	default:
		return "unknown error"
	}
}

// ExtractError reports a semantic violation in well-formed bencode.
type ExtractError struct {
	Code ExtractErrorCode
	Key  string
}

func (e *ExtractError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("torrent: %s", e.Code)
	}
	return fmt.Sprintf("torrent: %s %q", e.Code, e.Key)
}

func extractErr(code ExtractErrorCode, key string) error {
	return &ExtractError{Code: code, Key: key}
}

// File is one entry of a multi-file torrent layout.
type File struct {
	Length int64
	Path   []string
}

// Torrent is the validated metadata record extracted from a .torrent
// file. It owns copies of everything it needs and is immutable after
// extraction. Exactly one of Length (single-file) and Files
// (multi-file) is populated.
type Torrent struct {
	Announce     string
	AnnounceList [][]string
	Name         string
	PieceLength  int64
	Pieces       [][]byte
	Length       int64
	Files        []File
	InfoHash     InfoHash

	// Best-effort fields; zero values mean absent.
	Comment      string
	CreatedBy    string
	CreationDate int64
}

// HasFiles reports whether the torrent uses the multi-file layout.
func (t *Torrent) HasFiles() bool {
	return t.Files != nil
}

func (t *Torrent) PieceCount() int {
	return len(t.Pieces)
}

// TotalLength is the content size in bytes across all files.
func (t *Torrent) TotalLength() int64 {
	if !t.HasFiles() {
		return t.Length
	}
	var total int64
	for _, f := range t.Files {
		total += f.Length
	}
	return total
}

// TorrentHandler consumes extracted torrents, e.g. for printing or
// persistence downstream of a scanning pipeline.
type TorrentHandler interface {
	HandleTorrent(torrent *Torrent)
}

// FromBytes decodes buf in strict mode and extracts its metadata.
func FromBytes(buf []byte) (*Torrent, error) {
	return FromBytesWithOptions(buf, bencode.Options{})
}

// FromBytesWithOptions decodes buf with the given decoder options and
// extracts its metadata together with the info hash.
func FromBytesWithOptions(buf []byte, opts bencode.Options) (*Torrent, error) {
	v, err := bencode.DecodeWithOptions(buf, opts)
	if err != nil {
		return nil, err
	}
	return ExtractTorrent(v)
}

// ExtractTorrent validates the decoded tree against the metainfo schema
// and produces the Torrent plus its info hash as one atomic result.
// Required-field failures abort with no partial record; optional fields
// with the wrong type are silently dropped.
func ExtractTorrent(v bencode.Value) (*Torrent, error) {
	root, ok := v.(*bencode.Dictionary)
	if !ok {
		return nil, extractErr(NoDictionary, "")
	}
	t := &Torrent{}

	av, ok := root.Get("announce")
	if !ok {
		return nil, extractErr(MissingKey, "announce")
	}
	announce, ok := av.(bencode.ByteString)
	if !ok {
		return nil, extractErr(WrongType, "announce")
	}
	t.Announce = string(announce)

	iv, ok := root.Get("info")
	if !ok {
		return nil, extractErr(MissingKey, "info")
	}
	info, ok := iv.(*bencode.Dictionary)
	if !ok {
		return nil, extractErr(WrongType, "info")
	}

	if err := extractInfo(t, info); err != nil {
		return nil, err
	}
	extractOptional(t, root)

	hash, err := CalculateInfoHash(root)
	if err != nil {
		return nil, err
	}
	t.InfoHash = hash
	return t, nil
}

func extractInfo(t *Torrent, info *bencode.Dictionary) error {
	nv, ok := info.Get("name")
	if !ok {
		return extractErr(MissingKey, "name")
	}
	name, ok := nv.(bencode.ByteString)
	if !ok {
		return extractErr(WrongType, "name")
	}
	t.Name = string(name)

	plv, ok := info.Get("piece length")
	if !ok {
		return extractErr(MissingKey, "piece length")
	}
	pieceLength, ok := plv.(bencode.Integer)
	if !ok {
		return extractErr(WrongType, "piece length")
	}
	if pieceLength <= 0 {
		return extractErr(InvalidPieceLength, "piece length")
	}
	t.PieceLength = int64(pieceLength)

	pv, ok := info.Get("pieces")
	if !ok {
		return extractErr(MissingKey, "pieces")
	}
	pieces, ok := pv.(bencode.ByteString)
	if !ok {
		return extractErr(WrongType, "pieces")
	}
	if len(pieces)%InfoHashSize != 0 {
		return extractErr(InvalidPieceLength, "pieces")
	}
	if len(pieces) == 0 {
		return extractErr(EmptyPieceList, "pieces")
	}
	t.Pieces = make([][]byte, 0, len(pieces)/InfoHashSize)
	for off := 0; off < len(pieces); off += InfoHashSize {
		digest := make([]byte, InfoHashSize)
		copy(digest, pieces[off:off+InfoHashSize])
		t.Pieces = append(t.Pieces, digest)
	}

	lv, hasLength := info.Get("length")
	fv, hasFiles := info.Get("files")
	if hasLength == hasFiles {
		return extractErr(AmbiguousLayout, "")
	}
	if hasLength {
		length, ok := lv.(bencode.Integer)
		if !ok || length < 0 {
			return extractErr(WrongType, "length")
		}
		t.Length = int64(length)
		return nil
	}

	list, ok := fv.(bencode.List)
	if !ok {
		return extractErr(WrongType, "files")
	}
	t.Files = make([]File, 0, len(list))
	for _, item := range list {
		file, err := extractFile(item)
		if err != nil {
			return err
		}
		t.Files = append(t.Files, file)
	}
	return nil
}

func extractFile(v bencode.Value) (File, error) {
	dict, ok := v.(*bencode.Dictionary)
	if !ok {
		return File{}, extractErr(WrongType, "files")
	}
	lv, ok := dict.Get("length")
	if !ok {
		return File{}, extractErr(MissingKey, "files.length")
	}
	length, ok := lv.(bencode.Integer)
	if !ok || length < 0 {
		return File{}, extractErr(WrongType, "files.length")
	}
	pv, ok := dict.Get("path")
	if !ok {
		return File{}, extractErr(MissingKey, "files.path")
	}
	list, ok := pv.(bencode.List)
	if !ok {
		return File{}, extractErr(WrongType, "files.path")
	}
	if len(list) == 0 {
		return File{}, extractErr(EmptyPath, "files.path")
	}
	path := make([]string, 0, len(list))
	for _, seg := range list {
		s, ok := seg.(bencode.ByteString)
		if !ok {
			return File{}, extractErr(WrongType, "files.path")
		}
		path = append(path, string(s))
	}
	return File{Length: int64(length), Path: path}, nil
}

// extractOptional pulls the best-effort fields. A wrong-typed value
// leaves the field absent; extraction still succeeds.
func extractOptional(t *Torrent, root *bencode.Dictionary) {
	if s, ok := bencode.GetString(root, "comment"); ok {
		t.Comment = s
	}
	if s, ok := bencode.GetString(root, "created by"); ok {
		t.CreatedBy = s
	}
	if n, ok := bencode.GetInt(root, "creation date"); ok {
		t.CreationDate = n
	}
	tiers, ok := bencode.GetList(root, "announce-list")
	if !ok {
		return
	}
	for _, tierVal := range tiers {
		tier, ok := tierVal.(bencode.List)
		if !ok {
			continue
		}
		urls := make([]string, 0, len(tier))
		for _, u := range tier {
			s, ok := u.(bencode.ByteString)
			if !ok {
				continue
			}
			urls = append(urls, string(s))
		}
		if len(urls) > 0 {
			t.AnnounceList = append(t.AnnounceList, urls)
		}
	}
}
