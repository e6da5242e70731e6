package big

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	RAW_HEADER_SIZE = 0x10
	// offset, size and at least the terminator of the path
	RAW_ENTRY_MIN_SIZE = 9
)

var (
	MagicBIGF = [4]byte{'B', 'I', 'G', 'F'}
	MagicBIG4 = [4]byte{'B', 'I', 'G', '4'}
)

// Header mixes byte orders: archive size is little endian,
// the rest of the table is big endian.
type Header struct {
	Magic       [4]byte
	ArchiveSize uint32
	NumFiles    uint32
	TableEnd    uint32
}

func (h *Header) FromBuf(b []byte) error {
	copy(h.Magic[:], b[0:4])
	if h.Magic != MagicBIGF && h.Magic != MagicBIG4 {
		return errors.Errorf("Unknown magic %q", h.Magic[:])
	}
	h.ArchiveSize = binary.LittleEndian.Uint32(b[4:])
	h.NumFiles = binary.BigEndian.Uint32(b[8:])
	h.TableEnd = binary.BigEndian.Uint32(b[0xc:])
	return nil
}

type Entry struct {
	Offset int64
	Size   int64
	Name   string
}

// FromBuf decodes one table entry and returns its encoded length.
func (e *Entry) FromBuf(b []byte) (int, error) {
	if len(b) < RAW_ENTRY_MIN_SIZE {
		return 0, errors.Errorf("Entry table truncated")
	}
	e.Offset = int64(binary.BigEndian.Uint32(b[0:]))
	e.Size = int64(binary.BigEndian.Uint32(b[4:]))
	end := bytes.IndexByte(b[8:], 0)
	if end < 0 {
		return 0, errors.Errorf("Entry name at table offset is not terminated")
	}
	e.Name = string(b[8 : 8+end])
	return 8 + end + 1, nil
}
