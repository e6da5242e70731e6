package big

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/vfs"
)

// Big exposes an EA BIG archive as a flat read only directory.
// Entry names keep their backslash separated archive paths.
type Big struct {
	f       vfs.File
	r       *io.SectionReader
	h       Header
	entries []Entry
	index   map[string]int
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Replace(name, "/", "\\", -1))
}

func (b *Big) parseHeader() error {
	var buf [RAW_HEADER_SIZE]byte
	if _, err := b.r.ReadAt(buf[:], 0); err != nil {
		return errors.Wrapf(err, "[big] Header ReadAt(..)")
	}
	return b.h.FromBuf(buf[:])
}

func (b *Big) parseEntries() error {
	if int64(b.h.TableEnd) > b.r.Size() || b.h.TableEnd < RAW_HEADER_SIZE {
		return errors.Errorf("[big] Table end 0x%x outside of archive (size 0x%x)", b.h.TableEnd, b.r.Size())
	}
	if b.h.NumFiles > (b.h.TableEnd-RAW_HEADER_SIZE)/RAW_ENTRY_MIN_SIZE {
		return errors.Errorf("[big] %d entries cannot fit into table of 0x%x bytes",
			b.h.NumFiles, b.h.TableEnd-RAW_HEADER_SIZE)
	}
	table := make([]byte, b.h.TableEnd-RAW_HEADER_SIZE)
	if _, err := b.r.ReadAt(table, RAW_HEADER_SIZE); err != nil {
		return errors.Wrapf(err, "[big] Entries ReadAt(..)")
	}

	b.entries = make([]Entry, b.h.NumFiles)
	b.index = make(map[string]int, b.h.NumFiles)
	pos := 0
	for i := range b.entries {
		e := &b.entries[i]
		n, err := e.FromBuf(table[pos:])
		if err != nil {
			return errors.Wrapf(err, "[big] Entry %d", i)
		}
		pos += n
		if e.Offset+e.Size > b.r.Size() {
			return errors.Errorf("[big] Entry '%s' [0x%x:0x%x] outside of archive (size 0x%x)",
				e.Name, e.Offset, e.Offset+e.Size, b.r.Size())
		}
		b.index[normalizeName(e.Name)] = i
	}
	return nil
}

// NewBigDriver parses the archive table. f must be opened and stay opened
// while the returned directory is used.
func NewBigDriver(f vfs.File) (*Big, error) {
	b := &Big{f: f}
	if r, err := f.Reader(); err != nil {
		return nil, err
	} else {
		b.r = r
	}
	if err := b.parseHeader(); err != nil {
		return nil, err
	}
	if err := b.parseEntries(); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenBigFile opens an archive from disk.
func OpenBigFile(path string) (*Big, error) {
	f := vfs.NewDirectoryDriverFile(path)
	if err := f.Open(); err != nil {
		return nil, err
	}
	b, err := NewBigDriver(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "Failed to open big archive '%s'", path)
	}
	return b, nil
}

func (b *Big) Close() error { return b.f.Close() }

func (b *Big) Header() Header { return b.h }

// interface vfs.Element
func (b *Big) Init(parent vfs.Directory) {}
func (b *Big) Name() string              { return b.f.Name() }
func (b *Big) IsDirectory() bool         { return true }

// interface vfs.Directory
func (b *Big) List() ([]string, error) {
	result := make([]string, 0, len(b.entries))
	for i := range b.entries {
		result = append(result, b.entries[i].Name)
	}
	return result, nil
}

// GetElement matches names case insensitively and with either slash kind.
func (b *Big) GetElement(name string) (vfs.Element, error) {
	if i, ok := b.index[normalizeName(name)]; ok {
		return &File{b: b, e: b.entries[i]}, nil
	}
	return nil, os.ErrNotExist
}
