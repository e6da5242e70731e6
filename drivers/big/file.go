package big

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/vfs"
)

type File struct {
	b *Big
	e Entry
	r *io.SectionReader
}

// interface vfs.Element
func (f *File) Init(parent vfs.Directory) {}
func (f *File) Name() string              { return f.e.Name }
func (f *File) IsDirectory() bool         { return false }

// interface vfs.File
func (f *File) Size() int64 { return f.e.Size }

func (f *File) Open() error {
	if f.r == nil {
		f.r = io.NewSectionReader(f.b.r, f.e.Offset, f.e.Size)
	}
	return nil
}

func (f *File) Close() error {
	f.r = nil
	return nil
}

func (f *File) Reader() (*io.SectionReader, error) {
	if f.r == nil {
		return nil, errors.Errorf("First you need to open file")
	}
	return io.NewSectionReader(f.r, 0, f.e.Size), nil
}

func (f *File) ReadAt(b []byte, off int64) (n int, err error) {
	if f.r == nil {
		return 0, errors.Errorf("First you need to open file")
	}
	return f.r.ReadAt(b, off)
}
