package vfs

import (
	"io"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

func OpenFileAndGetReader(f File) (*io.SectionReader, error) {
	if err := f.Open(); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", f.Name())
	} else {
		if r, err := f.Reader(); err != nil {
			defer f.Close()
			return nil, errors.Wrapf(err, "Cannot get file '%s' reader", f.Name())
		} else {
			return r, err
		}
	}
}

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", name)
	} else if f.IsDirectory() {
		return nil, errors.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}

// HasExt compares the extension of an archive or disk path case insensitively.
func HasExt(name, ext string) bool {
	return strings.EqualFold(path.Ext(strings.Replace(name, "\\", "/", -1)), ext)
}

// Walk calls fn for every file under d in sorted order. Paths passed to fn
// are relative to d and can be handed back to d.GetElement.
func Walk(d Directory, fn func(name string, f File) error) error {
	return walk(d, "", fn)
}

func walk(d Directory, prefix string, fn func(name string, f File) error) error {
	names, err := d.List()
	if err != nil {
		return errors.Wrapf(err, "Cannot list '%s'", d.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		e, err := d.GetElement(name)
		if err != nil {
			return errors.Wrapf(err, "Cannot get '%s'", name)
		}
		full := name
		if prefix != "" {
			full = path.Join(prefix, name)
		}
		if e.IsDirectory() {
			if err := walk(e.(Directory), full, fn); err != nil {
				return err
			}
		} else if err := fn(full, e.(File)); err != nil {
			return err
		}
	}
	return nil
}
