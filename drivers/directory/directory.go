package directory

import (
	"github.com/mogaika/w3d_browser/pack"
	"github.com/mogaika/w3d_browser/vfs"
)

// Directory lists every loadable resource below a vfs.Directory,
// which is either a folder on disk or an opened archive.
type Directory struct {
	dd vfs.Directory
}

func NewDirectoryDriver(dd vfs.Directory) *Directory {
	return &Directory{dd: dd}
}

func (d *Directory) Root() vfs.Directory {
	return d.dd
}

func (d *Directory) GetFileNamesList() []string {
	l := make([]string, 0)
	vfs.Walk(d.dd, func(name string, f vfs.File) error {
		if pack.HasHandler(name) {
			l = append(l, name)
		}
		return nil
	})
	return l
}

func (d *Directory) GetFile(fileName string) (vfs.File, error) {
	return vfs.DirectoryGetFile(d.dd, fileName)
}

func (d *Directory) GetInstance(fileName string) (interface{}, error) {
	return pack.GetInstanceHandler(d.dd, fileName)
}
