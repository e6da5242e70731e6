package texture

import (
	"path"
	"strings"

	"github.com/mogaika/w3d_browser/vfs"
)

// Index maps lowercase texture stems to file names inside a directory.
// Meshes reference textures by file name only, the game looks them up
// in a fixed set of texture folders.
type Index struct {
	d       vfs.Directory
	entries map[string]string
}

func stem(name string) string {
	base := path.Base(strings.Replace(name, "\\", "/", -1))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}

func inDirs(name string, dirs []string) bool {
	if len(dirs) == 0 {
		return true
	}
	dir := strings.ToLower(path.Dir(strings.Replace(name, "\\", "/", -1)))
	for _, d := range dirs {
		if strings.ToLower(strings.Trim(strings.Replace(d, "\\", "/", -1), "/")) == dir {
			return true
		}
	}
	return false
}

// BuildIndex collects every .tga below d that lives in one of dirs.
// Empty dirs accepts any folder.
func BuildIndex(d vfs.Directory, dirs []string) (*Index, error) {
	idx := &Index{d: d, entries: make(map[string]string)}
	err := vfs.Walk(d, func(name string, f vfs.File) error {
		if vfs.HasExt(name, ".tga") && inDirs(name, dirs) {
			if _, exists := idx.entries[stem(name)]; !exists {
				idx.entries[stem(name)] = name
			}
		}
		return nil
	})
	return idx, err
}

// ResolvePath returns the directory entry for a texture name as stored in a mesh.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	name, ok := idx.entries[stem(texName)]
	return name, ok
}

func (idx *Index) Len() int {
	return len(idx.entries)
}
