package pack

import (
	"io"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/utils"
	"github.com/mogaika/w3d_browser/vfs"
)

type FileLoader func(src utils.ResourceSource, r *io.SectionReader) (interface{}, error)

var gHandlers map[string]FileLoader = make(map[string]FileLoader, 0)

func SetHandler(format string, ldr FileLoader) {
	gHandlers[strings.ToUpper(format)] = ldr
}

func extOf(name string) string {
	return strings.ToUpper(path.Ext(strings.Replace(name, "\\", "/", -1)))
}

// HasHandler reports whether CallHandler knows the extension of name.
func HasHandler(name string) bool {
	_, found := gHandlers[extOf(name)]
	return found
}

// Formats returns registered extensions in sorted order.
func Formats() []string {
	result := make([]string, 0, len(gHandlers))
	for ext := range gHandlers {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

func CallHandler(s utils.ResourceSource, r *io.SectionReader) (interface{}, error) {
	ext := extOf(s.Name())

	if h, found := gHandlers[ext]; found {
		return h(s, r)
	} else {
		return nil, errors.Errorf("[pack] Cannot find handler for '%s' extension", ext)
	}
}

// PackResSrc names a resource by its path inside the directory it was opened from.
type PackResSrc struct {
	pf   vfs.File
	name string
}

func (s *PackResSrc) Name() string {
	return s.name
}

func (s *PackResSrc) Size() int64 {
	return s.pf.Size()
}

func GetInstanceHandler(d vfs.Directory, fileName string) (interface{}, error) {
	f, err := vfs.DirectoryGetFile(d, fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot get file '%s'", fileName)
	}

	r, err := vfs.OpenFileAndGetReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot get instance of '%s'", fileName)
	}
	defer f.Close()

	inst, err := CallHandler(&PackResSrc{pf: f, name: fileName}, r)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Handler error")
	}

	return inst, nil
}
