package texture

import (
	"image"
	"image/draw"
	"io"
	"os"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/mogaika/w3d_browser/vfs"
)

// Cache decodes textures of an Index once and keeps them.
// Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

func (c *Cache) Resolve(texName string) (*image.NRGBA, error) {
	name, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "[texture] '%s' not found", texName)
	}

	c.mu.RLock()
	img, exists := c.items[name]
	c.mu.RUnlock()
	if exists {
		return img, nil
	}

	img, err := c.load(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[name]; exists {
		return existing, nil
	}
	c.items[name] = img
	return img, nil
}

func (c *Cache) load(name string) (*image.NRGBA, error) {
	f, err := vfs.DirectoryGetFile(c.index.d, name)
	if err != nil {
		return nil, err
	}
	r, err := vfs.OpenFileAndGetReader(f)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tga.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "[texture] Failed to decode '%s'", name)
	}
	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Preview scales img down so that its longer side is at most size.
// Smaller images are returned as is.
func Preview(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return errors.Wrapf(err, "[texture] Failed to encode webp")
	}
	return nil
}
