package w3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	boxSize     = 68
	boxNameSize = 32
)

// Box is a collision or bounding box render object.
type Box struct {
	Version    Version
	Attributes uint32
	Name       string
	Color      RGB
	Center     mgl32.Vec3
	Extent     mgl32.Vec3
}

func (b *Box) Min() mgl32.Vec3 { return b.Center.Sub(b.Extent) }
func (b *Box) Max() mgl32.Vec3 { return b.Center.Add(b.Extent) }

func parseBox(p *parser, r *chunk.Reader, f *File) error {
	blk, err := r.ReadBlock(boxSize)
	if err != nil {
		return err
	}
	f.Boxes = append(f.Boxes, &Box{
		Version:    Version(blk.U32(0)),
		Attributes: blk.U32(4),
		Name:       blk.String(8, boxNameSize),
		Color:      rgbAt(blk, 40),
		Center:     blk.Vec3(44),
		Extent:     blk.Vec3(56),
	})
	return nil
}
