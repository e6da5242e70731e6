package w3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

// RGB is stored on disk as r, g, b and one pad byte.
type RGB struct {
	R, G, B uint8
}

type RGBA struct {
	R, G, B, A uint8
}

func rgbAt(b chunk.Block, off int) RGB {
	return RGB{R: b.U8(off), G: b.U8(off + 1), B: b.U8(off + 2)}
}

// Vec3 scales the channels to 0..1.
func (c RGB) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
