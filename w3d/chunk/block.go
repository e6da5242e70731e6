package chunk

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/utils"
)

// Block is a fixed layout record already pulled out of a chunk.
// Field accessors take byte offsets into the record.
type Block []byte

// ReadBlock reads a whole fixed size record, so that a record crossing
// the chunk end fails before any of its fields are decoded.
func (r *Reader) ReadBlock(size int) (Block, error) {
	b, err := r.ReadBytes(size)
	return Block(b), err
}

func (b Block) U8(off int) uint8   { return b[off] }
func (b Block) U16(off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func (b Block) U32(off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }
func (b Block) I32(off int) int32  { return int32(b.U32(off)) }
func (b Block) F32(off int) float32 {
	return lf(b[off:])
}

func (b Block) Vec3(off int) mgl32.Vec3 {
	return mgl32.Vec3{b.F32(off), b.F32(off + 4), b.F32(off + 8)}
}

func (b Block) Quat(off int) mgl32.Quat {
	return mgl32.Quat{V: b.Vec3(off), W: b.F32(off + 12)}
}

func (b Block) String(off, size int) string {
	return utils.BytesToString(b[off : off+size])
}
