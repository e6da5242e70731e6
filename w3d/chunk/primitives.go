package chunk

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/utils"
)

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadVec2() (mgl32.Vec2, error) {
	b, err := r.fill(8)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{lf(b[0:]), lf(b[4:])}, nil
}

func (r *Reader) ReadVec3() (mgl32.Vec3, error) {
	b, err := r.fill(12)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{lf(b[0:]), lf(b[4:]), lf(b[8:])}, nil
}

// ReadQuat reads x, y, z, w order.
func (r *Reader) ReadQuat() (mgl32.Quat, error) {
	b, err := r.fill(16)
	if err != nil {
		return mgl32.Quat{}, err
	}
	return mgl32.Quat{
		V: mgl32.Vec3{lf(b[0:]), lf(b[4:]), lf(b[8:])},
		W: lf(b[12:]),
	}, nil
}

// ReadFixedString reads a null padded string field of exactly size bytes.
func (r *Reader) ReadFixedString(size int) (string, error) {
	b, err := r.ReadBytes(size)
	if err != nil {
		return "", err
	}
	return utils.BytesToString(b), nil
}

// ReadString consumes the rest of the chunk as a null terminated string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return "", err
	}
	return utils.BytesToString(b), nil
}

// Count returns how many elements of elemSize fit into the rest of the chunk.
// Trailing bytes that do not form a whole element are reported by the read
// of that element as ErrTruncatedChunk.
func (r *Reader) Count(elemSize int) int {
	n := r.Remaining() / int64(elemSize)
	if r.Remaining()%int64(elemSize) != 0 {
		n++
	}
	return int(n)
}

func lf(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
