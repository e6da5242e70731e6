package w3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

// readRecords decodes the whole chunk payload as an array of fixed size
// records. A trailing partial record fails with chunk.ErrTruncatedChunk
// before any record is decoded.
func readRecords[T any](r *chunk.Reader, size int, decode func(b chunk.Block) (T, error)) ([]T, error) {
	n := r.Count(size)
	raw, err := r.ReadBytes(n * size)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = decode(chunk.Block(raw[i*size : (i+1)*size])); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readU32Array(r *chunk.Reader) ([]uint32, error) {
	return readRecords(r, 4, func(b chunk.Block) (uint32, error) {
		return b.U32(0), nil
	})
}

func readVec3Array(r *chunk.Reader) ([]mgl32.Vec3, error) {
	return readRecords(r, 12, func(b chunk.Block) (mgl32.Vec3, error) {
		return b.Vec3(0), nil
	})
}

func readVec2Array(r *chunk.Reader) ([]mgl32.Vec2, error) {
	return readRecords(r, 8, func(b chunk.Block) (mgl32.Vec2, error) {
		return mgl32.Vec2{b.F32(0), b.F32(4)}, nil
	})
}

func readRGBAArray(r *chunk.Reader) ([]RGBA, error) {
	return readRecords(r, 4, func(b chunk.Block) (RGBA, error) {
		return RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
	})
}
