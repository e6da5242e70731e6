package w3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	hierarchyHeaderSize = 36
	pivotSize           = 60
	pivotFixupSize      = 48

	noParent = 0xFFFFFFFF
)

type HierarchyHeader struct {
	Version   Version
	Name      string
	NumPivots uint32
	Center    mgl32.Vec3
}

type Pivot struct {
	Name string
	// -1 for roots
	ParentIndex int
	Translation mgl32.Vec3
	EulerAngles mgl32.Vec3
	Rotation    mgl32.Quat
}

// Matrix is the local bind transform of the pivot.
func (p *Pivot) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Translation[0], p.Translation[1], p.Translation[2]).Mul4(p.Rotation.Mat4())
}

type Hierarchy struct {
	Header HierarchyHeader
	Pivots []Pivot
	// nil when absent, otherwise one 4x3 row major matrix per pivot
	PivotFixups []mgl32.Mat4x3 `json:",omitempty"`
}

// WorldMatrices composes every pivot with its parents.
// Parents always precede their children so one pass is enough.
func (h *Hierarchy) WorldMatrices() []mgl32.Mat4 {
	world := make([]mgl32.Mat4, len(h.Pivots))
	for i := range h.Pivots {
		local := h.Pivots[i].Matrix()
		if parent := h.Pivots[i].ParentIndex; parent >= 0 {
			world[i] = world[parent].Mul4(local)
		} else {
			world[i] = local
		}
	}
	return world
}

type hierarchyBuilder struct {
	h          Hierarchy
	haveHeader bool
}

var hierarchyTable = dispatchTable[hierarchyBuilder]{
	ChunkHierarchyHeader: func(p *parser, r *chunk.Reader, b *hierarchyBuilder) error {
		if b.haveHeader {
			return inconsistency("hierarchy", "header chunks", MustEqual, 1, 2)
		}
		blk, err := r.ReadBlock(hierarchyHeaderSize)
		if err != nil {
			return err
		}
		b.h.Header = HierarchyHeader{
			Version:   Version(blk.U32(0)),
			Name:      blk.String(4, nameSize),
			NumPivots: blk.U32(20),
			Center:    blk.Vec3(24),
		}
		b.haveHeader = true
		return nil
	},
	ChunkPivots: func(p *parser, r *chunk.Reader, b *hierarchyBuilder) error {
		if !b.haveHeader {
			return inconsistency("hierarchy", "header before pivots", MustEqual, 1, 0)
		}
		index := 0
		pivots, err := readRecords(r, pivotSize, func(blk chunk.Block) (Pivot, error) {
			pv := Pivot{
				Name:        blk.String(0, nameSize),
				ParentIndex: -1,
				Translation: blk.Vec3(20),
				EulerAngles: blk.Vec3(32),
				Rotation:    blk.Quat(44),
			}
			if parent := blk.U32(16); parent != noParent {
				if int64(parent) >= int64(index) {
					return pv, inconsistency("pivot", "parent index", MustBeBelow, index, int(parent))
				}
				pv.ParentIndex = int(parent)
			}
			index++
			return pv, nil
		})
		if err != nil {
			return err
		}
		if err := checkLen("hierarchy", "pivots", int(b.h.Header.NumPivots), len(pivots)); err != nil {
			return err
		}
		b.h.Pivots = pivots
		return nil
	},
	ChunkPivotFixups: func(p *parser, r *chunk.Reader, b *hierarchyBuilder) error {
		if !b.haveHeader {
			return inconsistency("hierarchy", "header before pivot fixups", MustEqual, 1, 0)
		}
		fixups, err := readRecords(r, pivotFixupSize, func(blk chunk.Block) (mgl32.Mat4x3, error) {
			var m mgl32.Mat4x3
			for row := 0; row < 4; row++ {
				v := blk.Vec3(row * 12)
				for col := 0; col < 3; col++ {
					m.Set(row, col, v[col])
				}
			}
			return m, nil
		})
		if err != nil {
			return err
		}
		if err := checkLen("hierarchy", "pivot fixups", int(b.h.Header.NumPivots), len(fixups)); err != nil {
			return err
		}
		b.h.PivotFixups = fixups
		return nil
	},
}

func parseHierarchy(p *parser, r *chunk.Reader, f *File) error {
	var b hierarchyBuilder
	if err := dispatch(p, r, hierarchyTable, &b); err != nil {
		return err
	}
	if !b.haveHeader {
		return inconsistency("hierarchy", "header chunks", MustEqual, 1, 0)
	}
	if err := checkLen("hierarchy", "pivots", int(b.h.Header.NumPivots), len(b.h.Pivots)); err != nil {
		return err
	}
	f.Hierarchies = append(f.Hierarchies, &b.h)
	return nil
}
