package w3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

// TextureStage binds one texture unit inside a pass.
type TextureStage struct {
	TextureIds []uint32
	// nil when absent
	TexCoords          []mgl32.Vec2 `json:"-"`
	PerFaceTexCoordIds [][3]uint32  `json:"-"`
}

// MaterialPass is one shading layer over the whole mesh.
// Id arrays hold either one shared entry or one entry per element.
type MaterialPass struct {
	VertexMaterialIds []uint32
	ShaderIds         []uint32
	// per vertex colors, nil when absent
	DCG           []RGBA `json:"-"`
	DIG           []RGBA `json:"-"`
	SCG           []RGBA `json:"-"`
	TextureStages []TextureStage
}

type passBuilder struct {
	pass   MaterialPass
	header *MeshHeader
}

type stageBuilder struct {
	stage  TextureStage
	header *MeshHeader
}

func (b *passBuilder) numVertices() int  { return int(b.header.NumVertices) }
func (b *passBuilder) numTriangles() int { return int(b.header.NumTriangles) }

var passTable = dispatchTable[passBuilder]{
	ChunkVertexMaterialIds: func(p *parser, r *chunk.Reader, b *passBuilder) error {
		ids, err := readU32Array(r)
		if err != nil {
			return err
		}
		if err := checkOneOr("material pass", "vertex material ids", b.numVertices(), len(ids)); err != nil {
			return err
		}
		b.pass.VertexMaterialIds = ids
		return nil
	},
	ChunkShaderIds: func(p *parser, r *chunk.Reader, b *passBuilder) error {
		ids, err := readU32Array(r)
		if err != nil {
			return err
		}
		if err := checkOneOr("material pass", "shader ids", b.numTriangles(), len(ids)); err != nil {
			return err
		}
		b.pass.ShaderIds = ids
		return nil
	},
	ChunkDCG: func(p *parser, r *chunk.Reader, b *passBuilder) (err error) {
		b.pass.DCG, err = readVertexColors(r, "dcg", b.numVertices())
		return err
	},
	ChunkDIG: func(p *parser, r *chunk.Reader, b *passBuilder) (err error) {
		b.pass.DIG, err = readVertexColors(r, "dig", b.numVertices())
		return err
	},
	ChunkSCG: func(p *parser, r *chunk.Reader, b *passBuilder) (err error) {
		b.pass.SCG, err = readVertexColors(r, "scg", b.numVertices())
		return err
	},
	ChunkTextureStage: func(p *parser, r *chunk.Reader, b *passBuilder) error {
		sb := stageBuilder{header: b.header}
		if err := dispatch(p, r, stageTable, &sb); err != nil {
			return err
		}
		b.pass.TextureStages = append(b.pass.TextureStages, sb.stage)
		return checkAtMost("material pass", "texture stages", MaxTextureStages, len(b.pass.TextureStages))
	},
}

var stageTable = dispatchTable[stageBuilder]{
	ChunkTextureIds: func(p *parser, r *chunk.Reader, b *stageBuilder) error {
		ids, err := readU32Array(r)
		if err != nil {
			return err
		}
		if err := checkOneOr("texture stage", "texture ids", int(b.header.NumTriangles), len(ids)); err != nil {
			return err
		}
		b.stage.TextureIds = ids
		return nil
	},
	ChunkStageTexCoords: func(p *parser, r *chunk.Reader, b *stageBuilder) error {
		uv, err := readVec2Array(r)
		if err != nil {
			return err
		}
		if err := checkLen("texture stage", "texcoords", int(b.header.NumVertices), len(uv)); err != nil {
			return err
		}
		b.stage.TexCoords = uv
		return nil
	},
	ChunkPerFaceTexCoordIds: func(p *parser, r *chunk.Reader, b *stageBuilder) error {
		ids, err := readRecords(r, 12, func(blk chunk.Block) ([3]uint32, error) {
			return [3]uint32{blk.U32(0), blk.U32(4), blk.U32(8)}, nil
		})
		if err != nil {
			return err
		}
		if err := checkLen("texture stage", "per face texcoord ids", int(b.header.NumTriangles), len(ids)); err != nil {
			return err
		}
		b.stage.PerFaceTexCoordIds = ids
		return nil
	},
}

func readVertexColors(r *chunk.Reader, field string, numVertices int) ([]RGBA, error) {
	colors, err := readRGBAArray(r)
	if err != nil {
		return nil, err
	}
	if err := checkLen("material pass", field, numVertices, len(colors)); err != nil {
		return nil, err
	}
	return colors, nil
}

func parseMaterialPass(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
	pb := passBuilder{header: b.header}
	if err := dispatch(p, r, passTable, &pb); err != nil {
		return err
	}
	b.set.MaterialPasses = append(b.set.MaterialPasses, pb.pass)
	return nil
}
