package w3d

import (
	"strings"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const vertexMaterialInfoSize = 32

type VertexMaterialFlags uint32

const (
	VertexMaterialUseDepthCue VertexMaterialFlags = 1 << iota
	VertexMaterialArgbEmissiveOnly
	VertexMaterialCopySpecularToDiffuse
	VertexMaterialDepthCueToAlpha
)

const (
	// low byte is the only part of the attribute word holding flags
	vertexMaterialFlagsMask  = 0x000000FF
	vertexMaterialKnownFlags = VertexMaterialUseDepthCue | VertexMaterialArgbEmissiveOnly |
		VertexMaterialCopySpecularToDiffuse | VertexMaterialDepthCueToAlpha
)

var vertexMaterialFlagNames = []string{"UseDepthCue", "ArgbEmissiveOnly", "CopySpecularToDiffuse", "DepthCueToAlpha"}

func (f VertexMaterialFlags) String() string {
	if f == 0 {
		return "None"
	}
	var names []string
	for i, name := range vertexMaterialFlagNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

func (f VertexMaterialFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

type VertexMaterialInfo struct {
	Attributes    VertexMaterialFlags
	Stage0Mapping VertexMappingType
	Stage1Mapping VertexMappingType
	// PSX transparency bits from the top byte, kept as is
	PSXFlags     uint8
	Ambient      RGB
	Diffuse      RGB
	Specular     RGB
	Emissive     RGB
	Shininess    float32
	Opacity      float32
	Translucency float32
}

type VertexMaterial struct {
	Name        string
	Info        *VertexMaterialInfo
	MapperArgs0 string `json:",omitempty"`
	MapperArgs1 string `json:",omitempty"`
}

var vertexMaterialTable = dispatchTable[VertexMaterial]{
	ChunkVertexMaterialName: func(p *parser, r *chunk.Reader, m *VertexMaterial) (err error) {
		m.Name, err = r.ReadString()
		return err
	},
	ChunkVertexMaterialInfo: parseVertexMaterialInfo,
	ChunkVertexMapperArgs0: func(p *parser, r *chunk.Reader, m *VertexMaterial) (err error) {
		m.MapperArgs0, err = r.ReadString()
		return err
	},
	ChunkVertexMapperArgs1: func(p *parser, r *chunk.Reader, m *VertexMaterial) (err error) {
		m.MapperArgs1, err = r.ReadString()
		return err
	},
}

var vertexMaterialsTable = dispatchTable[materialSetBuilder]{
	ChunkVertexMaterial: func(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
		var vm VertexMaterial
		if err := dispatch(p, r, vertexMaterialTable, &vm); err != nil {
			return err
		}
		b.set.Materials = append(b.set.Materials, vm)
		return checkAtMost(b.entity, "materials", MaxMaterials, len(b.set.Materials))
	},
}

func parseVertexMaterials(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
	return dispatch(p, r, vertexMaterialsTable, b)
}

func parseVertexMaterialInfo(p *parser, r *chunk.Reader, m *VertexMaterial) error {
	blk, err := r.ReadBlock(vertexMaterialInfoSize)
	if err != nil {
		return err
	}
	info, err := decodeVertexMaterialInfo(blk)
	if err != nil {
		return err
	}
	m.Info = info
	return nil
}

func decodeVertexMaterialInfo(blk chunk.Block) (*VertexMaterialInfo, error) {
	attrs := blk.U32(0)

	flags := VertexMaterialFlags(attrs & vertexMaterialFlagsMask)
	if unknown := flags &^ vertexMaterialKnownFlags; unknown != 0 {
		return nil, unrecognized("VertexMaterialFlags", uint32(unknown))
	}
	stage0, err := decodeEnum[VertexMappingType]("VertexMappingType", vertexMappingNames, (attrs>>16)&0xFF)
	if err != nil {
		return nil, err
	}
	stage1, err := decodeEnum[VertexMappingType]("VertexMappingType", vertexMappingNames, (attrs>>8)&0xFF)
	if err != nil {
		return nil, err
	}

	return &VertexMaterialInfo{
		Attributes:    flags,
		Stage0Mapping: stage0,
		Stage1Mapping: stage1,
		PSXFlags:      uint8(attrs >> 24),
		Ambient:       rgbAt(blk, 4),
		Diffuse:       rgbAt(blk, 8),
		Specular:      rgbAt(blk, 12),
		Emissive:      rgbAt(blk, 16),
		Shininess:     blk.F32(20),
		Opacity:       blk.F32(24),
		Translucency:  blk.F32(28),
	}, nil
}
