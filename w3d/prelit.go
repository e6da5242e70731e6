package w3d

import (
	"github.com/mogaika/w3d_browser/w3d/chunk"
)

// PrelitMaterials holds the material sets a mesh carries for each
// lighting mode it was prelit for. Absent modes stay nil.
type PrelitMaterials struct {
	Unlit                *MaterialSet `json:",omitempty"`
	Vertex               *MaterialSet `json:",omitempty"`
	LightmapMultiPass    *MaterialSet `json:",omitempty"`
	LightmapMultiTexture *MaterialSet `json:",omitempty"`
}

// PrelitChunks lists the wrapper chunk types in file order.
var PrelitChunks = []ChunkType{
	ChunkPrelitUnlit,
	ChunkPrelitVertex,
	ChunkPrelitLightmapMultiPass,
	ChunkPrelitLightmapMultiTex,
}

func (pm *PrelitMaterials) slot(typ ChunkType) **MaterialSet {
	switch typ {
	case ChunkPrelitUnlit:
		return &pm.Unlit
	case ChunkPrelitVertex:
		return &pm.Vertex
	case ChunkPrelitLightmapMultiPass:
		return &pm.LightmapMultiPass
	case ChunkPrelitLightmapMultiTex:
		return &pm.LightmapMultiTexture
	}
	return nil
}

// Get returns the set stored under a wrapper chunk type, or nil.
func (pm *PrelitMaterials) Get(typ ChunkType) *MaterialSet {
	if s := pm.slot(typ); s != nil {
		return *s
	}
	return nil
}

func parsePrelit(p *parser, r *chunk.Reader, b *meshBuilder) error {
	typ := ChunkType(r.Header().Type)
	slot := b.mesh.Prelit.slot(typ)
	if *slot != nil {
		return inconsistency("mesh", typ.String()+" chunks", MustEqual, 1, 2)
	}
	sb := materialSetBuilder{entity: typ.String(), set: &MaterialSet{}, header: &b.mesh.Header}
	if err := dispatch(p, r, materialSetTable, &sb); err != nil {
		return err
	}
	if err := sb.finish(); err != nil {
		return err
	}
	*slot = sb.set
	return nil
}
