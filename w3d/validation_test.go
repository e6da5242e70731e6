package w3d

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/utils"
)

func TestStructuralInconsistency(t *testing.T) {
	var names utils.RandomNameGenerator

	manyMaterials := func(n int) []byte {
		var children [][]byte
		for i := 0; i < n; i++ {
			children = append(children, vertexMaterialChunk(names.RandomName(15), 0))
		}
		return container(ChunkVertexMaterials, children...)
	}
	manyTextures := func(n int) []byte {
		var children [][]byte
		for i := 0; i < n; i++ {
			children = append(children, textureChunk(names.RandomName(12)+".tga", nil))
		}
		return container(ChunkTextures, children...)
	}
	stage := func() []byte {
		return container(ChunkTextureStage, chunkBytes(ChunkTextureIds, utils.AsBytes([]uint32{0})))
	}

	var inconsistencyTests = []struct {
		name   string
		mutate func(m *meshParts)
		field  string
	}{
		{"vertex count", func(m *meshParts) {
			m.vertices = chunkBytes(ChunkVertices, utils.AsBytes(make([][3]float32, m.numVertices+1)))
		}, "vertices"},
		{"triangle count", func(m *meshParts) {
			m.triangles = chunkBytes(ChunkTriangles, utils.AsBytes(make([]triangleRecord, m.numTriangles-1)))
		}, "triangles"},
		{"triangle index", func(m *meshParts) {
			tris := make([]triangleRecord, m.numTriangles)
			tris[1].VIndex = [3]uint32{0, 1, uint32(m.numVertices)}
			m.triangles = chunkBytes(ChunkTriangles, utils.AsBytes(tris))
		}, "vertex index"},
		{"normal count", func(m *meshParts) {
			m.normals = chunkBytes(ChunkVertexNormals, utils.AsBytes(make([][3]float32, 2)))
		}, "normals"},
		{"influence count", func(m *meshParts) {
			m.influences = chunkBytes(ChunkVertexInfluences, utils.AsBytes(make([][4]uint16, m.numVertices-1)))
		}, "influences"},
		{"shade index count", func(m *meshParts) {
			m.shadeIndices = chunkBytes(ChunkVertexShadeIndices, utils.AsBytes(make([]uint32, m.numVertices*2)))
		}, "shade indices"},
		{"missing vertices", func(m *meshParts) {
			m.vertices = nil
		}, "vertices"},
		{"pass count", func(m *meshParts) {
			m.passes = append(m.passes, m.passes[0])
		}, "material passes"},
		{"shader count", func(m *meshParts) {
			m.shaders = chunkBytes(ChunkShaders, defaultShader[:], defaultShader[:])
		}, "shaders"},
		{"passes without material info", func(m *meshParts) {
			m.materialInfo = nil
		}, "material passes"},
		{"too many materials", func(m *meshParts) {
			m.materials = manyMaterials(MaxMaterials + 1)
		}, "materials"},
		{"too many textures", func(m *meshParts) {
			m.textures = manyTextures(MaxTextures + 1)
		}, "textures"},
		{"too many stages", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass, stage(), stage(), stage())
		}, "texture stages"},
		{"vertex material ids", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass,
				chunkBytes(ChunkVertexMaterialIds, utils.AsBytes([]uint32{0, 0})))
		}, "vertex material ids"},
		{"shader ids", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass,
				chunkBytes(ChunkShaderIds, utils.AsBytes(make([]uint32, m.numTriangles+1))))
		}, "shader ids"},
		{"dcg", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass,
				chunkBytes(ChunkDCG, utils.AsBytes(make([][4]uint8, 1))))
		}, "dcg"},
		{"texture ids", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass, container(ChunkTextureStage,
				chunkBytes(ChunkTextureIds, utils.AsBytes([]uint32{0, 0}))))
		}, "texture ids"},
		{"texcoords", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass, container(ChunkTextureStage,
				chunkBytes(ChunkStageTexCoords, utils.AsBytes(make([][2]float32, 1)))))
		}, "texcoords"},
		{"per face texcoord ids", func(m *meshParts) {
			m.passes[0] = container(ChunkMaterialPass, container(ChunkTextureStage,
				chunkBytes(ChunkPerFaceTexCoordIds, utils.AsBytes(make([][3]uint32, 1)))))
		}, "per face texcoord ids"},
	}

	for _, test := range inconsistencyTests {
		parts := newMeshParts(&names, 5, 3)
		test.mutate(parts)

		f, err := readBytes(parts.bytes(), Options{})
		var serr *StructuralInconsistencyError
		if f != nil || !errors.As(err, &serr) {
			t.Errorf("%s: got file %v, err %v; expected StructuralInconsistencyError", test.name, f != nil, err)
			continue
		}
		if serr.Field != test.field {
			t.Errorf("%s: inconsistent field %q; expected %q (%v)", test.name, serr.Field, test.field, err)
		}
	}
}

func TestOneOrNAccepted(t *testing.T) {
	var names utils.RandomNameGenerator
	parts := newMeshParts(&names, 4, 3)
	parts.passes[0] = container(ChunkMaterialPass,
		chunkBytes(ChunkVertexMaterialIds, utils.AsBytes(make([]uint32, 4))),
		chunkBytes(ChunkShaderIds, utils.AsBytes(make([]uint32, 3))),
		container(ChunkTextureStage, chunkBytes(ChunkTextureIds, utils.AsBytes(make([]uint32, 3)))),
		container(ChunkTextureStage, chunkBytes(ChunkTextureIds, utils.AsBytes(make([]uint32, 1)))),
	)
	f, err := readBytes(parts.bytes(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	pass := f.Meshes[0].MaterialPasses[0]
	if len(pass.VertexMaterialIds) != 4 || len(pass.ShaderIds) != 3 || len(pass.TextureStages) != 2 {
		t.Errorf("pass %s", utils.SDump(pass))
	}
}

func TestMeshChunksBeforeHeader(t *testing.T) {
	var names utils.RandomNameGenerator
	parts := newMeshParts(&names, 3, 1)
	data := container(ChunkMesh, parts.vertices, parts.header, parts.triangles)

	_, err := readBytes(data, Options{})
	var serr *StructuralInconsistencyError
	if !errors.As(err, &serr) || serr.Entity != "mesh" {
		t.Errorf("vertices before header: %v; expected mesh inconsistency", err)
	}

	_, err = readBytes(container(ChunkMesh, parts.header, parts.header), Options{})
	if !errors.As(err, &serr) {
		t.Errorf("duplicate header: %v; expected inconsistency", err)
	}

	_, err = readBytes(container(ChunkMesh), Options{})
	if !errors.As(err, &serr) {
		t.Errorf("mesh without header: %v; expected inconsistency", err)
	}
}

func TestDuplicateHeaders(t *testing.T) {
	var names utils.RandomNameGenerator
	skeleton := names.RandomName(15)

	hierarchyHeader := func(pivots uint32) []byte {
		return chunkBytes(ChunkHierarchyHeader, utils.AsBytes(&hierarchyHeaderRecord{
			Version:   0x40001,
			Name:      name16(skeleton),
			NumPivots: pivots,
		}))
	}
	compressedHeader := chunkBytes(ChunkCompressedAnimationHeader, utils.AsBytes(&compressedAnimHeaderRecord{
		Version:       0x40001,
		Name:          name16("WALK"),
		HierarchyName: name16(skeleton),
		NumFrames:     10,
		FrameRate:     15,
		Flavor:        uint16(FlavorTimeCoded),
	}))
	hlodHeader := chunkBytes(ChunkHLodHeader, utils.AsBytes(&hlodHeaderRecord{
		Version:       0x10000,
		LodCount:      1,
		Name:          name16(skeleton),
		HierarchyName: name16(skeleton),
	}))
	arrayHeader := chunkBytes(ChunkHLodSubObjectArrayHeader, utils.AsBytes(&struct {
		ModelCount    uint32
		MaxScreenSize float32
	}{0, 100}))

	var duplicateTests = []struct {
		entity string
		data   []byte
	}{
		{"hierarchy", container(ChunkHierarchy,
			hierarchyHeader(1),
			chunkBytes(ChunkPivotFixups, utils.AsBytes(make([][12]float32, 1))),
			hierarchyHeader(2),
			chunkBytes(ChunkPivots, utils.AsBytes(make([]pivotRecord, 2))),
		)},
		{"animation", container(ChunkAnimation,
			animationHeaderChunk("WALK", skeleton, 4),
			animationHeaderChunk("RUN", skeleton, 8),
		)},
		{"compressed animation", container(ChunkCompressedAnimation, compressedHeader, compressedHeader)},
		{"hlod", container(ChunkHLod, hlodHeader, hlodHeader)},
		{"hlod array", container(ChunkHLod, hlodHeader,
			container(ChunkHLodLodArray, arrayHeader, arrayHeader))},
	}

	for _, test := range duplicateTests {
		_, err := readBytes(test.data, Options{})
		var serr *StructuralInconsistencyError
		if !errors.As(err, &serr) || serr.Entity != test.entity || serr.Field != "header chunks" {
			t.Errorf("%s with two headers: %v; expected header chunks inconsistency", test.entity, err)
		}
	}
}

func TestUnrecognizedEnumValue(t *testing.T) {
	var names utils.RandomNameGenerator

	badShader := defaultShader
	badShader[0] = 8

	var enumTests = []struct {
		name   string
		mutate func(m *meshParts)
		enum   string
		value  uint32
	}{
		{"stage0 mapping", func(m *meshParts) {
			m.materials = container(ChunkVertexMaterials, vertexMaterialChunk("bad", 0x13<<16))
		}, "VertexMappingType", 0x13},
		{"stage1 mapping", func(m *meshParts) {
			m.materials = container(ChunkVertexMaterials, vertexMaterialChunk("bad", 0xFF<<8))
		}, "VertexMappingType", 0xFF},
		{"material flags", func(m *meshParts) {
			m.materials = container(ChunkVertexMaterials, vertexMaterialChunk("bad", 0x10|0x1))
		}, "VertexMaterialFlags", 0x10},
		{"texture anim type", func(m *meshParts) {
			m.textures = container(ChunkTextures, textureChunk("bad.tga", &textureInfoRecord{AnimType: 4, FrameCount: 1}))
		}, "TextureAnimType", 4},
		{"depth compare", func(m *meshParts) {
			m.shaders = chunkBytes(ChunkShaders, badShader[:])
		}, "DepthCompare", 8},
	}

	for _, test := range enumTests {
		parts := newMeshParts(&names, 3, 1)
		test.mutate(parts)

		_, err := readBytes(parts.bytes(), Options{})
		var eerr *UnrecognizedEnumValueError
		if !errors.As(err, &eerr) {
			t.Errorf("%s: %v; expected UnrecognizedEnumValueError", test.name, err)
			continue
		}
		if eerr.Enum != test.enum || eerr.Value != test.value {
			t.Errorf("%s: %s=0x%x; expected %s=0x%x", test.name, eerr.Enum, eerr.Value, test.enum, test.value)
		}
	}
}

func TestVertexMaterialMappings(t *testing.T) {
	var names utils.RandomNameGenerator
	parts := newMeshParts(&names, 3, 1)
	parts.materials = container(ChunkVertexMaterials,
		vertexMaterialChunk("env", uint32(MappingEnvironment)<<16|uint32(MappingLinearOffset)<<8|0x2),
		vertexMaterialChunk("grid", uint32(MappingGrid)<<16|0xA5<<24),
	)
	f, err := readBytes(parts.bytes(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	mats := f.Meshes[0].Materials
	if len(mats) != 2 {
		t.Fatalf("len(Materials)=%d; expected 2", len(mats))
	}
	env := mats[0].Info
	if env.Stage0Mapping != MappingEnvironment || env.Stage1Mapping != MappingLinearOffset ||
		env.Attributes != VertexMaterialArgbEmissiveOnly {
		t.Errorf("env material %+v", env)
	}
	if s := env.Attributes.String(); s != "ArgbEmissiveOnly" {
		t.Errorf("Attributes.String()=%q; expected ArgbEmissiveOnly", s)
	}
	grid := mats[1].Info
	if grid.Stage0Mapping != MappingGrid || grid.PSXFlags != 0xA5 || grid.Attributes.String() != "None" {
		t.Errorf("grid material %+v", grid)
	}
}

func TestErrorMessages(t *testing.T) {
	var messageTests = []struct {
		err      error
		expected string
	}{
		{&StructuralInconsistencyError{"mesh", "vertices", MustEqual, 4, 3},
			"structural inconsistency: mesh vertices: expected 4, got 3"},
		{&StructuralInconsistencyError{"mesh", "materials", MustBeAtMost, 16, 17},
			"structural inconsistency: mesh materials: expected at most 16, got 17"},
		{&StructuralInconsistencyError{"material pass", "shader ids", MustBeOneOr, 12, 2},
			"structural inconsistency: material pass shader ids: expected 1 or 12, got 2"},
		{&UnrecognizedEnumValueError{"VertexMappingType", 0x13},
			"unrecognized VertexMappingType value 0x13"},
		{&ParseError{"a.w3d", 0x40, errors.New("boom")},
			"[w3d] a.w3d at 0x40: boom"},
	}
	for _, test := range messageTests {
		if msg := test.err.Error(); msg != test.expected {
			t.Errorf("Error()=%q; expected %q", msg, test.expected)
		}
	}
}
