package w3d

import (
	"bytes"
	"encoding/binary"

	"github.com/mogaika/w3d_browser/utils"
)

// in memory file builder shared by the tests of this package

func chunkBytes(typ ChunkType, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	var h [8]byte
	binary.LittleEndian.PutUint32(h[0:], uint32(typ))
	binary.LittleEndian.PutUint32(h[4:], uint32(len(body)))
	return append(h[:], body...)
}

func container(typ ChunkType, children ...[]byte) []byte {
	b := chunkBytes(typ, children...)
	b[7] |= 0x80
	return b
}

func name16(s string) (n [16]byte) {
	copy(n[:], utils.StringToBytesBuffer(s, 16, true))
	return
}

func name32(s string) (n [32]byte) {
	copy(n[:], utils.StringToBytesBuffer(s, 32, true))
	return
}

type meshHeaderRecord struct {
	Version         uint32
	Attributes      uint32
	Name            [16]byte
	ContainerName   [16]byte
	NumTris         uint32
	NumVertices     uint32
	NumMaterials    uint32
	NumDamageStages uint32
	SortLevel       int32
	PrelitVersion   uint32
	FutureCounts    uint32
	VertexChannels  uint32
	FaceChannels    uint32
	Min             [3]float32
	Max             [3]float32
	SphCenter       [3]float32
	SphRadius       float32
}

type triangleRecord struct {
	VIndex     [3]uint32
	Attributes uint32
	Normal     [3]float32
	Dist       float32
}

type vertexMaterialInfoRecord struct {
	Attributes   uint32
	Ambient      [4]uint8
	Diffuse      [4]uint8
	Specular     [4]uint8
	Emissive     [4]uint8
	Shininess    float32
	Opacity      float32
	Translucency float32
}

type textureInfoRecord struct {
	Attributes uint16
	AnimType   uint16
	FrameCount uint32
	FrameRate  float32
}

// a shader enabling texturing with LEqual depth test
var defaultShader = [16]byte{3, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0}

// meshParts keeps each sub chunk separately so tests can drop or
// replace them before building the mesh chunk.
type meshParts struct {
	name, containerName string
	numVertices         int
	numTriangles        int

	header       []byte
	vertices     []byte
	normals      []byte
	triangles    []byte
	influences   []byte
	shadeIndices []byte
	materialInfo []byte
	materials    []byte
	shaders      []byte
	textures     []byte
	passes       [][]byte
	extra        [][]byte
}

func newMeshParts(names *utils.RandomNameGenerator, numVertices, numTriangles int) *meshParts {
	m := &meshParts{
		name:          names.RandomName(15),
		containerName: names.RandomName(15),
		numVertices:   numVertices,
		numTriangles:  numTriangles,
	}
	m.header = chunkBytes(ChunkMeshHeader3, utils.AsBytes(&meshHeaderRecord{
		Version:       0x40002,
		Name:          name16(m.name),
		ContainerName: name16(m.containerName),
		NumTris:       uint32(numTriangles),
		NumVertices:   uint32(numVertices),
		NumMaterials:  1,
		Min:           [3]float32{-1, -1, -1},
		Max:           [3]float32{1, 1, 1},
		SphRadius:     1.7320508,
	}))

	verts := make([][3]float32, numVertices)
	normals := make([][3]float32, numVertices)
	infl := make([][4]uint16, numVertices)
	shade := make([]uint32, numVertices)
	dcg := make([][4]uint8, numVertices)
	uv := make([][2]float32, numVertices)
	for i := range verts {
		verts[i] = [3]float32{float32(i), float32(i) * 2, float32(i) * 3}
		normals[i] = [3]float32{0, 0, 1}
		infl[i] = [4]uint16{uint16(i % 3), 0, 100, 0}
		shade[i] = uint32(i)
		dcg[i] = [4]uint8{255, 128, 64, 255}
		uv[i] = [2]float32{float32(i) / 10, 1}
	}
	tris := make([]triangleRecord, numTriangles)
	for i := range tris {
		tris[i] = triangleRecord{
			VIndex:     [3]uint32{uint32(i % numVertices), uint32((i + 1) % numVertices), uint32((i + 2) % numVertices)},
			Attributes: 13,
			Normal:     [3]float32{0, 0, 1},
			Dist:       0.5,
		}
	}

	m.vertices = chunkBytes(ChunkVertices, utils.AsBytes(verts))
	m.normals = chunkBytes(ChunkVertexNormals, utils.AsBytes(normals))
	m.triangles = chunkBytes(ChunkTriangles, utils.AsBytes(tris))
	m.influences = chunkBytes(ChunkVertexInfluences, utils.AsBytes(infl))
	m.shadeIndices = chunkBytes(ChunkVertexShadeIndices, utils.AsBytes(shade))
	m.materialInfo = chunkBytes(ChunkMaterialInfo, utils.AsBytes([4]uint32{1, 1, 1, 1}))
	m.materials = container(ChunkVertexMaterials,
		vertexMaterialChunk(names.RandomName(15), 0))
	m.shaders = chunkBytes(ChunkShaders, defaultShader[:])
	m.textures = container(ChunkTextures,
		textureChunk(names.RandomName(15)+".tga", &textureInfoRecord{FrameCount: 1}))
	m.passes = [][]byte{container(ChunkMaterialPass,
		chunkBytes(ChunkVertexMaterialIds, utils.AsBytes([]uint32{0})),
		chunkBytes(ChunkShaderIds, utils.AsBytes([]uint32{0})),
		chunkBytes(ChunkDCG, utils.AsBytes(dcg)),
		container(ChunkTextureStage,
			chunkBytes(ChunkTextureIds, utils.AsBytes([]uint32{0})),
			chunkBytes(ChunkStageTexCoords, utils.AsBytes(uv)),
		),
	)}
	return m
}

func vertexMaterialChunk(name string, attributes uint32) []byte {
	return container(ChunkVertexMaterial,
		chunkBytes(ChunkVertexMaterialName, utils.StringToBytes(name, true)),
		chunkBytes(ChunkVertexMaterialInfo, utils.AsBytes(&vertexMaterialInfoRecord{
			Attributes: attributes,
			Ambient:    [4]uint8{255, 255, 255, 0},
			Diffuse:    [4]uint8{200, 200, 200, 0},
			Shininess:  1,
			Opacity:    1,
		})),
	)
}

func textureChunk(name string, info *textureInfoRecord) []byte {
	children := [][]byte{chunkBytes(ChunkTextureName, utils.StringToBytes(name, true))}
	if info != nil {
		children = append(children, chunkBytes(ChunkTextureInfo, utils.AsBytes(info)))
	}
	return container(ChunkTexture, children...)
}

func (m *meshParts) bytes() []byte {
	children := [][]byte{
		m.header, m.vertices, m.normals, m.triangles, m.influences, m.shadeIndices,
		m.materialInfo, m.materials, m.shaders, m.textures,
	}
	children = append(children, m.passes...)
	children = append(children, m.extra...)

	var present [][]byte
	for _, c := range children {
		if c != nil {
			present = append(present, c)
		}
	}
	return container(ChunkMesh, present...)
}

func readBytes(data []byte, opts Options) (*File, error) {
	return Read(bytes.NewReader(data), "test.w3d", int64(len(data)), opts)
}
