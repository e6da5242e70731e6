package w3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	MaxMaterials     = 16
	MaxTextures      = 29
	MaxTextureStages = 2

	meshHeaderSize = 116
	triangleSize   = 32
	influenceSize  = 8
	nameSize       = 16
)

// Version packs major in the high and minor in the low 16 bits.
type Version uint32

func (v Version) Major() uint16  { return uint16(v >> 16) }
func (v Version) Minor() uint16  { return uint16(v) }
func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major(), v.Minor()) }

func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

type MeshHeader struct {
	Version         Version
	Attributes      uint32
	Name            string
	ContainerName   string
	NumTriangles    uint32
	NumVertices     uint32
	NumMaterials    uint32
	NumDamageStages uint32
	SortLevel       int32
	PrelitVersion   uint32
	FutureCounts    uint32
	VertexChannels  uint32
	FaceChannels    uint32
	Min             mgl32.Vec3
	Max             mgl32.Vec3
	SphereCenter    mgl32.Vec3
	SphereRadius    float32
}

// FullName is the "container.mesh" key hierarchies refer to meshes by.
func (h *MeshHeader) FullName() string {
	if h.ContainerName == "" {
		return h.Name
	}
	return h.ContainerName + "." + h.Name
}

type Triangle struct {
	Indices     [3]uint32
	SurfaceType uint32
	Normal      mgl32.Vec3
	Dist        float32
}

type VertexInfluence struct {
	Bone        uint16
	ExtraBone   uint16
	BoneWeight  uint16
	ExtraWeight uint16
}

type MaterialInfo struct {
	PassCount           uint32
	VertexMaterialCount uint32
	ShaderCount         uint32
	TextureCount        uint32
}

// MaterialSet is one complete way to draw a mesh. The top level set is
// embedded in Mesh, prelit alternatives live in Mesh.Prelit.
type MaterialSet struct {
	MaterialInfo   *MaterialInfo
	Materials      []VertexMaterial
	Shaders        []Shader
	MaterialPasses []MaterialPass
	Textures       []Texture
}

type Mesh struct {
	Header       MeshHeader
	UserText     string            `json:",omitempty"`
	Vertices     []mgl32.Vec3      `json:"-"`
	Normals      []mgl32.Vec3      `json:"-"`
	Triangles    []Triangle        `json:"-"`
	Influences   []VertexInfluence `json:"-"`
	ShadeIndices []uint32          `json:"-"`
	MaterialSet
	Prelit PrelitMaterials
}

// BoundingBox returns the min and max corners declared by the header.
func (m *Mesh) BoundingBox() (mgl32.Vec3, mgl32.Vec3) {
	return m.Header.Min, m.Header.Max
}

// Center of the declared bounding box.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.Header.Min.Add(m.Header.Max).Mul(0.5)
}

type meshBuilder struct {
	mesh       Mesh
	haveHeader bool

	haveInfluences   bool
	haveShadeIndices bool
}

func (b *meshBuilder) numVertices() int  { return int(b.mesh.Header.NumVertices) }
func (b *meshBuilder) numTriangles() int { return int(b.mesh.Header.NumTriangles) }

func (b *meshBuilder) materials() *materialSetBuilder {
	return &materialSetBuilder{entity: "mesh", set: &b.mesh.MaterialSet, header: &b.mesh.Header}
}

type materialSetBuilder struct {
	entity string
	set    *MaterialSet
	header *MeshHeader
}

var materialSetTable = dispatchTable[materialSetBuilder]{
	ChunkMaterialInfo:    parseMaterialInfo,
	ChunkVertexMaterials: parseVertexMaterials,
	ChunkShaders:         parseShaders,
	ChunkTextures:        parseTextures,
	ChunkMaterialPass:    parseMaterialPass,
}

// finish checks the set against its own material info.
func (b *materialSetBuilder) finish() error {
	var passCount, shaderCount int
	if b.set.MaterialInfo != nil {
		passCount = int(b.set.MaterialInfo.PassCount)
		shaderCount = int(b.set.MaterialInfo.ShaderCount)
	}
	if err := checkLen(b.entity, "material passes", passCount, len(b.set.MaterialPasses)); err != nil {
		return err
	}
	return checkLen(b.entity, "shaders", shaderCount, len(b.set.Shaders))
}

var meshTable = dispatchTable[meshBuilder]{
	ChunkMeshHeader3:        parseMeshHeader,
	ChunkMeshUserText:       afterHeader(parseMeshUserText),
	ChunkVertices:           afterHeader(parseVertices),
	ChunkVertexNormals:      afterHeader(parseVertexNormals),
	ChunkTriangles:          afterHeader(parseTriangles),
	ChunkVertexInfluences:   afterHeader(parseVertexInfluences),
	ChunkVertexShadeIndices: afterHeader(parseShadeIndices),
	ChunkMaterialInfo:       afterHeader(inMaterials(parseMaterialInfo)),
	ChunkVertexMaterials:    afterHeader(inMaterials(parseVertexMaterials)),
	ChunkShaders:            afterHeader(inMaterials(parseShaders)),
	ChunkTextures:           afterHeader(inMaterials(parseTextures)),
	ChunkMaterialPass:       afterHeader(inMaterials(parseMaterialPass)),

	ChunkPrelitUnlit:             afterHeader(parsePrelit),
	ChunkPrelitVertex:            afterHeader(parsePrelit),
	ChunkPrelitLightmapMultiPass: afterHeader(parsePrelit),
	ChunkPrelitLightmapMultiTex:  afterHeader(parsePrelit),
}

// inMaterials runs a material set handler against the top level set.
func inMaterials(h chunkHandler[materialSetBuilder]) chunkHandler[meshBuilder] {
	return func(p *parser, r *chunk.Reader, b *meshBuilder) error {
		return h(p, r, b.materials())
	}
}

// afterHeader rejects mesh sub chunks that arrive before the header
// declared the counts they are validated against.
func afterHeader(h chunkHandler[meshBuilder]) chunkHandler[meshBuilder] {
	return func(p *parser, r *chunk.Reader, b *meshBuilder) error {
		if !b.haveHeader {
			return inconsistency("mesh", "header before "+ChunkType(r.Header().Type).String(), MustEqual, 1, 0)
		}
		return h(p, r, b)
	}
}

func parseMesh(p *parser, r *chunk.Reader, f *File) error {
	var b meshBuilder
	if err := dispatch(p, r, meshTable, &b); err != nil {
		return err
	}
	if err := b.finish(p.opts); err != nil {
		return err
	}
	f.Meshes = append(f.Meshes, &b.mesh)
	return nil
}

func parseMeshHeader(p *parser, r *chunk.Reader, b *meshBuilder) error {
	if b.haveHeader {
		return inconsistency("mesh", "header chunks", MustEqual, 1, 2)
	}
	blk, err := r.ReadBlock(meshHeaderSize)
	if err != nil {
		return err
	}
	b.mesh.Header = MeshHeader{
		Version:         Version(blk.U32(0)),
		Attributes:      blk.U32(4),
		Name:            blk.String(8, nameSize),
		ContainerName:   blk.String(24, nameSize),
		NumTriangles:    blk.U32(40),
		NumVertices:     blk.U32(44),
		NumMaterials:    blk.U32(48),
		NumDamageStages: blk.U32(52),
		SortLevel:       blk.I32(56),
		PrelitVersion:   blk.U32(60),
		FutureCounts:    blk.U32(64),
		VertexChannels:  blk.U32(68),
		FaceChannels:    blk.U32(72),
		Min:             blk.Vec3(76),
		Max:             blk.Vec3(88),
		SphereCenter:    blk.Vec3(100),
		SphereRadius:    blk.F32(112),
	}
	b.haveHeader = true
	return nil
}

func parseMeshUserText(p *parser, r *chunk.Reader, b *meshBuilder) (err error) {
	b.mesh.UserText, err = r.ReadString()
	return err
}

func parseVertices(p *parser, r *chunk.Reader, b *meshBuilder) error {
	v, err := readVec3Array(r)
	if err != nil {
		return err
	}
	if err := checkLen("mesh", "vertices", b.numVertices(), len(v)); err != nil {
		return err
	}
	b.mesh.Vertices = v
	return nil
}

func parseVertexNormals(p *parser, r *chunk.Reader, b *meshBuilder) error {
	n, err := readVec3Array(r)
	if err != nil {
		return err
	}
	if err := checkLen("mesh", "normals", b.numVertices(), len(n)); err != nil {
		return err
	}
	b.mesh.Normals = n
	return nil
}

func parseTriangles(p *parser, r *chunk.Reader, b *meshBuilder) error {
	numVertices := b.mesh.Header.NumVertices
	tris, err := readRecords(r, triangleSize, func(blk chunk.Block) (Triangle, error) {
		t := Triangle{
			Indices:     [3]uint32{blk.U32(0), blk.U32(4), blk.U32(8)},
			SurfaceType: blk.U32(12),
			Normal:      blk.Vec3(16),
			Dist:        blk.F32(28),
		}
		for _, idx := range t.Indices {
			if idx >= numVertices {
				return t, inconsistency("triangle", "vertex index", MustBeBelow, int(numVertices), int(idx))
			}
		}
		return t, nil
	})
	if err != nil {
		return err
	}
	if err := checkLen("mesh", "triangles", b.numTriangles(), len(tris)); err != nil {
		return err
	}
	b.mesh.Triangles = tris
	return nil
}

func parseVertexInfluences(p *parser, r *chunk.Reader, b *meshBuilder) error {
	inf, err := readRecords(r, influenceSize, func(blk chunk.Block) (VertexInfluence, error) {
		return VertexInfluence{
			Bone:        blk.U16(0),
			ExtraBone:   blk.U16(2),
			BoneWeight:  blk.U16(4),
			ExtraWeight: blk.U16(6),
		}, nil
	})
	if err != nil {
		return err
	}
	if err := checkLen("mesh", "influences", b.numVertices(), len(inf)); err != nil {
		return err
	}
	b.mesh.Influences = inf
	b.haveInfluences = true
	return nil
}

func parseShadeIndices(p *parser, r *chunk.Reader, b *meshBuilder) error {
	idx, err := readU32Array(r)
	if err != nil {
		return err
	}
	if err := checkLen("mesh", "shade indices", b.numVertices(), len(idx)); err != nil {
		return err
	}
	b.mesh.ShadeIndices = idx
	b.haveShadeIndices = true
	return nil
}

func parseMaterialInfo(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
	blk, err := r.ReadBlock(16)
	if err != nil {
		return err
	}
	b.set.MaterialInfo = &MaterialInfo{
		PassCount:           blk.U32(0),
		VertexMaterialCount: blk.U32(4),
		ShaderCount:         blk.U32(8),
		TextureCount:        blk.U32(12),
	}
	return nil
}

// finish runs the checks that need the whole mesh chunk consumed.
func (b *meshBuilder) finish(opts Options) error {
	if !b.haveHeader {
		return inconsistency("mesh", "header chunks", MustEqual, 1, 0)
	}
	m := &b.mesh

	if len(m.Vertices) == 0 && b.numVertices() != 0 {
		return inconsistency("mesh", "vertices", MustEqual, b.numVertices(), 0)
	}
	if len(m.Triangles) == 0 && b.numTriangles() != 0 {
		return inconsistency("mesh", "triangles", MustEqual, b.numTriangles(), 0)
	}

	if !b.haveInfluences {
		if opts.StrictMissingChunks {
			return inconsistency("mesh", "influences", MustEqual, b.numVertices(), 0)
		}
		// every vertex follows the root pivot
		m.Influences = make([]VertexInfluence, b.numVertices())
	}
	if !b.haveShadeIndices {
		if opts.StrictMissingChunks {
			return inconsistency("mesh", "shade indices", MustEqual, b.numVertices(), 0)
		}
		m.ShadeIndices = make([]uint32, b.numVertices())
		for i := range m.ShadeIndices {
			m.ShadeIndices[i] = uint32(i)
		}
	}
	return b.materials().finish()
}
