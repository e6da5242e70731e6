package corpus

import (
	"fmt"

	"github.com/mogaika/w3d_browser/w3d"
)

// Violation is one conformance property a parsed file breaks.
type Violation struct {
	Mesh    string `json:"mesh"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Mesh + ": " + v.Message
}

type checker struct {
	mesh       *w3d.Mesh
	violations []Violation
}

func (c *checker) fail(format string, a ...interface{}) {
	c.violations = append(c.violations, Violation{
		Mesh:    c.mesh.Header.FullName(),
		Message: fmt.Sprintf(format, a...),
	})
}

func (c *checker) equal(what string, expected, actual int) {
	if expected != actual {
		c.fail("%s: expected %d, got %d", what, expected, actual)
	}
}

func (c *checker) atMost(what string, limit, actual int) {
	if actual > limit {
		c.fail("%s: expected at most %d, got %d", what, limit, actual)
	}
}

var (
	stage0Mappings = []w3d.VertexMappingType{w3d.MappingUV, w3d.MappingEnvironment, w3d.MappingLinearOffset, w3d.MappingGrid}
	stage1Mappings = []w3d.VertexMappingType{w3d.MappingUV, w3d.MappingLinearOffset}
)

func mappingIn(m w3d.VertexMappingType, allowed []w3d.VertexMappingType) bool {
	for _, a := range allowed {
		if m == a {
			return true
		}
	}
	return false
}

// CheckFile returns every property of the reference corpus the file breaks.
// Some of them are stricter than the format itself.
func CheckFile(f *w3d.File) []Violation {
	var result []Violation
	for _, m := range f.Meshes {
		c := checker{mesh: m}
		c.checkMesh()
		result = append(result, c.violations...)
	}
	return result
}

func (c *checker) checkMesh() {
	m := c.mesh
	h := &m.Header
	numVertices := len(m.Vertices)

	c.equal("vertices", int(h.NumVertices), numVertices)
	c.equal("triangles", int(h.NumTriangles), len(m.Triangles))
	c.equal("influences", numVertices, len(m.Influences))
	c.equal("shade indices", numVertices, len(m.ShadeIndices))

	var info w3d.MaterialInfo
	if m.MaterialInfo != nil {
		info = *m.MaterialInfo
	}
	c.equal("material passes", int(info.PassCount), len(m.MaterialPasses))
	c.equal("shaders", int(info.ShaderCount), len(m.Shaders))
	c.atMost("materials", w3d.MaxMaterials, len(m.Materials))
	c.atMost("textures", w3d.MaxTextures, len(m.Textures))
	c.atMost("material passes", 2, len(m.MaterialPasses))

	for i := range m.Materials {
		c.checkVertexMaterial(&m.Materials[i])
	}
	for i := range m.MaterialPasses {
		c.checkPass(i, &m.MaterialPasses[i])
	}
	for _, t := range m.Textures {
		if t.Info != nil && t.Info.FrameCount != 1 {
			c.fail("texture %q: frame count %d, expected 1", t.Name, t.Info.FrameCount)
		}
	}
}

func (c *checker) checkVertexMaterial(vm *w3d.VertexMaterial) {
	if vm.Info == nil {
		return
	}
	info := vm.Info
	if info.Attributes != 0 {
		c.fail("vertex material %q: attributes %v, expected None", vm.Name, info.Attributes)
	}
	if !mappingIn(info.Stage0Mapping, stage0Mappings) {
		c.fail("vertex material %q: stage0 mapping %v", vm.Name, info.Stage0Mapping)
	}
	if !mappingIn(info.Stage1Mapping, stage1Mappings) {
		c.fail("vertex material %q: stage1 mapping %v", vm.Name, info.Stage1Mapping)
	}
	if info.Translucency != 0 {
		c.fail("vertex material %q: translucency %v, expected 0", vm.Name, info.Translucency)
	}
}

func (c *checker) checkPass(idx int, p *w3d.MaterialPass) {
	numVertices := len(c.mesh.Vertices)
	numTriangles := int(c.mesh.Header.NumTriangles)

	if p.DCG != nil {
		c.equal(fmt.Sprintf("pass %d dcg", idx), numVertices, len(p.DCG))
	}
	if p.DIG != nil {
		c.fail("pass %d: unexpected dig", idx)
	}
	if p.SCG != nil {
		c.fail("pass %d: unexpected scg", idx)
	}
	c.atMost(fmt.Sprintf("pass %d texture stages", idx), w3d.MaxTextureStages, len(p.TextureStages))

	for si, s := range p.TextureStages {
		what := fmt.Sprintf("pass %d stage %d", idx, si)
		if s.TexCoords != nil {
			c.equal(what+" texcoords", int(c.mesh.Header.NumVertices), len(s.TexCoords))
		}
		if s.PerFaceTexCoordIds != nil {
			c.fail("%s: unexpected per face texcoord ids", what)
		}
		if n := len(s.TextureIds); n != 1 && n != numTriangles {
			c.fail("%s texture ids: expected 1 or %d, got %d", what, numTriangles, n)
		}
	}
}
