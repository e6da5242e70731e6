// Package w3dtest builds small w3d streams for tests of packages
// that consume parsed files.
package w3dtest

import (
	"bytes"
	"encoding/binary"

	"github.com/mogaika/w3d_browser/utils"
	"github.com/mogaika/w3d_browser/w3d"
)

func Chunk(typ w3d.ChunkType, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	return append(utils.AsBytes([]uint32{uint32(typ), uint32(len(body))}), body...)
}

func Container(typ w3d.ChunkType, children ...[]byte) []byte {
	b := Chunk(typ, children...)
	b[7] |= 0x80
	return b
}

// TriangleMesh is a single triangle mesh without materials.
func TriangleMesh(container, name string) []byte {
	header := make([]byte, 116)
	binary.LittleEndian.PutUint32(header[0:], 0x40002)
	copy(header[8:24], utils.StringToBytesBuffer(name, 16, true))
	copy(header[24:40], utils.StringToBytesBuffer(container, 16, true))
	binary.LittleEndian.PutUint32(header[40:], 1) // triangles
	binary.LittleEndian.PutUint32(header[44:], 3) // vertices

	tri := utils.AsBytes(&struct {
		VIndex     [3]uint32
		Attributes uint32
		Normal     [3]float32
		Dist       float32
	}{VIndex: [3]uint32{0, 1, 2}, Normal: [3]float32{0, 0, 1}})

	return Container(w3d.ChunkMesh,
		Chunk(w3d.ChunkMeshHeader3, header),
		Chunk(w3d.ChunkVertices, utils.AsBytes([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})),
		Chunk(w3d.ChunkTriangles, tri),
		Chunk(w3d.ChunkVertexInfluences, make([]byte, 3*8)),
		Chunk(w3d.ChunkVertexShadeIndices, utils.AsBytes([]uint32{0, 1, 2})),
	)
}

// Model concatenates one triangle mesh per name under a shared container.
func Model(container string, meshes ...string) []byte {
	var parts [][]byte
	for _, m := range meshes {
		parts = append(parts, TriangleMesh(container, m))
	}
	return bytes.Join(parts, nil)
}
