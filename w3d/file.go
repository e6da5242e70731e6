package w3d

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

type Options struct {
	// fail on meshes without influence or shade index chunks
	// instead of filling placeholders
	StrictMissingChunks bool
	// called for every chunk no table recognized
	OnUnknownChunk func(path string, sc SkippedChunk)
	Verbose        bool
}

// File is everything one w3d file declares, in file order.
type File struct {
	Meshes               []*Mesh
	Hierarchies          []*Hierarchy           `json:",omitempty"`
	Animations           []*Animation           `json:",omitempty"`
	CompressedAnimations []*CompressedAnimation `json:",omitempty"`
	HLods                []*HLod                `json:",omitempty"`
	Boxes                []*Box                 `json:",omitempty"`
	Skipped              []SkippedChunk         `json:",omitempty"`
}

var fileTable = dispatchTable[File]{
	ChunkMesh:                parseMesh,
	ChunkHierarchy:           parseHierarchy,
	ChunkAnimation:           parseAnimation,
	ChunkCompressedAnimation: parseCompressedAnimation,
	ChunkHLod:                parseHLod,
	ChunkBox:                 parseBox,
}

// Read parses a whole w3d stream of size bytes. path is only used in
// diagnostics. Any failure returns a *ParseError and no partial file.
func Read(r io.Reader, path string, size int64, opts Options) (*File, error) {
	cr := chunk.NewReader(r, size)
	p := &parser{opts: opts, path: path}

	var f File
	if err := dispatch(p, cr, fileTable, &f); err != nil {
		return nil, &ParseError{Path: path, Offset: cr.Offset(), Err: err}
	}
	f.Skipped = p.skipped

	if opts.Verbose {
		log.Printf("[w3d] %s: %d meshes, %d hierarchies, %d animations, %d compressed animations, %d hlods, %d boxes, %d skipped chunks",
			path, len(f.Meshes), len(f.Hierarchies), len(f.Animations), len(f.CompressedAnimations),
			len(f.HLods), len(f.Boxes), len(f.Skipped))
	}
	return &f, nil
}

func ReadFile(path string, opts Options) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open file '%s'", path)
	}
	defer fd.Close()

	stat, err := fd.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to stat file '%s'", path)
	}
	return Read(bufio.NewReader(fd), path, stat.Size(), opts)
}

// MeshByName looks a mesh up by its "container.mesh" name or bare mesh name.
func (f *File) MeshByName(name string) *Mesh {
	for _, m := range f.Meshes {
		if m.Header.FullName() == name || m.Header.Name == name {
			return m
		}
	}
	return nil
}

// Hierarchy returns the first hierarchy of the file or nil.
func (f *File) Hierarchy() *Hierarchy {
	if len(f.Hierarchies) == 0 {
		return nil
	}
	return f.Hierarchies[0]
}
