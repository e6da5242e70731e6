package w3d

import (
	"log"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/w3d/chunk"
)

// SkippedChunk records a chunk whose type no table knew how to parse.
type SkippedChunk struct {
	Type    ChunkType
	Size    uint32
	Offset  int64       // offset of the chunk header
	Parents []ChunkType // enclosing chunks, outermost first
}

type chunkHandler[T any] func(p *parser, r *chunk.Reader, dst *T) error

type dispatchTable[T any] map[ChunkType]chunkHandler[T]

// parser holds per file state. Nothing here is shared between files.
type parser struct {
	opts    Options
	path    string
	parents []ChunkType
	skipped []SkippedChunk
}

func (p *parser) skip(typ ChunkType, r *chunk.Reader, offset int64) error {
	sc := SkippedChunk{
		Type:    typ,
		Size:    r.Header().Size,
		Offset:  offset,
		Parents: append([]ChunkType(nil), p.parents...),
	}
	p.skipped = append(p.skipped, sc)
	if p.opts.OnUnknownChunk != nil {
		p.opts.OnUnknownChunk(p.path, sc)
	}
	if p.opts.Verbose {
		log.Printf("[w3d] %s: skipping %v (%d bytes) at 0x%x in %v", p.path, typ, sc.Size, offset, sc.Parents)
	}
	return r.SkipRemaining()
}

// dispatch walks all sibling chunks inside r and routes each one by type.
// Chunks absent from the table are skipped, handlers that stop short of
// their chunk end are skipped to it as well.
func dispatch[T any](p *parser, r *chunk.Reader, table dispatchTable[T], dst *T) error {
	for r.HasMore() {
		offset := r.Offset()
		sub, err := r.EnterChunk()
		if err != nil {
			return err
		}

		typ := ChunkType(sub.Header().Type)
		handler, known := table[typ]
		if !known {
			if err := p.skip(typ, sub, offset); err != nil {
				return err
			}
			continue
		}

		p.parents = append(p.parents, typ)
		err = handler(p, sub, dst)
		p.parents = p.parents[:len(p.parents)-1]
		if err != nil {
			return errors.Wrapf(err, "%v at 0x%x", typ, offset)
		}

		if err := sub.SkipRemaining(); err != nil {
			return err
		}
	}
	return nil
}
