package w3d

import (
	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	hlodHeaderSize        = 40
	hlodArrayHeaderSize   = 8
	hlodSubObjectSize     = 36
	hlodSubObjectNameSize = 32
)

type HLodHeader struct {
	Version       Version
	LodCount      uint32
	Name          string
	HierarchyName string
}

type HLodSubObject struct {
	BoneIndex uint32
	// "container.mesh" of the render object attached to the bone
	Name string
}

type HLodArray struct {
	MaxScreenSize float32
	SubObjects    []HLodSubObject
}

type HLod struct {
	Header HLodHeader
	// ordered from lowest to highest detail
	Lods      []HLodArray
	Aggregate *HLodArray `json:",omitempty"`
	Proxy     *HLodArray `json:",omitempty"`
}

type hlodBuilder struct {
	hlod       HLod
	haveHeader bool
}

type hlodArrayBuilder struct {
	array      HLodArray
	modelCount uint32
	haveHeader bool
}

var hlodArrayTable = dispatchTable[hlodArrayBuilder]{
	ChunkHLodSubObjectArrayHeader: func(p *parser, r *chunk.Reader, b *hlodArrayBuilder) error {
		if b.haveHeader {
			return inconsistency("hlod array", "header chunks", MustEqual, 1, 2)
		}
		blk, err := r.ReadBlock(hlodArrayHeaderSize)
		if err != nil {
			return err
		}
		b.modelCount = blk.U32(0)
		b.array.MaxScreenSize = blk.F32(4)
		b.haveHeader = true
		return nil
	},
	ChunkHLodSubObject: func(p *parser, r *chunk.Reader, b *hlodArrayBuilder) error {
		if !b.haveHeader {
			return inconsistency("hlod array", "header before sub objects", MustEqual, 1, 0)
		}
		blk, err := r.ReadBlock(hlodSubObjectSize)
		if err != nil {
			return err
		}
		b.array.SubObjects = append(b.array.SubObjects, HLodSubObject{
			BoneIndex: blk.U32(0),
			Name:      blk.String(4, hlodSubObjectNameSize),
		})
		return checkAtMost("hlod array", "sub objects", int(b.modelCount), len(b.array.SubObjects))
	},
}

func readHLodArray(p *parser, r *chunk.Reader) (*HLodArray, error) {
	var b hlodArrayBuilder
	if err := dispatch(p, r, hlodArrayTable, &b); err != nil {
		return nil, err
	}
	if !b.haveHeader {
		return nil, inconsistency("hlod array", "header chunks", MustEqual, 1, 0)
	}
	if err := checkLen("hlod array", "sub objects", int(b.modelCount), len(b.array.SubObjects)); err != nil {
		return nil, err
	}
	return &b.array, nil
}

var hlodTable = dispatchTable[hlodBuilder]{
	ChunkHLodHeader: func(p *parser, r *chunk.Reader, b *hlodBuilder) error {
		if b.haveHeader {
			return inconsistency("hlod", "header chunks", MustEqual, 1, 2)
		}
		blk, err := r.ReadBlock(hlodHeaderSize)
		if err != nil {
			return err
		}
		b.hlod.Header = HLodHeader{
			Version:       Version(blk.U32(0)),
			LodCount:      blk.U32(4),
			Name:          blk.String(8, nameSize),
			HierarchyName: blk.String(24, nameSize),
		}
		b.haveHeader = true
		return nil
	},
	ChunkHLodLodArray: func(p *parser, r *chunk.Reader, b *hlodBuilder) error {
		if !b.haveHeader {
			return inconsistency("hlod", "header before lod arrays", MustEqual, 1, 0)
		}
		a, err := readHLodArray(p, r)
		if err != nil {
			return err
		}
		b.hlod.Lods = append(b.hlod.Lods, *a)
		return checkAtMost("hlod", "lods", int(b.hlod.Header.LodCount), len(b.hlod.Lods))
	},
	ChunkHLodAggregateArray: func(p *parser, r *chunk.Reader, b *hlodBuilder) (err error) {
		b.hlod.Aggregate, err = readHLodArray(p, r)
		return err
	},
	ChunkHLodProxyArray: func(p *parser, r *chunk.Reader, b *hlodBuilder) (err error) {
		b.hlod.Proxy, err = readHLodArray(p, r)
		return err
	},
}

func parseHLod(p *parser, r *chunk.Reader, f *File) error {
	var b hlodBuilder
	if err := dispatch(p, r, hlodTable, &b); err != nil {
		return err
	}
	if !b.haveHeader {
		return inconsistency("hlod", "header chunks", MustEqual, 1, 0)
	}
	if err := checkLen("hlod", "lods", int(b.hlod.Header.LodCount), len(b.hlod.Lods)); err != nil {
		return err
	}
	f.HLods = append(f.HLods, &b.hlod)
	return nil
}
