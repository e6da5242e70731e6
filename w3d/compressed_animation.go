package w3d

import (
	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	compressedAnimHeaderSize    = 44
	timeCodedChannelHeaderSize  = 8
	adaptiveDeltaHeaderSize     = 12
	timeCodedBitChannelHeadSize = 8

	// high bit of a time code: step key on value channels, state on bit channels
	timeCodeFlagBit = 0x80000000
)

type CompressedAnimationHeader struct {
	Version       Version
	Name          string
	HierarchyName string
	NumFrames     uint32
	FrameRate     uint16
	Flavor        CompressedAnimFlavor
}

type TimeCodedKey struct {
	Frame  uint32
	Step   bool
	Values []float32
}

type TimeCodedChannel struct {
	Pivot     uint16
	VectorLen uint8
	Kind      AnimationChannelKind
	Keys      []TimeCodedKey `json:"-"`
}

// AdaptiveDeltaChannel keeps the packed delta stream undecoded.
type AdaptiveDeltaChannel struct {
	NumFrames uint32
	Pivot     uint16
	VectorLen uint8
	Kind      AnimationChannelKind
	Scale     float32
	Data      []byte `json:"-"`
}

type TimeCodedBitKey struct {
	Frame uint32
	Value bool
}

type TimeCodedBitChannel struct {
	Pivot        uint16
	Kind         BitChannelKind
	DefaultValue bool
	Keys         []TimeCodedBitKey `json:"-"`
}

type CompressedAnimation struct {
	Header                CompressedAnimationHeader
	TimeCodedChannels     []TimeCodedChannel     `json:",omitempty"`
	AdaptiveDeltaChannels []AdaptiveDeltaChannel `json:",omitempty"`
	BitChannels           []TimeCodedBitChannel  `json:",omitempty"`
}

type compressedAnimBuilder struct {
	anim       CompressedAnimation
	haveHeader bool
}

var compressedAnimationTable = dispatchTable[compressedAnimBuilder]{
	ChunkCompressedAnimationHeader: func(p *parser, r *chunk.Reader, b *compressedAnimBuilder) error {
		if b.haveHeader {
			return inconsistency("compressed animation", "header chunks", MustEqual, 1, 2)
		}
		blk, err := r.ReadBlock(compressedAnimHeaderSize)
		if err != nil {
			return err
		}
		flavor, err := decodeEnum[CompressedAnimFlavor]("CompressedAnimFlavor", flavorNames, uint32(blk.U16(42)))
		if err != nil {
			return err
		}
		b.anim.Header = CompressedAnimationHeader{
			Version:       Version(blk.U32(0)),
			Name:          blk.String(4, nameSize),
			HierarchyName: blk.String(20, nameSize),
			NumFrames:     blk.U32(36),
			FrameRate:     blk.U16(40),
			Flavor:        flavor,
		}
		b.haveHeader = true
		return nil
	},
	ChunkCompressedAnimChannel: func(p *parser, r *chunk.Reader, b *compressedAnimBuilder) error {
		// the header flavor decides the channel layout
		if !b.haveHeader {
			return inconsistency("compressed animation", "header before channels", MustEqual, 1, 0)
		}
		switch b.anim.Header.Flavor {
		case FlavorTimeCoded:
			c, err := readTimeCodedChannel(r)
			if err != nil {
				return err
			}
			b.anim.TimeCodedChannels = append(b.anim.TimeCodedChannels, c)
		default:
			c, err := readAdaptiveDeltaChannel(r)
			if err != nil {
				return err
			}
			b.anim.AdaptiveDeltaChannels = append(b.anim.AdaptiveDeltaChannels, c)
		}
		return nil
	},
	ChunkCompressedBitChannel: func(p *parser, r *chunk.Reader, b *compressedAnimBuilder) error {
		if !b.haveHeader {
			return inconsistency("compressed animation", "header before channels", MustEqual, 1, 0)
		}
		c, err := readTimeCodedBitChannel(r)
		if err != nil {
			return err
		}
		b.anim.BitChannels = append(b.anim.BitChannels, c)
		return nil
	},
}

func readTimeCodedChannel(r *chunk.Reader) (TimeCodedChannel, error) {
	blk, err := r.ReadBlock(timeCodedChannelHeaderSize)
	if err != nil {
		return TimeCodedChannel{}, err
	}
	c := TimeCodedChannel{
		Pivot:     blk.U16(4),
		VectorLen: blk.U8(6),
	}
	if c.Kind, err = decodeEnum[AnimationChannelKind]("AnimationChannelKind", channelKindNames, uint32(blk.U8(7))); err != nil {
		return c, err
	}

	numKeys := int(blk.U32(0))
	keySize := 4 + 4*int(c.VectorLen)
	if need := int64(numKeys) * int64(keySize); need > r.Remaining() {
		return c, inconsistency("timecoded channel", "keys", MustBeAtMost, int(r.Remaining()/int64(keySize)), numKeys)
	}
	c.Keys = make([]TimeCodedKey, numKeys)
	for i := range c.Keys {
		key, err := r.ReadBlock(keySize)
		if err != nil {
			return c, err
		}
		code := key.U32(0)
		values := make([]float32, c.VectorLen)
		for j := range values {
			values[j] = key.F32(4 + j*4)
		}
		c.Keys[i] = TimeCodedKey{
			Frame:  code &^ timeCodeFlagBit,
			Step:   code&timeCodeFlagBit != 0,
			Values: values,
		}
	}
	return c, nil
}

func readAdaptiveDeltaChannel(r *chunk.Reader) (AdaptiveDeltaChannel, error) {
	blk, err := r.ReadBlock(adaptiveDeltaHeaderSize)
	if err != nil {
		return AdaptiveDeltaChannel{}, err
	}
	c := AdaptiveDeltaChannel{
		NumFrames: blk.U32(0),
		Pivot:     blk.U16(4),
		VectorLen: blk.U8(6),
		Scale:     blk.F32(8),
	}
	if c.Kind, err = decodeEnum[AnimationChannelKind]("AnimationChannelKind", channelKindNames, uint32(blk.U8(7))); err != nil {
		return c, err
	}
	c.Data, err = r.ReadBytes(int(r.Remaining()))
	return c, err
}

func readTimeCodedBitChannel(r *chunk.Reader) (TimeCodedBitChannel, error) {
	blk, err := r.ReadBlock(timeCodedBitChannelHeadSize)
	if err != nil {
		return TimeCodedBitChannel{}, err
	}
	c := TimeCodedBitChannel{
		Pivot:        blk.U16(4),
		DefaultValue: blk.U8(7) != 0,
	}
	if c.Kind, err = decodeEnum[BitChannelKind]("BitChannelKind", bitChannelKindNames, uint32(blk.U8(6))); err != nil {
		return c, err
	}

	numKeys := int(blk.U32(0))
	if int64(numKeys)*4 > r.Remaining() {
		return c, inconsistency("timecoded bit channel", "keys", MustBeAtMost, int(r.Remaining()/4), numKeys)
	}
	c.Keys = make([]TimeCodedBitKey, numKeys)
	for i := range c.Keys {
		code, err := r.ReadUint32()
		if err != nil {
			return c, err
		}
		c.Keys[i] = TimeCodedBitKey{
			Frame: code &^ timeCodeFlagBit,
			Value: code&timeCodeFlagBit != 0,
		}
	}
	return c, nil
}

func parseCompressedAnimation(p *parser, r *chunk.Reader, f *File) error {
	var b compressedAnimBuilder
	if err := dispatch(p, r, compressedAnimationTable, &b); err != nil {
		return err
	}
	if !b.haveHeader {
		return inconsistency("compressed animation", "header chunks", MustEqual, 1, 0)
	}
	f.CompressedAnimations = append(f.CompressedAnimations, &b.anim)
	return nil
}
