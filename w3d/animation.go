package w3d

import (
	"github.com/mogaika/w3d_browser/w3d/chunk"
)

const (
	animationHeaderSize   = 44
	animChannelHeaderSize = 12
	bitChannelHeaderSize  = 9
)

type AnimationHeader struct {
	Version       Version
	Name          string
	HierarchyName string
	NumFrames     uint32
	FrameRate     uint32
}

// AnimationChannel holds VectorLen floats for every frame in
// [FirstFrame, LastFrame].
type AnimationChannel struct {
	FirstFrame uint16
	LastFrame  uint16
	VectorLen  uint16
	Kind       AnimationChannelKind
	Pivot      uint16
	Data       []float32 `json:"-"`
}

func (c *AnimationChannel) NumFrames() int {
	return int(c.LastFrame) - int(c.FirstFrame) + 1
}

// Frame returns the key of an absolute frame, nil outside the channel range.
func (c *AnimationChannel) Frame(frame int) []float32 {
	i := frame - int(c.FirstFrame)
	if i < 0 || frame > int(c.LastFrame) {
		return nil
	}
	vl := int(c.VectorLen)
	return c.Data[i*vl : (i+1)*vl]
}

// BitChannel is a one bit per frame track, usually visibility.
type BitChannel struct {
	FirstFrame   uint16
	LastFrame    uint16
	Kind         BitChannelKind
	Pivot        uint16
	DefaultValue bool
	Bits         []byte `json:"-"`
}

func (c *BitChannel) Value(frame int) bool {
	if frame < int(c.FirstFrame) || frame > int(c.LastFrame) {
		return c.DefaultValue
	}
	i := frame - int(c.FirstFrame)
	if i/8 >= len(c.Bits) {
		return c.DefaultValue
	}
	return c.Bits[i/8]&(1<<uint(i%8)) != 0
}

type Animation struct {
	Header      AnimationHeader
	Channels    []AnimationChannel
	BitChannels []BitChannel
}

type animationBuilder struct {
	anim       Animation
	haveHeader bool
}

var animationTable = dispatchTable[animationBuilder]{
	ChunkAnimationHeader: func(p *parser, r *chunk.Reader, b *animationBuilder) error {
		if b.haveHeader {
			return inconsistency("animation", "header chunks", MustEqual, 1, 2)
		}
		blk, err := r.ReadBlock(animationHeaderSize)
		if err != nil {
			return err
		}
		b.anim.Header = AnimationHeader{
			Version:       Version(blk.U32(0)),
			Name:          blk.String(4, nameSize),
			HierarchyName: blk.String(20, nameSize),
			NumFrames:     blk.U32(36),
			FrameRate:     blk.U32(40),
		}
		b.haveHeader = true
		return nil
	},
	ChunkAnimationChannel: func(p *parser, r *chunk.Reader, b *animationBuilder) error {
		if !b.haveHeader {
			return inconsistency("animation", "header before channels", MustEqual, 1, 0)
		}
		c, err := readAnimationChannel(r)
		if err != nil {
			return err
		}
		b.anim.Channels = append(b.anim.Channels, c)
		return nil
	},
	ChunkBitChannel: func(p *parser, r *chunk.Reader, b *animationBuilder) error {
		if !b.haveHeader {
			return inconsistency("animation", "header before channels", MustEqual, 1, 0)
		}
		c, err := readBitChannel(r)
		if err != nil {
			return err
		}
		b.anim.BitChannels = append(b.anim.BitChannels, c)
		return nil
	},
}

func readAnimationChannel(r *chunk.Reader) (AnimationChannel, error) {
	blk, err := r.ReadBlock(animChannelHeaderSize)
	if err != nil {
		return AnimationChannel{}, err
	}
	c := AnimationChannel{
		FirstFrame: blk.U16(0),
		LastFrame:  blk.U16(2),
		VectorLen:  blk.U16(4),
		Pivot:      blk.U16(8),
	}
	if c.Kind, err = decodeEnum[AnimationChannelKind]("AnimationChannelKind", channelKindNames, uint32(blk.U16(6))); err != nil {
		return c, err
	}
	if c.LastFrame < c.FirstFrame {
		return c, inconsistency("animation channel", "last frame", MustBeAtLeast, int(c.FirstFrame), int(c.LastFrame))
	}

	data, err := readRecords(r, 4, func(b chunk.Block) (float32, error) { return b.F32(0), nil })
	if err != nil {
		return c, err
	}
	// floats past the last frame are ignored
	need := c.NumFrames() * int(c.VectorLen)
	if len(data) < need {
		return c, inconsistency("animation channel", "data", MustEqual, need, len(data))
	}
	c.Data = data[:need:need]
	return c, nil
}

func readBitChannel(r *chunk.Reader) (BitChannel, error) {
	blk, err := r.ReadBlock(bitChannelHeaderSize)
	if err != nil {
		return BitChannel{}, err
	}
	c := BitChannel{
		FirstFrame:   blk.U16(0),
		LastFrame:    blk.U16(2),
		Pivot:        blk.U16(6),
		DefaultValue: blk.U8(8) != 0,
	}
	if c.Kind, err = decodeEnum[BitChannelKind]("BitChannelKind", bitChannelKindNames, uint32(blk.U16(4))); err != nil {
		return c, err
	}
	if c.LastFrame < c.FirstFrame {
		return c, inconsistency("bit channel", "last frame", MustBeAtLeast, int(c.FirstFrame), int(c.LastFrame))
	}
	bits, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return c, err
	}
	need := (int(c.LastFrame) - int(c.FirstFrame) + 8) / 8
	if len(bits) < need {
		return c, inconsistency("bit channel", "data", MustEqual, need, len(bits))
	}
	c.Bits = bits[:need:need]
	return c, nil
}

func parseAnimation(p *parser, r *chunk.Reader, f *File) error {
	var b animationBuilder
	if err := dispatch(p, r, animationTable, &b); err != nil {
		return err
	}
	if !b.haveHeader {
		return inconsistency("animation", "header chunks", MustEqual, 1, 0)
	}
	f.Animations = append(f.Animations, &b.anim)
	return nil
}
