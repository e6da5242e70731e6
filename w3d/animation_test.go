package w3d

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/utils"
)

type animationHeaderRecord struct {
	Version       uint32
	Name          [16]byte
	HierarchyName [16]byte
	NumFrames     uint32
	FrameRate     uint32
}

type animChannelRecord struct {
	FirstFrame uint16
	LastFrame  uint16
	VectorLen  uint16
	Flags      uint16
	Pivot      uint16
	Pad        uint16
}

type bitChannelRecord struct {
	FirstFrame uint16
	LastFrame  uint16
	Flags      uint16
	Pivot      uint16
	DefaultVal uint8
}

type compressedAnimHeaderRecord struct {
	Version       uint32
	Name          [16]byte
	HierarchyName [16]byte
	NumFrames     uint32
	FrameRate     uint16
	Flavor        uint16
}

func animationHeaderChunk(name, hierarchy string, frames uint32) []byte {
	return chunkBytes(ChunkAnimationHeader, utils.AsBytes(&animationHeaderRecord{
		Version:       0x40001,
		Name:          name16(name),
		HierarchyName: name16(hierarchy),
		NumFrames:     frames,
		FrameRate:     30,
	}))
}

func TestReadAnimation(t *testing.T) {
	var names utils.RandomNameGenerator
	animName, skeleton := names.RandomName(15), names.RandomName(15)

	data := container(ChunkAnimation,
		animationHeaderChunk(animName, skeleton, 4),
		chunkBytes(ChunkAnimationChannel,
			utils.AsBytes(&animChannelRecord{FirstFrame: 1, LastFrame: 3, VectorLen: 1, Flags: uint16(ChannelY), Pivot: 2}),
			utils.AsBytes([]float32{10, 20, 30, 99})),
		chunkBytes(ChunkAnimationChannel,
			utils.AsBytes(&animChannelRecord{FirstFrame: 0, LastFrame: 1, VectorLen: 4, Flags: uint16(ChannelQ), Pivot: 1}),
			utils.AsBytes([]float32{0, 0, 0, 1, 0, 0, 1, 0})),
		chunkBytes(ChunkBitChannel,
			utils.AsBytes(&bitChannelRecord{FirstFrame: 0, LastFrame: 9, Flags: uint16(BitChannelVis), Pivot: 3, DefaultVal: 1}),
			[]byte{0x05, 0x02}),
	)
	f, err := readBytes(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Animations) != 1 {
		t.Fatalf("len(Animations)=%d; expected 1", len(f.Animations))
	}
	a := f.Animations[0]
	if a.Header.Name != animName || a.Header.HierarchyName != skeleton || a.Header.NumFrames != 4 {
		t.Errorf("header %+v", a.Header)
	}
	if len(a.Channels) != 2 || len(a.BitChannels) != 1 {
		t.Fatalf("channels %s", utils.SDump(a))
	}

	y := a.Channels[0]
	if y.Kind != ChannelY || len(y.Data) != 3 {
		t.Errorf("Y channel %+v; expected 3 keys, trailing float dropped", y)
	}
	if v := y.Frame(2); len(v) != 1 || v[0] != 20 {
		t.Errorf("Frame(2)=%v; expected [20]", v)
	}
	if v := y.Frame(0); v != nil {
		t.Errorf("Frame(0)=%v; expected nil before first frame", v)
	}
	if q := a.Channels[1].Frame(1); len(q) != 4 || q[2] != 1 {
		t.Errorf("Q Frame(1)=%v", q)
	}

	vis := a.BitChannels[0]
	var visTests = []struct {
		frame int
		value bool
	}{{0, true}, {1, false}, {2, true}, {9, true}, {8, false}, {15, true}}
	for _, test := range visTests {
		if v := vis.Value(test.frame); v != test.value {
			t.Errorf("Value(%d)=%v; expected %v", test.frame, v, test.value)
		}
	}
}

func TestAnimationChannelErrors(t *testing.T) {
	var channelTests = []struct {
		name    string
		channel []byte
		check   func(err error) bool
	}{
		{"short data", chunkBytes(ChunkAnimationChannel,
			utils.AsBytes(&animChannelRecord{FirstFrame: 0, LastFrame: 3, VectorLen: 1}),
			utils.AsBytes([]float32{1, 2})),
			func(err error) bool {
				var serr *StructuralInconsistencyError
				return errors.As(err, &serr) && serr.Field == "data" && serr.Expected == 4
			}},
		{"reversed range", chunkBytes(ChunkAnimationChannel,
			utils.AsBytes(&animChannelRecord{FirstFrame: 5, LastFrame: 1, VectorLen: 1})),
			func(err error) bool {
				var serr *StructuralInconsistencyError
				return errors.As(err, &serr) && serr.Constraint == MustBeAtLeast
			}},
		{"channel kind", chunkBytes(ChunkAnimationChannel,
			utils.AsBytes(&animChannelRecord{FirstFrame: 0, LastFrame: 0, VectorLen: 1, Flags: 7}),
			utils.AsBytes([]float32{1})),
			func(err error) bool {
				var eerr *UnrecognizedEnumValueError
				return errors.As(err, &eerr) && eerr.Enum == "AnimationChannelKind" && eerr.Value == 7
			}},
		{"bit channel kind", chunkBytes(ChunkBitChannel,
			utils.AsBytes(&bitChannelRecord{FirstFrame: 0, LastFrame: 0, Flags: 2}), []byte{1}),
			func(err error) bool {
				var eerr *UnrecognizedEnumValueError
				return errors.As(err, &eerr) && eerr.Enum == "BitChannelKind"
			}},
	}

	for _, test := range channelTests {
		data := container(ChunkAnimation, animationHeaderChunk("A", "S", 4), test.channel)
		if _, err := readBytes(data, Options{}); !test.check(err) {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
	}

	// channels need the header to be known first
	data := container(ChunkAnimation, channelTests[0].channel, animationHeaderChunk("A", "S", 4))
	var serr *StructuralInconsistencyError
	if _, err := readBytes(data, Options{}); !errors.As(err, &serr) {
		t.Errorf("channel before header: %v; expected inconsistency", err)
	}
}

func TestReadCompressedAnimation(t *testing.T) {
	header := func(flavor CompressedAnimFlavor) []byte {
		return chunkBytes(ChunkCompressedAnimationHeader, utils.AsBytes(&compressedAnimHeaderRecord{
			Version:       0x40001,
			Name:          name16("RUN"),
			HierarchyName: name16("SKL"),
			NumFrames:     20,
			FrameRate:     15,
			Flavor:        uint16(flavor),
		}))
	}

	timeCoded := container(ChunkCompressedAnimation,
		header(FlavorTimeCoded),
		chunkBytes(ChunkCompressedAnimChannel,
			utils.AsBytes(&struct {
				NumTimeCodes uint32
				Pivot        uint16
				VectorLen    uint8
				Flags        uint8
			}{2, 4, 1, uint8(ChannelZ)}),
			utils.AsBytes([]uint32{0}), utils.AsBytes([]float32{1.5}),
			utils.AsBytes([]uint32{0x80000000 | 10}), utils.AsBytes([]float32{-1.5}),
		),
		chunkBytes(ChunkCompressedBitChannel,
			utils.AsBytes(&struct {
				NumTimeCodes uint32
				Pivot        uint16
				Flags        uint8
				DefaultVal   uint8
			}{2, 4, uint8(BitChannelTimecodedVis), 1}),
			utils.AsBytes([]uint32{0x80000000, 12}),
		),
	)
	adaptive := container(ChunkCompressedAnimation,
		header(FlavorAdaptiveDelta),
		chunkBytes(ChunkCompressedAnimChannel,
			utils.AsBytes(&struct {
				NumFrames uint32
				Pivot     uint16
				VectorLen uint8
				Flags     uint8
				Scale     float32
			}{20, 1, 4, uint8(ChannelQ), 0.25}),
			[]byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
		),
	)

	f, err := readBytes(append(timeCoded, adaptive...), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.CompressedAnimations) != 2 {
		t.Fatalf("len(CompressedAnimations)=%d; expected 2", len(f.CompressedAnimations))
	}

	tc := f.CompressedAnimations[0]
	if tc.Header.Flavor != FlavorTimeCoded || tc.Header.FrameRate != 15 || len(tc.TimeCodedChannels) != 1 {
		t.Fatalf("timecoded animation %s", utils.SDump(tc))
	}
	keys := tc.TimeCodedChannels[0].Keys
	if len(keys) != 2 || keys[1].Frame != 10 || !keys[1].Step || keys[0].Step || keys[1].Values[0] != -1.5 {
		t.Errorf("timecoded keys %+v", keys)
	}
	bits := tc.BitChannels[0]
	if bits.Kind != BitChannelTimecodedVis || !bits.Keys[0].Value || bits.Keys[1].Value || bits.Keys[1].Frame != 12 {
		t.Errorf("timecoded bit channel %+v", bits)
	}

	ad := f.CompressedAnimations[1]
	if len(ad.AdaptiveDeltaChannels) != 1 {
		t.Fatalf("adaptive delta animation %s", utils.SDump(ad))
	}
	if c := ad.AdaptiveDeltaChannels[0]; c.NumFrames != 20 || c.Scale != 0.25 || c.Kind != ChannelQ || len(c.Data) != 9 {
		t.Errorf("adaptive delta channel %+v", c)
	}
}

func TestCompressedAnimationBadFlavor(t *testing.T) {
	data := container(ChunkCompressedAnimation,
		chunkBytes(ChunkCompressedAnimationHeader, utils.AsBytes(&compressedAnimHeaderRecord{Flavor: 2})))
	var eerr *UnrecognizedEnumValueError
	if _, err := readBytes(data, Options{}); !errors.As(err, &eerr) || eerr.Enum != "CompressedAnimFlavor" {
		t.Errorf("flavor 2: %v; expected CompressedAnimFlavor enum error", err)
	}
}
