package w3d

import "fmt"

func enumName(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

func decodeEnum[E ~uint8 | ~uint16 | ~uint32](enum string, names []string, v uint32) (E, error) {
	if int64(v) >= int64(len(names)) {
		return 0, unrecognized(enum, v)
	}
	return E(v), nil
}

type VertexMappingType uint8

const (
	MappingUV VertexMappingType = iota
	MappingEnvironment
	MappingCheapEnvironment
	MappingScreen
	MappingLinearOffset
	MappingSilhouette
	MappingScale
	MappingGrid
	MappingRotate
	MappingSineLinearOffset
	MappingStepLinearOffset
	MappingZigzagLinearOffset
	MappingWSClassicEnv
	MappingWSEnvironment
	MappingGridClassicEnv
	MappingGridEnvironment
	MappingRandom
	MappingEdge
	MappingBumpEnv
)

var vertexMappingNames = []string{
	"UV", "Environment", "CheapEnvironment", "Screen", "LinearOffset", "Silhouette",
	"Scale", "Grid", "Rotate", "SineLinearOffset", "StepLinearOffset", "ZigzagLinearOffset",
	"WSClassicEnv", "WSEnvironment", "GridClassicEnv", "GridEnvironment", "Random", "Edge",
	"BumpEnv",
}

func (m VertexMappingType) String() string               { return enumName(vertexMappingNames, int(m)) }
func (m VertexMappingType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

type TextureAnimType uint16

const (
	TextureAnimLoop TextureAnimType = iota
	TextureAnimPingPong
	TextureAnimOnce
	TextureAnimManual
)

var textureAnimNames = []string{"Loop", "PingPong", "Once", "Manual"}

func (t TextureAnimType) String() string               { return enumName(textureAnimNames, int(t)) }
func (t TextureAnimType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// AnimationChannelKind selects the pivot component a channel drives.
type AnimationChannelKind uint16

const (
	ChannelX AnimationChannelKind = iota
	ChannelY
	ChannelZ
	ChannelXR
	ChannelYR
	ChannelZR
	ChannelQ
)

var channelKindNames = []string{"X", "Y", "Z", "XR", "YR", "ZR", "Q"}

func (k AnimationChannelKind) String() string               { return enumName(channelKindNames, int(k)) }
func (k AnimationChannelKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type BitChannelKind uint16

const (
	BitChannelVis BitChannelKind = iota
	BitChannelTimecodedVis
)

var bitChannelKindNames = []string{"Vis", "TimecodedVis"}

func (k BitChannelKind) String() string               { return enumName(bitChannelKindNames, int(k)) }
func (k BitChannelKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type CompressedAnimFlavor uint16

const (
	FlavorTimeCoded CompressedAnimFlavor = iota
	FlavorAdaptiveDelta
)

var flavorNames = []string{"TimeCoded", "AdaptiveDelta"}

func (f CompressedAnimFlavor) String() string               { return enumName(flavorNames, int(f)) }
func (f CompressedAnimFlavor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

type DepthCompare uint8

var depthCompareNames = []string{
	"PassNever", "PassLess", "PassEqual", "PassLEqual",
	"PassGreater", "PassNotEqual", "PassGEqual", "PassAlways",
}

func (d DepthCompare) String() string               { return enumName(depthCompareNames, int(d)) }
func (d DepthCompare) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type DepthMask uint8

var depthMaskNames = []string{"WriteDisable", "WriteEnable"}

func (d DepthMask) String() string               { return enumName(depthMaskNames, int(d)) }
func (d DepthMask) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type DestBlend uint8

var destBlendNames = []string{
	"Zero", "One", "SrcColor", "OneMinusSrcColor", "SrcAlpha", "OneMinusSrcAlpha", "SrcColorPrefog",
}

func (d DestBlend) String() string               { return enumName(destBlendNames, int(d)) }
func (d DestBlend) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type SrcBlend uint8

var srcBlendNames = []string{"Zero", "One", "SrcAlpha", "OneMinusSrcAlpha"}

func (s SrcBlend) String() string               { return enumName(srcBlendNames, int(s)) }
func (s SrcBlend) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type Texturing uint8

var texturingNames = []string{"Disable", "Enable"}

func (t Texturing) String() string               { return enumName(texturingNames, int(t)) }
func (t Texturing) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

type AlphaTest uint8

var alphaTestNames = []string{"Disable", "Enable"}

func (a AlphaTest) String() string               { return enumName(alphaTestNames, int(a)) }
func (a AlphaTest) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
