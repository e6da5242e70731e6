package w3d

import "github.com/mogaika/w3d_browser/w3d/chunk"

const shaderSize = 16

// Shader is the fixed function state of one pass. Fields the reader
// does not interpret are kept as raw bytes.
type Shader struct {
	DepthCompare        DepthCompare
	DepthMask           DepthMask
	ColorMask           uint8
	DestBlend           DestBlend
	FogFunc             uint8
	PriGradient         uint8
	SecGradient         uint8
	SrcBlend            SrcBlend
	Texturing           Texturing
	DetailColorFunc     uint8
	DetailAlphaFunc     uint8
	ShaderPreset        uint8
	AlphaTest           AlphaTest
	PostDetailColorFunc uint8
	PostDetailAlphaFunc uint8
}

func decodeShader(b chunk.Block) (s Shader, err error) {
	if s.DepthCompare, err = decodeEnum[DepthCompare]("DepthCompare", depthCompareNames, uint32(b[0])); err != nil {
		return
	}
	if s.DepthMask, err = decodeEnum[DepthMask]("DepthMask", depthMaskNames, uint32(b[1])); err != nil {
		return
	}
	if s.DestBlend, err = decodeEnum[DestBlend]("DestBlend", destBlendNames, uint32(b[3])); err != nil {
		return
	}
	if s.SrcBlend, err = decodeEnum[SrcBlend]("SrcBlend", srcBlendNames, uint32(b[7])); err != nil {
		return
	}
	if s.Texturing, err = decodeEnum[Texturing]("Texturing", texturingNames, uint32(b[8])); err != nil {
		return
	}
	if s.AlphaTest, err = decodeEnum[AlphaTest]("AlphaTest", alphaTestNames, uint32(b[12])); err != nil {
		return
	}
	s.ColorMask = b[2]
	s.FogFunc = b[4]
	s.PriGradient = b[5]
	s.SecGradient = b[6]
	s.DetailColorFunc = b[9]
	s.DetailAlphaFunc = b[10]
	s.ShaderPreset = b[11]
	s.PostDetailColorFunc = b[13]
	s.PostDetailAlphaFunc = b[14]
	return
}

func parseShaders(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
	shaders, err := readRecords(r, shaderSize, decodeShader)
	if err != nil {
		return err
	}
	b.set.Shaders = shaders
	return nil
}
