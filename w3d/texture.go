package w3d

import "github.com/mogaika/w3d_browser/w3d/chunk"

const textureInfoSize = 12

type TextureInfo struct {
	Attributes uint16
	AnimType   TextureAnimType
	FrameCount uint32
	FrameRate  float32
}

type Texture struct {
	Name string
	// nil when the texture chunk has no info
	Info *TextureInfo
}

var textureTable = dispatchTable[Texture]{
	ChunkTextureName: func(p *parser, r *chunk.Reader, t *Texture) (err error) {
		t.Name, err = r.ReadString()
		return err
	},
	ChunkTextureInfo: func(p *parser, r *chunk.Reader, t *Texture) error {
		blk, err := r.ReadBlock(textureInfoSize)
		if err != nil {
			return err
		}
		animType, err := decodeEnum[TextureAnimType]("TextureAnimType", textureAnimNames, uint32(blk.U16(2)))
		if err != nil {
			return err
		}
		t.Info = &TextureInfo{
			Attributes: blk.U16(0),
			AnimType:   animType,
			FrameCount: blk.U32(4),
			FrameRate:  blk.F32(8),
		}
		return nil
	},
}

var texturesTable = dispatchTable[materialSetBuilder]{
	ChunkTexture: func(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
		var t Texture
		if err := dispatch(p, r, textureTable, &t); err != nil {
			return err
		}
		b.set.Textures = append(b.set.Textures, t)
		return checkAtMost(b.entity, "textures", MaxTextures, len(b.set.Textures))
	},
}

func parseTextures(p *parser, r *chunk.Reader, b *materialSetBuilder) error {
	return dispatch(p, r, texturesTable, b)
}
