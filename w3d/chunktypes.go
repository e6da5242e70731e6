package w3d

import "fmt"

type ChunkType uint32

const (
	ChunkMesh                      ChunkType = 0x00000000
	ChunkVertices                  ChunkType = 0x00000002
	ChunkVertexNormals             ChunkType = 0x00000003
	ChunkMeshUserText              ChunkType = 0x0000000C
	ChunkVertexInfluences          ChunkType = 0x0000000E
	ChunkMeshHeader3               ChunkType = 0x0000001F
	ChunkTriangles                 ChunkType = 0x00000020
	ChunkVertexShadeIndices        ChunkType = 0x00000022
	ChunkPrelitUnlit               ChunkType = 0x00000023
	ChunkPrelitVertex              ChunkType = 0x00000024
	ChunkPrelitLightmapMultiPass   ChunkType = 0x00000025
	ChunkPrelitLightmapMultiTex    ChunkType = 0x00000026
	ChunkMaterialInfo              ChunkType = 0x00000028
	ChunkShaders                   ChunkType = 0x00000029
	ChunkVertexMaterials           ChunkType = 0x0000002A
	ChunkVertexMaterial            ChunkType = 0x0000002B
	ChunkVertexMaterialName        ChunkType = 0x0000002C
	ChunkVertexMaterialInfo        ChunkType = 0x0000002D
	ChunkVertexMapperArgs0         ChunkType = 0x0000002E
	ChunkVertexMapperArgs1         ChunkType = 0x0000002F
	ChunkTextures                  ChunkType = 0x00000030
	ChunkTexture                   ChunkType = 0x00000031
	ChunkTextureName               ChunkType = 0x00000032
	ChunkTextureInfo               ChunkType = 0x00000033
	ChunkMaterialPass              ChunkType = 0x00000038
	ChunkVertexMaterialIds         ChunkType = 0x00000039
	ChunkShaderIds                 ChunkType = 0x0000003A
	ChunkDCG                       ChunkType = 0x0000003B
	ChunkDIG                       ChunkType = 0x0000003C
	ChunkSCG                       ChunkType = 0x0000003E
	ChunkTextureStage              ChunkType = 0x00000048
	ChunkTextureIds                ChunkType = 0x00000049
	ChunkStageTexCoords            ChunkType = 0x0000004A
	ChunkPerFaceTexCoordIds        ChunkType = 0x0000004B
	ChunkDeform                    ChunkType = 0x00000058
	ChunkPS2Shaders                ChunkType = 0x00000080
	ChunkAABTree                   ChunkType = 0x00000090
	ChunkHierarchy                 ChunkType = 0x00000100
	ChunkHierarchyHeader           ChunkType = 0x00000101
	ChunkPivots                    ChunkType = 0x00000102
	ChunkPivotFixups               ChunkType = 0x00000103
	ChunkAnimation                 ChunkType = 0x00000200
	ChunkAnimationHeader           ChunkType = 0x00000201
	ChunkAnimationChannel          ChunkType = 0x00000202
	ChunkBitChannel                ChunkType = 0x00000203
	ChunkCompressedAnimation       ChunkType = 0x00000280
	ChunkCompressedAnimationHeader ChunkType = 0x00000281
	ChunkCompressedAnimChannel     ChunkType = 0x00000282
	ChunkCompressedBitChannel      ChunkType = 0x00000283
	ChunkMorphAnimation            ChunkType = 0x000002C0
	ChunkHModel                    ChunkType = 0x00000300
	ChunkLODModel                  ChunkType = 0x00000400
	ChunkCollection                ChunkType = 0x00000420
	ChunkPoints                    ChunkType = 0x00000440
	ChunkLight                     ChunkType = 0x00000460
	ChunkEmitter                   ChunkType = 0x00000500
	ChunkAggregate                 ChunkType = 0x00000600
	ChunkHLod                      ChunkType = 0x00000700
	ChunkHLodHeader                ChunkType = 0x00000701
	ChunkHLodLodArray              ChunkType = 0x00000702
	ChunkHLodSubObjectArrayHeader  ChunkType = 0x00000703
	ChunkHLodSubObject             ChunkType = 0x00000704
	ChunkHLodAggregateArray        ChunkType = 0x00000705
	ChunkHLodProxyArray            ChunkType = 0x00000706
	ChunkBox                       ChunkType = 0x00000740
	ChunkSphere                    ChunkType = 0x00000750
	ChunkRing                      ChunkType = 0x00000760
	ChunkNullObject                ChunkType = 0x00000800
	ChunkLightscape                ChunkType = 0x00000802
	ChunkDazzle                    ChunkType = 0x00000900
	ChunkSoundRObj                 ChunkType = 0x00000A00
)

var chunkTypeNames = map[ChunkType]string{
	ChunkMesh:                      "MESH",
	ChunkVertices:                  "VERTICES",
	ChunkVertexNormals:             "VERTEX_NORMALS",
	ChunkMeshUserText:              "MESH_USER_TEXT",
	ChunkVertexInfluences:          "VERTEX_INFLUENCES",
	ChunkMeshHeader3:               "MESH_HEADER3",
	ChunkTriangles:                 "TRIANGLES",
	ChunkVertexShadeIndices:        "VERTEX_SHADE_INDICES",
	ChunkPrelitUnlit:               "PRELIT_UNLIT",
	ChunkPrelitVertex:              "PRELIT_VERTEX",
	ChunkPrelitLightmapMultiPass:   "PRELIT_LIGHTMAP_MULTI_PASS",
	ChunkPrelitLightmapMultiTex:    "PRELIT_LIGHTMAP_MULTI_TEXTURE",
	ChunkMaterialInfo:              "MATERIAL_INFO",
	ChunkShaders:                   "SHADERS",
	ChunkVertexMaterials:           "VERTEX_MATERIALS",
	ChunkVertexMaterial:            "VERTEX_MATERIAL",
	ChunkVertexMaterialName:        "VERTEX_MATERIAL_NAME",
	ChunkVertexMaterialInfo:        "VERTEX_MATERIAL_INFO",
	ChunkVertexMapperArgs0:         "VERTEX_MAPPER_ARGS0",
	ChunkVertexMapperArgs1:         "VERTEX_MAPPER_ARGS1",
	ChunkTextures:                  "TEXTURES",
	ChunkTexture:                   "TEXTURE",
	ChunkTextureName:               "TEXTURE_NAME",
	ChunkTextureInfo:               "TEXTURE_INFO",
	ChunkMaterialPass:              "MATERIAL_PASS",
	ChunkVertexMaterialIds:         "VERTEX_MATERIAL_IDS",
	ChunkShaderIds:                 "SHADER_IDS",
	ChunkDCG:                       "DCG",
	ChunkDIG:                       "DIG",
	ChunkSCG:                       "SCG",
	ChunkTextureStage:              "TEXTURE_STAGE",
	ChunkTextureIds:                "TEXTURE_IDS",
	ChunkStageTexCoords:            "STAGE_TEXCOORDS",
	ChunkPerFaceTexCoordIds:        "PER_FACE_TEXCOORD_IDS",
	ChunkDeform:                    "DEFORM",
	ChunkPS2Shaders:                "PS2_SHADERS",
	ChunkAABTree:                   "AABTREE",
	ChunkHierarchy:                 "HIERARCHY",
	ChunkHierarchyHeader:           "HIERARCHY_HEADER",
	ChunkPivots:                    "PIVOTS",
	ChunkPivotFixups:               "PIVOT_FIXUPS",
	ChunkAnimation:                 "ANIMATION",
	ChunkAnimationHeader:           "ANIMATION_HEADER",
	ChunkAnimationChannel:          "ANIMATION_CHANNEL",
	ChunkBitChannel:                "BIT_CHANNEL",
	ChunkCompressedAnimation:       "COMPRESSED_ANIMATION",
	ChunkCompressedAnimationHeader: "COMPRESSED_ANIMATION_HEADER",
	ChunkCompressedAnimChannel:     "COMPRESSED_ANIMATION_CHANNEL",
	ChunkCompressedBitChannel:      "COMPRESSED_BIT_CHANNEL",
	ChunkMorphAnimation:            "MORPH_ANIMATION",
	ChunkHModel:                    "HMODEL",
	ChunkLODModel:                  "LODMODEL",
	ChunkCollection:                "COLLECTION",
	ChunkPoints:                    "POINTS",
	ChunkLight:                     "LIGHT",
	ChunkEmitter:                   "EMITTER",
	ChunkAggregate:                 "AGGREGATE",
	ChunkHLod:                      "HLOD",
	ChunkHLodHeader:                "HLOD_HEADER",
	ChunkHLodLodArray:              "HLOD_LOD_ARRAY",
	ChunkHLodSubObjectArrayHeader:  "HLOD_SUB_OBJECT_ARRAY_HEADER",
	ChunkHLodSubObject:             "HLOD_SUB_OBJECT",
	ChunkHLodAggregateArray:        "HLOD_AGGREGATE_ARRAY",
	ChunkHLodProxyArray:            "HLOD_PROXY_ARRAY",
	ChunkBox:                       "BOX",
	ChunkSphere:                    "SPHERE",
	ChunkRing:                      "RING",
	ChunkNullObject:                "NULL_OBJECT",
	ChunkLightscape:                "LIGHTSCAPE",
	ChunkDazzle:                    "DAZZLE",
	ChunkSoundRObj:                 "SOUNDROBJ",
}

func (t ChunkType) String() string {
	if name, ok := chunkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("chunk_0x%.8x", uint32(t))
}

func (t ChunkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
