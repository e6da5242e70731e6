package w3d

import (
	"io"

	"github.com/mogaika/w3d_browser/pack"
	"github.com/mogaika/w3d_browser/utils"
)

// HandlerOptions applies to files loaded through the pack registry.
// Set it before the first pack.GetInstanceHandler call.
var HandlerOptions Options

func init() {
	pack.SetHandler(".W3D", func(src utils.ResourceSource, r *io.SectionReader) (interface{}, error) {
		return Read(r, src.Name(), r.Size(), HandlerOptions)
	})
}
