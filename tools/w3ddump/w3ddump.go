package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mogaika/w3d_browser/config"
	"github.com/mogaika/w3d_browser/drivers/big"
	"github.com/mogaika/w3d_browser/utils"
	"github.com/mogaika/w3d_browser/vfs"
	"github.com/mogaika/w3d_browser/w3d"
)

func summary(name string, f *w3d.File) {
	fmt.Printf("%s\n", name)
	for _, m := range f.Meshes {
		passes := 0
		if m.MaterialInfo != nil {
			passes = int(m.MaterialInfo.PassCount)
		}
		fmt.Printf("  mesh %-32s v%v verts %5d tris %5d materials %2d textures %2d passes %d\n",
			m.Header.FullName(), m.Header.Version, len(m.Vertices), len(m.Triangles),
			len(m.Materials), len(m.Textures), passes)
		for _, typ := range w3d.PrelitChunks {
			if set := m.Prelit.Get(typ); set != nil {
				fmt.Printf("    %v materials %2d textures %2d passes %d\n",
					typ, len(set.Materials), len(set.Textures), len(set.MaterialPasses))
			}
		}
		lo, hi := m.BoundingBox()
		fmt.Printf("    bounds %v - %v center %v\n", lo, hi, m.Center())
		for _, t := range m.Textures {
			fmt.Printf("    texture %s\n", t.Name)
		}
	}
	for _, h := range f.Hierarchies {
		fmt.Printf("  hierarchy %s pivots %d\n", h.Header.Name, len(h.Pivots))
	}
	for _, a := range f.Animations {
		fmt.Printf("  animation %s of %s frames %d channels %d\n",
			a.Header.Name, a.Header.HierarchyName, a.Header.NumFrames, len(a.Channels)+len(a.BitChannels))
	}
	for _, a := range f.CompressedAnimations {
		fmt.Printf("  compressed animation %s of %s frames %d flavor %v\n",
			a.Header.Name, a.Header.HierarchyName, a.Header.NumFrames, a.Header.Flavor)
	}
	for _, h := range f.HLods {
		fmt.Printf("  hlod %s lods %d\n", h.Header.Name, len(h.Lods))
	}
	for _, b := range f.Boxes {
		fmt.Printf("  box %s %v - %v\n", b.Name, b.Min(), b.Max())
	}
	for _, s := range f.Skipped {
		fmt.Printf("  skipped %v at 0x%x (%d bytes)\n", s.Type, s.Offset, s.Size)
	}
}

func meshDetail(m *w3d.Mesh) {
	fmt.Printf("mesh %s\n", m.Header.FullName())
	for _, mat := range m.Materials {
		if mat.Info == nil {
			fmt.Printf("  material %s\n", mat.Name)
			continue
		}
		fmt.Printf("  material %-16s diffuse %v opacity %v\n",
			mat.Name, mat.Info.Diffuse.Vec3(), mat.Info.Opacity)
	}
	for i, p := range m.MaterialPasses {
		fmt.Printf("  pass %d stages %d vertex colors %v\n", i, len(p.TextureStages), p.DCG != nil)
	}
}

func main() {
	var bigpath, encoding, meshName string
	var dump, strict bool
	flag.StringVar(&bigpath, "big", "", "Treat arguments as entries of this .big archive")
	flag.StringVar(&encoding, "encoding", "", "Charmap of fixed width names")
	flag.StringVar(&meshName, "mesh", "", "Print materials of the named mesh only")
	flag.BoolVar(&dump, "dump", false, "Print every parsed field instead of a summary")
	flag.BoolVar(&strict, "strict", false, "Fail on meshes without influences or shade indices")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: w3ddump [flags] file.w3d...\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}
	opts := w3d.Options{StrictMissingChunks: strict}

	var archive *big.Big
	if bigpath != "" {
		var err error
		if archive, err = big.OpenBigFile(bigpath); err != nil {
			log.Fatal(err)
		}
		defer archive.Close()
	}

	failed := false
	for _, name := range flag.Args() {
		var f *w3d.File
		var err error
		if archive != nil {
			var vf vfs.File
			if vf, err = vfs.DirectoryGetFile(archive, name); err == nil {
				f, err = readEntry(name, vf, opts)
			}
		} else {
			f, err = w3d.ReadFile(name, opts)
		}
		if err != nil {
			log.Printf("%v", err)
			failed = true
			continue
		}
		if meshName != "" {
			m := f.MeshByName(meshName)
			if m == nil {
				log.Printf("%s: no mesh %q", name, meshName)
				failed = true
				continue
			}
			meshDetail(m)
		} else if dump {
			utils.Dump(f)
		} else {
			summary(name, f)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func readEntry(name string, vf vfs.File, opts w3d.Options) (*w3d.File, error) {
	r, err := vfs.OpenFileAndGetReader(vf)
	if err != nil {
		return nil, err
	}
	defer vf.Close()
	return w3d.Read(r, name, r.Size(), opts)
}
