package main

import (
	"flag"
	"log"
	"os"

	"github.com/mogaika/w3d_browser/config"
	"github.com/mogaika/w3d_browser/drivers/big"
	"github.com/mogaika/w3d_browser/pack"
	"github.com/mogaika/w3d_browser/vfs"
	"github.com/mogaika/w3d_browser/w3d"
	"github.com/mogaika/w3d_browser/web"
)

func main() {
	var addr, dir, bigpath, cfgpath, encoding string
	var check, noskip, strict, verbose bool
	var workers int
	flag.StringVar(&addr, "i", "", "Address of server (overrides config)")
	flag.StringVar(&dir, "dir", "", "Path to unpacked game files")
	flag.StringVar(&bigpath, "big", "", "Path to .big archive")
	flag.StringVar(&cfgpath, "config", "", "Path to yaml config")
	flag.StringVar(&encoding, "encoding", "", "Charmap of fixed width names (overrides config)")
	flag.BoolVar(&check, "check", false, "Check every w3d file and exit instead of serving")
	flag.BoolVar(&noskip, "noskip", false, "Do not skip files from the config skip list when checking")
	flag.BoolVar(&strict, "strict", false, "Fail on meshes without influences or shade indices")
	flag.BoolVar(&verbose, "v", false, "Log every parsed file")
	flag.IntVar(&workers, "workers", 0, "Check workers count (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if cfgpath != "" {
		var err error
		if cfg, err = config.Load(cfgpath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if encoding != "" {
		cfg.Encoding = encoding
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	cfg.StrictMissingChunks = cfg.StrictMissingChunks || strict
	if err := cfg.Apply(); err != nil {
		log.Fatalf("%v, available: %v", err, config.ListEncodings())
	}

	w3d.HandlerOptions = w3d.Options{
		StrictMissingChunks: cfg.StrictMissingChunks,
		Verbose:             verbose,
	}

	var root vfs.Directory
	if bigpath != "" {
		b, err := big.OpenBigFile(bigpath)
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()
		root = b
	} else if dir != "" {
		root = vfs.NewDirectoryDriver(dir)
	} else {
		flag.PrintDefaults()
		return
	}

	log.Printf("[pack] Registered formats %v", pack.Formats())

	if check {
		if !parseCheck(root, cfg, noskip) {
			os.Exit(1)
		}
		return
	}

	if err := web.StartServer(cfg.Listen, root, cfg, "web"); err != nil {
		log.Fatal(err)
	}
}
