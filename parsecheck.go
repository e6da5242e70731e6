package main

import (
	"log"

	"github.com/mogaika/w3d_browser/config"
	"github.com/mogaika/w3d_browser/corpus"
	"github.com/mogaika/w3d_browser/vfs"
	"github.com/mogaika/w3d_browser/w3d"
)

// parseCheck runs the conformance checker over rootfs and logs failures.
func parseCheck(rootfs vfs.Directory, cfg *config.Config, noskip bool) bool {
	opts := corpus.Options{
		Workers: cfg.Workers,
		Parse:   w3d.HandlerOptions,
	}
	if !noskip {
		opts.Skip = cfg.SkipReason
	}

	results, err := corpus.Run(rootfs, opts)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		if r.Error != "" {
			log.Printf("FAIL %s: %s", r.Name, r.Error)
		}
		for _, v := range r.Violations {
			log.Printf("FAIL %s: %v", r.Name, v)
		}
	}
	s := corpus.Summarize(results)
	log.Printf("%d files: %d passed, %d failed, %d skipped", s.Total, s.Passed, s.Failed, s.Skipped)
	return s.Failed == 0
}
