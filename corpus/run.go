package corpus

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/status"
	"github.com/mogaika/w3d_browser/vfs"
	"github.com/mogaika/w3d_browser/w3d"
)

type Options struct {
	Workers int
	// Skip reports files excluded from checking and why.
	Skip  func(name string) (reason string, skip bool)
	Parse w3d.Options
}

// Result is the outcome of one file.
type Result struct {
	Name       string      `json:"name"`
	Meshes     int         `json:"meshes"`
	Skipped    string      `json:"skipped,omitempty"`
	Error      string      `json:"error,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

func (r *Result) Failed() bool {
	return r.Error != "" || len(r.Violations) != 0
}

type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func Summarize(results []Result) (s Summary) {
	s.Total = len(results)
	for i := range results {
		switch {
		case results[i].Skipped != "":
			s.Skipped++
		case results[i].Failed():
			s.Failed++
		default:
			s.Passed++
		}
	}
	return
}

type job struct {
	name string
	f    vfs.File
}

// Run parses and checks every w3d file below d with a pool of workers.
// Results keep walk order regardless of which worker finished first.
func Run(d vfs.Directory, opts Options) ([]Result, error) {
	var jobs []job
	if err := vfs.Walk(d, func(name string, f vfs.File) error {
		if vfs.HasExt(name, ".w3d") {
			jobs = append(jobs, job{name: name, f: f})
		}
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "[corpus] Failed to list '%s'", d.Name())
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				status.Progress(float32(p)/float32(total), "Checking %d/%d files (%.1f files/sec)",
					p, total, float64(p)/time.Since(start).Seconds())
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = checkJob(jobs[idx], opts)
				processed.Add(1)
			}
		}()
	}
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)
	wg.Wait()
	close(done)

	s := Summarize(results)
	log.Printf("[corpus] %s: %d files, %d passed, %d failed, %d skipped in %v",
		d.Name(), s.Total, s.Passed, s.Failed, s.Skipped, time.Since(start))
	status.Info("Checked %d files: %d passed, %d failed, %d skipped", s.Total, s.Passed, s.Failed, s.Skipped)
	return results, nil
}

func checkJob(j job, opts Options) Result {
	res := Result{Name: j.name}
	if opts.Skip != nil {
		if reason, skip := opts.Skip(j.name); skip {
			// kept out of the reference set without a diagnosis
			log.Printf("[corpus] Warning: skipping '%s': %s", j.name, reason)
			res.Skipped = reason
			return res
		}
	}

	f, err := CheckVfsFile(j.name, j.f, opts.Parse)
	if err != nil {
		log.Printf("[corpus] '%s': %v", j.name, err)
		res.Error = err.Error()
		return res
	}
	res.Meshes = len(f.Meshes)
	res.Violations = CheckFile(f)
	for _, v := range res.Violations {
		log.Printf("[corpus] '%s': %v", j.name, v)
	}
	return res
}

// CheckVfsFile parses a single file element.
func CheckVfsFile(name string, f vfs.File, opts w3d.Options) (*w3d.File, error) {
	r, err := vfs.OpenFileAndGetReader(f)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return w3d.Read(r, name, r.Size(), opts)
}
