package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/measure"
	"pattern-projector/internal/render"
)

// Config holds the shared settings of a batch run.
type Config struct {
	OutputDir   string
	Format      render.Format
	Supersample int
	Workers     int

	// Progress receives a line every couple of seconds. Nil is silent.
	Progress io.Writer
}

// Job is one preview frame to render.
type Job struct {
	Name     string
	Width    int
	Height   int
	Snapshot calibration.Snapshot
	Measure  *measure.Overlay
	// Backdrop is drawn through the snapshot transform when projecting.
	Backdrop *image.NRGBA
}

// Result holds the outcome of rendering one job.
type Result struct {
	Name    string
	Path    string
	Success bool
	Error   string
}

// Run renders all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
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

	return results
}

// Render draws a job at supersample times its size and reduces it back.
func Render(job Job, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	c := render.NewScaledCanvas(job.Width, job.Height, float64(supersample))
	s := job.Snapshot
	if job.Backdrop != nil && !s.Calibrating && s.Ready && !s.Concave {
		c.Warp(job.Backdrop, s.Transform)
	}
	render.Frame(c, s)
	if job.Measure != nil {
		render.Measurements(c, *job.Measure)
	}

	img := c.Image()
	if supersample > 1 {
		img = render.Downsample(img, job.Width, job.Height)
	}
	return img
}

func processJob(cfg Config, job Job) Result {
	outPath := filepath.Join(cfg.OutputDir, job.Name+"."+string(cfg.Format))
	fail := func(err error) Result {
		return Result{Name: job.Name, Path: outPath, Error: err.Error()}
	}
	if job.Width <= 0 || job.Height <= 0 {
		return fail(fmt.Errorf("empty frame %dx%d", job.Width, job.Height))
	}

	img := Render(job, cfg.Supersample)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	if err := render.Encode(f, img, cfg.Format); err != nil {
		return fail(err)
	}
	return Result{Name: job.Name, Path: outPath, Success: true}
}
