package texpack

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Material pairs a material name with its shading graph, the unit of work
// for batch packing.
type Material struct {
	Name  string
	Graph Graph
}

// Result is the outcome of packing a single material within a batch.
type Result struct {
	Material string
	Files    []string
	Err      error
}

// BatchReport collects per-material results of a PackAll call, in input
// order.
type BatchReport struct {
	Results []Result
}

// Packed returns how many materials packed without error.
func (r *BatchReport) Packed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns how many materials failed to pack.
func (r *BatchReport) Failed() int {
	return len(r.Results) - r.Packed()
}

// Files returns every file written by the batch, in input order.
func (r *BatchReport) Files() []string {
	var files []string
	for _, res := range r.Results {
		files = append(files, res.Files...)
	}
	return files
}

// Err joins the errors of all failed materials, or returns nil when the
// whole batch packed cleanly.
func (r *BatchReport) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// PackAll packs a set of materials concurrently and reports per-material
// outcomes. One material failing does not stop the others; materials with
// distinct names never contend on output files, so the only shared state is
// the worker pool itself.
func (p *Packer) PackAll(materials []Material, resolution int) *BatchReport {
	report := &BatchReport{Results: make([]Result, len(materials))}
	if len(materials) == 0 {
		return report
	}

	workers := p.workers
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}

	// The queue holds the whole batch so SubmitTask never blocks; workers
	// exit on idle timeout once the batch drains. A WaitGroup provides the
	// completion barrier.
	pool := worker.NewDynamicWorkerPool(workers, len(materials), 1*time.Second)
	var wg sync.WaitGroup
	for i, mat := range materials {
		wg.Add(1)
		idx, m := i, mat
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				files, err := p.Pack(m.Graph, m.Name, resolution)
				report.Results[idx] = Result{Material: m.Name, Files: files, Err: err}
				return nil, nil
			},
		})
	}
	wg.Wait()

	Logger().Info("texpack: batch finished",
		"materials", len(materials),
		"packed", report.Packed(),
		"failed", report.Failed())
	return report
}
