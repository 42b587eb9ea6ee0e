package utils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/voxelsplace/objtool/config"
)

// JobResult is the outcome of one manifest job.
type JobResult struct {
	Output string
	Bytes  int
	Digest uint64
	Err    error
}

// RunAssembleManifest assembles every job of the manifest at path, at most
// cfg.Workers at a time. Results are returned in manifest order. Once ctx is
// done no further jobs start; unstarted jobs report ctx.Err().
// The returned error joins the errors of all failed jobs.
func RunAssembleManifest(ctx context.Context, path string, cfg config.Config) ([]JobResult, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	outs, err := m.OutputPaths(cfg.OutDir)
	if err != nil {
		return nil, err
	}
	save := Saver(cfg.Atomic)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	results := make([]JobResult, len(m.Jobs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, job := range m.Jobs {
		out := outs[i]
		if ctx.Err() != nil {
			results[i] = JobResult{Output: out, Err: ctx.Err()}
			continue
		}
		select {
		case <-ctx.Done():
			results[i] = JobResult{Output: out, Err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, job Job, out string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = runJob(m, job, out, save)
		}(i, job, out)
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Output, r.Err))
		}
	}
	slog.Info("Batch finished", "manifest", path, "jobs", len(results), "failed", len(errs), "took", time.Since(start))
	return results, errors.Join(errs...)
}

func runJob(m *Manifest, job Job, out string, save SaveFunc) JobResult {
	res := JobResult{Output: out}
	f, err := m.Fragments(job)
	if err != nil {
		res.Err = err
		return res
	}
	if err := save(f, out); err != nil {
		res.Err = err
		slog.Error("Failed to assemble OBJ", "path", out, "error", err)
		return res
	}
	res.Bytes = f.Len()
	res.Digest = f.Digest()
	slog.Debug("Assembled OBJ", "path", out, "bytes", res.Bytes)
	return res
}
