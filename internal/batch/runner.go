// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch processes a stream of raw record lines through the engine
// with a fixed pool of workers. Records are independent and the engine is
// stateless, so workers share nothing mutable; the only synchronization is
// the job and result channels. A malformed record is skipped and counted
// without disturbing the rest of the batch.
package batch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"origin-scan/internal/detector"
	"origin-scan/internal/engine"
	"origin-scan/internal/observability"
	"origin-scan/internal/schema"
)

// Summary reports end-of-batch counts. It is always produced, even for a
// clean run, so data quality stays visible.
type Summary struct {
	TotalLines            int            `json:"total_lines"`
	Matched               int            `json:"matched"`
	NonMatchDeterminate   int            `json:"non_match_determinate"`
	NonMatchIndeterminate int            `json:"non_match_indeterminate"`
	SkippedMalformed      int            `json:"skipped_malformed"`
	ByDetectionType       map[string]int `json:"by_detection_type"`
	Duration              time.Duration  `json:"duration_ms"`
	WorkerCount           int            `json:"worker_count"`
}

// VerdictSink receives each verdict as it is produced. Verdicts arrive in
// completion order, not input order; LineNumber identifies the source row.
type VerdictSink func(detector.Verdict)

// SkipLogger receives each malformed-record skip for diagnostics.
type SkipLogger func(err *schema.MalformedRecordError)

// Runner drives one batch through the engine.
type Runner struct {
	engine   *engine.Engine
	adapter  *schema.Adapter
	workers  int
	observer *observability.StandardObserver
	onSkip   SkipLogger
}

type job struct {
	lineNumber int
	line       string
}

type result struct {
	verdict detector.Verdict
	skip    *schema.MalformedRecordError
}

// NewRunner builds a runner. workers <= 0 selects NumCPU, capped at 8 so a
// large host does not oversubscribe shared batch machines.
func NewRunner(eng *engine.Engine, adapter *schema.Adapter, workers int, observer *observability.StandardObserver) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	return &Runner{engine: eng, adapter: adapter, workers: workers, observer: observer}
}

// SetSkipLogger installs a callback for malformed-record skips.
func (r *Runner) SetSkipLogger(fn SkipLogger) { r.onSkip = fn }

// Run streams lines from in, evaluating each record on the worker pool and
// handing every verdict to sink. Cancellation is cooperative: workers check
// ctx between records, and no partial-record state needs unwinding because
// each evaluation is atomic and side-effect-free.
func (r *Runner) Run(ctx context.Context, in io.Reader, sink VerdictSink) (*Summary, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if r.observer != nil {
		finishTiming = r.observer.StartTiming("batch_runner", "run", r.adapter.Variant().Name)
	}

	jobs := make(chan job, r.workers*2)
	results := make(chan result, r.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, jobs, results)
		}()
	}

	var readErr error
	go func() {
		defer close(jobs)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			select {
			case jobs <- job{lineNumber: lineNumber, line: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		readErr = scanner.Err()
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{
		ByDetectionType: make(map[string]int),
		WorkerCount:     r.workers,
	}

	for res := range results {
		summary.TotalLines++
		if res.skip != nil {
			summary.SkippedMalformed++
			if r.onSkip != nil {
				r.onSkip(res.skip)
			}
			continue
		}

		v := res.verdict
		switch {
		case v.IsMatch:
			summary.Matched++
			for _, t := range v.DetectionTypes {
				summary.ByDetectionType[t]++
			}
		case v.DataQualityFlag == detector.QualityIndeterminate:
			summary.NonMatchIndeterminate++
		default:
			summary.NonMatchDeterminate++
		}

		if sink != nil {
			sink(v)
		}
	}

	summary.Duration = time.Since(start)

	if finishTiming != nil {
		finishTiming(readErr == nil && ctx.Err() == nil, map[string]interface{}{
			"total_lines":       summary.TotalLines,
			"matched":           summary.Matched,
			"skipped_malformed": summary.SkippedMalformed,
			"worker_count":      summary.WorkerCount,
		})
	}

	if ctx.Err() != nil {
		return summary, ctx.Err()
	}
	if readErr != nil {
		return summary, readErr
	}
	return summary, nil
}

// worker adapts and evaluates records until the job channel closes or the
// context is cancelled.
func (r *Runner) worker(ctx context.Context, jobs <-chan job, results chan<- result) {
	for j := range jobs {
		if ctx.Err() != nil {
			return
		}

		rec, err := r.adapter.Adapt(j.lineNumber, j.line)
		if err != nil {
			var malformed *schema.MalformedRecordError
			if errors.As(err, &malformed) {
				select {
				case results <- result{skip: malformed}:
				case <-ctx.Done():
					return
				}
				continue
			}
			// Adapt only returns MalformedRecordError today; anything else
			// would be a programming error worth surfacing loudly.
			panic(err)
		}

		select {
		case results <- result{verdict: r.engine.Evaluate(rec)}:
		case <-ctx.Done():
			return
		}
	}
}
