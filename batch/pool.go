// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch supplies the external parallelization the core engine
// explicitly allows but does not perform itself: a worker pool that
// calls baseline.Compat.ComputeBaseline concurrently across many feature
// jobs, relying on Compat's internally synchronized caches to make that
// safe.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/saberrg/webcompat-baseline/baseline"
)

// FeatureJob is one unit of work: a feature identifier and the selector
// to compute its Baseline status from.
type FeatureJob struct {
	ID       string
	Selector baseline.FeatureSelector
}

// Result is one FeatureJob's outcome. Err is non-nil iff Status is the
// zero value.
type Result struct {
	ID     string
	Status baseline.BaselineStatus
	Err    error
}

// Pool runs FeatureJobs against a shared *baseline.Compat across a fixed
// number of workers.
type Pool struct {
	logger *slog.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger overrides the *slog.Logger used for the pool's batch-level
// logging. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// NewPool returns a Pool ready to Run batches of jobs.
func NewPool(opts ...Option) *Pool {
	p := &Pool{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run computes jobs against compat using numWorkers goroutines and
// returns one Result per job, in the same order jobs were given. It
// blocks until every job has a Result; once ctx is canceled, jobs that
// have not started yet get ctx.Err() as their Err instead of running.
func (p *Pool) Run(ctx context.Context, compat *baseline.Compat, jobs []FeatureJob, numWorkers int) []Result {
	results := make([]Result, len(jobs))
	jobsChan := make(chan int)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go p.work(ctx, compat, jobs, results, jobsChan, &wg)
	}

	go func() {
		defer close(jobsChan)
		for i := range jobs {
			jobsChan <- i
		}
	}()

	wg.Wait()
	p.logger.Info("batch finished", "job count", len(jobs))

	return results
}

func (p *Pool) work(ctx context.Context, compat *baseline.Compat, jobs []FeatureJob, results []Result, indices <-chan int, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range indices {
		if ctx.Err() != nil {
			results[i] = Result{ID: jobs[i].ID, Err: ctx.Err()}

			continue
		}

		status, err := compat.ComputeBaseline(jobs[i].Selector)
		results[i] = Result{ID: jobs[i].ID, Status: status, Err: err}
	}
}
