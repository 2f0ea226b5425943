// Package selector implements the distributed scoring pipeline: a master
// scheduler that farms voxel chunks out to a fixed pool of workers and
// aggregates per-voxel accuracy records into a global ranking.
package selector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/corticalabs/fcma/internal/core"
	"github.com/corticalabs/fcma/internal/cv"
	"github.com/corticalabs/fcma/internal/norm"
)

const DefaultChunkSize = 100

// ClassifierFactory builds one classifier per worker; classifiers carry
// fitted state, so workers must not share an instance.
type ClassifierFactory func() cv.Classifier

// Selector schedules correlation-based voxel scoring over a worker pool.
// The pool lives for exactly one Run.
type Selector struct {
	dataset    *core.Dataset
	chunkSize  int
	folds      int
	workers    int
	normalizer norm.Normalizer

	// scoreChunk is the per-chunk pipeline; swapped out in tests.
	scoreChunk func(clf cv.Classifier, ch core.Chunk) ([]core.ScoreRecord, error)
}

type Option func(*Selector)

func WithChunkSize(n int) Option {
	return func(s *Selector) { s.chunkSize = n }
}

func WithWorkers(n int) Option {
	return func(s *Selector) { s.workers = n }
}

func WithFolds(n int) Option {
	return func(s *Selector) { s.folds = n }
}

func WithNormalizer(n norm.Normalizer) Option {
	return func(s *Selector) { s.normalizer = n }
}

func New(ds *core.Dataset, opts ...Option) (*Selector, error) {
	if ds == nil {
		return nil, errors.New("selector needs a dataset")
	}
	if ds.Voxels() == 0 {
		return nil, core.ErrZeroVoxels
	}
	s := &Selector{
		dataset:    ds,
		chunkSize:  DefaultChunkSize,
		folds:      2,
		workers:    1,
		normalizer: norm.Accelerated{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", s.chunkSize)
	}
	if s.workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", s.workers)
	}
	if s.folds < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", s.folds)
	}
	s.scoreChunk = s.runPipeline
	return s, nil
}

// Run executes the full selection: fill every worker with one chunk, refill
// reactively as results come back, drain the outstanding results, terminate
// the pool, and rank all voxels by descending accuracy. Equal accuracies
// keep their arrival order.
func (s *Selector) Run(ctx context.Context, newClassifier ClassifierFactory) ([]core.ScoreRecord, error) {
	tasks := make([]chan taskMessage, s.workers)
	// One slot per worker: a worker has at most one outstanding chunk, so
	// neither task sends nor result sends can ever block the other side.
	results := make(chan resultMessage, s.workers)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		tasks[w] = make(chan taskMessage, 1)
		wg.Add(1)
		go s.worker(w, newClassifier(), tasks[w], results, &wg)
	}

	stream := chunkStream{total: s.dataset.Voxels(), size: s.chunkSize}
	collected := make([]core.ScoreRecord, 0, s.dataset.Voxels())
	var runErr error

	// Phase 1: one chunk to each worker, in worker order, until either
	// every worker is busy or the chunks run out.
	active := s.workers
	for w := 0; w < s.workers; w++ {
		ch, ok := stream.next()
		if !ok {
			active = w
			break
		}
		tasks[w] <- taskMessage{tag: workTag, chunk: ch}
	}
	outstanding := active

	// Phase 2: reactive refill, only when every worker got an initial
	// chunk. Whoever finishes first gets the next chunk.
	if active == s.workers {
		for {
			ch, ok := stream.next()
			if !ok {
				break
			}
			res, err := receive(ctx, results)
			if err != nil {
				runErr = err
				break
			}
			outstanding--
			if res.err != nil {
				runErr = res.err
				break
			}
			collected = append(collected, res.records...)
			tasks[res.worker] <- taskMessage{tag: workTag, chunk: ch}
			outstanding++
		}
	}

	// Drain: every worker holding a chunk still owes exactly one result.
	for outstanding > 0 {
		res, err := receive(ctx, results)
		if err != nil {
			if runErr == nil {
				runErr = err
			}
			break
		}
		outstanding--
		if res.err != nil {
			if runErr == nil {
				runErr = res.err
			}
			continue
		}
		collected = append(collected, res.records...)
	}

	// Terminate every worker, including ones that never saw a chunk.
	for w := 0; w < s.workers; w++ {
		tasks[w] <- taskMessage{tag: terminateTag}
	}
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Accuracy > collected[j].Accuracy
	})
	log.Info().
		Int("voxels", len(collected)).
		Int("workers", s.workers).
		Msg("voxel selection complete")
	return collected, nil
}

func receive(ctx context.Context, results <-chan resultMessage) (resultMessage, error) {
	select {
	case res := <-results:
		return res, nil
	case <-ctx.Done():
		return resultMessage{}, ctx.Err()
	}
}

// chunkStream walks the voxel index space in chunkSize steps.
type chunkStream struct {
	total int
	size  int
	pos   int
}

func (c *chunkStream) next() (core.Chunk, bool) {
	if c.pos >= c.total {
		return core.Chunk{}, false
	}
	n := c.size
	if rest := c.total - c.pos; rest < n {
		n = rest
	}
	ch := core.Chunk{Start: c.pos, Count: n}
	c.pos += n
	return ch, true
}
