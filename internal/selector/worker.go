package selector

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/corticalabs/fcma/internal/core"
	"github.com/corticalabs/fcma/internal/corr"
	"github.com/corticalabs/fcma/internal/cv"
	"github.com/corticalabs/fcma/internal/utils/logger"
)

type messageTag int

const (
	workTag messageTag = iota
	terminateTag
)

// taskMessage is the master-to-worker message: a chunk to process, or a
// termination signal.
type taskMessage struct {
	tag   messageTag
	chunk core.Chunk
}

// resultMessage is the worker-to-master message: one chunk's score records,
// or the error that aborted the chunk.
type resultMessage struct {
	worker  int
	records []core.ScoreRecord
	err     error
}

// worker receives tasks until terminated, holding at most one outstanding
// chunk and doing no work while idle.
func (s *Selector) worker(id int, clf cv.Classifier, tasks <-chan taskMessage, results chan<- resultMessage, wg *sync.WaitGroup) {
	defer wg.Done()
	for msg := range tasks {
		if msg.tag == terminateTag {
			return
		}
		records, err := s.scoreChunk(clf, msg.chunk)
		results <- resultMessage{worker: id, records: records, err: err}
	}
}

// runPipeline is the per-chunk compute pipeline: correlation tensor build,
// in-place normalization, cross-validated scoring.
func (s *Selector) runPipeline(clf cv.Classifier, ch core.Chunk) ([]core.ScoreRecord, error) {
	started := time.Now()
	t := corr.Build(s.dataset, ch)
	s.normalizer.Normalize(t, s.dataset.EpochsPerSubject)
	records, err := cv.Score(t, s.dataset.Labels, s.folds, clf)
	if err != nil {
		log.Error().Err(err).Int("start", ch.Start).Int("count", ch.Count).Msg("chunk scoring failed")
		return nil, err
	}
	logger.Sugar().Debugw("chunk scored",
		"task", ch.Start/s.chunkSize,
		"start", ch.Start,
		"count", ch.Count,
		"elapsed", time.Since(started),
	)
	return records, nil
}
