package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/corticalabs/fcma/internal/config"
	"github.com/corticalabs/fcma/internal/core"
	"github.com/corticalabs/fcma/internal/cv"
	"github.com/corticalabs/fcma/internal/selector"
	"github.com/corticalabs/fcma/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ds, err := syntheticDataset(cfg.DataEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dataset")
	}
	log.Info().
		Int("voxels", ds.Voxels()).
		Int("subjects", ds.Subjects()).
		Int("epochs", ds.Epochs()).
		Msg("dataset ready")

	sel, err := selector.New(ds,
		selector.WithChunkSize(cfg.ChunkSize),
		selector.WithWorkers(cfg.WorkerCount),
		selector.WithFolds(cfg.FoldCount),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build selector")
	}

	results, err := sel.Run(context.Background(), func() cv.Classifier {
		return cv.NewKernelRidgeClassifier(cfg.RidgeLambda)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("voxel selection failed")
	}

	topK := cfg.TopK
	if topK > len(results) {
		topK = len(results)
	}
	for rank, rec := range results[:topK] {
		log.Info().
			Int("rank", rank+1).
			Int("voxel", rec.Voxel).
			Float64("accuracy", rec.Accuracy).
			Msg("top voxel")
	}

	if err := writeResults(cfg.ResultsFile, results); err != nil {
		log.Fatal().Err(err).Str("file", cfg.ResultsFile).Msg("failed to write results")
	}
	log.Info().Str("file", cfg.ResultsFile).Int("records", len(results)).Msg("ranking written")
}

// syntheticDataset builds a standardized two-condition dataset where a small
// group of voxels co-activates during condition 1, so their correlation
// profiles separate the conditions.
func syntheticDataset(cfg config.DataEnvConfig) (*core.Dataset, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	informative := cfg.VoxelCount / 8
	if informative < 2 {
		informative = 2
	}

	epochs := cfg.Subjects * cfg.EpochsPerSubject
	matrices := make([]core.ActivityMatrix, 0, epochs)
	labels := make([]int, 0, epochs)
	for e := 0; e < epochs; e++ {
		label := e % 2
		data := make([]float32, cfg.EpochLength*cfg.VoxelCount)
		for i := range data {
			data[i] = float32(rng.NormFloat64())
		}
		if label == 1 {
			for r := 0; r < cfg.EpochLength; r++ {
				latent := float32(rng.NormFloat64()) * 2
				for v := 0; v < informative; v++ {
					data[r*cfg.VoxelCount+v] += latent
				}
			}
		}
		m, err := core.NewActivityMatrix(cfg.EpochLength, cfg.VoxelCount, data)
		if err != nil {
			return nil, err
		}
		matrices = append(matrices, core.StandardizeColumns(m))
		labels = append(labels, label)
	}
	return core.NewDataset(matrices, labels, cfg.EpochsPerSubject)
}

func writeResults(path string, records []core.ScoreRecord) error {
	payload, err := sonic.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(payload); err != nil {
			return err
		}
		return gz.Close()
	}
	_, err = f.Write(payload)
	return err
}
