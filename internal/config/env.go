// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	SelectorEnvConfig
	DataEnvConfig
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SelectorEnvConfig holds the scheduling and scoring knobs of one selection
// run.
type SelectorEnvConfig struct {
	ChunkSize   int     `env:"CHUNK_SIZE" envDefault:"100"`
	FoldCount   int     `env:"FOLD_COUNT" envDefault:"4"`
	WorkerCount int     `env:"WORKER_COUNT" envDefault:"4"`
	RidgeLambda float64 `env:"RIDGE_LAMBDA" envDefault:"1.0"`
	TopK        int     `env:"TOP_K" envDefault:"10"`
	ResultsFile string  `env:"RESULTS_FILE" envDefault:"voxel_scores.json.gz"`
}

// DataEnvConfig describes the synthetic dataset shape used by the demo
// driver.
type DataEnvConfig struct {
	Subjects         int    `env:"SUBJECTS" envDefault:"4"`
	EpochsPerSubject int    `env:"EPOCHS_PER_SUBJECT" envDefault:"8"`
	EpochLength      int    `env:"EPOCH_LENGTH" envDefault:"16"`
	VoxelCount       int    `env:"VOXEL_COUNT" envDefault:"256"`
	Seed             uint64 `env:"SEED" envDefault:"42"`
}
