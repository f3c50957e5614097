package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Aparna-Vijayakumar/match-lstm/api"
	"github.com/Aparna-Vijayakumar/match-lstm/config"
	"github.com/Aparna-Vijayakumar/match-lstm/snli"
)

func main() {
	// load the environment variables
	_ = godotenv.Load()

	// parse the command line arguments
	cfg, iterate, serve := parseFlags()

	// Initialize logging
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	corpus, err := loadOrBuild(cfg)
	if err != nil {
		log.Fatal("Failed to prepare corpus: ", err)
	}

	if iterate {
		iterateTrain(corpus, cfg)
	}

	if !serve {
		return
	}

	// Create and start diagnostics server
	apiServer := api.NewServer(corpus)
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Info("Starting diagnostics server on ", addr)
		if err := apiServer.Start(addr); err != nil {
			log.Fatal("Failed to start diagnostics server: ", err)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	log.Info("Shutting down...")
}

/*
loadOrBuild loads the snapshot when one exists, otherwise builds the corpus
from the raw SNLI and GloVe files and saves it for the next run.
*/
func loadOrBuild(cfg *config.Config) (*snli.Corpus, error) {
	snapshot := snli.NewSnapshot(cfg.SnapshotPath)

	if snapshot.Exists() {
		log.Info("Loading snapshot from ", cfg.SnapshotPath)
		return snapshot.Load()
	}

	corpus, err := snli.Build(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("Saving snapshot to ", cfg.SnapshotPath)
	if err := snapshot.Save(corpus); err != nil {
		return nil, err
	}

	return corpus, nil
}

/*
iterateTrain runs one epoch over the train loader and logs batch counts,
a smoke test of the collation path.
*/
func iterateTrain(corpus *snli.Corpus, cfg *config.Config) {
	dataset := snli.NewDataset(corpus.Train)
	loader := snli.NewLoader(dataset, corpus.Vocab, cfg.Loader, cfg.Seed)

	total := loader.NumBatches()
	count := 0
	for batch := range loader.Batches() {
		count++
		if count%100 == 0 || count == total {
			log.WithFields(log.Fields{
				"batch":   count,
				"of":      total,
				"size":    len(batch.Labels),
				"seq_len": seqLen(batch),
			}).Info("train batch")
		}
	}
}

func seqLen(batch snli.Batch) int {
	if len(batch.Premises) == 0 {
		return 0
	}
	return len(batch.Premises[0])
}

func parseFlags() (*config.Config, bool, bool) {
	// Load default config
	cfg, err := config.LoadFromFile("./config.json")
	if err != nil {
		cfg, _ = config.LoadFromEnv()
	}

	// Data path flags
	flag.StringVar(&cfg.TrainDataPath, "train-data-path", cfg.TrainDataPath, "Path to the SNLI train partition")
	flag.StringVar(&cfg.ValidDataPath, "valid-data-path", cfg.ValidDataPath, "Path to the SNLI dev partition")
	flag.StringVar(&cfg.TestDataPath, "test-data-path", cfg.TestDataPath, "Path to the SNLI test partition")
	flag.StringVar(&cfg.GlovePath, "glove-path", cfg.GlovePath, "Path to the pretrained GloVe file")
	flag.StringVar(&cfg.SnapshotPath, "snapshot-path", cfg.SnapshotPath, "Directory for the corpus snapshot")

	// Pipeline flags
	flag.IntVar(&cfg.EmbeddingDim, "embedding-dim", cfg.EmbeddingDim, "Word vector width")
	flag.IntVar(&cfg.WindowSize, "window-size", cfg.WindowSize, "Context radius for unseen word approximation")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for shuffling reproducibility")

	// Loader flags
	flag.IntVar(&cfg.Loader.BatchSize, "batch-size", cfg.Loader.BatchSize, "Batch size")
	flag.IntVar(&cfg.Loader.NumWorkers, "num-workers", cfg.Loader.NumWorkers, "Number of collation workers")
	flag.BoolVar(&cfg.Loader.Shuffle, "shuffle", cfg.Loader.Shuffle, "Shuffle the train partition each epoch")

	// Server flags
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Diagnostics server host")
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Diagnostics server port")

	// Log level flag
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")

	// Mode flags
	iterate := flag.Bool("iterate", false, "Iterate one epoch of the train loader after building")
	serve := flag.Bool("serve", false, "Serve corpus diagnostics over HTTP after building")

	// Parse flags
	flag.Parse()

	return cfg, *iterate, *serve
}
