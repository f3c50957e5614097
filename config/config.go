package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

/*
Config is the configuration for the data preparation pipeline.

Contains the locations of the three SNLI partition files, the pretrained
GloVe file, the snapshot directory, and the knobs of the unseen-word
approximation and the batch loader.
*/
type Config struct {
	TrainDataPath string `json:"train_data_path"`
	ValidDataPath string `json:"valid_data_path"`
	TestDataPath  string `json:"test_data_path"`

	// path to the pretrained word vector file (text format, one word per line)
	GlovePath string `json:"glove_path"`

	// directory holding the serialized snapshot of the built corpus
	SnapshotPath string `json:"snapshot_path"`

	// width of every word vector, pretrained and synthesized
	EmbeddingDim int `json:"embedding_dim"`

	// context radius used to approximate embeddings of unseen words
	WindowSize int `json:"window_size"`

	// size of the label enumeration; SNLI is a 3-way classification
	NumClasses int `json:"num_classes"`

	// seed for shuffling reproducibility
	Seed int64 `json:"seed"`

	Loader   LoaderConfig `json:"loader"`
	Server   ServerConfig `json:"server"`
	LogLevel string       `json:"log_level"`
}

/*
LoaderConfig is the configuration for the batch loader.
*/
type LoaderConfig struct {
	BatchSize int `json:"batch_size"`
	// number of goroutines collating batches
	NumWorkers int `json:"num_workers"`
	// shuffle example order each epoch (train partition only, by convention)
	Shuffle bool `json:"shuffle"`
}

/*
ServerConfig is the configuration for the diagnostics server.
*/
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

/*
Default config
*/
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		TrainDataPath: "./data/snli_1.0_train.txt",
		ValidDataPath: "./data/snli_1.0_dev.txt",
		TestDataPath:  "./data/snli_1.0_test.txt",
		GlovePath:     filepath.Join(home, "common", "glove", "glove.840B.300d.txt"),
		SnapshotPath:  "./data/snli_snapshot",
		EmbeddingDim:  300,
		WindowSize:    4,
		NumClasses:    3,
		Seed:          2018,
		Loader: LoaderConfig{
			BatchSize:  32,
			NumWorkers: 4,
			Shuffle:    true,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		LogLevel: "info",
	}
}

/*
LoadFromFile loads the configuration from a JSON file.
*/
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

/*
LoadFromEnv loads the configuration from the environment variables.
*/
func LoadFromEnv() (*Config, error) {
	config := DefaultConfig()

	if path := os.Getenv("SNLI_TRAIN_DATA_PATH"); path != "" {
		config.TrainDataPath = path
	}

	if path := os.Getenv("SNLI_VALID_DATA_PATH"); path != "" {
		config.ValidDataPath = path
	}

	if path := os.Getenv("SNLI_TEST_DATA_PATH"); path != "" {
		config.TestDataPath = path
	}

	if path := os.Getenv("SNLI_GLOVE_PATH"); path != "" {
		config.GlovePath = path
	}

	if path := os.Getenv("SNLI_SNAPSHOT_PATH"); path != "" {
		config.SnapshotPath = path
	}

	if dimStr := os.Getenv("SNLI_EMBEDDING_DIM"); dimStr != "" {
		if dim, err := strconv.Atoi(dimStr); err == nil {
			config.EmbeddingDim = dim
		}
	}

	if windowStr := os.Getenv("SNLI_WINDOW_SIZE"); windowStr != "" {
		if window, err := strconv.Atoi(windowStr); err == nil {
			config.WindowSize = window
		}
	}

	if seedStr := os.Getenv("SNLI_SEED"); seedStr != "" {
		if seed, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
			config.Seed = seed
		}
	}

	if batchStr := os.Getenv("SNLI_BATCH_SIZE"); batchStr != "" {
		if batch, err := strconv.Atoi(batchStr); err == nil {
			config.Loader.BatchSize = batch
		}
	}

	if workersStr := os.Getenv("SNLI_NUM_WORKERS"); workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil {
			config.Loader.NumWorkers = workers
		}
	}

	if shuffleStr := os.Getenv("SNLI_SHUFFLE"); shuffleStr != "" {
		if shuffle, err := strconv.ParseBool(shuffleStr); err == nil {
			config.Loader.Shuffle = shuffle
		}
	}

	if host := os.Getenv("SNLI_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("SNLI_PORT"); port != "" {
		config.Server.Port = port
	}

	if level := os.Getenv("SNLI_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	return config, nil
}

/*
Validate checks if the configuration is valid
*/
func (c *Config) Validate() error {
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("invalid embedding dimension: %d", c.EmbeddingDim)
	}
	if c.WindowSize < 0 {
		return fmt.Errorf("invalid window size: %d", c.WindowSize)
	}
	if c.NumClasses != 3 {
		return fmt.Errorf("invalid number of classes: %d (the label set is fixed at 3)", c.NumClasses)
	}
	if c.Loader.BatchSize <= 0 {
		return fmt.Errorf("invalid batch size: %d", c.Loader.BatchSize)
	}
	if c.Loader.NumWorkers < 1 {
		return fmt.Errorf("invalid number of workers: %d", c.Loader.NumWorkers)
	}
	return nil
}
