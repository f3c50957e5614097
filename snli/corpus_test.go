package snli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aparna-Vijayakumar/match-lstm/config"
)

func buildTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.TrainDataPath = writePartition(t, dir, "train.txt",
		"entailment\t( ( A dog ) ( runs fast ) )\t( ( An animal ) ( moves ) )",
		"-\t( ( dropped ) )\t( ( dropped too ) )",
		"contradiction\t( ( A dog ) ( sleeps ) )\t( ( A dog ) ( runs ) )",
	)
	cfg.ValidDataPath = writePartition(t, dir, "valid.txt",
		"neutral\t( ( A cat ) ( sits ) )\t( ( A pet ) ( naps ) )",
	)
	cfg.TestDataPath = writePartition(t, dir, "test.txt",
		"entailment\t( ( The cat ) ( naps ) )\t( ( The cat ) ( rests ) )",
	)
	cfg.GlovePath = writeGloVe(t, dir,
		"A 1.0 0.0",
		"An 0.0 1.0",
		"dog 2.0 0.0",
		"cat 0.0 2.0",
		"The 1.0 1.0",
		"runs 3.0 3.0",
	)
	cfg.EmbeddingDim = 2
	cfg.WindowSize = 1
	return cfg
}

func TestBuild(t *testing.T) {
	cfg := buildTestConfig(t)

	corpus, err := Build(cfg)
	require.NoError(t, err)

	// partition sizes: retained records only, header and "-" records dropped
	assert.Len(t, corpus.Train, 2)
	assert.Len(t, corpus.Valid, 1)
	assert.Len(t, corpus.Test, 1)

	assert.False(t, corpus.Vocab.Contains("dropped"))
	assert.False(t, corpus.Vocab.Contains("gold_label"))

	// every token of every loaded example has an embedding entry
	partitions := [][]Example{corpus.Train, corpus.Valid, corpus.Test}
	for _, partition := range partitions {
		for _, example := range partition {
			for _, w := range append(example.Premise, example.Hypothesis...) {
				assert.True(t, corpus.Vocab.Contains(w), "vocabulary should contain %q", w)
				assert.True(t, corpus.Embeddings.Contains(w), "embedding table should cover %q", w)
			}
		}
	}

	// an unseen word with covered neighbors gets their mean: "fast" follows
	// "runs" [3,3] in the train premise, its only in-window covered neighbor
	fast, err := corpus.Embeddings.Vector("fast")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 3}, fast)
}

func TestBuildIdempotent(t *testing.T) {
	cfg := buildTestConfig(t)

	first, err := Build(cfg)
	require.NoError(t, err)
	second, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Vocab.Words(), second.Vocab.Words())
	assert.Equal(t, first.Embeddings.Vectors, second.Embeddings.Vectors)
	assert.Equal(t, first.Train, second.Train)
	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Test, second.Test)
}

func TestBuildMissingPartition(t *testing.T) {
	cfg := buildTestConfig(t)
	cfg.TestDataPath = cfg.TestDataPath + ".missing"

	_, err := Build(cfg)
	require.Error(t, err)
}

func TestBuildUnknownLabelFailsFile(t *testing.T) {
	cfg := buildTestConfig(t)
	dir := t.TempDir()
	cfg.TrainDataPath = writePartition(t, dir, "train.txt",
		"maybe\t( ( A dog ) ( runs ) )\t( ( An animal ) ( moves ) )",
	)

	_, err := Build(cfg)
	require.ErrorIs(t, err, ErrUnknownLabel)
}
