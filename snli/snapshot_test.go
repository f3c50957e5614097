package snli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotCorpus(t *testing.T) *Corpus {
	t.Helper()

	vocab := NewVocabulary()
	vocab.Add("dog", "cat", "runs")
	vocab.Freeze()

	table := NewTable(2)
	require.NoError(t, table.Set("dog", []float32{1, 2}))
	require.NoError(t, table.Set("cat", []float32{3, 4}))
	require.NoError(t, table.Set("runs", []float32{0, 0}))

	return &Corpus{
		Vocab:      vocab,
		Embeddings: table,
		Train: []Example{
			{Premise: []string{"dog", "runs"}, Hypothesis: []string{"cat"}, Label: LabelContradiction},
		},
		Valid: []Example{
			{Premise: []string{"cat"}, Hypothesis: []string{"dog"}, Label: LabelNeutral},
		},
		Test: []Example{
			{Premise: []string{"dog"}, Hypothesis: []string{"dog", "runs"}, Label: LabelEntailment},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshot")
	snapshot := NewSnapshot(dir)

	assert.False(t, snapshot.Exists())

	corpus := snapshotCorpus(t)
	require.NoError(t, snapshot.Save(corpus))
	assert.True(t, snapshot.Exists())

	loaded, err := snapshot.Load()
	require.NoError(t, err)

	assert.Equal(t, corpus.Vocab.Words(), loaded.Vocab.Words())
	assert.Equal(t, corpus.Vocab.Index("dog"), loaded.Vocab.Index("dog"))
	assert.Equal(t, corpus.Embeddings.Dim, loaded.Embeddings.Dim)
	assert.Equal(t, corpus.Embeddings.Vectors, loaded.Embeddings.Vectors)
	assert.Equal(t, corpus.Train, loaded.Train)
	assert.Equal(t, corpus.Valid, loaded.Valid)
	assert.Equal(t, corpus.Test, loaded.Test)
}

func TestSnapshotLoadMissing(t *testing.T) {
	snapshot := NewSnapshot(filepath.Join(t.TempDir(), "absent"))

	_, err := snapshot.Load()
	require.Error(t, err)
}
