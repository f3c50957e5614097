package snli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

/*
Snapshot persists a built corpus as a directory of independently loadable
JSON artifacts: meta.json, vocab.json, embeddings.json and one file per
partition. A later run loads the snapshot instead of rebuilding from the
raw SNLI and GloVe files.
*/
type Snapshot struct {
	basePath string
}

// snapshotMeta records enough to sanity-check a snapshot before loading
// the heavier artifacts.
type snapshotMeta struct {
	EmbeddingDim int `json:"embedding_dim"`
	VocabSize    int `json:"vocab_size"`
	TrainSize    int `json:"train_size"`
	ValidSize    int `json:"valid_size"`
	TestSize     int `json:"test_size"`
}

type snapshotVocab struct {
	Words []string `json:"words"`
}

/*
NewSnapshot creates a snapshot handle rooted at the given directory
*/
func NewSnapshot(basePath string) *Snapshot {
	return &Snapshot{basePath: basePath}
}

/*
Exists reports whether a snapshot has been written at the base path
*/
func (s *Snapshot) Exists() bool {
	_, err := os.Stat(filepath.Join(s.basePath, "meta.json"))
	return err == nil
}

/*
Save writes every artifact of the corpus to the snapshot directory
*/
func (s *Snapshot) Save(corpus *Corpus) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return err
	}

	meta := snapshotMeta{
		EmbeddingDim: corpus.Embeddings.Dim,
		VocabSize:    corpus.Vocab.Size(),
		TrainSize:    len(corpus.Train),
		ValidSize:    len(corpus.Valid),
		TestSize:     len(corpus.Test),
	}
	if err := s.writeJSON("meta.json", meta); err != nil {
		return err
	}

	if err := s.writeJSON("vocab.json", snapshotVocab{Words: corpus.Vocab.Words()}); err != nil {
		return err
	}

	if err := s.writeJSON("embeddings.json", corpus.Embeddings); err != nil {
		return err
	}

	if err := s.writeJSON("train.json", corpus.Train); err != nil {
		return err
	}
	if err := s.writeJSON("valid.json", corpus.Valid); err != nil {
		return err
	}
	return s.writeJSON("test.json", corpus.Test)
}

/*
Load reads every artifact back into a corpus
*/
func (s *Snapshot) Load() (*Corpus, error) {
	var meta snapshotMeta
	if err := s.readJSON("meta.json", &meta); err != nil {
		return nil, err
	}

	var words snapshotVocab
	if err := s.readJSON("vocab.json", &words); err != nil {
		return nil, err
	}
	vocab := NewVocabulary()
	vocab.Add(words.Words...)
	vocab.Freeze()

	table := NewTable(meta.EmbeddingDim)
	if err := s.readJSON("embeddings.json", table); err != nil {
		return nil, err
	}
	if table.Dim != meta.EmbeddingDim {
		return nil, fmt.Errorf("%w: snapshot meta says %d, embeddings say %d",
			ErrDimensionMismatch, meta.EmbeddingDim, table.Dim)
	}

	corpus := &Corpus{Vocab: vocab, Embeddings: table}
	if err := s.readJSON("train.json", &corpus.Train); err != nil {
		return nil, err
	}
	if err := s.readJSON("valid.json", &corpus.Valid); err != nil {
		return nil, err
	}
	if err := s.readJSON("test.json", &corpus.Test); err != nil {
		return nil, err
	}

	return corpus, nil
}

func (s *Snapshot) writeJSON(name string, v interface{}) error {
	file, err := os.Create(filepath.Join(s.basePath, name))
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(v)
}

func (s *Snapshot) readJSON(name string, v interface{}) error {
	file, err := os.Open(filepath.Join(s.basePath, name))
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(v)
}
