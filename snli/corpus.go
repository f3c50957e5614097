package snli

import (
	"bufio"
	"os"

	"github.com/gosuri/uiprogress"
	log "github.com/sirupsen/logrus"

	"github.com/Aparna-Vijayakumar/match-lstm/config"
)

/*
Corpus is the fully built dataset: the shared vocabulary, the embedding
table (pretrained rows plus synthesized unseen-word rows) and the three
materialized partitions. Everything is read-only once Build returns.
*/
type Corpus struct {
	Vocab      *Vocabulary
	Embeddings *Table

	Train []Example
	Valid []Example
	Test  []Example
}

// Build stage names, rendered next to the progress bar.
var buildStages = []string{"vocabulary", "glove", "train", "valid", "test", "finalize"}

/*
Build runs the whole preparation pipeline: vocabulary over all three
partitions, GloVe load restricted to that vocabulary, then one
materialization pass per partition (train, valid, test, in that order)
feeding the unseen-word accumulator, finalized exactly once at the end.

Each stage must finish before the next starts: the GloVe load needs the
complete vocabulary, and the accumulator must have seen all partitions
before averaging.
*/
func Build(cfg *config.Config) (*Corpus, error) {
	// A fresh Progress per call: the package-global instance cannot be
	// started and stopped more than once per process.
	progress := uiprogress.New()
	progress.Start()
	bar := progress.AddBar(len(buildStages))
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		if b.Current() >= len(buildStages) {
			return "done"
		}
		return buildStages[b.Current()]
	})
	defer progress.Stop()

	vocab, err := BuildVocabulary(cfg.TrainDataPath, cfg.ValidDataPath, cfg.TestDataPath)
	if err != nil {
		return nil, err
	}
	log.WithField("words", vocab.Size()).Info("vocabulary built")
	bar.Incr()

	table, err := LoadGloVe(cfg.GlovePath, vocab, cfg.EmbeddingDim)
	if err != nil {
		return nil, err
	}
	bar.Incr()

	unseen := NewUnseen(cfg.EmbeddingDim, cfg.WindowSize)

	corpus := &Corpus{Vocab: vocab, Embeddings: table}
	partitions := []struct {
		name string
		path string
		dst  *[]Example
	}{
		{"train", cfg.TrainDataPath, &corpus.Train},
		{"valid", cfg.ValidDataPath, &corpus.Valid},
		{"test", cfg.TestDataPath, &corpus.Test},
	}

	for _, p := range partitions {
		examples, err := materialize(p.path, table, unseen)
		if err != nil {
			return nil, err
		}
		*p.dst = examples
		log.WithFields(log.Fields{
			"partition": p.name,
			"examples":  len(examples),
		}).Info("partition materialized")
		bar.Incr()
	}

	log.WithField("words", unseen.Len()).Info("approximating unseen word embeddings")
	zero := unseen.Finalize(table)
	if len(zero) > 0 {
		log.WithField("count", len(zero)).Warn("unseen words left with zero vectors")
	}
	bar.Incr()

	return corpus, nil
}

/*
materialize scans one partition file, collecting the retained examples and
feeding both sentences of each into the unseen-word accumulator.
*/
func materialize(path string, table *Table, unseen *Unseen) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var examples []Example

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for idx := 0; scanner.Scan(); idx++ {
		// skip the header line
		if idx == 0 {
			continue
		}

		example, ok, err := ParseRecord(scanner.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		unseen.Observe(example.Premise, table)
		unseen.Observe(example.Hypothesis, table)

		examples = append(examples, example)

		if (idx+1)%10000 == 0 {
			log.WithField("records", idx+1).Debug(path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return examples, nil
}
