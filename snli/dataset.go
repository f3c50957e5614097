package snli

import (
	"math/rand"
	"sync"

	"github.com/Aparna-Vijayakumar/match-lstm/config"
)

/*
Dataset wraps a partition's example list for indexed random access.
Examples are read-only after materialization, so a Dataset is safe to share
between loader workers.
*/
type Dataset struct {
	examples []Example
}

/*
NewDataset creates a dataset over a materialized partition
*/
func NewDataset(examples []Example) *Dataset {
	return &Dataset{examples: examples}
}

/*
Len returns the number of examples
*/
func (d *Dataset) Len() int {
	return len(d.examples)
}

/*
Get returns the stored example unchanged
*/
func (d *Dataset) Get(index int) Example {
	return d.examples[index]
}

/*
Batch is one collated batch: the premise token indices as a [batch][seq]
matrix padded with PadIndex to the longest premise in the batch, and the
labels as a [batch] vector with values in {0, 1, 2}.
*/
type Batch struct {
	Premises [][]int64
	Labels   []int64
}

/*
Loader iterates a dataset in batches. Collation maps tokens to vocabulary
indices and pads premises within each batch; several workers collate
concurrently while batches are still delivered in epoch order.
*/
type Loader struct {
	dataset *Dataset
	vocab   *Vocabulary
	cfg     config.LoaderConfig
	rng     *rand.Rand
}

/*
NewLoader creates a loader over the dataset. The seed fixes the shuffle
order, making epochs reproducible across runs.
*/
func NewLoader(dataset *Dataset, vocab *Vocabulary, cfg config.LoaderConfig, seed int64) *Loader {
	return &Loader{
		dataset: dataset,
		vocab:   vocab,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

/*
NumBatches returns the number of batches in one epoch
*/
func (l *Loader) NumBatches() int {
	n := l.dataset.Len()
	return (n + l.cfg.BatchSize - 1) / l.cfg.BatchSize
}

/*
Batches runs one epoch. The returned channel yields every batch exactly
once, in a deterministic order, and is closed afterwards. Workers only
read the dataset, so no locking is needed beyond the channel plumbing.
Batches must not be called concurrently on the same loader; the shuffle
draws from the loader's seeded source.
*/
func (l *Loader) Batches() <-chan Batch {
	order := make([]int, l.dataset.Len())
	for i := range order {
		order[i] = i
	}
	if l.cfg.Shuffle {
		l.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	var chunks [][]int
	for start := 0; start < len(order); start += l.cfg.BatchSize {
		end := start + l.cfg.BatchSize
		if end > len(order) {
			end = len(order)
		}
		chunks = append(chunks, order[start:end])
	}

	type job struct {
		pos     int
		indexes []int
	}
	type result struct {
		pos   int
		batch Batch
	}

	jobs := make(chan job)
	results := make(chan result, len(chunks))
	out := make(chan Batch)

	var wg sync.WaitGroup
	wg.Add(l.cfg.NumWorkers)
	for w := 0; w < l.cfg.NumWorkers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{pos: j.pos, batch: l.Collate(j.indexes)}
			}
		}()
	}

	go func() {
		for pos, indexes := range chunks {
			jobs <- job{pos: pos, indexes: indexes}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// reorder worker output back into epoch order
	go func() {
		defer close(out)
		pending := make(map[int]Batch)
		next := 0
		for r := range results {
			pending[r.pos] = r.batch
			for {
				batch, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				out <- batch
				next++
			}
		}
	}()

	return out
}

/*
Collate builds one batch from the examples at the given dataset indexes.
The model input is the premise index sequence; premises are padded with
PadIndex to the longest premise in the batch.
*/
func (l *Loader) Collate(indexes []int) Batch {
	maxLen := 0
	for _, idx := range indexes {
		if n := len(l.dataset.Get(idx).Premise); n > maxLen {
			maxLen = n
		}
	}

	batch := Batch{
		Premises: make([][]int64, len(indexes)),
		Labels:   make([]int64, len(indexes)),
	}

	for i, idx := range indexes {
		example := l.dataset.Get(idx)

		row := make([]int64, maxLen)
		copy(row, l.vocab.Indexes(example.Premise))
		// the tail of row keeps PadIndex (zero value)

		batch.Premises[i] = row
		batch.Labels[i] = int64(example.Label)
	}

	return batch
}
