package snli

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

/*
Unseen accumulates context evidence for vocabulary words absent from the
pretrained table. For every occurrence of such a word anywhere in the
corpus, the pretrained vectors of its in-window neighbors are summed and
counted; Finalize turns each sum into an arithmetic mean and merges it into
the table.

The accumulator is an explicit value handed to each partition scan, not
ambient state, so the approximation can be tested in isolation against a
synthetic table and sentence list. It is not synchronized; the base
pipeline scans partitions sequentially. A parallel scan would have to
guard Observe with per-key locking or reduce per-goroutine accumulators
after joining.
*/
type Unseen struct {
	dim    int
	window int
	sums   map[string][]float32
	counts map[string]int
}

/*
NewUnseen creates an accumulator for vectors of the given dimension and
context radius. A window of 0 is legal and yields no contributions ever.
*/
func NewUnseen(dim, window int) *Unseen {
	return &Unseen{
		dim:    dim,
		window: window,
		sums:   make(map[string][]float32),
		counts: make(map[string]int),
	}
}

/*
Observe scans one sentence for words not covered by the pretrained table.
Each uncovered word receives the vectors of its covered neighbors within
the inclusive offset range [-window, window], offset 0 excluded. Neighbors
that are themselves uncovered contribute nothing. Contributions accumulate
across every call, so recurring words pool context from the whole corpus.
*/
func (u *Unseen) Observe(sentence []string, table *Table) {
	for i, word := range sentence {
		if table.Contains(word) {
			continue
		}

		sum, ok := u.sums[word]
		if !ok {
			sum = make([]float32, u.dim)
			u.sums[word] = sum
		}

		for r := -u.window; r <= u.window; r++ {
			if r == 0 {
				continue
			}
			j := i + r
			if j < 0 || j >= len(sentence) {
				continue
			}
			neighbor, ok := table.Vectors[sentence[j]]
			if !ok {
				continue
			}
			// dimensions are fixed at construction on both sides
			_ = AddInto(sum, neighbor)
			u.counts[word]++
		}
	}
}

/*
Len returns the number of unseen words encountered so far
*/
func (u *Unseen) Len() int {
	return len(u.sums)
}

/*
Finalize averages every accumulated sum by its contribution count and
inserts the result into the table. A word the table already covers is left
untouched; the first approximation wins. Words that never had a covered
neighbor keep the zero vector — a degenerate but defined embedding — and
are returned so callers can surface them.
*/
func (u *Unseen) Finalize(table *Table) []string {
	words := make([]string, 0, len(u.sums))
	for w := range u.sums {
		words = append(words, w)
	}
	sort.Strings(words)

	var zero []string
	for _, w := range words {
		if table.Contains(w) {
			continue
		}

		vector := u.sums[w]
		if count := u.counts[w]; count > 0 {
			Scale(vector, 1/float32(count))
		} else {
			zero = append(zero, w)
			log.WithField("word", w).Warn("unseen word has no covered neighbors, keeping zero vector")
		}
		table.Vectors[w] = vector
	}

	return zero
}
