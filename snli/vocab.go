package snli

import (
	"bufio"
	"os"
	"sort"
)

// Reserved indices of the token-to-index map. Index 0 pads batches to a
// common length, index 1 stands in for tokens outside the vocabulary.
const (
	PadToken = "PAD"
	UnkToken = "UNK"

	PadIndex int64 = 0
	UnkIndex int64 = 1
)

/*
Vocabulary is the set of distinct tokens observed across all partitions,
together with the token-to-index map used by the batch loader.

The set is immutable once Freeze has been called; Freeze assigns indices to
the tokens in sorted order so that identical inputs always produce an
identical map.
*/
type Vocabulary struct {
	words  map[string]struct{}
	index  map[string]int64
	frozen bool
}

/*
NewVocabulary creates an empty vocabulary
*/
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		words: make(map[string]struct{}),
	}
}

/*
BuildVocabulary scans the given partition files and accumulates the set
union of all premise and hypothesis tokens. Records are parsed with
ParseRecord; labels are ignored, skipped records still contribute nothing.
*/
func BuildVocabulary(paths ...string) (*Vocabulary, error) {
	v := NewVocabulary()
	for _, path := range paths {
		if err := v.addFile(path); err != nil {
			return nil, err
		}
	}
	v.Freeze()
	return v, nil
}

func (v *Vocabulary) addFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for idx := 0; scanner.Scan(); idx++ {
		// skip the header line
		if idx == 0 {
			continue
		}

		example, ok, err := ParseRecord(scanner.Text())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		v.Add(example.Premise...)
		v.Add(example.Hypothesis...)
	}

	return scanner.Err()
}

/*
Add inserts tokens into the vocabulary. Calling Add after Freeze is a
programming error and panics.
*/
func (v *Vocabulary) Add(tokens ...string) {
	if v.frozen {
		panic("snli: Add called on a frozen vocabulary")
	}
	for _, t := range tokens {
		v.words[t] = struct{}{}
	}
}

/*
Freeze makes the vocabulary immutable and builds the token-to-index map:
PAD is 0, UNK is 1, corpus tokens follow in sorted order.
*/
func (v *Vocabulary) Freeze() {
	if v.frozen {
		return
	}
	v.frozen = true

	words := v.Words()
	v.index = make(map[string]int64, len(words)+2)
	for i, w := range words {
		v.index[w] = int64(i + 2)
	}
	// reserved indices win over corpus tokens spelled "PAD"/"UNK"
	v.index[PadToken] = PadIndex
	v.index[UnkToken] = UnkIndex
}

/*
Contains reports whether the token was observed in the corpus
*/
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.words[token]
	return ok
}

/*
Size returns the number of distinct corpus tokens (PAD and UNK excluded)
*/
func (v *Vocabulary) Size() int {
	return len(v.words)
}

/*
Index returns the integer index of a token, or UnkIndex for tokens outside
the vocabulary. The vocabulary must be frozen.
*/
func (v *Vocabulary) Index(token string) int64 {
	if idx, ok := v.index[token]; ok {
		return idx
	}
	return UnkIndex
}

/*
Indexes maps a token sequence to its index sequence
*/
func (v *Vocabulary) Indexes(tokens []string) []int64 {
	indexes := make([]int64, len(tokens))
	for i, t := range tokens {
		indexes[i] = v.Index(t)
	}
	return indexes
}

/*
Words returns the corpus tokens in sorted order
*/
func (v *Vocabulary) Words() []string {
	words := make([]string, 0, len(v.words))
	for w := range v.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
