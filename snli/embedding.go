package snli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

/*
Table maps tokens to fixed-width word vectors. It holds the pretrained
vectors kept during the GloVe load and, after corpus materialization, the
synthesized vectors of the unseen words.
*/
type Table struct {
	Dim     int                  `json:"dim"`
	Vectors map[string][]float32 `json:"vectors"`
}

/*
NewTable creates an empty table of the given dimension
*/
func NewTable(dim int) *Table {
	return &Table{
		Dim:     dim,
		Vectors: make(map[string][]float32),
	}
}

/*
Contains reports whether the table holds a vector for the token
*/
func (t *Table) Contains(token string) bool {
	_, ok := t.Vectors[token]
	return ok
}

/*
Vector returns the vector stored for the token
*/
func (t *Table) Vector(token string) ([]float32, error) {
	v, ok := t.Vectors[token]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, token)
	}
	return v, nil
}

/*
Set stores a vector for the token
*/
func (t *Table) Set(token string, vector []float32) error {
	if len(vector) != t.Dim {
		return ErrDimensionMismatch
	}
	t.Vectors[token] = vector
	return nil
}

/*
Len returns the number of stored vectors
*/
func (t *Table) Len() int {
	return len(t.Vectors)
}

/*
LoadGloVe reads a pretrained word-vector file and keeps only the rows whose
word is a vocabulary member. Each line is `word v1 v2 ... vD` separated by
single spaces. Lines for words outside the vocabulary are discarded before
their vector fields are parsed; pretrained files are large and most rows are
irrelevant. A retained line whose fields do not all parse as numbers, or
that has the wrong number of them, fails the load with ErrMalformedVector.

Coverage of the vocabulary is logged as a diagnostic; it is not a
correctness gate.
*/
func LoadGloVe(path string, vocab *Vocabulary, dim int) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table := NewTable(dim)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		sep := strings.IndexByte(line, ' ')
		if sep < 0 {
			continue
		}

		word := line[:sep]
		if !vocab.Contains(word) {
			continue
		}

		fields := strings.Split(line[sep+1:], " ")
		if len(fields) != dim {
			return nil, fmt.Errorf("%w: word %q has %d fields, want %d", ErrMalformedVector, word, len(fields), dim)
		}

		vector := make([]float32, dim)
		for i, f := range fields {
			val, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: word %q field %d: %v", ErrMalformedVector, word, i, err)
			}
			vector[i] = float32(val)
		}

		table.Vectors[word] = vector
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	coverage := 0.0
	if vocab.Size() > 0 {
		coverage = 100 * float64(table.Len()) / float64(vocab.Size())
	}
	log.WithFields(log.Fields{
		"found":    table.Len(),
		"vocab":    vocab.Size(),
		"coverage": fmt.Sprintf("%.1f%%", coverage),
	}).Info("GloVe intersection loaded")

	return table, nil
}
