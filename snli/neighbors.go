package snli

import "sort"

/*
SimilarWord is a word and its cosine similarity to a query word
*/
type SimilarWord struct {
	Word       string  `json:"word"`
	Similarity float32 `json:"similarity"`
}

/*
Neighbors ranks every other word in the table by cosine similarity to the
query word and returns the top k. The scan is brute force; the table is a
diagnostic surface, not a serving index.
*/
func (t *Table) Neighbors(word string, k int) ([]SimilarWord, error) {
	query, err := t.Vector(word)
	if err != nil {
		return nil, err
	}

	results := make([]SimilarWord, 0, t.Len())
	for other, vector := range t.Vectors {
		if other == word {
			continue
		}
		similarity, err := CosineSimilarity(query, vector)
		if err != nil {
			return nil, err
		}
		results = append(results, SimilarWord{Word: other, Similarity: similarity})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Word < results[j].Word
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}
