package textindex

import (
	"math"
	"sort"
)

// Index is a fitted TF-IDF model over a fixed set of documents.
// Row i of the index corresponds to document i passed to Fit.
type Index struct {
	vocabulary []string
	columns    map[string]int
	idf        []float64
	rows       []Vector
}

// Fit builds an index over docs. The vocabulary is every unigram and
// bigram in docs, ordered lexicographically. Weights are raw term
// counts times the smoothed inverse document frequency
// ln((1+n)/(1+df))+1, and each row is L2-normalised.
func Fit(docs []string) *Index {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]int)
		for _, term := range Terms(doc) {
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	idx := &Index{
		vocabulary: vocabulary,
		columns:    make(map[string]int, len(vocabulary)),
		idf:        make([]float64, len(vocabulary)),
		rows:       make([]Vector, len(docs)),
	}

	n := float64(len(docs))
	for col, term := range vocabulary {
		idx.columns[term] = col
		idx.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, tf := range counts {
		idx.rows[i] = idx.weigh(tf)
	}
	return idx
}

// Transform projects text into the fitted vector space. Terms outside
// the vocabulary are ignored; text with no known terms yields an
// empty vector.
func (idx *Index) Transform(text string) Vector {
	tf := make(map[string]int)
	for _, term := range Terms(text) {
		if _, ok := idx.columns[term]; ok {
			tf[term]++
		}
	}
	return idx.weigh(tf)
}

// Similarities returns the cosine similarity of text against every row.
func (idx *Index) Similarities(text string) []float64 {
	q := idx.Transform(text)
	scores := make([]float64, len(idx.rows))
	if len(q) == 0 {
		return scores
	}
	for i, row := range idx.rows {
		scores[i] = Dot(q, row)
	}
	return scores
}

// Len returns the number of rows.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// Row returns the normalised vector of document i.
func (idx *Index) Row(i int) Vector {
	return idx.rows[i]
}

// Vocabulary returns the ordered vocabulary. The slice must not be modified.
func (idx *Index) Vocabulary() []string {
	return idx.vocabulary
}

// IDF returns the inverse document frequency of term and whether
// the term is in the vocabulary.
func (idx *Index) IDF(term string) (float64, bool) {
	col, ok := idx.columns[term]
	if !ok {
		return 0, false
	}
	return idx.idf[col], true
}

func (idx *Index) weigh(tf map[string]int) Vector {
	v := make(Vector, 0, len(tf))
	for term, count := range tf {
		col := idx.columns[term]
		v = append(v, Entry{Index: col, Weight: float64(count) * idx.idf[col]})
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Index < v[j].Index })
	v.Normalize()
	return v
}
