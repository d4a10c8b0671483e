package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern keeps word tokens of two or more characters, so single
// letters and punctuation never become features.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// SparseVector is an l2-normalized tf-idf row. Indices are ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Vectorizer is a tf-idf vector space over unigrams and bigrams with English
// stop words removed. It is fit once over the corpus and read-only after.
type Vectorizer struct {
	MaxFeatures    int
	MinDocFreq     int
	MaxDocFreqFrac float64

	Vocabulary map[string]int // term -> column, alphabetical
	IDF        []float64      // smoothed: ln((1+n)/(1+df)) + 1
}

// NewVectorizer creates an unfitted vectorizer with the given limits.
func NewVectorizer(maxFeatures, minDocFreq int, maxDocFreqFrac float64) *Vectorizer {
	return &Vectorizer{
		MaxFeatures:    maxFeatures,
		MinDocFreq:     minDocFreq,
		MaxDocFreqFrac: maxDocFreqFrac,
	}
}

// analyze lowercases, tokenizes, drops stop words, and emits unigrams plus
// bigrams over the surviving token sequence.
func analyze(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := englishStopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

// Fit builds the vocabulary and idf weights from the corpus and returns the
// tf-idf row for every document.
func (v *Vectorizer) Fit(docs []string) []SparseVector {
	n := len(docs)
	docTerms := make([][]string, n)
	df := make(map[string]int)
	tf := make(map[string]int)

	for i, doc := range docs {
		terms := analyze(doc)
		docTerms[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			tf[term]++
			if _, dup := seen[term]; !dup {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	// Document-frequency pruning: terms must appear in at least MinDocFreq
	// documents and in at most MaxDocFreqFrac of all documents.
	maxDF := int(v.MaxDocFreqFrac * float64(n))
	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.MinDocFreq && count <= maxDF {
			candidates = append(candidates, term)
		}
	}

	// Cap the vocabulary by corpus term frequency; ties break alphabetically
	// so fitting is deterministic.
	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if tf[candidates[i]] != tf[candidates[j]] {
				return tf[candidates[i]] > tf[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.MaxFeatures]
	}

	sort.Strings(candidates)
	v.Vocabulary = make(map[string]int, len(candidates))
	v.IDF = make([]float64, len(candidates))
	for col, term := range candidates {
		v.Vocabulary[term] = col
		v.IDF[col] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	matrix := make([]SparseVector, n)
	for i, terms := range docTerms {
		matrix[i] = v.vectorize(terms)
	}
	return matrix
}

// Transform maps one document into the fitted vector space. Out-of-vocabulary
// terms contribute zero.
func (v *Vectorizer) Transform(doc string) SparseVector {
	return v.vectorize(analyze(doc))
}

func (v *Vectorizer) vectorize(terms []string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range terms {
		if col, ok := v.Vocabulary[term]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, col := range vec.Indices {
		weight := counts[col] * v.IDF[col]
		vec.Values = append(vec.Values, weight)
		norm += weight * weight
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// CosineSparse computes cosine similarity between two l2-normalized sparse
// vectors; with unit rows this reduces to a sparse dot product.
func CosineSparse(a, b SparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// CosineDense computes cosine similarity between two dense embedding vectors.
func CosineDense(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
