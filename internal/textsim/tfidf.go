// Package textsim scores free-text similarity with a term-frequency /
// inverse-document-frequency vector space and cosine similarity. It is
// built per call from the documents it is given and holds no state.
package textsim

import (
	"math"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary; beyond it only the most frequent
// terms are kept.
const DefaultMaxFeatures = 2000

var punctReplacer = strings.NewReplacer(
	".", " ",
	",", " ",
	"!", " ",
	"?", " ",
	"\n", " ",
	"\t", " ",
	":", " ",
	";", " ",
	"-", " ",
	"_", " ",
	"(", " ",
	")", " ",
	"[", " ",
	"]", " ",
	"'", " ",
	"\"", " ",
	"/", " ",
)

// Similarities fits a TF-IDF space over query plus docs and returns the
// cosine similarity between the query vector and each doc vector, in doc
// order. Degenerate input (empty query, empty docs, empty vocabulary)
// yields all-zero scores rather than an error.
func Similarities(query string, docs []string, maxFeatures int) []float64 {
	scores := make([]float64, len(docs))
	if strings.TrimSpace(query) == "" || len(docs) == 0 {
		return scores
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, Tokenize(query))
	for _, doc := range docs {
		corpus = append(corpus, Tokenize(doc))
	}

	vocab := buildVocabulary(corpus, maxFeatures)
	if len(vocab) == 0 {
		return scores
	}

	// Document frequency over the fitted corpus.
	df := make(map[string]int, len(vocab))
	for _, terms := range corpus {
		seen := make(map[string]bool)
		for _, term := range terms {
			if _, ok := vocab[term]; ok && !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	n := float64(len(corpus))
	idf := func(term string) float64 {
		// Smoothed IDF so terms present in every document still carry
		// a little weight instead of dividing by zero.
		return math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	queryVec := vectorize(corpus[0], vocab, idf)
	if len(queryVec) == 0 {
		return scores
	}

	for i, terms := range corpus[1:] {
		scores[i] = dot(queryVec, vectorize(terms, vocab, idf))
	}
	return scores
}

// Tokenize lower-cases, strips punctuation, and drops stopwords and
// single-character noise.
func Tokenize(text string) []string {
	cleaned := punctReplacer.Replace(strings.ToLower(text))
	fields := strings.Fields(cleaned)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// buildVocabulary keeps at most maxFeatures terms, preferring the highest
// total counts; ties break alphabetically so the space is deterministic.
func buildVocabulary(corpus [][]string, maxFeatures int) map[string]struct{} {
	counts := make(map[string]int)
	for _, terms := range corpus {
		for _, term := range terms {
			counts[term]++
		}
	}

	vocab := make(map[string]struct{}, len(counts))
	if len(counts) <= maxFeatures {
		for term := range counts {
			vocab[term] = struct{}{}
		}
		return vocab
	}

	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, termCount{term, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})
	for _, tc := range ranked[:maxFeatures] {
		vocab[tc.term] = struct{}{}
	}
	return vocab
}

// vectorize builds an L2-normalized TF-IDF vector restricted to vocab.
func vectorize(terms []string, vocab map[string]struct{}, idf func(string) float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, term := range terms {
		if _, ok := vocab[term]; ok {
			vec[term]++
		}
	}
	var norm float64
	for term, tf := range vec {
		w := tf * idf(term)
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term, w := range vec {
		vec[term] = w / norm
	}
	return vec
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, wa := range a {
		sum += wa * b[term]
	}
	return sum
}
