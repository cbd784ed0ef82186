// Package textindex provides the title text index used by content search.
//
// Titles are normalised, tokenised into unigrams and bigrams and weighted
// with smoothed TF-IDF. Every row vector is L2-normalised, so cosine
// similarity between a query and a row is their dot product.
//
// An Index is immutable once fitted and safe for concurrent readers.
package textindex
