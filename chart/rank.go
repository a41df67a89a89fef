// Package chart ranks a probability vector and turns the top entries into
// pie slices and legend rows.
package chart

import "sort"

// TopK is how many classes the chart shows.
const TopK = 5

// Entry is one class of the ranking.
type Entry struct {
	Index       int     `json:"index"`
	Probability float64 `json:"probability"`
}

// Rank returns the k most probable entries, highest first. Equal
// probabilities keep their original index order.
func Rank(probs []float32, k int) []Entry {
	entries := make([]Entry, len(probs))
	for i, p := range probs {
		entries[i] = Entry{Index: i, Probability: float64(p)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Probability > entries[j].Probability
	})
	if k >= 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
