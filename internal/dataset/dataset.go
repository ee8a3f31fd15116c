// Package dataset produces the synthetic category dataset shown by the
// explorer and the summary metrics computed over it.
package dataset

import (
	"math/rand"
)

// DefaultSeed is the seed used when no other seed is configured.
const DefaultSeed int64 = 42

const (
	minValue       = 50
	maxValue       = 200 // exclusive
	minPerformance = 0.5
	maxPerformance = 1.5 // exclusive
)

// Categories are the fixed row labels, in display order.
var Categories = []string{"A", "B", "C", "D", "E"}

// Record is one row of the dataset.
type Record struct {
	Category    string  `json:"category"`
	Value       int     `json:"value"`
	Performance float64 `json:"performance"`
}

// Dataset is the fixed-shape table of records ordered by category.
type Dataset struct {
	Seed    int64    `json:"seed"`
	Records []Record `json:"records"`
}

// Generate returns the dataset for seed. The same seed always yields the same
// records. All values are drawn before any performance score.
func Generate(seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))

	values := make([]int, len(Categories))
	for i := range values {
		values[i] = minValue + rng.Intn(maxValue-minValue)
	}

	records := make([]Record, len(Categories))
	for i, category := range Categories {
		records[i] = Record{
			Category:    category,
			Value:       values[i],
			Performance: minPerformance + rng.Float64()*(maxPerformance-minPerformance),
		}
	}

	return Dataset{Seed: seed, Records: records}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Categories returns the category column.
func (d Dataset) Categories() []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Category
	}
	return out
}

// Values returns the value column.
func (d Dataset) Values() []int {
	out := make([]int, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Value
	}
	return out
}

// Performances returns the performance column.
func (d Dataset) Performances() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Performance
	}
	return out
}
