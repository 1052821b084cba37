package boost

import (
	"math"
	"sort"
)

const missing = math.MaxUint16

// binner discretises one feature. Bin b holds the values v with thresholds[b-1] < v <= thresholds[b];
// the last bin is unbounded above.
type binner struct {
	thresholds []float64
}

func newBinner(values []float64, maxBins int) binner {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)

	var distinct []float64
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) < 2 {
		return binner{}
	}

	var thresholds []float64
	if len(distinct)-1 <= maxBins {
		thresholds = make([]float64, len(distinct)-1)
		for i := 1; i < len(distinct); i++ {
			thresholds[i-1] = (distinct[i-1] + distinct[i]) / 2
		}
		return binner{thresholds: thresholds}
	}

	// Too many distinct values: cut at quantiles of the population.
	for k := 1; k <= maxBins; k++ {
		at := k * len(sorted) / (maxBins + 1)
		lo := sorted[at]
		j := sort.SearchFloat64s(distinct, lo)
		if j+1 >= len(distinct) {
			break
		}
		t := (distinct[j] + distinct[j+1]) / 2
		if len(thresholds) == 0 || t > thresholds[len(thresholds)-1] {
			thresholds = append(thresholds, t)
		}
	}
	return binner{thresholds: thresholds}
}

func (b binner) size() int {
	return len(b.thresholds) + 1
}

func (b binner) bin(v float64) uint16 {
	if math.IsNaN(v) {
		return missing
	}
	return uint16(sort.SearchFloat64s(b.thresholds, v))
}

// binned is the column-major discretised training matrix.
type binned struct {
	binners []binner
	columns [][]uint16
}

func newBinned(x [][]float64, maxBins int) binned {
	p := len(x[0])
	b := binned{
		binners: make([]binner, p),
		columns: make([][]uint16, p),
	}
	column := make([]float64, len(x))
	for j := 0; j < p; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		b.binners[j] = newBinner(column, maxBins)
		b.columns[j] = make([]uint16, len(x))
		for i, v := range column {
			b.columns[j][i] = b.binners[j].bin(v)
		}
	}
	return b
}
