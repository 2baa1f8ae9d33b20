package stats

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Max returns the largest value, or 0 for an empty slice
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Sum adds up all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// positive filters out non-positive values. Measurements use zero as the
// missing-value sentinel, so headline means and maxes skip them.
func positive(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// MeanPositive is the mean over strictly positive values only
func MeanPositive(values []float64) float64 {
	return Mean(positive(values))
}

// MaxPositive is the max over strictly positive values only
func MaxPositive(values []float64) float64 {
	return Max(positive(values))
}
