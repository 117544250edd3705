package modelbank

import (
	"fmt"
	"math"
)

// scaler standardizes feature vectors using statistics computed from the
// training set only.
type scaler struct {
	means []float64
	stds  []float64
}

func fitScaler(rows [][]float64) scaler {
	if len(rows) == 0 {
		return scaler{}
	}
	width := len(rows[0])
	s := scaler{
		means: make([]float64, width),
		stds:  make([]float64, width),
	}
	n := float64(len(rows))
	for _, row := range rows {
		for j, v := range row {
			s.means[j] += v
		}
	}
	for j := range s.means {
		s.means[j] /= n
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - s.means[j]
			s.stds[j] += d * d
		}
	}
	for j := range s.stds {
		s.stds[j] = math.Sqrt(s.stds[j] / n)
		// Constant features carry no signal; leave them centered at zero
		// rather than dividing by zero.
		if s.stds[j] == 0 {
			s.stds[j] = 1
		}
	}
	return s
}

// featureCount is the vector length the scaler was fit on.
func (s scaler) featureCount() int { return len(s.means) }

// transform standardizes one vector. A length mismatch is a hard error.
func (s scaler) transform(v []float64) ([]float64, error) {
	if len(v) != len(s.means) {
		return nil, fmt.Errorf("%w: got %d features, trained on %d", ErrFeatureMismatch, len(v), len(s.means))
	}
	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.means[j]) / s.stds[j]
	}
	return out, nil
}
