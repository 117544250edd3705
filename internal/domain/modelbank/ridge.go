package modelbank

import "math"

// ridge fits a linear model with L2 regularization via the normal equations
// (X'X + λI)w = X'y, leaving the intercept unpenalized. rows are standardized
// feature vectors; the returned weights are [intercept, coef...].
func ridge(rows [][]float64, targets []float64, lambda float64) ([]float64, error) {
	n := len(rows)
	width := len(rows[0]) + 1 // leading intercept column

	// Build X'X and X'y directly; the design matrix is never materialized.
	a := make([][]float64, width)
	for i := range a {
		a[i] = make([]float64, width)
	}
	b := make([]float64, width)
	for r := 0; r < n; r++ {
		row := rows[r]
		y := targets[r]
		a[0][0]++
		b[0] += y
		for i, xi := range row {
			a[0][i+1] += xi
			a[i+1][0] += xi
			b[i+1] += xi * y
			for j, xj := range row {
				a[i+1][j+1] += xi * xj
			}
		}
	}
	for i := 1; i < width; i++ {
		a[i][i] += lambda
	}
	return solve(a, b)
}

// solve performs Gaussian elimination with partial pivoting on the augmented
// system a·w = b.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, ErrDegenerateSystem
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	w := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for c := row + 1; c < n; c++ {
			sum -= a[row][c] * w[c]
		}
		w[row] = sum / a[row][row]
	}
	return w, nil
}
