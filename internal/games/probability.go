package games

import "github.com/shopspring/decimal"

// WinProbability returns the probability that a rolled face of die a
// strictly beats a rolled face of die b, over all face pairs. Ties are
// not wins for either side, so WinProbability(a, b) + WinProbability(b,
// a) can fall short of 1.
func WinProbability(a, b Die) decimal.Decimal {
	wins := 0
	for _, fa := range a.faces {
		for _, fb := range b.faces {
			if fa > fb {
				wins++
			}
		}
	}
	total := int64(len(a.faces)) * int64(len(b.faces))
	return decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(total))
}

// ProbabilityMatrix returns WinProbability for every ordered pair of
// dice. The diagonal is nil: a die is never compared against itself.
// The matrix is recomputed on every call; nothing is cached.
func ProbabilityMatrix(dice []Die) [][]*decimal.Decimal {
	matrix := make([][]*decimal.Decimal, len(dice))
	for i := range dice {
		row := make([]*decimal.Decimal, len(dice))
		for j := range dice {
			if i == j {
				continue
			}
			p := WinProbability(dice[i], dice[j])
			row[j] = &p
		}
		matrix[i] = row
	}
	return matrix
}
