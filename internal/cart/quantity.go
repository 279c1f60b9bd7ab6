package cart

// RoundToMultiple snaps a requested quantity to the product's case-pack
// multiple. The result is always a positive multiple of multiplo: rounding is
// to the nearest multiple (half rounds up), but never below one full pack.
// Asking for 0 therefore yields multiplo, not 0 — removing a line is a
// separate operation, not a quantity of zero.
//
// Total function: invalid inputs are coerced (multiplo < 1 becomes 1,
// negative qtd becomes 0).
func RoundToMultiple(qtd, multiplo int) int {
	m := multiplo
	if m < 1 {
		m = 1
	}
	q := qtd
	if q < 0 {
		q = 0
	}
	rounded := (q + m/2) / m * m
	if rounded < m {
		return m
	}
	return rounded
}
