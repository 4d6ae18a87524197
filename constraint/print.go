package constraint

import "github.com/shopspring/decimal"

// printReal renders a float64 using github.com/shopspring/decimal rather
// than strconv/fmt's native float formatting, so that the printed form of a
// RealConst is stable across platforms and does not vary with Go's
// shortest-round-trip float formatting heuristics (the same literal must
// always print identically, since the printed grammar is persisted in the
// JSON output and compared structurally when fingerprinting path
// conditions).
func printReal(f float64) string {
	return decimal.NewFromFloat(f).String()
}
