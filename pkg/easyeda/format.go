package easyeda

import (
	"math"
	"strconv"
)

// num formats a coordinate the way EasyEDA stores it: shortest decimal form
// with at most four fractional digits, never "-0".
func num(v float64) string {
	v = round4(v)
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0
	}
	return r
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
