package strategy

// Band is one rung of a threshold ladder. Ladders are ordered from the most
// specific rung to the least and the first matching rung wins.
type Band struct {
	Match     func(v float64) bool
	Points    int
	Label     string
	Highlight bool
}

// evaluate returns the first band matching v.
func evaluate(v float64, bands []Band) (Band, bool) {
	for _, b := range bands {
		if b.Match(v) {
			return b, true
		}
	}
	return Band{}, false
}

func atLeast(min float64) func(float64) bool {
	return func(v float64) bool { return v >= min }
}

func above(min float64) func(float64) bool {
	return func(v float64) bool { return v > min }
}

func below(max float64) func(float64) bool {
	return func(v float64) bool { return v < max }
}

// between is inclusive on both ends.
func between(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

// aboveUpTo matches (lo, hi].
func aboveUpTo(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v > lo && v <= hi }
}

// from matches [lo, hi).
func from(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v < hi }
}
