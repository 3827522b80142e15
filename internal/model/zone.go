package model

// Criterion is one named check of an optimal zone.
type Criterion struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// ZoneResult is the verdict of a network's optimal-zone check.
// Performance, WinRate and AvgGain are static reference data.
type ZoneResult struct {
	Network     Network     `json:"network"`
	Name        string      `json:"name"`
	Criteria    []Criterion `json:"criteria"`
	PassedCount int         `json:"passed_count"`
	TotalCount  int         `json:"total_count"`
	IsOptimal   bool        `json:"is_optimal"`
	Performance string      `json:"performance"`
	WinRate     string      `json:"win_rate"`
	AvgGain     string      `json:"avg_gain"`
}

// Passed returns the outcome of the named criterion.
func (z ZoneResult) Passed(name string) bool {
	for _, c := range z.Criteria {
		if c.Name == name {
			return c.Passed
		}
	}
	return false
}
