package models

// PendingEntry is the working draft of a log entry. Fields are kept as text so
// the client can round-trip them through editable inputs; parsing happens in
// the scoring engine with its degrade-to-default rules.
type PendingEntry struct {
	Name        string `json:"name"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Calories    string `json:"calories"`
	Protein     string `json:"protein"`
	Carbs       string `json:"carbs"`
	Fat         string `json:"fat"`
	Fiber       string `json:"fiber"`
	IsZeroPoint bool   `json:"is_zero_point"`

	// LookupSucceeded gates commits: a draft may only be written to the log
	// after a successful nutrient lookup for its current name.
	LookupSucceeded bool `json:"lookup_succeeded"`
}

// ResetNutrients clears every looked-up field. Called whenever the food name
// changes so stale estimates cannot survive a rename.
func (p *PendingEntry) ResetNutrients() {
	p.Calories = ""
	p.Protein = ""
	p.Carbs = ""
	p.Fat = ""
	p.Fiber = ""
	p.IsZeroPoint = false
	p.LookupSucceeded = false
}
