package harness

// QueryResult records what one query produced.
type QueryResult struct {
	Name       string   `json:"name"`
	Mode       string   `json:"mode"`
	IndexField string   `json:"index_field,omitempty"`
	Where      string   `json:"where,omitempty"`
	Facts      []string `json:"facts"`
	Error      string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every query met its expectations.
	Pass bool `json:"pass"`

	// Queries holds one entry per scenario query, in order.
	Queries []QueryResult `json:"queries"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Queries: []QueryResult{},
		Errors:  []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddQuery records a query result.
func (r *Result) AddQuery(q QueryResult) {
	r.Queries = append(r.Queries, q)
}
