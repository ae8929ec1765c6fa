package pricing

// LineItem is one priced row extracted from a document. Numeric fields are
// pointers because source documents frequently omit them.
type LineItem struct {
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	UnitCost    *float64 `json:"unit_cost,omitempty"`
	TotalCost   *float64 `json:"total_cost,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ProjectInfo describes the project a priced document belongs to.
type ProjectInfo struct {
	ProjectType string `json:"project_type,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
	ScopeNotes  string `json:"scope_notes,omitempty"`
}

// Summary holds document-level totals. All fields are optional; whichever
// the source states are kept.
type Summary struct {
	Subtotal       *float64 `json:"subtotal,omitempty"`
	LaborTotal     *float64 `json:"labor_total,omitempty"`
	MaterialsTotal *float64 `json:"materials_total,omitempty"`
	Overhead       *float64 `json:"overhead,omitempty"`
	Profit         *float64 `json:"profit,omitempty"`
	Tax            *float64 `json:"tax,omitempty"`
	Discount       *float64 `json:"discount,omitempty"`
	GrandTotal     *float64 `json:"grand_total,omitempty"`
}

// Extraction is the full pricing payload pulled from one document.
type Extraction struct {
	ProjectInfo     ProjectInfo `json:"project_info"`
	LineItems       []LineItem  `json:"line_items,omitempty"`
	Summary         Summary     `json:"summary"`
	Notes           string      `json:"notes,omitempty"`
	ConfidenceScore float64     `json:"confidence_score"`
}

// Valid reports whether the extraction carries any usable pricing signal:
// at least one line item or a stated grand total.
func (e *Extraction) Valid() bool {
	if e == nil {
		return false
	}
	return len(e.LineItems) > 0 || e.Summary.GrandTotal != nil
}
