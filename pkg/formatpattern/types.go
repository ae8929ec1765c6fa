package formatpattern

// Terminology captures the vocabulary conventions of a document.
type Terminology struct {
	KeyTerms         []string `json:"key_terms,omitempty"`
	PhrasingPatterns []string `json:"phrasing_patterns,omitempty"`
	PriceLanguage    string   `json:"price_language,omitempty"`
}

// Structure captures the macro layout of a document.
type Structure struct {
	SectionsOrder  []string `json:"sections_order,omitempty"`
	HasSummary     bool     `json:"has_summary"`
	HasTotals      bool     `json:"has_totals"`
	HasAssumptions bool     `json:"has_assumptions"`
}

// Typography is derived from the extraction tally, not from the LLM.
type Typography struct {
	PrimaryFont  string             `json:"primary_font,omitempty"`
	HeadingFont  string             `json:"heading_font,omitempty"`
	BodyFont     string             `json:"body_font,omitempty"`
	HeadingSizes map[string]float64 `json:"heading_sizes,omitempty"` // level -> points
	UsesBold     bool               `json:"uses_bold"`
	UsesItalic   bool               `json:"uses_italic"`
}

// Colors is the hex color palette observed in a document.
type Colors struct {
	PrimaryText string `json:"primary_text,omitempty"`
	Heading     string `json:"heading,omitempty"`
	Accent      string `json:"accent,omitempty"`
}

// Pattern is the formatting profile of one document.
type Pattern struct {
	SectionHeaders  []string    `json:"section_headers,omitempty"`
	NumberingStyle  string      `json:"numbering_style,omitempty"` // decimal|bullet|roman|none
	Terminology     Terminology `json:"terminology"`
	Structure       Structure   `json:"structure"`
	PricingFormat   string      `json:"pricing_format,omitempty"`
	BoilerplateText string      `json:"boilerplate_text,omitempty"`
	Typography      Typography  `json:"typography"`
	Colors          Colors      `json:"colors"`
	ConfidenceScore float64     `json:"confidence_score"`
}

// Aggregate is the merged formatting profile across a tenant's documents.
type Aggregate struct {
	SectionHeaders []string    `json:"section_headers,omitempty"`
	NumberingStyle string      `json:"numbering_style,omitempty"`
	Terminology    Terminology `json:"terminology"`
	Structure      Structure   `json:"structure"`
	PricingFormat  string      `json:"pricing_format,omitempty"`
	Typography     Typography  `json:"typography"`
	Colors         Colors      `json:"colors"`
	DocumentCount  int         `json:"document_count"`
}
