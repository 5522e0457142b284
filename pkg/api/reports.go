package api

// ReportSection pairs one analytics result with its narrative analysis.
type ReportSection struct {
	Resultado map[string]any `json:"resultado"`
	Analisis  string         `json:"analisis"`
}

// ReportBundle is the payload for POST /reports/pdf. A single-section
// report sends resultado/analisis at the top level; a multi-section report
// sends them as conjuntos pairs. Exactly one of the two forms is used.
type ReportBundle struct {
	Resultado map[string]any `json:"resultado,omitempty"`
	Analisis  string         `json:"analisis,omitempty"`
	Conjuntos [][]any        `json:"conjuntos,omitempty"`
}

// NewReportBundle builds a single-section bundle.
func NewReportBundle(resultado map[string]any, analisis string) ReportBundle {
	return ReportBundle{Resultado: resultado, Analisis: analisis}
}

// NewMultiReportBundle builds a multi-section bundle from ordered sections.
func NewMultiReportBundle(sections []ReportSection) ReportBundle {
	conjuntos := make([][]any, 0, len(sections))
	for _, s := range sections {
		conjuntos = append(conjuntos, []any{s.Resultado, s.Analisis})
	}
	return ReportBundle{Conjuntos: conjuntos}
}
