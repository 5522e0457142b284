package api

// StatsFilters are the optional query filters accepted by the statistics
// endpoints. Zero values are omitted from the query string.
type StatsFilters struct {
	Programa string // program code, e.g. "ATI"
	Version  string // dataset version, e.g. "v1.0"
}

// KPIReport is the aggregate from /statistics/kpis. The payload mixes
// numbers and numeric strings, so StatisticsAPI.KPIs decodes it leniently
// through the mapstructure tags.
type KPIReport struct {
	TotalResponses  int            `json:"total_responses" mapstructure:"total_responses"`
	TotalEgresados  int            `json:"total_egresados" mapstructure:"total_egresados"`
	TotalProfesores int            `json:"total_profesores" mapstructure:"total_profesores"`
	ByPrograma      []ProgramCount `json:"by_programa" mapstructure:"by_programa"`
	LatestVersion   string         `json:"latest_version" mapstructure:"latest_version"`
}

// ProgramCount is one program's response count inside a KPI report.
type ProgramCount struct {
	Programa string `json:"programa" mapstructure:"programa"`
	Count    int    `json:"count" mapstructure:"count"`
}

// ProgramResponses is one row of /statistics/responses-per-program.
type ProgramResponses struct {
	Programa  string `json:"programa"`
	Responses int    `json:"responses"`
}

// QuestionAnalysis is the distribution result for a single question column
// from /statistics/question-analysis.
type QuestionAnalysis struct {
	Question     string         `json:"question"`
	Dataset      string         `json:"dataset"`
	TotalAnswers int            `json:"total_answers"`
	Distribution []AnswerBucket `json:"distribution"`
}

// AnswerBucket is one answer value with its count and percentage.
type AnswerBucket struct {
	Answer     string  `json:"answer"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SatisfactionAnalysis is the aggregate from /statistics/satisfaction-analysis.
type SatisfactionAnalysis struct {
	Dataset    string             `json:"dataset"`
	Average    float64            `json:"average"`
	ByQuestion map[string]float64 `json:"by_question,omitempty"`
	SampleSize int                `json:"sample_size"`
}
