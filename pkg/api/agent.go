package api

// Population scopes an analytics run to a dataset, program, and optional
// row filters. It is the "poblacion" object of the agent API.
type Population struct {
	Dataset  string            `json:"dataset" validate:"required"`
	Programa string            `json:"programa" validate:"required"`
	Filtros  map[string]string `json:"filtros,omitempty"`
}

// AnalyticsRequest is the payload for POST /agente/resultados.
type AnalyticsRequest struct {
	Poblacion      Population `json:"poblacion" validate:"required"`
	Distribuciones []string   `json:"distribuciones" validate:"required,min=1"`
	TipoAnalitica  string     `json:"tipo_analitica" validate:"required"`
}

// AnalyticsResult is the agent's computed result. The inner shape depends
// on the requested analysis type and is passed through untouched.
type AnalyticsResult struct {
	Resultados map[string]any `json:"resultados"`
}

// NarrativeRequest is the payload for POST /agente/redactar: the agent
// writes narrative text for a previously computed result.
type NarrativeRequest struct {
	Enunciado  string         `json:"enunciado" validate:"required"`
	Resultados map[string]any `json:"resultados" validate:"required"`
	Poblacion  Population     `json:"poblacion"`
	Escuela    string         `json:"escuela,omitempty"`
}

// NarrativeResponse carries the generated text.
type NarrativeResponse struct {
	Texto string `json:"texto"`
}

// ETLLoadResult is the acknowledgment from POST /carga/{dataset}/minio.
type ETLLoadResult struct {
	Status  string `json:"status"`
	Dataset string `json:"dataset,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProgramInfo is one entry of GET /analisis/posgrados.
type ProgramInfo struct {
	Programa string   `json:"programa"`
	Versions []string `json:"versions,omitempty"`
}
