package dto

// AnalyzeRequest is the JSON body of POST /api/analyze: rows pasted or
// assembled client-side, in the same loose shape the file readers produce.
type AnalyzeRequest struct {
	Rows   []map[string]any `json:"rows"`
	Source string           `json:"source,omitempty"`
}
