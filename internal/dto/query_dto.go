package dto

type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id" validate:"required,max=128"`
	TopK      int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

// SourceDTO cites one document used for context, in index order.
type SourceDTO struct {
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

type QueryResponse struct {
	Answer    string      `json:"answer"`
	Sources   []SourceDTO `json:"sources"`
	SessionId string      `json:"session_id"`
}
