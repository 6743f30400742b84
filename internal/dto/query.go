package dto

type QueryRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type QueryResponse struct {
	Response string `json:"response"`
}

type InfoResponse struct {
	Message    string `json:"message"`
	AIProvider string `json:"ai_provider"`
	Model      string `json:"model"`
}
