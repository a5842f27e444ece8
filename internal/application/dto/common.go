package dto

// ErrorResponse corps d'erreur HTTP : code machine + message court.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Discarded int    `json:"discarded,omitempty"` // lignes écartées, pour EMPTY_INPUT
}
