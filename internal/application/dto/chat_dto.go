package dto

// ChatRequest question en langage naturel sur les données chargées.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse réponse du modèle.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatSessionContext est l'entrée sérialisée d'une session dans le contexte
// transmis au LLM. Tous les horodatages sont aplatis en chaînes avant la
// frontière ; les collections imbriquées ne contiennent que des primitifs.
type ChatSessionContext struct {
	UploadedAt  string   `json:"uploaded_at"` // RFC 3339
	FileName    string   `json:"file_name"`
	RecordCount int      `json:"record_count"`
	Depots      []string `json:"depots,omitempty"`
	Articles    []string `json:"articles,omitempty"`
}

// ChatContext est le snapshot compact des sessions actives, prêt à
// sérialiser en JSON. Une clé absente signifie "pas de session active".
type ChatContext struct {
	Commandes *ChatSessionContext `json:"commandes,omitempty"`
	Stock     *ChatSessionContext `json:"stock,omitempty"`
	Transit   *ChatSessionContext `json:"transit,omitempty"`
}
