package dto

import "github.com/jmartel/planif-depots/internal/domain/entity"

// UploadResponse corps de réponse des trois endpoints d'upload.
// Filters n'est renseigné que pour le fichier commandes : il alimente
// les listes déroulantes de l'UI.
type UploadResponse struct {
	SessionID string         `json:"session_id"`
	Summary   entity.Summary `json:"summary"`
	Filters   *UploadFilters `json:"filters,omitempty"`
}

// UploadFilters valeurs distinctes proposées comme filtres de calcul.
type UploadFilters struct {
	Depots     []string `json:"depots"`
	Articles   []string `json:"articles"`
	Packagings []string `json:"packagings"`
}

// ExportRequest corps de POST /api/export-excel et /api/export-pdf :
// les lignes du plan retenues par l'opérateur.
type ExportRequest struct {
	SessionID     string           `json:"session_id"`
	SelectedItems []CalculationRow `json:"selected_items"`
}
