package entity

import "time"

// SessionKind identifie le type de fichier chargé.
type SessionKind string

const (
	KindOrders  SessionKind = "commandes"
	KindStock   SessionKind = "stock"
	KindTransit SessionKind = "transit"
)

// Summary décrit le résultat d'une ingestion : volumétrie et valeurs
// distinctes pour les listes déroulantes de filtres côté UI.
type Summary struct {
	TotalRecords int      `json:"total_records"`
	Depots       []string `json:"depots,omitempty"`
	Articles     []string `json:"articles,omitempty"`
	Packagings   []string `json:"packagings,omitempty"`
	Discarded    int      `json:"discarded"`
}

// Session est un fichier chargé et normalisé, avec ses métadonnées.
// Une session n'est jamais mutée après création ; le store la remplace
// atomiquement quand un nouveau fichier du même type arrive.
type Session struct {
	ID         string      `json:"session_id"`
	Kind       SessionKind `json:"kind"`
	FileName   string      `json:"file_name"`
	UploadedAt time.Time   `json:"uploaded_at"`
	Summary    Summary     `json:"summary"`

	// Un seul des trois champs est renseigné, selon Kind.
	Orders  []OrderLine    `json:"-"`
	Stock   []CentralStock `json:"-"`
	Transit []TransitLine  `json:"-"`
}

// RecordCount retourne le nombre d'enregistrements portés par la session.
func (s *Session) RecordCount() int {
	switch s.Kind {
	case KindOrders:
		return len(s.Orders)
	case KindStock:
		return len(s.Stock)
	case KindTransit:
		return len(s.Transit)
	}
	return 0
}

// SessionHeader est la vue publique d'une session pour GET /api/sessions.
type SessionHeader struct {
	ID          string      `json:"session_id"`
	Kind        SessionKind `json:"kind"`
	FileName    string      `json:"file_name"`
	UploadedAt  time.Time   `json:"uploaded_at"`
	RecordCount int         `json:"record_count"`
}

// Header construit l'en-tête public de la session.
func (s *Session) Header() SessionHeader {
	return SessionHeader{
		ID:          s.ID,
		Kind:        s.Kind,
		FileName:    s.FileName,
		UploadedAt:  s.UploadedAt,
		RecordCount: s.RecordCount(),
	}
}
