package ports

import (
	"context"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/domain/entity"
)

// LLMService est le port de sortie vers le modèle de langage. L'adaptateur
// (Anthropic, mock de test...) ne connaît que le contexte sérialisé : la
// seule garantie du cœur est la forme JSON-safe de ce qui traverse la
// frontière. Le contexte doit porter un timeout.
type LLMService interface {
	Answer(ctx context.Context, dataContext dto.ChatContext, question string) (string, error)
}

// UploadJournal est le port d'audit des chargements. Implémentation
// Postgres optionnelle ; un échec d'écriture ne doit jamais faire échouer
// l'upload.
type UploadJournal interface {
	Record(ctx context.Context, header entity.SessionHeader, discarded int) error
}
