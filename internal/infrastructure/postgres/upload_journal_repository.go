package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmartel/planif-depots/internal/application/ports"
	"github.com/jmartel/planif-depots/internal/domain/entity"
)

var _ ports.UploadJournal = (*UploadJournalRepo)(nil)

// UploadJournalRepo trace chaque chargement réussi dans la table
// upload_journal. Les sessions elles-mêmes restent en mémoire : la table
// n'est qu'un historique d'audit.
type UploadJournalRepo struct {
	pool *pgxpool.Pool
}

// NewUploadJournalRepository construit l'adaptateur.
func NewUploadJournalRepository(pool *pgxpool.Pool) *UploadJournalRepo {
	return &UploadJournalRepo{pool: pool}
}

// EnsureSchema crée la table d'audit si nécessaire.
func (r *UploadJournalRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS upload_journal (
			session_id   TEXT PRIMARY KEY,
			kind         TEXT NOT NULL,
			file_name    TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			discarded    INTEGER NOT NULL,
			uploaded_at  TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("créer upload_journal : %w", err)
	}
	return nil
}

// Record insère l'entrée d'audit du chargement.
func (r *UploadJournalRepo) Record(ctx context.Context, header entity.SessionHeader, discarded int) error {
	query := `
		INSERT INTO upload_journal (session_id, kind, file_name, record_count, discarded, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		header.ID, string(header.Kind), header.FileName,
		header.RecordCount, discarded, header.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("journaliser le chargement : %w", err)
	}
	return nil
}
