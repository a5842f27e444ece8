package ingest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/ports"
	"github.com/jmartel/planif-depots/internal/domain/entity"
	"github.com/jmartel/planif-depots/internal/domain/repository"
	"github.com/jmartel/planif-depots/pkg/metrics"
)

// SheetReader décode un classeur binaire en lignes de cellules (première
// feuille). L'implémentation excelize vit dans infrastructure/excel.
type SheetReader interface {
	Rows(fileBytes []byte) ([][]string, error)
}

// UploadUseCase orchestre un chargement : lecture du classeur,
// normalisation, publication de la session, journal d'audit optionnel.
type UploadUseCase struct {
	reader     SheetReader
	normalizer *Normalizer
	store      repository.SessionStore
	journal    ports.UploadJournal // nil si DATABASE_URL absent
	log        zerolog.Logger
}

// NewUploadUseCase construit le cas d'usage. journal peut être nil.
func NewUploadUseCase(
	reader SheetReader,
	store repository.SessionStore,
	journal ports.UploadJournal,
	log zerolog.Logger,
) *UploadUseCase {
	return &UploadUseCase{
		reader:     reader,
		normalizer: NewNormalizer(),
		store:      store,
		journal:    journal,
		log:        log,
	}
}

// Upload normalise fileBytes comme fichier du type déclaré et publie la
// session active. Les fichiers sources ne sont jamais mutés : seuls les
// enregistrements canoniques sont conservés.
func (uc *UploadUseCase) Upload(
	ctx context.Context,
	kind entity.SessionKind,
	fileName string,
	fileBytes []byte,
) (*dto.UploadResponse, error) {
	rows, err := uc.reader.Rows(fileBytes)
	if err != nil {
		return nil, err
	}

	sess, err := uc.normalizer.Normalize(kind, rows)
	if err != nil {
		return nil, err
	}
	sess.FileName = fileName

	sess = uc.store.Put(sess)
	metrics.UploadsTotal.WithLabelValues(string(kind)).Inc()

	uc.log.Info().
		Str("kind", string(kind)).
		Str("session_id", sess.ID).
		Str("file", fileName).
		Int("records", sess.RecordCount()).
		Int("discarded", sess.Summary.Discarded).
		Msg("fichier chargé")

	if uc.journal != nil {
		if err := uc.journal.Record(ctx, sess.Header(), sess.Summary.Discarded); err != nil {
			// L'audit ne doit jamais faire échouer le chargement.
			uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("journal d'upload indisponible")
		}
	}

	resp := &dto.UploadResponse{SessionID: sess.ID, Summary: sess.Summary}
	if kind == entity.KindOrders {
		resp.Filters = &dto.UploadFilters{
			Depots:     sess.Summary.Depots,
			Articles:   sess.Summary.Articles,
			Packagings: sess.Summary.Packagings,
		}
	}
	return resp, nil
}
