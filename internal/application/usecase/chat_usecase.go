package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/ports"
	"github.com/jmartel/planif-depots/internal/domain"
	"github.com/jmartel/planif-depots/internal/domain/entity"
	"github.com/jmartel/planif-depots/internal/domain/repository"
	"github.com/jmartel/planif-depots/pkg/metrics"
)

// ChatUseCase répond aux questions en langage naturel sur les données
// chargées. Le moteur ne garantit que la sérialisation du contexte ;
// l'adaptateur LLM est une boîte noire derrière ports.LLMService.
type ChatUseCase struct {
	store repository.SessionStore
	llm   ports.LLMService
}

// NewChatUseCase construit le cas d'usage en injectant le port LLM.
func NewChatUseCase(store repository.SessionStore, llm ports.LLMService) *ChatUseCase {
	return &ChatUseCase{store: store, llm: llm}
}

// BuildContext sérialise le snapshot compact des sessions actives.
// Les horodatages sont aplatis en chaînes RFC 3339 ici, à la frontière,
// jamais dans les types du moteur.
func (uc *ChatUseCase) BuildContext() dto.ChatContext {
	var cc dto.ChatContext
	if s := uc.store.Active(entity.KindOrders); s != nil {
		entry := sessionContext(s)
		entry.Depots = s.Summary.Depots
		entry.Articles = s.Summary.Articles
		cc.Commandes = entry
	}
	if s := uc.store.Active(entity.KindStock); s != nil {
		entry := sessionContext(s)
		entry.Articles = s.Summary.Articles
		cc.Stock = entry
	}
	if s := uc.store.Active(entity.KindTransit); s != nil {
		entry := sessionContext(s)
		entry.Depots = s.Summary.Depots
		cc.Transit = entry
	}
	return cc
}

func sessionContext(s *entity.Session) *dto.ChatSessionContext {
	return &dto.ChatSessionContext{
		UploadedAt:  s.UploadedAt.Format(time.RFC3339),
		FileName:    s.FileName,
		RecordCount: s.RecordCount(),
	}
}

// Ask valide la question puis délègue au LLM avec le contexte sérialisé.
// Timeout de 10 s : les latences externes ne doivent pas bloquer les
// goroutines du serveur.
func (uc *ChatUseCase) Ask(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("%w : message requis", domain.ErrInvalidParameter)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reply, err := uc.llm.Answer(ctx, uc.BuildContext(), req.Message)
	if err != nil {
		return nil, fmt.Errorf("chat : %w", err)
	}

	metrics.ChatRequestsTotal.Inc()
	return &dto.ChatResponse{Reply: reply}, nil
}
