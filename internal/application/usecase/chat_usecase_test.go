package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/usecase"
	"github.com/jmartel/planif-depots/internal/domain"
	"github.com/jmartel/planif-depots/internal/domain/entity"
	"github.com/jmartel/planif-depots/internal/infrastructure/memstore"
)

// fakeLLM capture le contexte reçu et rend une réponse fixe.
type fakeLLM struct {
	lastContext  dto.ChatContext
	lastQuestion string
	reply        string
	err          error
}

func (f *fakeLLM) Answer(_ context.Context, cc dto.ChatContext, question string) (string, error) {
	f.lastContext = cc
	f.lastQuestion = question
	return f.reply, f.err
}

func TestBuildContext_Vide(t *testing.T) {
	uc := usecase.NewChatUseCase(memstore.New(), &fakeLLM{})

	cc := uc.BuildContext()
	assert.Nil(t, cc.Commandes)
	assert.Nil(t, cc.Stock)
	assert.Nil(t, cc.Transit)

	raw, err := json.Marshal(cc)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

// Le contexte est sérialisable en JSON et ses horodatages sont des
// chaînes RFC 3339, jamais des time.Time.
func TestBuildContext_SessionsActives(t *testing.T) {
	store := memstore.New()
	store.Put(&entity.Session{
		Kind:     entity.KindOrders,
		FileName: "commandes.xlsx",
		Summary: entity.Summary{
			TotalRecords: 2,
			Depots:       []string{"M212", "M213"},
			Articles:     []string{"1011", "9999"},
		},
		Orders: []entity.OrderLine{
			{Article: "1011", Depot: "M212", OrderedQty: 10, ProductsPerPallet: 10},
			{Article: "9999", Depot: "M213", OrderedQty: 5, ProductsPerPallet: 10},
		},
	})
	store.Put(&entity.Session{
		Kind:     entity.KindStock,
		FileName: "stock.xlsx",
		Summary:  entity.Summary{TotalRecords: 1, Articles: []string{"1011"}},
		Stock:    []entity.CentralStock{{Article: "1011", Division: "M210", OnHandQty: 100}},
	})

	uc := usecase.NewChatUseCase(store, &fakeLLM{})
	cc := uc.BuildContext()

	require.NotNil(t, cc.Commandes)
	assert.Equal(t, "commandes.xlsx", cc.Commandes.FileName)
	assert.Equal(t, 2, cc.Commandes.RecordCount)
	assert.Equal(t, []string{"M212", "M213"}, cc.Commandes.Depots)
	assert.Equal(t, []string{"1011", "9999"}, cc.Commandes.Articles)

	_, err := time.Parse(time.RFC3339, cc.Commandes.UploadedAt)
	assert.NoError(t, err, "horodatage aplati en RFC 3339")

	require.NotNil(t, cc.Stock)
	assert.Equal(t, []string{"1011"}, cc.Stock.Articles)
	assert.Empty(t, cc.Stock.Depots)
	assert.Nil(t, cc.Transit)

	_, err = json.Marshal(cc)
	require.NoError(t, err)
}

func TestAsk_DelegueAuLLM(t *testing.T) {
	store := memstore.New()
	store.Put(&entity.Session{Kind: entity.KindOrders, FileName: "c.xlsx"})

	llm := &fakeLLM{reply: "42 palettes pour M212"}
	uc := usecase.NewChatUseCase(store, llm)

	resp, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "combien de palettes pour M212 ?"})
	require.NoError(t, err)

	assert.Equal(t, "42 palettes pour M212", resp.Reply)
	assert.Equal(t, "combien de palettes pour M212 ?", llm.lastQuestion)
	require.NotNil(t, llm.lastContext.Commandes)
	assert.Equal(t, "c.xlsx", llm.lastContext.Commandes.FileName)
}

func TestAsk_MessageVide(t *testing.T) {
	uc := usecase.NewChatUseCase(memstore.New(), &fakeLLM{})

	_, err := uc.Ask(context.Background(), dto.ChatRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestAsk_ErreurLLM(t *testing.T) {
	llm := &fakeLLM{err: errors.New("api indisponible")}
	uc := usecase.NewChatUseCase(memstore.New(), llm)

	_, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "bonjour"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "api indisponible")
}
