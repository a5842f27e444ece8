package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/ports"
)

// Vérification à la compilation qu'AnthropicService implémente LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Tu es l'assistant du service de planification de réapprovisionnement
des dépôts d'un distributeur de boissons. L'opérateur charge trois fichiers : commandes clients
ouvertes, stock de l'entrepôt central M210 et expéditions en transit. Tu réponds en français,
brièvement, uniquement à partir du contexte JSON fourni (sessions actives, volumétrie, dépôts,
articles). Si une information n'est pas dans le contexte, dis-le au lieu d'inventer.`
)

// AnthropicService implémente LLMService via l'API REST Anthropic Messages.
// net/http de la librairie standard suffit ; pas besoin du SDK officiel.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construit l'adaptateur. model est typiquement
// "claude-3-5-haiku-20241022". apiKey vide : les appels retournent une
// erreur descriptive plutôt qu'un panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout réseau de 25 s ; le cas d'usage impose en plus un
			// context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Structures internes du protocole Anthropic Messages API ───────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implémentation du port ────────────────────────────────────────────────────

// Answer envoie le contexte des sessions et la question de l'opérateur au
// modèle et retourne la réponse en texte libre.
func (s *AnthropicService) Answer(ctx context.Context, dataContext dto.ChatContext, question string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI : ANTHROPIC_API_KEY non configuré")
	}

	contextJSON, err := json.Marshal(dataContext)
	if err != nil {
		return "", fmt.Errorf("AI : sérialiser le contexte : %w", err)
	}

	userContent := fmt.Sprintf("Contexte des données chargées :\n%s\n\nQuestion : %s",
		string(contextJSON), question)

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI : sérialiser la requête : %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI : créer la requête HTTP : %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI : timeout ou annulation : %w", ctx.Err())
		}
		return "", fmt.Errorf("AI : appel HTTP échoué : %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI : lire la réponse : %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI : erreur Anthropic (%s) : %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI : Anthropic HTTP %d : %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI : désérialiser la réponse Anthropic : %w", err)
	}

	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI : réponse vide du modèle")
	}
	return anthResp.Content[0].Text, nil
}
