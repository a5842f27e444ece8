package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/ingest"
	"github.com/jmartel/planif-depots/internal/application/planning"
	"github.com/jmartel/planif-depots/internal/application/usecase"
	"github.com/jmartel/planif-depots/internal/infrastructure/excel"
	"github.com/jmartel/planif-depots/internal/infrastructure/memstore"
	"github.com/jmartel/planif-depots/internal/infrastructure/pdf"
	apphttp "github.com/jmartel/planif-depots/internal/interfaces/http"
	"github.com/jmartel/planif-depots/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Montage de l'application
// ──────────────────────────────────────────────────────────────────────────────

type stubLLM struct{ reply string }

func (s *stubLLM) Answer(context.Context, dto.ChatContext, string) (string, error) {
	return s.reply, nil
}

func newTestApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()

	store := memstore.New()
	uploadUC := ingest.NewUploadUseCase(excel.NewReader(), store, nil, zerolog.Nop())
	calculator := planning.NewCalculator(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UploadUC:   uploadUC,
		Calculator: calculator,
		Suggester:  planning.NewTopUpSuggester(store, calculator),
		ChatUC:     usecase.NewChatUseCase(store, &stubLLM{reply: "réponse de test"}),
		Store:      store,
		Exporter:   excel.NewExporter(),
		PDFGen:     pdf.NewPlanPDFGenerator(),
		JWTSecret:  jwtSecret,
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Fabrique de classeurs
// ──────────────────────────────────────────────────────────────────────────────

// workbook assemble un .xlsx en mémoire, une ligne de cellules par entrée.
func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// Colonnes liées par position : les en-têtes ne portent que la largeur.
func ordersHeader() []interface{} {
	return []interface{}{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11"}
}

func ordersRow(article, depot string, ordered, free interface{}, packaging string, k interface{}) []interface{} {
	return []interface{}{"", article, "", depot, "", ordered, free, "", packaging, "", k}
}

func stockRow(division, article string, onHand interface{}) []interface{} {
	return []interface{}{division, article, "", onHand}
}

func transitRow(article, dest, source string, qty interface{}) []interface{} {
	return []interface{}{article, "", dest, "", "", "", source, "", qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Requêtes
// ──────────────────────────────────────────────────────────────────────────────

func uploadRequest(t *testing.T, path, fileName string, fileBytes []byte) *nethttp.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(fileBytes)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(nethttp.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, path string, payload interface{}) *nethttp.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *nethttp.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Parcours complet
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FluxComplet(t *testing.T) {
	app := newTestApp(t, "")

	// Chargement des commandes.
	resp, err := app.Test(uploadRequest(t, "/api/upload-commandes-excel", "commandes.xlsx", workbook(t,
		ordersHeader(),
		ordersRow("TEST001", "M212", 1000, 0, "PET", 10),
		ordersRow("AUTRE", "M213", 50, 10, "Verre", 25),
	)), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var upload dto.UploadResponse
	decodeBody(t, resp, &upload)
	assert.NotEmpty(t, upload.SessionID)
	assert.Equal(t, 2, upload.Summary.TotalRecords)
	require.NotNil(t, upload.Filters)
	assert.Equal(t, []string{"M212", "M213"}, upload.Filters.Depots)
	assert.Equal(t, []string{"pet", "verre"}, upload.Filters.Packagings)

	// Chargement du stock central et du transit.
	resp, err = app.Test(uploadRequest(t, "/api/upload-stock-excel", "stock.xlsx", workbook(t,
		[]interface{}{"division", "article", "x", "qte"},
		stockRow("M210", "TEST001", 20000),
		stockRow("M210", "BONUS", 500),
	)), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(uploadRequest(t, "/api/upload-transit-excel", "transit.xlsx", workbook(t,
		[]interface{}{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
		transitRow("TEST001", "M212", "M210", 40),
	)), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Calcul du plan sur 10 jours.
	resp, err = app.Test(jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 10}), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var plan dto.CalculateResponse
	decodeBody(t, resp, &plan)
	require.Len(t, plan.Calculations, 2)

	row := plan.Calculations[0] // M212 avant M213
	assert.Equal(t, "TEST001", row.Article)
	assert.Equal(t, 10000, row.Demand)
	assert.Equal(t, 9960, row.QuantityToShip, "40 unités déjà en transit")
	assert.Equal(t, 996, row.PalletsNeeded)

	summary := plan.DepotSummary[0]
	assert.Equal(t, "M212", summary.Depot)
	assert.Equal(t, 42, summary.TrucksNeeded)
	assert.Equal(t, 12, summary.FillRatio)

	// Suggestions pour compléter le dernier camion de M212.
	resp, err = app.Test(jsonRequest(t, "/api/depot-suggestions", dto.SuggestionsRequest{DepotName: "M212", Days: 10}), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var sug dto.SuggestionsResponse
	decodeBody(t, resp, &sug)
	assert.Equal(t, 996, sug.CurrentPalettes)
	require.NotEmpty(t, sug.Suggestions)
	assert.Equal(t, "BONUS", sug.Suggestions[0].Article, "TEST001 est commandé à M212, exclu")

	// Les trois sessions actives, toujours dans le même ordre.
	req := httptest.NewRequest(nethttp.MethodGet, "/api/sessions", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var sessions []map[string]interface{}
	decodeBody(t, resp, &sessions)
	require.Len(t, sessions, 3)
	assert.Equal(t, "commandes", sessions[0]["kind"])
	assert.Equal(t, "stock", sessions[1]["kind"])
	assert.Equal(t, "transit", sessions[2]["kind"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxonomie d'erreurs
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CalculSansCommandes(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 10}), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "MISSING_INPUTS", body.Code)
}

func TestAPI_HorizonInvalide(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 0}), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "INVALID_PARAMETER", body.Code)
}

func TestAPI_FichierIllisible(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(uploadRequest(t, "/api/upload-commandes-excel", "pas-un-xlsx.xlsx", []byte("n'importe quoi")), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "MALFORMED_INPUT", body.Code)
}

// Toutes les lignes écartées : 400 avec le compte, et aucune session
// publiée, l'état précédent reste actif.
func TestAPI_FichierSansLigneRetenue(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(uploadRequest(t, "/api/upload-commandes-excel", "vide.xlsx", workbook(t,
		ordersHeader(),
		ordersRow("A", "M212", 10, 0, "PET", 0),  // K invalide
		ordersRow("", "M212", 10, 0, "PET", 10),  // article vide
	)), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "EMPTY_INPUT", body.Code)
	assert.Equal(t, 2, body.Discarded)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/sessions", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	var sessions []map[string]interface{}
	decodeBody(t, resp, &sessions)
	assert.Empty(t, sessions)
}

func TestAPI_ChampFichierManquant(t *testing.T) {
	app := newTestApp(t, "")

	req := httptest.NewRequest(nethttp.MethodPost, "/api/upload-commandes-excel", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "MISSING_FILE", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exports
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ExportExcel(t *testing.T) {
	app := newTestApp(t, "")

	payload := dto.ExportRequest{SelectedItems: []dto.CalculationRow{{
		Depot: "M212", Article: "TEST001", Packaging: "pet",
		QuantityToShip: 100, ProductsPerPallet: 10, PalletsNeeded: 10,
		Status: "ship", SourcingLabel: "Production Locale",
	}}}

	resp, err := app.Test(jsonRequest(t, "/api/export-excel", payload), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	// Le classeur produit doit se relire.
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Plan")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2, "en-tête plus une ligne")
	assert.Contains(t, rows[1], "TEST001")
}

func TestAPI_ExportSelectionVide(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(jsonRequest(t, "/api/export-excel", dto.ExportRequest{}), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "INVALID_PARAMETER", body.Code)
}

func TestAPI_ExportPDF(t *testing.T) {
	app := newTestApp(t, "")

	payload := dto.ExportRequest{SelectedItems: []dto.CalculationRow{{
		Depot: "M212", Article: "TEST001", QuantityToShip: 100,
		ProductsPerPallet: 10, PalletsNeeded: 10, Status: "critical",
	}}}

	resp, err := app.Test(jsonRequest(t, "/api/export-pdf", payload), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "signature PDF attendue")
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Chat(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(jsonRequest(t, "/api/chat", dto.ChatRequest{Message: "où en est M212 ?"}), -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "réponse de test", body.Reply)
}

func TestAPI_ChatMessageVide(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(jsonRequest(t, "/api/chat", dto.ChatRequest{}), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Protection JWT
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AuthJWT(t *testing.T) {
	const secret = "secret-de-test"
	app := newTestApp(t, secret)

	// Sans jeton : refusé.
	resp, err := app.Test(jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 1}), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Schéma incorrect : refusé.
	req := jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 1})
	req.Header.Set("Authorization", "Basic abc")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Jeton valide : la requête atteint le handler (400 faute de commandes).
	token, err := jwt.Generate(secret, "operateur-1", "planif-depots", 5)
	require.NoError(t, err)

	req = jsonRequest(t, "/api/calculate", dto.CalculateRequest{Days: 1})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "MISSING_INPUTS", body.Code)

	// /metrics reste hors protection.
	resp, err = app.Test(httptest.NewRequest(nethttp.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
