// Package ingest normalise les tableurs hétérogènes saisis par les
// opérateurs en enregistrements canoniques, par position de colonne.
package ingest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jmartel/planif-depots/internal/domain"
	"github.com/jmartel/planif-depots/internal/domain/entity"
)

// Normalizer transforme des lignes brutes en enregistrements canoniques.
// Fonction pure sur un itérateur de lignes : aucune E/S, aucun état.
type Normalizer struct{}

// NewNormalizer construit le normaliseur.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize route vers la normalisation du type déclaré. Retourne
// ErrMalformedInput si l'en-tête est absent ou trop étroit pour le schéma,
// ErrEmptyInput si aucune ligne ne survit aux filtres (le résumé porte
// quand même le compte de lignes écartées).
func (n *Normalizer) Normalize(kind entity.SessionKind, rows [][]string) (*entity.Session, error) {
	schema := schemaFor(kind)
	if len(rows) == 0 || len(rows[0]) < schema.minWidth {
		return nil, fmt.Errorf("%w : en-tête absent ou %d colonnes au lieu de %d",
			domain.ErrMalformedInput, headerWidth(rows), schema.minWidth)
	}

	switch kind {
	case entity.KindOrders:
		return n.normalizeOrders(rows[1:])
	case entity.KindStock:
		return n.normalizeStock(rows[1:])
	case entity.KindTransit:
		return n.normalizeTransit(rows[1:])
	}
	return nil, fmt.Errorf("%w : type de fichier inconnu %q", domain.ErrMalformedInput, kind)
}

func headerWidth(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// normalizeOrders retient les lignes de commande complètes : article et
// dépôt non vides, K entier strictement positif, quantités numériques.
func (n *Normalizer) normalizeOrders(rows [][]string) (*entity.Session, error) {
	cols := ordersSchema.columns
	records := make([]entity.OrderLine, 0, len(rows))
	discarded := 0

	for _, row := range rows {
		if len(row) < ordersSchema.minWidth {
			discarded++
			continue
		}
		article := strings.TrimSpace(row[cols["article"]])
		depot := strings.TrimSpace(row[cols["depot"]])
		if article == "" || depot == "" {
			discarded++
			continue
		}
		k, ok := parseExactInt(row[cols["k"]])
		if !ok || k <= 0 {
			discarded++
			continue
		}
		ordered, ok := parseQty(row[cols["ordered"]])
		if !ok {
			discarded++
			continue
		}
		freeStock, ok := parseQty(row[cols["freeStock"]])
		if !ok {
			discarded++
			continue
		}
		records = append(records, entity.OrderLine{
			Article:           article,
			Depot:             depot,
			OrderedQty:        ordered,
			FreeStockQty:      freeStock,
			Packaging:         normalizePackaging(row[cols["packaging"]]),
			ProductsPerPallet: k,
		})
	}

	summary := ordersSummary(records, discarded)
	if len(records) == 0 {
		return sessionOf(entity.KindOrders, summary), &domain.EmptyInputError{Discarded: discarded}
	}
	sess := sessionOf(entity.KindOrders, summary)
	sess.Orders = records
	return sess, nil
}

// normalizeStock ne retient que les lignes de la division entrepôt central.
func (n *Normalizer) normalizeStock(rows [][]string) (*entity.Session, error) {
	cols := stockSchema.columns
	records := make([]entity.CentralStock, 0, len(rows))
	discarded := 0

	for _, row := range rows {
		if len(row) < stockSchema.minWidth {
			discarded++
			continue
		}
		division := strings.TrimSpace(row[cols["division"]])
		article := strings.TrimSpace(row[cols["article"]])
		if division != entity.CentralWarehouse || article == "" {
			discarded++
			continue
		}
		onHand, ok := parseQty(row[cols["onHand"]])
		if !ok {
			discarded++
			continue
		}
		records = append(records, entity.CentralStock{
			Article:   article,
			Division:  division,
			OnHandQty: onHand,
		})
	}

	summary := stockSummary(records, discarded)
	if len(records) == 0 {
		return sessionOf(entity.KindStock, summary), &domain.EmptyInputError{Discarded: discarded}
	}
	sess := sessionOf(entity.KindStock, summary)
	sess.Stock = records
	return sess, nil
}

// normalizeTransit ne retient que les expéditions dont la division cédante
// est l'entrepôt central.
func (n *Normalizer) normalizeTransit(rows [][]string) (*entity.Session, error) {
	cols := transitSchema.columns
	records := make([]entity.TransitLine, 0, len(rows))
	discarded := 0

	for _, row := range rows {
		if len(row) < transitSchema.minWidth {
			discarded++
			continue
		}
		article := strings.TrimSpace(row[cols["article"]])
		dest := strings.TrimSpace(row[cols["dest"]])
		source := strings.TrimSpace(row[cols["source"]])
		if article == "" || dest == "" || source != entity.CentralWarehouse {
			discarded++
			continue
		}
		qty, ok := parseQty(row[cols["qty"]])
		if !ok {
			discarded++
			continue
		}
		records = append(records, entity.TransitLine{
			Article:      article,
			DestDepot:    dest,
			SourceDepot:  source,
			InTransitQty: qty,
		})
	}

	summary := transitSummary(records, discarded)
	if len(records) == 0 {
		return sessionOf(entity.KindTransit, summary), &domain.EmptyInputError{Discarded: discarded}
	}
	sess := sessionOf(entity.KindTransit, summary)
	sess.Transit = records
	return sess, nil
}

func sessionOf(kind entity.SessionKind, summary entity.Summary) *entity.Session {
	return &entity.Session{Kind: kind, Summary: summary}
}

// ── Coercition numérique ──────────────────────────────────────────────────────

// parseQty coerce une cellule en quantité entière ≥ 0. Les exports Excel
// laissent traîner des décimales ("1234.0", "12,5") et des séparateurs de
// milliers : la valeur est arrondie au plus proche. Négatif ou non
// numérique : la ligne est écartée.
func parseQty(cell string) (int, bool) {
	f, ok := parseCellFloat(cell)
	if !ok || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// parseExactInt coerce une cellule en entier exact (pour K : "15.0" passe,
// "15.5" non).
func parseExactInt(cell string) (int, bool) {
	f, ok := parseCellFloat(cell)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseCellFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	// Espaces (y compris insécables) comme séparateurs de milliers,
	// virgule décimale à la française.
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ── Conditionnement ───────────────────────────────────────────────────────────

// foldAccents retire les diacritiques ("Vérre" → "Verre").
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizePackaging replie le jeton de conditionnement : minuscules,
// accents retirés, espaces de bord supprimés. Les jetons attendus sont
// verre, pet et ciel ; un jeton inconnu est conservé tel quel, le résumé
// alimentant les filtres de l'UI.
func normalizePackaging(cell string) string {
	folded, _, err := transform.String(foldAccents, strings.TrimSpace(cell))
	if err != nil {
		folded = strings.TrimSpace(cell)
	}
	return strings.ToLower(folded)
}

// ── Résumés ───────────────────────────────────────────────────────────────────

func ordersSummary(records []entity.OrderLine, discarded int) entity.Summary {
	depots := map[string]struct{}{}
	articles := map[string]struct{}{}
	packagings := map[string]struct{}{}
	for _, r := range records {
		depots[r.Depot] = struct{}{}
		articles[r.Article] = struct{}{}
		if r.Packaging != "" {
			packagings[r.Packaging] = struct{}{}
		}
	}
	return entity.Summary{
		TotalRecords: len(records),
		Depots:       sortedKeys(depots),
		Articles:     sortedKeys(articles),
		Packagings:   sortedKeys(packagings),
		Discarded:    discarded,
	}
}

func stockSummary(records []entity.CentralStock, discarded int) entity.Summary {
	articles := map[string]struct{}{}
	for _, r := range records {
		articles[r.Article] = struct{}{}
	}
	return entity.Summary{
		TotalRecords: len(records),
		Articles:     sortedKeys(articles),
		Discarded:    discarded,
	}
}

func transitSummary(records []entity.TransitLine, discarded int) entity.Summary {
	depots := map[string]struct{}{}
	articles := map[string]struct{}{}
	for _, r := range records {
		depots[r.DestDepot] = struct{}{}
		articles[r.Article] = struct{}{}
	}
	return entity.Summary{
		TotalRecords: len(records),
		Depots:       sortedKeys(depots),
		Articles:     sortedKeys(articles),
		Discarded:    discarded,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
