package planning

import (
	"fmt"
	"sort"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/domain"
	"github.com/jmartel/planif-depots/internal/domain/catalog"
	"github.com/jmartel/planif-depots/internal/domain/entity"
	"github.com/jmartel/planif-depots/internal/domain/repository"
	"github.com/jmartel/planif-depots/pkg/metrics"
)

// TopUpSuggester propose des articles du stock central pour compléter le
// dernier camion partiel d'un dépôt. Glouton : par stock central
// décroissant, sans backtracking — le nombre de créneaux est borné par la
// capacité camion.
type TopUpSuggester struct {
	store      repository.SessionStore
	calculator *Calculator
}

// NewTopUpSuggester construit le suggesteur.
func NewTopUpSuggester(store repository.SessionStore, calculator *Calculator) *TopUpSuggester {
	return &TopUpSuggester{store: store, calculator: calculator}
}

// candidate est un article du stock central non commandé au dépôt cible.
type candidate struct {
	article string
	onHand  int
	k       int
}

// Suggest calcule le plan pour days puis remplit les créneaux restants du
// dépôt. Quand le chargement tombe juste sur une frontière de camion, un
// camion supplémentaire complet est proposé.
func (s *TopUpSuggester) Suggest(req dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	if req.DepotName == "" {
		return nil, fmt.Errorf("%w : depot_name requis", domain.ErrInvalidParameter)
	}

	calc, err := s.calculator.Calculate(dto.CalculateRequest{Days: req.Days})
	if err != nil {
		return nil, err
	}

	orders := s.store.Active(entity.KindOrders)
	ordered, known := orderedArticles(orders, req.DepotName)
	if !known {
		return nil, fmt.Errorf("%w : dépôt %q absent des commandes", domain.ErrInvalidParameter, req.DepotName)
	}

	currentPallets, fill := depotLoad(calc.DepotSummary, req.DepotName)

	slots := entity.TruckCapacity - fill
	if fill == 0 {
		slots = entity.TruckCapacity
	}

	resp := &dto.SuggestionsResponse{
		Depot:           req.DepotName,
		Suggestions:     []dto.Suggestion{},
		CurrentPalettes: currentPallets,
		TargetPalettes:  currentPallets + slots,
	}

	stock := s.store.Active(entity.KindStock)
	if stock == nil || len(stock.Stock) == 0 {
		resp.Status = "aucun stock central chargé"
		return resp, nil
	}

	kIndex := productsPerPalletIndex(orders)
	candidates := buildCandidates(stock, ordered, kIndex)

	// Stock décroissant, article croissant à égalité : déterministe.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].onHand != candidates[j].onHand {
			return candidates[i].onHand > candidates[j].onHand
		}
		return candidates[i].article < candidates[j].article
	})

	remaining := slots
	for _, cand := range candidates {
		if remaining <= 0 {
			break
		}
		maxByStock := cand.onHand / cand.k
		if maxByStock == 0 {
			// Pas de quoi remplir une palette entière : ignoré.
			continue
		}
		pallets := maxByStock
		if pallets > remaining {
			pallets = remaining
		}
		sourcing := catalog.Classify(cand.article)
		resp.Suggestions = append(resp.Suggestions, dto.Suggestion{
			Article:           cand.article,
			SuggestedPallets:  pallets,
			SuggestedQuantity: pallets * cand.k,
			ProductsPerPallet: cand.k,
			OnHandQty:         cand.onHand,
			Sourcing:          string(sourcing),
			SourcingLabel:     catalog.Label(sourcing),
		})
		remaining -= pallets
	}

	resp.SlotsFilled = slots - remaining
	metrics.SuggestionsTotal.Inc()
	return resp, nil
}

// orderedArticles retourne les articles commandés au dépôt et indique si le
// dépôt apparaît dans la session commandes.
func orderedArticles(orders *entity.Session, depot string) (map[string]struct{}, bool) {
	set := map[string]struct{}{}
	known := false
	if orders == nil {
		return set, false
	}
	for _, line := range orders.Orders {
		if line.Depot == depot {
			known = true
			set[line.Article] = struct{}{}
		}
	}
	return set, known
}

// depotLoad retourne palettes totales et remplissage du dernier camion pour
// le dépôt, zéro si le plan ne le mentionne pas (rien à expédier).
func depotLoad(summaries []dto.DepotSummary, depot string) (pallets, fill int) {
	for _, s := range summaries {
		if s.Depot == depot {
			return s.TotalPallets, s.FillRatio
		}
	}
	return 0, 0
}

// productsPerPalletIndex indexe K par article, première ligne vue gagnante.
func productsPerPalletIndex(orders *entity.Session) map[string]int {
	idx := map[string]int{}
	if orders == nil {
		return idx
	}
	for _, line := range orders.Orders {
		if _, ok := idx[line.Article]; !ok {
			idx[line.Article] = line.ProductsPerPallet
		}
	}
	return idx
}

// buildCandidates retient les articles en stock central absents des
// commandes du dépôt. K vient de n'importe quelle ligne de commande
// mentionnant l'article, sinon du défaut K₀.
func buildCandidates(stock *entity.Session, ordered map[string]struct{}, kIndex map[string]int) []candidate {
	onHand := map[string]int{}
	for _, s := range stock.Stock {
		onHand[s.Article] += s.OnHandQty
	}

	candidates := make([]candidate, 0, len(onHand))
	for article, qty := range onHand {
		if _, already := ordered[article]; already {
			continue
		}
		k, ok := kIndex[article]
		if !ok {
			k = entity.DefaultProductsPerPallet
		}
		candidates = append(candidates, candidate{article: article, onHand: qty, k: k})
	}
	return candidates
}
