// Package planning implémente le calcul de réapprovisionnement des dépôts
// et la suggestion de complément de camion.
package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/domain"
	"github.com/jmartel/planif-depots/internal/domain/catalog"
	"github.com/jmartel/planif-depots/internal/domain/entity"
	domplanning "github.com/jmartel/planif-depots/internal/domain/planning"
	"github.com/jmartel/planif-depots/internal/domain/repository"
	"github.com/jmartel/planif-depots/pkg/metrics"
)

// Le schéma positionnel du fichier commandes ne porte aucune colonne de
// date : l'horizon de référence du taux journalier vaut toujours 1 et la
// demande se réduit à ceil(quantité commandée × jours).
const referenceHorizon = 1

// Statuts d'une ligne du plan.
const (
	StatusOK       = "ok"       // demande couverte par l'offre, rien à expédier
	StatusShip     = "ship"     // quantité à expédier
	StatusCritical = "critical" // à expédier mais stock central insuffisant
)

// Calculator joint les trois sessions actives sur (article, dépôt) et
// produit le plan d'expédition pour un horizon donné. Sans état propre :
// chaque appel capture ses snapshots à l'entrée, tout ou rien.
type Calculator struct {
	store repository.SessionStore
}

// NewCalculator construit le calculateur.
func NewCalculator(store repository.SessionStore) *Calculator {
	return &Calculator{store: store}
}

// pairKey identifie une paire (dépôt, article) agrégée.
type pairKey struct {
	depot   string
	article string
}

// pairAggregate cumule les lignes de commande d'une même paire : quantités
// sommées, K et conditionnement pris sur la première ligne vue.
type pairAggregate struct {
	orderedQty   int
	freeStockQty int
	packaging    string
	k            int
}

// Calculate produit le plan complet pour req.Days. La session commandes est
// obligatoire ; stock et transit valent "tout à zéro" s'ils manquent.
func (c *Calculator) Calculate(req dto.CalculateRequest) (*dto.CalculateResponse, error) {
	if req.Days < 1 {
		return nil, fmt.Errorf("%w : days=%d, minimum 1", domain.ErrInvalidParameter, req.Days)
	}

	orders := c.store.Active(entity.KindOrders)
	if orders == nil {
		return nil, domain.ErrMissingInputs
	}
	// Snapshots capturés à l'entrée : un chargement concurrent ne peut pas
	// mélanger deux sessions dans un même calcul.
	stock := c.store.Active(entity.KindStock)
	transit := c.store.Active(entity.KindTransit)

	started := time.Now()
	onHand := indexStock(stock)
	inTransit := indexTransit(transit)
	pairs := aggregateOrders(orders.Orders, req.ProductFilter, req.PackagingFilter)

	rows := make([]dto.CalculationRow, 0, len(pairs))
	for key, agg := range pairs {
		demand := domplanning.Demand(agg.orderedQty, referenceHorizon, req.Days)
		supply := agg.freeStockQty + inTransit[key]
		toShip := demand - supply
		if toShip < 0 {
			toShip = 0
		}

		status := StatusOK
		if toShip > 0 {
			status = StatusShip
			if onHand[key.article] < toShip {
				status = StatusCritical
			}
		}

		sourcing := catalog.Classify(key.article)
		rows = append(rows, dto.CalculationRow{
			Depot:             key.depot,
			Article:           key.article,
			Packaging:         agg.packaging,
			OrderedQty:        agg.orderedQty,
			Demand:            demand,
			FreeStockQty:      agg.freeStockQty,
			InTransitQty:      inTransit[key],
			QuantityToShip:    toShip,
			ProductsPerPallet: agg.k,
			PalletsNeeded:     domplanning.PalletsFor(toShip, agg.k),
			Status:            status,
			Sourcing:          string(sourcing),
			SourcingLabel:     catalog.Label(sourcing),
		})
	}

	// Ordre de sortie déterministe : dépôt croissant puis article croissant.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Depot != rows[j].Depot {
			return rows[i].Depot < rows[j].Depot
		}
		return rows[i].Article < rows[j].Article
	})

	summaries := depotSummaries(rows)

	metrics.CalculationsTotal.Inc()
	metrics.CalculationDuration.Observe(time.Since(started).Seconds())

	return &dto.CalculateResponse{
		Calculations: rows,
		DepotSummary: summaries,
		Days:         req.Days,
	}, nil
}

// aggregateOrders groupe les lignes par (dépôt, article) après application
// des filtres optionnels article et conditionnement.
func aggregateOrders(lines []entity.OrderLine, productFilter, packagingFilter string) map[pairKey]*pairAggregate {
	pairs := make(map[pairKey]*pairAggregate, len(lines))
	for _, line := range lines {
		if productFilter != "" && line.Article != productFilter {
			continue
		}
		if packagingFilter != "" && line.Packaging != packagingFilter {
			continue
		}
		key := pairKey{depot: line.Depot, article: line.Article}
		agg, ok := pairs[key]
		if !ok {
			agg = &pairAggregate{packaging: line.Packaging, k: line.ProductsPerPallet}
			pairs[key] = agg
		}
		agg.orderedQty += line.OrderedQty
		agg.freeStockQty += line.FreeStockQty
	}
	return pairs
}

// indexStock indexe le stock central par article. Les doublons d'article
// dans une même session sont sommés.
func indexStock(stock *entity.Session) map[string]int {
	idx := map[string]int{}
	if stock == nil {
		return idx
	}
	for _, s := range stock.Stock {
		idx[s.Article] += s.OnHandQty
	}
	return idx
}

// indexTransit somme les quantités en transit par (dépôt destination, article).
func indexTransit(transit *entity.Session) map[pairKey]int {
	idx := map[pairKey]int{}
	if transit == nil {
		return idx
	}
	for _, t := range transit.Transit {
		idx[pairKey{depot: t.DestDepot, article: t.Article}] += t.InTransitQty
	}
	return idx
}

// depotSummaries agrège les palettes par dépôt. rows est déjà trié par
// dépôt : les résumés sortent dans le même ordre.
func depotSummaries(rows []dto.CalculationRow) []dto.DepotSummary {
	var summaries []dto.DepotSummary
	for _, row := range rows {
		if len(summaries) == 0 || summaries[len(summaries)-1].Depot != row.Depot {
			summaries = append(summaries, dto.DepotSummary{Depot: row.Depot})
		}
		summaries[len(summaries)-1].TotalPallets += row.PalletsNeeded
	}
	for i := range summaries {
		summaries[i].TrucksNeeded = domplanning.TrucksFor(summaries[i].TotalPallets, entity.TruckCapacity)
		summaries[i].FillRatio = domplanning.FillRatio(summaries[i].TotalPallets, entity.TruckCapacity)
	}
	if summaries == nil {
		summaries = []dto.DepotSummary{}
	}
	return summaries
}
