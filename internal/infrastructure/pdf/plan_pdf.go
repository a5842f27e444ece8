// Package pdf rend le plan de réapprovisionnement en document A4 :
// en-tête, tableau des lignes retenues, totaux de palettes par dépôt.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jmartel/planif-depots/internal/application/dto"
)

// ── Palette de couleurs ───────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PlanPDFGenerator rend le plan d'expédition avec Maroto v2.
type PlanPDFGenerator struct{}

// NewPlanPDFGenerator construit le générateur.
func NewPlanPDFGenerator() *PlanPDFGenerator { return &PlanPDFGenerator{} }

// GeneratePlanPDF génère le document et retourne ses octets.
func (g *PlanPDFGenerator) GeneratePlanPDF(_ context.Context, items []dto.CalculationRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de réapprovisionnement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range depotTotalRows(items) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf : générer le document : %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow : titre + date de génération + volumétrie.
func headerRow(count int) core.Row {
	date := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PLAN DE RÉAPPROVISIONNEMENT DES DÉPÔTS", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Expéditions depuis l'entrepôt central M210", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Généré le "+date, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d lignes retenues", count), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// tableHeaderRow : entête de la table du plan.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Dépôt", 2, align.Left),
		h("Article", 2, align.Left),
		h("Cond.", 1, align.Center),
		h("À expédier", 2, align.Right),
		h("Palettes", 1, align.Right),
		h("Statut", 1, align.Center),
		h("Provenance", 3, align.Left),
	)
}

// tableDetailRows : une ligne par élément du plan, statut critical en rouge.
func tableDetailRows(items []dto.CalculationRow) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		statusColor := colorGray
		if it.Status == "critical" {
			statusColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.Depot, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Article, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Packaging, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.QuantityToShip),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.PalletsNeeded),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Status,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor})),
			col.New(3).Add(text.New(it.SourcingLabel, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

// depotTotalRows : palettes et camions par dépôt, ordre de la sélection.
func depotTotalRows(items []dto.CalculationRow) []core.Row {
	totals := map[string]int{}
	var order []string
	for _, it := range items {
		if _, seen := totals[it.Depot]; !seen {
			order = append(order, it.Depot)
		}
		totals[it.Depot] += it.PalletsNeeded
	}

	result := make([]core.Row, 0, len(order)+1)
	result = append(result, row.New(8).Add(
		col.New(12).Add(text.New("TOTAUX PAR DÉPÔT", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		})),
	))
	for _, depot := range order {
		pallets := totals[depot]
		trucks := (pallets + 23) / 24
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(depot, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d palettes", pallets),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d camion(s)", trucks),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}
