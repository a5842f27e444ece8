package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
)

// En-têtes de la feuille exportée, dans l'ordre des colonnes.
var exportHeaders = []string{
	"Dépôt", "Article", "Conditionnement", "Quantité commandée",
	"Demande", "Stock libre", "En transit", "Quantité à expédier",
	"Produits/palette", "Palettes", "Statut", "Provenance",
}

// Exporter rend les lignes du plan retenues par l'opérateur en classeur
// .xlsx. Les fichiers sources ne sont jamais relus ni modifiés.
type Exporter struct{}

// NewExporter construit l'exporteur.
func NewExporter() *Exporter { return &Exporter{} }

// Export écrit une feuille "Plan" : ligne d'en-tête puis une ligne par
// élément sélectionné, et retourne le classeur sérialisé.
func (e *Exporter) Export(items []dto.CalculationRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Plan"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export excel : %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("export excel : %w", err)
		}
	}

	for i, item := range items {
		values := []interface{}{
			item.Depot, item.Article, item.Packaging, item.OrderedQty,
			item.Demand, item.FreeStockQty, item.InTransitQty, item.QuantityToShip,
			item.ProductsPerPallet, item.PalletsNeeded, item.Status, item.SourcingLabel,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export excel : %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("export excel : %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export excel : sérialisation : %w", err)
	}
	return buf.Bytes(), nil
}
