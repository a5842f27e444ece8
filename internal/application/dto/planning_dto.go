package dto

// CalculateRequest corps de POST /api/calculate.
type CalculateRequest struct {
	Days            int    `json:"days"`
	ProductFilter   string `json:"product_filter,omitempty"`
	PackagingFilter string `json:"packaging_filter,omitempty"`
}

// CalculationRow est une ligne (dépôt, article) du plan de réapprovisionnement.
type CalculationRow struct {
	Depot          string `json:"depot"`
	Article        string `json:"article"`
	Packaging      string `json:"packaging"`
	OrderedQty     int    `json:"ordered_qty"`
	Demand         int    `json:"demand"`
	FreeStockQty   int    `json:"free_stock_qty"`
	InTransitQty   int    `json:"in_transit_qty"`
	QuantityToShip int    `json:"quantity_to_ship"`
	ProductsPerPallet int `json:"products_per_pallet"`
	PalletsNeeded  int    `json:"pallets_needed"`
	Status         string `json:"status"` // ok | ship | critical
	Sourcing       string `json:"sourcing"` // local | external
	SourcingLabel  string `json:"sourcing_label"`
}

// DepotSummary agrège un dépôt : palettes totales, camions, remplissage
// du dernier camion partiel.
type DepotSummary struct {
	Depot        string `json:"depot"`
	TotalPallets int    `json:"total_pallets"`
	TrucksNeeded int    `json:"trucks_needed"`
	FillRatio    int    `json:"fill_ratio"`
}

// CalculateResponse corps de réponse de POST /api/calculate.
type CalculateResponse struct {
	Calculations []CalculationRow `json:"calculations"`
	DepotSummary []DepotSummary   `json:"depot_summary"`
	Days         int              `json:"days"`
}

// SuggestionsRequest corps de POST /api/depot-suggestions.
type SuggestionsRequest struct {
	DepotName string `json:"depot_name"`
	Days      int    `json:"days"`
}

// Suggestion est un article proposé pour compléter le dernier camion.
type Suggestion struct {
	Article           string `json:"article"`
	SuggestedPallets  int    `json:"suggested_pallets"`
	SuggestedQuantity int    `json:"suggested_quantity"`
	ProductsPerPallet int    `json:"products_per_pallet"`
	OnHandQty         int    `json:"on_hand_qty"`
	Sourcing          string `json:"sourcing"`
	SourcingLabel     string `json:"sourcing_label"`
}

// SuggestionsResponse corps de réponse de POST /api/depot-suggestions.
type SuggestionsResponse struct {
	Depot           string       `json:"depot"`
	Suggestions     []Suggestion `json:"suggestions"`
	CurrentPalettes int          `json:"current_palettes"`
	TargetPalettes  int          `json:"target_palettes"`
	SlotsFilled     int          `json:"slots_filled"`
	Status          string       `json:"status,omitempty"` // informatif : "aucun stock central"
}
