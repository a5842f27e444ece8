package entity

// Constantes métier du réseau de distribution.
const (
	// CentralWarehouse est la division source unique de toutes les expéditions.
	CentralWarehouse = "M210"
	// TruckCapacity est la capacité fixe d'un camion, en palettes.
	TruckCapacity = 24
	// DefaultProductsPerPallet (K₀) s'applique aux articles présents uniquement
	// dans le stock central, jamais commandés. Seul défaut du moteur.
	DefaultProductsPerPallet = 30
)

// OrderLine est une ligne de commande client ouverte, normalisée.
// L'identité (dépôt, article) peut se répéter dans une même session.
type OrderLine struct {
	Article           string `json:"article"`
	Depot             string `json:"depot"` // point d'expédition
	OrderedQty        int    `json:"ordered_qty"`
	FreeStockQty      int    `json:"free_stock_qty"`
	Packaging         string `json:"packaging"` // verre, pet, ciel
	ProductsPerPallet int    `json:"products_per_pallet"` // K, propre à l'article
}

// CentralStock est le stock disponible d'un article à l'entrepôt central M210.
type CentralStock struct {
	Article   string `json:"article"`
	Division  string `json:"division"`
	OnHandQty int    `json:"on_hand_qty"`
}

// TransitLine est une quantité déjà expédiée depuis M210 vers un dépôt,
// pas encore arrivée. Plusieurs lignes par (article, dépôt) sont sommées
// au moment du calcul.
type TransitLine struct {
	Article      string `json:"article"`
	DestDepot    string `json:"dest_depot"`
	SourceDepot  string `json:"source_depot"` // division cédante, toujours M210
	InTransitQty int    `json:"in_transit_qty"`
}
