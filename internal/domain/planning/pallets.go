// Package planning porte l'arithmétique pure de palettisation (service de
// domaine, sans état).
package planning

import "github.com/shopspring/decimal"

// Demand calcule la demande sur l'horizon : ceil(taux journalier × jours).
// Le taux journalier vaut quantité commandée / horizon de référence ; la
// seule division du moteur passe par decimal pour éviter tout arrondi
// binaire, le plafond est pris ensuite.
func Demand(orderedQty, referenceHorizon, days int) int {
	if orderedQty <= 0 || days <= 0 {
		return 0
	}
	if referenceHorizon < 1 {
		referenceHorizon = 1
	}
	rate := decimal.NewFromInt(int64(orderedQty)).Div(decimal.NewFromInt(int64(referenceHorizon)))
	return int(rate.Mul(decimal.NewFromInt(int64(days))).Ceil().IntPart())
}

// PalletsFor retourne ceil(qty / k) : le nombre de palettes entières
// nécessaires pour expédier qty produits. Zéro si qty ou k non positif.
func PalletsFor(qty, k int) int {
	if qty <= 0 || k <= 0 {
		return 0
	}
	return (qty + k - 1) / k
}

// TrucksFor retourne ceil(palettes / capacité camion).
func TrucksFor(pallets, truckCapacity int) int {
	if pallets <= 0 || truckCapacity <= 0 {
		return 0
	}
	return (pallets + truckCapacity - 1) / truckCapacity
}

// FillRatio retourne le nombre de palettes du dernier camion partiel
// (palettes mod capacité). Zéro quand le chargement tombe juste.
func FillRatio(pallets, truckCapacity int) int {
	if pallets <= 0 || truckCapacity <= 0 {
		return 0
	}
	return pallets % truckCapacity
}
