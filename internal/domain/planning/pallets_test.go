package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmartel/planif-depots/internal/domain/planning"
)

// PalletsFor doit retourner le plafond exact : assez de palettes pour tout
// expédier, jamais une de trop.
func TestPalletsFor_PlafondExact(t *testing.T) {
	cases := []struct {
		name string
		qty  int
		k    int
		want int
	}{
		{"division exacte", 100, 10, 10},
		{"reste d'une unité", 101, 10, 11},
		{"moins d'une palette", 1, 30, 1},
		{"quantité nulle", 0, 10, 0},
		{"k nul", 50, 0, 0},
		{"quantité négative", -5, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, planning.PalletsFor(tc.qty, tc.k))
		})
	}
}

// Invariant : pallets×K ≥ qty et (pallets−1)×K < qty pour toute quantité
// positive.
func TestPalletsFor_InvariantDeCouverture(t *testing.T) {
	for qty := 1; qty <= 500; qty += 7 {
		for _, k := range []int{1, 10, 24, 30, 144} {
			pallets := planning.PalletsFor(qty, k)
			assert.GreaterOrEqual(t, pallets*k, qty,
				"qty=%d k=%d : les palettes doivent couvrir la quantité", qty, k)
			assert.Less(t, (pallets-1)*k, qty,
				"qty=%d k=%d : une palette de moins ne doit pas suffire", qty, k)
		}
	}
}

func TestTrucksFor_PlafondSur24(t *testing.T) {
	assert.Equal(t, 0, planning.TrucksFor(0, 24))
	assert.Equal(t, 1, planning.TrucksFor(1, 24))
	assert.Equal(t, 1, planning.TrucksFor(24, 24))
	assert.Equal(t, 2, planning.TrucksFor(25, 24))
	assert.Equal(t, 42, planning.TrucksFor(1000, 24))
}

func TestFillRatio_DernierCamionPartiel(t *testing.T) {
	assert.Equal(t, 0, planning.FillRatio(0, 24))
	assert.Equal(t, 0, planning.FillRatio(48, 24))
	assert.Equal(t, 20, planning.FillRatio(20, 24))
	assert.Equal(t, 16, planning.FillRatio(1000, 24))
}

// La demande vaut ceil(taux journalier × jours) ; avec l'horizon de
// référence à 1 elle se réduit à commandé × jours.
func TestDemand_HorizonReference(t *testing.T) {
	assert.Equal(t, 10000, planning.Demand(1000, 1, 10))
	assert.Equal(t, 1000, planning.Demand(1000, 1, 1))
	// Horizon de référence > 1 : division décimale puis plafond.
	assert.Equal(t, 334, planning.Demand(100, 3, 10))
	// Horizon < 1 ramené à 1.
	assert.Equal(t, 50, planning.Demand(50, 0, 1))
	assert.Equal(t, 0, planning.Demand(0, 1, 10))
	assert.Equal(t, 0, planning.Demand(100, 1, 0))
}
