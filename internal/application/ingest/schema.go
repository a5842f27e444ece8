package ingest

import "github.com/jmartel/planif-depots/internal/domain/entity"

// Les fichiers sources ont des en-têtes incohérents d'un export à l'autre :
// les colonnes sont liées par position, jamais par nom. La première ligne
// est traitée comme en-tête et ignorée.
//
// Indices zéro-basés ; les exports source comptent à partir de 1.
type columnSchema struct {
	minWidth int
	columns  map[string]int
}

var (
	ordersSchema = columnSchema{
		minWidth: 11,
		columns: map[string]int{
			"article":   1,
			"depot":     3,
			"ordered":   5,
			"freeStock": 6,
			"packaging": 8,
			"k":         10,
		},
	}
	stockSchema = columnSchema{
		minWidth: 4,
		columns: map[string]int{
			"division": 0,
			"article":  1,
			"onHand":   3,
		},
	}
	transitSchema = columnSchema{
		minWidth: 9,
		columns: map[string]int{
			"article": 0,
			"dest":    2,
			"source":  6,
			"qty":     8,
		},
	}
)

func schemaFor(kind entity.SessionKind) columnSchema {
	switch kind {
	case entity.KindStock:
		return stockSchema
	case entity.KindTransit:
		return transitSchema
	default:
		return ordersSchema
	}
}
