// Package catalog classe les articles entre production locale et sourcing
// externe. Classification purement informative : elle annote les lignes de
// résultat sans modifier l'arithmétique du calcul.
package catalog

import "strings"

// Sourcing est la provenance d'un article.
type Sourcing string

const (
	SourcingLocal    Sourcing = "local"
	SourcingExternal Sourcing = "external"
)

// Libellés affichés à l'opérateur.
const (
	LabelLocal    = "Production Locale"
	LabelExternal = "Sourcing Externe"
)

// localArticles est l'ensemble fixe L des codes articles produits sur site.
// Table statique, à l'échelle du process.
var localArticles = map[string]struct{}{
	"1011": {}, "1016": {}, "1021": {}, "1022": {},
	"1033": {}, "1040": {}, "1051": {}, "1059": {},
	"1069": {}, "1071": {}, "1515": {}, "1533": {},
	"1540": {}, "1559": {}, "2011": {}, "2033": {},
	"2040": {}, "3040": {}, "3140": {}, "4843": {},
	"5030": {}, "5059": {}, "6010": {}, "6040": {},
	"7435": {}, "7436": {},
}

// Classify retourne la provenance d'un article. Totale : un code inconnu
// est simplement externe, jamais une erreur.
func Classify(article string) Sourcing {
	if _, ok := localArticles[strings.TrimSpace(article)]; ok {
		return SourcingLocal
	}
	return SourcingExternal
}

// Label retourne le libellé lisible associé à une provenance.
func Label(s Sourcing) string {
	if s == SourcingLocal {
		return LabelLocal
	}
	return LabelExternal
}
