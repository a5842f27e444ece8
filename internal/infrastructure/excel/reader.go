// Package excel lit et écrit les classeurs .xlsx du service via excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmartel/planif-depots/internal/domain"
)

// Reader décode un classeur en lignes de cellules. La première feuille
// fait foi ; l'ingestion lit un unique buffer en mémoire.
type Reader struct{}

// NewReader construit le lecteur.
func NewReader() *Reader { return &Reader{} }

// Rows retourne toutes les lignes de la première feuille, cellules en
// chaînes. Un classeur illisible est une entrée mal formée, pas une
// erreur interne.
func (r *Reader) Rows(fileBytes []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("%w : %v", domain.ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w : classeur sans feuille", domain.ErrMalformedInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w : lecture de la feuille %q : %v", domain.ErrMalformedInput, sheets[0], err)
	}
	return rows, nil
}
