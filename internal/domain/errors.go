package domain

import (
	"errors"
	"fmt"
)

// Erreurs de domaine (sans dépendances externes).
var (
	// ErrMalformedInput : fichier illisible ou colonnes requises absentes (par position).
	ErrMalformedInput = errors.New("fichier illisible ou mal formé")
	// ErrEmptyInput : fichier lu mais aucune ligne retenue après filtrage.
	ErrEmptyInput = errors.New("aucune ligne exploitable dans le fichier")
	// ErrMissingInputs : calcul demandé sans session de commandes active.
	ErrMissingInputs = errors.New("aucune session de commandes active")
	// ErrInvalidParameter : paramètre invalide (horizon < 1, dépôt inconnu...).
	ErrInvalidParameter = errors.New("paramètre invalide")
	// ErrInternal : défaillance inattendue du moteur de calcul.
	ErrInternal = errors.New("erreur interne")
)

// EmptyInputError porte le nombre de lignes écartées pour que la réponse
// HTTP puisse l'exposer. Se déballe en ErrEmptyInput.
type EmptyInputError struct {
	Discarded int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("aucune ligne exploitable dans le fichier (%d écartées)", e.Discarded)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }
