package repository

import "github.com/jmartel/planif-depots/internal/domain/entity"

// SessionStore est le seul état mutable partagé du moteur : une session
// active par type de fichier, remplacée atomiquement à chaque chargement.
// Les lecteurs reçoivent des snapshots immuables ; aucune persistance
// au-delà de la vie du process n'est requise.
type SessionStore interface {
	// Put publie records comme nouvelle session active de son type et
	// retourne la session créée. Remplace l'active précédente du même type.
	Put(session *entity.Session) *entity.Session
	// Active retourne la session active du type demandé, ou nil.
	Active(kind entity.SessionKind) *entity.Session
	// List retourne les en-têtes des sessions actives, ordre stable par type.
	List() []entity.SessionHeader
}
