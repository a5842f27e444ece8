// Package memstore implémente le SessionStore en mémoire : discipline
// un-écrivain/plusieurs-lecteurs, publication atomique d'un snapshot
// immuable par type de fichier.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmartel/planif-depots/internal/domain/entity"
	"github.com/jmartel/planif-depots/internal/domain/repository"
)

// Vérification de contrat à la compilation.
var _ repository.SessionStore = (*Store)(nil)

// Store conserve au plus une session active par type, pour la durée du process.
type Store struct {
	mu     sync.RWMutex
	active map[entity.SessionKind]*entity.Session
}

// New construit un store vide. Tout état vide est toléré : chaque lecture
// répond simplement "pas de session active".
func New() *Store {
	return &Store{active: make(map[entity.SessionKind]*entity.Session)}
}

// Put attribue un identifiant opaque et l'horodatage, puis publie la session
// comme active de son type. L'active précédente est remplacée d'un bloc :
// aucun lecteur n'observe un mélange des deux.
func (s *Store) Put(session *entity.Session) *entity.Session {
	session.ID = uuid.NewString()
	session.UploadedAt = time.Now().UTC()

	s.mu.Lock()
	s.active[session.Kind] = session
	s.mu.Unlock()
	return session
}

// Active retourne le snapshot actif du type demandé, ou nil. Le pointeur
// capturé à l'entrée d'un calcul reste valide même si un chargement
// concurrent publie une nouvelle session.
func (s *Store) Active(kind entity.SessionKind) *entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[kind]
}

// List retourne les en-têtes actifs, toujours dans l'ordre commandes,
// stock, transit.
func (s *Store) List() []entity.SessionHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	headers := make([]entity.SessionHeader, 0, len(s.active))
	for _, kind := range []entity.SessionKind{entity.KindOrders, entity.KindStock, entity.KindTransit} {
		if sess, ok := s.active[kind]; ok {
			headers = append(headers, sess.Header())
		}
	}
	return headers
}
