// Package borrador keeps the per-waiter draft order: the lines composed on
// the waiter panel before dispatch. Drafts are process-local and volatile —
// nothing here touches the database until the draft is sent to kitchen.
package borrador

import (
	"sync"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// Store holds one draft per user. All methods are safe for concurrent use;
// each waiter only ever touches their own draft, so a single mutex is enough.
type Store struct {
	mu     sync.Mutex
	drafts map[string]model.Items // keyed by user ID
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]model.Items)}
}

// Items returns a copy of the user's draft lines.
func (s *Store) Items(usuarioID string) model.Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.drafts[usuarioID]
	out := make(model.Items, len(src))
	copy(out, src)
	return out
}

// AgregarItem adds a line to the draft. When an existing line has the same
// dish and the same option set, the quantities collapse into one line (the
// incoming note wins); otherwise the line is appended.
func (s *Store) AgregarItem(usuarioID string, item model.Item) model.Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[usuarioID]
	for i := range draft {
		if draft[i].MismaLinea(item) {
			draft[i].Cantidad += item.Cantidad
			draft[i].Nota = item.Nota
			s.drafts[usuarioID] = draft
			return s.copia(usuarioID)
		}
	}
	s.drafts[usuarioID] = append(draft, item)
	return s.copia(usuarioID)
}

// QuitarItem removes the line matching dish, option set and exact note.
// A miss is a no-op.
func (s *Store) QuitarItem(usuarioID string, platilloID int64, opciones model.Opciones, nota string) model.Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[usuarioID]
	buscado := model.Item{PlatilloID: platilloID, Opciones: opciones}
	for i := range draft {
		if draft[i].MismaLinea(buscado) && draft[i].Nota == nota {
			s.drafts[usuarioID] = append(draft[:i], draft[i+1:]...)
			break
		}
	}
	return s.copia(usuarioID)
}

// SetCantidad pins the quantity of a matching line; anything below 1 removes
// the line instead.
func (s *Store) SetCantidad(usuarioID string, platilloID int64, opciones model.Opciones, nota string, cantidad int) model.Items {
	if cantidad < 1 {
		return s.QuitarItem(usuarioID, platilloID, opciones, nota)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[usuarioID]
	buscado := model.Item{PlatilloID: platilloID, Opciones: opciones}
	for i := range draft {
		if draft[i].MismaLinea(buscado) && draft[i].Nota == nota {
			draft[i].Cantidad = cantidad
			break
		}
	}
	return s.copia(usuarioID)
}

// Limpiar drops the user's draft, typically right after a successful dispatch.
func (s *Store) Limpiar(usuarioID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, usuarioID)
}

// copia must be called with mu held.
func (s *Store) copia(usuarioID string) model.Items {
	src := s.drafts[usuarioID]
	out := make(model.Items, len(src))
	copy(out, src)
	return out
}
