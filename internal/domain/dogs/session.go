package dogs

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrBusy: ya hay una operación del mismo tipo en vuelo. El caller
	// debe deshabilitar el trigger (botón) mientras tanto.
	ErrBusy = errors.New("operation already in flight")

	// ErrNoPendingDelete: se intentó confirmar un delete sin haberlo pedido.
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
)

// Session modela el estado de un cliente del registro: el snapshot del
// listado, el flag busy por acción y el gate de confirmación de borrado.
// Reemplaza el estado mutable global de la vista original por un objeto
// con dueño explícito.
//
// Acciones distintas (crear vs. buscar vs. borrar) pueden correr en
// paralelo porque tocan estado disjunto; lo que se evita es duplicar la
// misma acción en vuelo.
type Session struct {
	svc *Service

	mu            sync.Mutex
	view          *ListView
	creating      bool
	lookingUp     bool
	deleting      bool
	pendingDelete string
}

func NewSession(svc *Service) *Session {
	return &Session{
		svc:  svc,
		view: NewListView(),
	}
}

// View expone el snapshot del listado (filtros, paginado).
func (s *Session) View() *ListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Busy indica si hay alguna operación remota en vuelo.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating || s.lookingUp || s.deleting
}

// Refresh recarga el snapshot completo con un queryAll explícito.
func (s *Session) Refresh(ctx context.Context) error {
	records, err := s.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.view.Refresh(records)
	s.mu.Unlock()
	return nil
}

// Create registra un perro nuevo. ErrBusy si ya hay un create en vuelo.
func (s *Session) Create(ctx context.Context, in CreateInput) (int, error) {
	s.mu.Lock()
	if s.creating {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	s.creating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.creating = false
		s.mu.Unlock()
	}()

	return s.svc.Create(ctx, in)
}

// Lookup valida el input crudo y busca por cert ID.
func (s *Session) Lookup(ctx context.Context, raw string) (Dog, error) {
	certID, err := ParseCertID(raw)
	if err != nil {
		return Dog{}, err
	}

	s.mu.Lock()
	if s.lookingUp {
		s.mu.Unlock()
		return Dog{}, ErrBusy
	}
	s.lookingUp = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.lookingUp = false
		s.mu.Unlock()
	}()

	return s.svc.Lookup(ctx, certID)
}

// RequestDelete deja un delete pendiente de confirmación (el diálogo
// "Are you sure?"). Pisa cualquier pendiente anterior.
func (s *Session) RequestDelete(internalKey string) {
	s.mu.Lock()
	s.pendingDelete = internalKey
	s.mu.Unlock()
}

// PendingDelete expone el internal key pendiente, si hay.
func (s *Session) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete, s.pendingDelete != ""
}

// CancelDelete descarta el pendiente sin tocar el store.
func (s *Session) CancelDelete() {
	s.mu.Lock()
	s.pendingDelete = ""
	s.mu.Unlock()
}

// ConfirmDelete ejecuta el delete pendiente y saca el registro del
// snapshot local. Sin pendiente previo => ErrNoPendingDelete.
func (s *Session) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	key := s.pendingDelete
	if key == "" {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	if s.deleting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.deleting = true
	s.mu.Unlock()

	err := s.svc.Delete(ctx, key)

	s.mu.Lock()
	s.deleting = false
	if err == nil {
		s.pendingDelete = ""
		s.view.Drop(key)
	}
	s.mu.Unlock()

	return err
}
