package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Store es un blob store in-memory para dev/tests. Las URLs que devuelve
// son estables pero obviamente no navegables.
type Store struct {
	mu   sync.RWMutex
	objs map[string][]byte
}

func NewStore() *Store {
	return &Store{objs: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, r io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	key := uuid.NewString()

	s.mu.Lock()
	s.objs[key] = b
	s.mu.Unlock()

	return fmt.Sprintf("memory://kennel/%s", key), nil
}

// Object devuelve el contenido subido (para asserts en tests).
func (s *Store) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objs[key]
	return b, ok
}

// Len devuelve la cantidad de objetos subidos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}
