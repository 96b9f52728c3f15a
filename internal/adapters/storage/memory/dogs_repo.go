package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kennel-registry/internal/domain/dogs"

	"github.com/google/uuid"
)

type dogsRepo struct {
	mu   sync.RWMutex
	byID map[string]dogs.Dog
	now  func() time.Time
}

func NewDogsRepo() dogs.Repository {
	return &dogsRepo{
		byID: make(map[string]dogs.Dog),
		now:  time.Now,
	}
}

// Insert asigna internal key y created_at, como haría el server.
func (r *dogsRepo) Insert(ctx context.Context, d dogs.Dog) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.InternalKey = uuid.NewString()
	d.CreatedAt = r.now()
	r.byID[d.InternalKey] = d
	return d.InternalKey, nil
}

func (r *dogsRepo) GetByCertID(ctx context.Context, certID int) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found dogs.Dog
		count int
	)
	for _, d := range r.byID {
		if d.CertID == certID {
			found = d
			count++
		}
	}

	// cero o más de un match => not found (cert ID duplicado no devuelve
	// un registro cualquiera)
	if count != 1 {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return found, nil
}

func (r *dogsRepo) ListAll(ctx context.Context) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	// created_at desc, igual que la query del dashboard
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *dogsRepo) Remove(ctx context.Context, internalKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(internalKey) == "" {
		return dogs.ErrNotFound
	}
	if _, exists := r.byID[internalKey]; !exists {
		return dogs.ErrNotFound
	}
	delete(r.byID, internalKey)
	return nil
}
