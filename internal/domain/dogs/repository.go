package dogs

import (
	"context"
	"errors"
)

var (
	// ErrNotFound: cero (o más de uno, ver GetByCertID) registros para la clave pedida.
	ErrNotFound = errors.New("dog not found")
)

// Repository es el record store persistente (Supabase/Postgres en prod,
// in-memory en dev/tests). El store es dueño de InternalKey y CreatedAt:
// los asigna al insertar y el caller no los provee.
type Repository interface {
	// Insert persiste el registro y devuelve el internal key asignado.
	Insert(ctx context.Context, d Dog) (string, error)

	// GetByCertID busca por cert ID. La unicidad del cert ID es best-effort:
	// si hay cero o más de un match devuelve ErrNotFound (nunca un registro
	// a medias).
	GetByCertID(ctx context.Context, certID int) (Dog, error)

	// ListAll devuelve todos los registros ordenados por created_at desc.
	ListAll(ctx context.Context) ([]Dog, error)

	// Remove elimina por internal key. ErrNotFound si no existe.
	Remove(ctx context.Context, internalKey string) error
}
