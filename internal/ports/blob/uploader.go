package blob

import (
	"context"
	"io"
)

// Uploader sube una imagen al blob store y devuelve una URL estable.
// El backend (Cloudinary en prod, S3/in-memory como alternativas) es opaco
// para el dominio: solo importa la URL resultante.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, contentType string) (string, error)
}
