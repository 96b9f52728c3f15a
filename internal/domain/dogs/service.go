package dogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"kennel-registry/internal/platform/logger"
	"kennel-registry/internal/ports/blob"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadFailed: falló la subida de la foto. No hacemos fallback
	// silencioso a una URL placeholder: el caller decide si reintenta.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrPersistence: insert/remove falló en el store. No queda registro
	// parcial: el caller no debe asumir que el registro existe.
	ErrPersistence = errors.New("record store operation failed")

	// ErrStoreUnavailable: el store no respondió a una consulta (transitorio,
	// distinto de ErrNotFound).
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ValidationError trae errores por campo (breed/owner/date_of_birth/photo).
// Se resuelve local: nunca se contacta un colaborador con input inválido.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	return "validation failed: " + strings.Join(keys, ", ")
}

// certIDAttempts acota el loop generar-chequear-reintentar contra el store.
// Con 90M de valores posibles las colisiones son rarísimas; esto solo evita
// duplicar cert IDs cuando sí pasa.
const certIDAttempts = 5

type Service struct {
	repo     Repository
	uploader blob.Uploader
	log      logger.Logger

	now       func() time.Time
	newCertID func() int
}

func NewService(repo Repository, uploader blob.Uploader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		uploader:  uploader,
		log:       log.With(map[string]any{"module": "dogs"}),
		now:       time.Now,
		newCertID: NewCertID,
	}
}

type CreateInput struct {
	Breed       string
	Owner       string
	DateOfBirth time.Time
	Notes       string // opcional

	// Foto: o bien un reader para subir al blob store, o bien una URL
	// ya resuelta (p.ej. subida previa desde el cliente). Al menos uno.
	Photo            io.Reader
	PhotoContentType string
	ImageURL         string
}

// Create valida, sube la foto, genera el cert ID y persiste.
// Devuelve el cert ID de 8 dígitos del registro nuevo.
func (s *Service) Create(ctx context.Context, in CreateInput) (int, error) {
	if verr := validateCreate(in); len(verr) > 0 {
		return 0, verr
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if in.Photo != nil {
		url, err := s.uploader.Upload(ctx, in.Photo, in.PhotoContentType)
		if err != nil {
			s.log.Error("photo upload failed", map[string]any{"error": err.Error()})
			return 0, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		imageURL = url
	}

	certID, err := s.allocateCertID(ctx)
	if err != nil {
		return 0, err
	}

	d := Dog{
		CertID:      certID,
		Breed:       strings.TrimSpace(in.Breed),
		Owner:       strings.TrimSpace(in.Owner),
		DateOfBirth: in.DateOfBirth,
		Notes:       strings.TrimSpace(in.Notes),
		ImageURL:    imageURL,
	}

	if _, err := s.repo.Insert(ctx, d); err != nil {
		s.log.Error("insert failed", map[string]any{"error": err.Error()})
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info("dog registered", map[string]any{"cert_id": certIDString(certID)})
	return certID, nil
}

// allocateCertID genera y chequea contra el store antes de aceptar.
// La unicidad sigue siendo best-effort: si el chequeo mismo falla
// (store caído) aceptamos el ID igual, como hacía el flujo original.
func (s *Service) allocateCertID(ctx context.Context) (int, error) {
	for i := 0; i < certIDAttempts; i++ {
		id := s.newCertID()

		_, err := s.repo.GetByCertID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return id, nil
		}
		if err != nil {
			s.log.Warn("cert id collision check failed, accepting id", map[string]any{
				"error": err.Error(),
			})
			return id, nil
		}

		s.log.Warn("cert id collision, retrying", map[string]any{"cert_id": certIDString(id)})
	}
	return 0, fmt.Errorf("%w: could not allocate a unique certificate id", ErrPersistence)
}

// Lookup busca por cert ID. ErrNotFound si no hay exactamente un match,
// ErrStoreUnavailable si el store no respondió.
func (s *Service) Lookup(ctx context.Context, certID int) (Dog, error) {
	d, err := s.repo.GetByCertID(ctx, certID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Dog{}, ErrNotFound
		}
		s.log.Error("lookup failed", map[string]any{"error": err.Error()})
		return Dog{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return d, nil
}

// ListAll trae el snapshot completo ordenado por created_at desc.
func (s *Service) ListAll(ctx context.Context) ([]Dog, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("list failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

// Delete elimina por internal key. El gate de confirmación en dos pasos
// vive en Session (acá no hay prompt: esto ya es la acción confirmada).
func (s *Service) Delete(ctx context.Context, internalKey string) error {
	if strings.TrimSpace(internalKey) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Remove(ctx, internalKey); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("delete failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.log.Info("dog deleted", map[string]any{"internal_key": internalKey})
	return nil
}

func validateCreate(in CreateInput) ValidationError {
	errs := ValidationError{}
	if strings.TrimSpace(in.Breed) == "" {
		errs["breed"] = "Breed is required"
	}
	if strings.TrimSpace(in.Owner) == "" {
		errs["owner"] = "Owner is required"
	}
	if in.DateOfBirth.IsZero() {
		errs["date_of_birth"] = "Date of birth is required"
	}
	if in.Photo == nil && strings.TrimSpace(in.ImageURL) == "" {
		errs["photo"] = "Photo is required"
	}
	return errs
}
