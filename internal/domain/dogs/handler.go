package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		// Alta (multipart con foto, o JSON con image_url ya resuelta)
		dr.Post("/", createDogHandler(svc))

		// Dashboard: listado filtrado + paginado
		dr.Get("/", listDogsHandler(svc))

		// Verificación de certificado por cert ID (8 dígitos)
		dr.Get("/{dogID}", getDogHandler(svc))

		// Borrado por internal key, con gate de confirmación
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

type createDogRequest struct {
	Breed       string `json:"breed"`
	Owner       string `json:"owner"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Notes       string `json:"notes"`
	ImageURL    string `json:"image_url"`
}

type createDogResponse struct {
	CertificateID string `json:"certificate_id"` // "34576712"
	DisplayID     string `json:"display_id"`     // "34 57 67 12"
}

type dogResponse struct {
	ID            string    `json:"id"` // internal key (solo para delete)
	CertificateID string    `json:"certificate_id"`
	DisplayID     string    `json:"display_id"`
	Breed         string    `json:"breed"`
	Owner         string    `json:"owner"`
	DateOfBirth   string    `json:"date_of_birth"`
	Notes         string    `json:"notes,omitempty"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type dogListResponse struct {
	Items      []dogResponse `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors ValidationError `json:"errors"`
}

// createDogHandler registra un perro nuevo.
// @Accept multipart/form-data (campos breed, owner, date_of_birth, notes, photo)
// @Accept json (image_url en lugar de photo)
// @Success 201 {object} createDogResponse
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeCreateInput(w, r)
		if !ok {
			return
		}

		certID, err := svc.Create(r.Context(), in)
		if err != nil {
			var verr ValidationError
			switch {
			case errors.As(err, &verr):
				writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr})
			case errors.Is(err, ErrUploadFailed):
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "photo upload failed"})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, createDogResponse{
			CertificateID: certIDString(certID),
			DisplayID:     FormatCertID(certID),
		})
	}
}

func decodeCreateInput(w http.ResponseWriter, r *http.Request) (CreateInput, bool) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		// 10MB alcanza de sobra para una foto de celular
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
			return CreateInput{}, false
		}

		in := CreateInput{
			Breed: r.FormValue("breed"),
			Owner: r.FormValue("owner"),
			Notes: r.FormValue("notes"),
		}

		if raw := strings.TrimSpace(r.FormValue("date_of_birth")); raw != "" {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date_of_birth must be YYYY-MM-DD"})
				return CreateInput{}, false
			}
			in.DateOfBirth = t
		}

		file, header, err := r.FormFile("photo")
		if err == nil {
			defer file.Close()
			in.Photo = file
			in.PhotoContentType = header.Header.Get("Content-Type")
		}

		return in, true
	}

	var req createDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return CreateInput{}, false
	}

	in := CreateInput{
		Breed:    req.Breed,
		Owner:    req.Owner,
		Notes:    req.Notes,
		ImageURL: req.ImageURL,
	}
	if raw := strings.TrimSpace(req.DateOfBirth); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date_of_birth must be YYYY-MM-DD"})
			return CreateInput{}, false
		}
		in.DateOfBirth = t
	}

	return in, true
}

// listDogsHandler devuelve el dashboard: filtro por dueño (substring,
// case-insensitive) y por fecha de alta (día calendario), AND de ambos,
// paginado fijo de a 10 con clamp de página.
// @Param owner query string false
// @Param date query string false "YYYY-MM-DD"
// @Param page query int false "1-based"
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := Filter{Owner: r.URL.Query().Get("owner")}

		if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
				return
			}
			f.Date = &t
		}

		page := 1
		if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "page must be an integer"})
				return
			}
			page = n
		}

		records, err := svc.ListAll(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
			return
		}

		filtered := Apply(records, f)
		page = ClampPage(page, len(filtered), PageSize)

		items := make([]dogResponse, 0, PageSize)
		for _, d := range Paginate(filtered, PageSize, page) {
			items = append(items, toDogResponse(d))
		}

		writeJSON(w, http.StatusOK, dogListResponse{
			Items:      items,
			Page:       page,
			TotalPages: TotalPages(len(filtered), PageSize),
			Total:      len(filtered),
		})
	}
}

// getDogHandler busca por cert ID para la vista de certificado.
// @Success 200 {object} dogResponse
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certID, err := ParseCertID(chi.URLParam(r, "dogID"))
		if err != nil {
			msg := "Certificate ID must be exactly 8 digits long"
			if errors.Is(err, ErrCertIDRequired) {
				msg = "Id is Required"
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
			return
		}

		d, err := svc.Lookup(r.Context(), certID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "Dog not found. Please check the ID."})
				return
			}
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// deleteDogHandler borra por internal key. Exige la confirmación en dos
// pasos: sin el header X-Confirm-Delete responde 428 y no toca el store
// (el diálogo de confirmación de la UI setea el header al confirmar).
func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(r.Header.Get("X-Confirm-Delete"), "true") {
			writeJSON(w, http.StatusPreconditionRequired, errorResponse{
				Error: "deletion requires confirmation (X-Confirm-Delete: true)",
			})
			return
		}

		err := svc.Delete(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "dog not found"})
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "internal key required"})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:            d.InternalKey,
		CertificateID: certIDString(d.CertID),
		DisplayID:     FormatCertID(d.CertID),
		Breed:         d.Breed,
		Owner:         d.Owner,
		DateOfBirth:   d.DateOfBirth.Format(dateLayout),
		Notes:         d.Notes,
		ImageURL:      d.ImageURL,
		CreatedAt:     d.CreatedAt,
	}
}

// writeJSON vive acá y no en un helper compartido a propósito: si otro
// módulo lo repite, recién ahí vale la pena extraerlo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
