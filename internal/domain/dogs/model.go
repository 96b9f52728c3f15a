package dogs

import "time"

// Dog representa un registro de perro en el kennel.
// Una vez creado no se edita: solo se consulta o se elimina completo.
type Dog struct {
	// InternalKey lo asigna el store al insertar. Solo se usa para borrar,
	// nunca se muestra al usuario.
	InternalKey string

	// CertID es el ID de 8 dígitos impreso en el certificado.
	// Es la única clave de búsqueda externa.
	CertID int

	Breed       string
	Owner       string
	DateOfBirth time.Time // solo fecha (YYYY-MM-DD)
	Notes       string    // opcional
	ImageURL    string

	// CreatedAt lo asigna el store al insertar. Se usa como "fecha de venta"
	// en el dashboard y como clave del filtro por fecha.
	CreatedAt time.Time
}
