package dogs

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Rango del cert ID: siempre 8 dígitos decimales, sin cero inicial.
const (
	certIDMin = 10_000_000
	certIDMax = 99_999_999
)

var (
	ErrCertIDRequired = errors.New("certificate id is required")
	ErrCertIDLength   = errors.New("certificate id must be exactly 8 digits")
)

// NewCertID genera un cert ID uniforme en [10000000, 99999999].
// No consulta el store: la verificación de colisión (best-effort) la hace
// el service al crear.
func NewCertID() int {
	return rand.Intn(certIDMax-certIDMin+1) + certIDMin
}

// FormatCertID agrupa los 8 dígitos en pares para mostrar:
// 34576712 => "34 57 67 12" (mismo formato que imprime el certificado).
// Asume un ID ya validado de 8 dígitos.
func FormatCertID(id int) string {
	s := strconv.Itoa(id)
	parts := make([]string, 0, 4)
	for i := 0; i+2 <= len(s); i += 2 {
		parts = append(parts, s[i:i+2])
	}
	return strings.Join(parts, " ")
}

// ParseCertID valida input de usuario y devuelve el cert ID.
// - vacío (tras trim) => ErrCertIDRequired
// - largo != 8 o contenido no numérico => ErrCertIDLength
// El canal de entrada (input number en la UI) ya filtra no-dígitos,
// pero acá validamos igual por si llega por otro lado.
func ParseCertID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrCertIDRequired
	}
	if len(raw) != 8 {
		return 0, ErrCertIDLength
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < certIDMin || id > certIDMax {
		return 0, ErrCertIDLength
	}
	return id, nil
}

// certIDString es el formato de persistencia/URL, sin espacios.
func certIDString(id int) string {
	return fmt.Sprintf("%08d", id)
}
