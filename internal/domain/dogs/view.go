package dogs

import (
	"strings"
	"time"
)

// PageSize fijo del dashboard.
const PageSize = 10

// Filter son los criterios del dashboard. Cero-value = sin filtro.
type Filter struct {
	Owner string     // substring case-insensitive sobre Owner
	Date  *time.Time // igualdad de día calendario sobre CreatedAt
}

// Apply filtra sin mutar el slice de entrada. Ambos criterios se combinan
// con AND; un criterio ausente deja pasar todo.
func Apply(records []Dog, f Filter) []Dog {
	owner := strings.ToLower(strings.TrimSpace(f.Owner))

	out := make([]Dog, 0, len(records))
	for _, d := range records {
		if owner != "" && !strings.Contains(strings.ToLower(d.Owner), owner) {
			continue
		}
		if f.Date != nil && !sameCalendarDay(d.CreatedAt, *f.Date) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// TotalPages = ceil(n/pageSize), mínimo 1 aunque no haya registros
// (el dashboard siempre muestra "Page 1 of 1").
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate corta la página pedida (1-based). Fuera de rango => slice vacío;
// el clamp contra TotalPages es responsabilidad del caller.
func Paginate(records []Dog, pageSize, page int) []Dog {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if page < 1 {
		return []Dog{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []Dog{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// ClampPage normaliza una página pedida al rango [1, TotalPages].
func ClampPage(page, n, pageSize int) int {
	total := TotalPages(n, pageSize)
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ListView es el snapshot del listado que mantiene el cliente.
// El source of truth sigue siendo el store: el snapshot se reemplaza
// completo con Refresh (queryAll explícito) y solo se toca localmente
// al confirmar un delete. Filtrar produce una vista derivada, nunca
// muta el snapshot.
type ListView struct {
	source []Dog
	filter Filter
	page   int
}

func NewListView() *ListView {
	return &ListView{page: 1}
}

// Refresh reemplaza el snapshot completo y resetea a página 1.
func (v *ListView) Refresh(records []Dog) {
	v.source = records
	v.page = 1
}

// SetOwnerFilter cambia el filtro por dueño y resetea a página 1.
func (v *ListView) SetOwnerFilter(owner string) {
	v.filter.Owner = owner
	v.page = 1
}

// SetDateFilter cambia el filtro por fecha (nil = sin filtro) y resetea a página 1.
func (v *ListView) SetDateFilter(date *time.Time) {
	v.filter.Date = date
	v.page = 1
}

// Drop saca un registro del snapshot tras un delete confirmado.
func (v *ListView) Drop(internalKey string) {
	out := v.source[:0:0]
	for _, d := range v.source {
		if d.InternalKey != internalKey {
			out = append(out, d)
		}
	}
	v.source = out
	v.page = ClampPage(v.page, len(Apply(v.source, v.filter)), PageSize)
}

// Page devuelve la página actual ya filtrada.
func (v *ListView) Page() []Dog {
	return Paginate(Apply(v.source, v.filter), PageSize, v.page)
}

func (v *ListView) CurrentPage() int { return v.page }

func (v *ListView) TotalPages() int {
	return TotalPages(len(Apply(v.source, v.filter)), PageSize)
}

// NextPage / PrevPage avanzan con clamp a [1, TotalPages].
func (v *ListView) NextPage() {
	v.page = ClampPage(v.page+1, len(Apply(v.source, v.filter)), PageSize)
}

func (v *ListView) PrevPage() {
	v.page = ClampPage(v.page-1, len(Apply(v.source, v.filter)), PageSize)
}
