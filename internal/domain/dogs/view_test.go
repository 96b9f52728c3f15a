package dogs

import (
	"testing"
	"time"
)

func mkDog(key, owner string, createdAt time.Time) Dog {
	return Dog{
		InternalKey: key,
		CertID:      34576712,
		Breed:       "labrador",
		Owner:       owner,
		DateOfBirth: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		ImageURL:    "https://img.example/1.jpg",
		CreatedAt:   createdAt,
	}
}

func TestApply_OwnerFilter(t *testing.T) {
	now := time.Now()
	records := []Dog{
		mkDog("a", "Asha Kapoor", now),
		mkDog("b", "Vishal Khari", now),
		mkDog("c", "ASHA", now),
	}

	got := Apply(records, Filter{Owner: "asha"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].InternalKey != "a" || got[1].InternalKey != "c" {
		t.Fatalf("unexpected matches: %+v", got)
	}

	// filtro vacío deja pasar todo
	if got := Apply(records, Filter{}); len(got) != len(records) {
		t.Fatalf("empty filter: expected %d, got %d", len(records), len(got))
	}
}

func TestApply_DateFilterIgnoresTimeOfDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	records := []Dog{
		mkDog("morning", "Asha", time.Date(2026, 3, 14, 8, 15, 0, 0, time.UTC)),
		mkDog("night", "Asha", time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)),
		mkDog("other-day", "Asha", time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)),
	}

	got := Apply(records, Filter{Date: &day})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, d := range got {
		if d.InternalKey == "other-day" {
			t.Fatalf("record from another day matched")
		}
	}
}

func TestApply_BothFiltersAreANDed(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	records := []Dog{
		mkDog("match", "Asha", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)),
		mkDog("wrong-owner", "Vishal", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)),
		mkDog("wrong-day", "Asha", time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)),
	}

	got := Apply(records, Filter{Owner: "asha", Date: &day})
	if len(got) != 1 || got[0].InternalKey != "match" {
		t.Fatalf("expected only 'match', got %+v", got)
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	now := time.Now()
	records := []Dog{
		mkDog("a", "Asha", now),
		mkDog("b", "Vishal", now),
	}

	_ = Apply(records, Filter{Owner: "asha"})

	if records[0].InternalKey != "a" || records[1].InternalKey != "b" {
		t.Fatalf("source slice was mutated: %+v", records)
	}
}

func TestPagination_23Records(t *testing.T) {
	now := time.Now()
	records := make([]Dog, 0, 23)
	for i := 0; i < 23; i++ {
		records = append(records, mkDog(string(rune('a'+i)), "Asha", now))
	}

	if got := TotalPages(len(records), PageSize); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := len(Paginate(records, PageSize, 1)); got != 10 {
		t.Fatalf("page 1: expected 10, got %d", got)
	}
	if got := len(Paginate(records, PageSize, 2)); got != 10 {
		t.Fatalf("page 2: expected 10, got %d", got)
	}
	if got := len(Paginate(records, PageSize, 3)); got != 3 {
		t.Fatalf("page 3: expected 3, got %d", got)
	}
	if got := len(Paginate(records, PageSize, 4)); got != 0 {
		t.Fatalf("page 4: expected empty, got %d", got)
	}
}

func TestPagination_EmptySet(t *testing.T) {
	if got := TotalPages(0, PageSize); got != 1 {
		t.Fatalf("expected 1 page minimum, got %d", got)
	}
	if got := len(Paginate(nil, PageSize, 1)); got != 0 {
		t.Fatalf("expected empty page, got %d", got)
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0, 23, PageSize); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
	if got := ClampPage(99, 23, PageSize); got != 3 {
		t.Fatalf("expected clamp to 3, got %d", got)
	}
	if got := ClampPage(2, 23, PageSize); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestListView_FilterChangeResetsPage(t *testing.T) {
	now := time.Now()
	records := make([]Dog, 0, 23)
	for i := 0; i < 23; i++ {
		records = append(records, mkDog(string(rune('a'+i)), "Asha", now))
	}

	v := NewListView()
	v.Refresh(records)

	v.NextPage()
	v.NextPage()
	if v.CurrentPage() != 3 {
		t.Fatalf("expected page 3, got %d", v.CurrentPage())
	}

	// NextPage en la última página no pasa de largo
	v.NextPage()
	if v.CurrentPage() != 3 {
		t.Fatalf("expected clamp at page 3, got %d", v.CurrentPage())
	}

	v.SetOwnerFilter("asha")
	if v.CurrentPage() != 1 {
		t.Fatalf("owner filter change: expected reset to page 1, got %d", v.CurrentPage())
	}

	v.NextPage()
	day := time.Now()
	v.SetDateFilter(&day)
	if v.CurrentPage() != 1 {
		t.Fatalf("date filter change: expected reset to page 1, got %d", v.CurrentPage())
	}

	v.PrevPage()
	if v.CurrentPage() != 1 {
		t.Fatalf("expected clamp at page 1, got %d", v.CurrentPage())
	}
}

func TestListView_DropRemovesAndClampsPage(t *testing.T) {
	now := time.Now()
	records := make([]Dog, 0, 11)
	for i := 0; i < 11; i++ {
		records = append(records, mkDog(string(rune('a'+i)), "Asha", now))
	}

	v := NewListView()
	v.Refresh(records)
	v.NextPage() // página 2: 1 solo registro

	v.Drop("k") // el registro 11

	if v.TotalPages() != 1 {
		t.Fatalf("expected 1 page after drop, got %d", v.TotalPages())
	}
	if v.CurrentPage() != 1 {
		t.Fatalf("expected page clamped to 1, got %d", v.CurrentPage())
	}
	if got := len(v.Page()); got != 10 {
		t.Fatalf("expected 10 items, got %d", got)
	}
}
