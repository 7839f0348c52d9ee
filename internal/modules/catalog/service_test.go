package catalog

import (
	"context"
	"strings"
	"sync"
	"testing"

	"gearshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEquipmentRepo mirrors the SQL the real repository runs: case-insensitive
// LIKE over title and description plus an IN over the resolved categories.
type fakeEquipmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{nextID: 1}
}

func (f *fakeEquipmentRepo) Create(_ context.Context, e *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEquipmentRepo) List(_ context.Context) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Equipment
	for _, e := range f.rows {
		if !e.Archived {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Search(_ context.Context, text string, categories []domain.Category) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(text)
	var out []domain.Equipment
	for _, e := range f.rows {
		if e.Archived {
			continue
		}
		match := strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle)
		for _, c := range categories {
			if e.Category == c {
				match = true
			}
		}
		if match {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) ListByCategory(_ context.Context, category domain.Category) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Equipment
	for _, e := range f.rows {
		if !e.Archived && e.Category == category {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) SetArchived(_ context.Context, id int64, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.ID == id {
			e.Archived = archived
		}
	}
	return nil
}

func seedCatalog(t *testing.T, svc *Service) {
	t.Helper()
	listings := []CreateEquipmentRequest{
		{Title: "Sony Alpha 7S III", Description: "Low-light mirrorless body", Category: "cameras", PricePerDay: 65, AvailableFrom: "2024-01-01", AvailableUntil: "2024-12-31", Location: "Almaty"},
		{Title: "Canon RF 24-70mm f/2.8", Description: "Workhorse zoom", Category: "lenses", PricePerDay: 30, AvailableFrom: "2024-01-01", AvailableUntil: "2024-12-31", Location: "Almaty"},
		{Title: "Aputure 300d II", Description: "Daylight LED", Category: "lighting", PricePerDay: 40, AvailableFrom: "2024-01-01", AvailableUntil: "2024-12-31", Location: "Astana"},
		{Title: "Carbon fiber legs", Description: "Sturdy video setup", Category: "tripods", PricePerDay: 15, AvailableFrom: "2024-01-01", AvailableUntil: "2024-12-31", Location: "Astana"},
	}
	for _, req := range listings {
		_, err := svc.Create(context.Background(), 1, req)
		require.NoError(t, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeEquipmentRepo())
	ctx := context.Background()

	base := CreateEquipmentRequest{
		Title: "Sony Alpha 7S III", Category: "cameras", PricePerDay: 65,
		AvailableFrom: "2024-01-01", AvailableUntil: "2024-12-31",
	}

	bad := base
	bad.Category = "submarines"
	_, err := svc.Create(ctx, 1, bad)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	bad = base
	bad.AvailableUntil = "2023-12-31"
	_, err = svc.Create(ctx, 1, bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = base
	bad.PricePerDay = 0
	_, err = svc.Create(ctx, 1, bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = base
	bad.AvailableFrom = "01.06.2024"
	_, err = svc.Create(ctx, 1, bad)
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(ctx, 1, base)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryCameras, created.Category)
	assert.NotZero(t, created.ID)
}

func TestSearch_TitleSubstring(t *testing.T) {
	svc := NewService(newFakeEquipmentRepo())
	seedCatalog(t, svc)

	got, err := svc.Search(context.Background(), "sony")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sony Alpha 7S III", got[0].Title)

	got, err = svc.Search(context.Background(), "zzz-no-such-gear")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_CategoryDisplayName(t *testing.T) {
	svc := NewService(newFakeEquipmentRepo())
	seedCatalog(t, svc)

	// "support" only appears in the display name "Tripods & Support",
	// not in the listing text.
	got, err := svc.Search(context.Background(), "support")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Carbon fiber legs", got[0].Title)
}

func TestSearch_EmptyQueryListsAll(t *testing.T) {
	svc := NewService(newFakeEquipmentRepo())
	seedCatalog(t, svc)

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Len(t, got, 4)
	// Insertion order, no ranking.
	assert.Equal(t, "Sony Alpha 7S III", got[0].Title)
	assert.Equal(t, "Carbon fiber legs", got[3].Title)
}

func TestFilterByCategory(t *testing.T) {
	svc := NewService(newFakeEquipmentRepo())
	seedCatalog(t, svc)
	ctx := context.Background()

	got, err := svc.FilterByCategory(ctx, "lighting")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Aputure 300d II", got[0].Title)

	_, err = svc.FilterByCategory(ctx, "boats")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	all, err := svc.FilterByCategory(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestArchive(t *testing.T) {
	repo := newFakeEquipmentRepo()
	svc := NewService(repo)
	seedCatalog(t, svc)
	ctx := context.Background()

	err := svc.Archive(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Archive(ctx, 1, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Archive(ctx, 1, 1))

	// Archived listings disappear from reads and searches.
	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Search(ctx, "sony")
	require.NoError(t, err)
	assert.Empty(t, got)
}
