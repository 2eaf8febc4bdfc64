package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-petclinic-server/internal/domains/vets/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/vets/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type storedVet struct {
	vet       *domain.Vet
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory vet directory, seeded with the clinic's staff.
type Repository struct {
	mu   sync.RWMutex
	vets map[int64]*storedVet
	now  func() time.Time
}

// NewRepository builds the directory with the default staff roster.
func NewRepository() *Repository {
	repo := &Repository{
		vets: make(map[int64]*storedVet),
		now:  time.Now,
	}
	repo.seed()
	return repo
}

// WithClock overrides the time source used for projection metadata.
func (r *Repository) WithClock(clock func() time.Time) *Repository {
	if clock != nil {
		r.now = clock
	}
	return r
}

// WithVets replaces the roster, mainly for tests.
func (r *Repository) WithVets(vets ...*domain.Vet) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vets = make(map[int64]*storedVet, len(vets))
	now := r.now()
	for _, vet := range vets {
		if vet == nil {
			continue
		}
		r.vets[vet.ID] = &storedVet{vet: cloneVet(vet), createdAt: now, updatedAt: now}
	}
	return r
}

func (r *Repository) seed() {
	roster := []struct {
		id          int64
		firstName   string
		lastName    string
		specialties []string
	}{
		{1, "James", "Carter", nil},
		{2, "Helen", "Leary", []string{"radiology"}},
		{3, "Linda", "Douglas", []string{"surgery", "dentistry"}},
		{4, "Rafael", "Ortega", []string{"surgery"}},
		{5, "Henry", "Stevens", []string{"radiology"}},
		{6, "Sharon", "Jenkins", nil},
	}
	now := r.now()
	for _, entry := range roster {
		vet, err := domain.NewVet(entry.id, entry.firstName, entry.lastName, entry.specialties...)
		if err != nil {
			continue
		}
		r.vets[vet.ID] = &storedVet{vet: vet, createdAt: now, updatedAt: now}
	}
}

// List returns one page of vets ordered by last name.
func (r *Repository) List(ctx context.Context, page, size int) (ports.VetPage, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return ports.VetPage{}, err
	}
	total := len(all)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= total {
		return ports.VetPage{TotalElements: total}, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return ports.VetPage{Vets: all[start:end], TotalElements: total}, nil
}

// ListAll returns the whole directory ordered by last name.
func (r *Repository) ListAll(_ context.Context) ([]*projection.Projection[*domain.Vet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Vet], 0, len(r.vets))
	for _, stored := range r.vets {
		list = append(list, projectionCopy(stored))
	}
	sort.Slice(list, func(i, j int) bool {
		left, right := list[i].Entity, list[j].Entity
		if cmp := strings.Compare(left.LastName, right.LastName); cmp != 0 {
			return cmp < 0
		}
		return left.ID < right.ID
	})
	return list, nil
}

func projectionCopy(stored *storedVet) *projection.Projection[*domain.Vet] {
	return projection.New(cloneVet(stored.vet), stored.createdAt, stored.updatedAt)
}

func cloneVet(vet *domain.Vet) *domain.Vet {
	if vet == nil {
		return nil
	}
	clone := *vet
	if len(vet.Specialties) > 0 {
		clone.Specialties = append([]string{}, vet.Specialties...)
	}
	return &clone
}
