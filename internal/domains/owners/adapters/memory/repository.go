package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos and tests.
type Repository struct {
	mu        sync.RWMutex
	owners    map[int64]*storedOwner
	petTypes  []domain.PetType
	nextOwner int64
	nextPet   int64
	nextVisit int64
	now       func() time.Time
}

type storedOwner struct {
	owner    *domain.Owner
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store seeded with the clinic's
// standard pet types.
func NewRepository() *Repository {
	return &Repository{
		owners: map[int64]*storedOwner{},
		petTypes: []domain.PetType{
			{ID: 1, Name: "cat"},
			{ID: 2, Name: "dog"},
			{ID: 3, Name: "lizard"},
			{ID: 4, Name: "snake"},
			{ID: 5, Name: "bird"},
			{ID: 6, Name: "hamster"},
		},
		now: time.Now,
	}
}

// WithClock overrides the timestamp source used for projection metadata.
func (r *Repository) WithClock(clock func() time.Time) *Repository {
	if clock != nil {
		r.now = clock
	}
	return r
}

// WithPetTypes replaces the seeded pet type lookup set.
func (r *Repository) WithPetTypes(petTypes ...domain.PetType) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.petTypes = append([]domain.PetType{}, petTypes...)
	return r
}

// Save inserts or replaces an owner aggregate, assigning identifiers to the
// owner, its pets and visits as needed, and maintains metadata.
func (r *Repository) Save(_ context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error) {
	if owner == nil {
		return nil, errors.New("cannot save nil owner")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneOwner(owner)
	if clone.ID == 0 {
		r.nextOwner++
		clone.ID = r.nextOwner
	} else if clone.ID > r.nextOwner {
		r.nextOwner = clone.ID
	}
	for _, pet := range clone.Pets {
		if pet.ID == 0 {
			r.nextPet++
			pet.ID = r.nextPet
		} else if pet.ID > r.nextPet {
			r.nextPet = pet.ID
		}
		for i := range pet.Visits {
			if pet.Visits[i].ID == 0 {
				r.nextVisit++
				pet.Visits[i].ID = r.nextVisit
			} else if pet.Visits[i].ID > r.nextVisit {
				r.nextVisit = pet.Visits[i].ID
			}
		}
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.owners[clone.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	stored := &storedOwner{owner: clone, metadata: metadata}
	r.owners[clone.ID] = stored
	return projectionCopy(stored), nil
}

// FindByID fetches an owner if present.
func (r *Repository) FindByID(_ context.Context, id int64) (*projection.Projection[*domain.Owner], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.owners[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByLastName returns one page of owners whose last name starts with the
// prefix, ignoring case. An empty prefix matches every owner.
func (r *Repository) FindByLastName(_ context.Context, lastNamePrefix string, page, size int) (ports.OwnerPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := strings.ToLower(lastNamePrefix)
	var matched []*storedOwner
	for _, entry := range r.owners {
		if strings.HasPrefix(strings.ToLower(entry.owner.LastName), prefix) {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].owner.LastName != matched[j].owner.LastName {
			return matched[i].owner.LastName < matched[j].owner.LastName
		}
		return matched[i].owner.ID < matched[j].owner.ID
	})

	result := ports.OwnerPage{TotalElements: len(matched)}
	if page < 1 || size < 1 {
		return result, nil
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return result, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	for _, entry := range matched[start:end] {
		result.Owners = append(result.Owners, projectionCopy(entry))
	}
	return result, nil
}

// FindPetTypes returns the clinic's pet types ordered by name.
func (r *Repository) FindPetTypes(_ context.Context) ([]domain.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	petTypes := append([]domain.PetType{}, r.petTypes...)
	sort.Slice(petTypes, func(i, j int) bool { return petTypes[i].Name < petTypes[j].Name })
	return petTypes, nil
}

func projectionCopy(entry *storedOwner) *projection.Projection[*domain.Owner] {
	return &projection.Projection[*domain.Owner]{
		Entity:   cloneOwner(entry.owner),
		Metadata: entry.metadata,
	}
}

func cloneOwner(o *domain.Owner) *domain.Owner {
	if o == nil {
		return nil
	}
	clone := *o
	if len(o.Pets) > 0 {
		clone.Pets = make([]*domain.Pet, 0, len(o.Pets))
		for _, p := range o.Pets {
			clone.Pets = append(clone.Pets, clonePet(p))
		}
	}
	return &clone
}

func clonePet(p *domain.Pet) *domain.Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Type != nil {
		petType := *p.Type
		clone.Type = &petType
	}
	if p.BirthDate != nil {
		birthDate := *p.BirthDate
		clone.BirthDate = &birthDate
	}
	if len(p.Visits) > 0 {
		clone.Visits = append([]domain.Visit{}, p.Visits...)
	}
	return &clone
}
