package postgres

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists owner aggregates in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle. The default pet type catalog is seeded on first use.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&ownerRecord{}, &petTypeRecord{}, &petRecord{}, &visitRecord{}); err != nil {
			log.Printf("postgres owner repository migration failed: %v", err)
		}
		if err := repo.seedPetTypes(db); err != nil {
			log.Printf("postgres owner repository type seeding failed: %v", err)
		}
	}
	return repo
}

type ownerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	FirstName string    `gorm:"column:first_name;type:varchar(30)"`
	LastName  string    `gorm:"column:last_name;type:varchar(30);index"`
	Address   string    `gorm:"column:address"`
	City      string    `gorm:"column:city;type:varchar(80)"`
	Telephone string    `gorm:"column:telephone;type:varchar(20)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ownerRecord) TableName() string { return "owners" }

type petRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	OwnerID   int64      `gorm:"column:owner_id;index"`
	TypeID    *int64     `gorm:"column:type_id"`
	Name      string     `gorm:"column:name;type:varchar(30)"`
	BirthDate *time.Time `gorm:"column:birth_date"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

type petTypeRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;type:varchar(80);uniqueIndex"`
}

func (petTypeRecord) TableName() string { return "types" }

type visitRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	PetID       int64     `gorm:"column:pet_id;index"`
	VisitDate   time.Time `gorm:"column:visit_date"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (visitRecord) TableName() string { return "visits" }

// defaultPetTypes mirrors the clinic's stock catalog.
var defaultPetTypes = []petTypeRecord{
	{ID: 1, Name: "cat"},
	{ID: 2, Name: "dog"},
	{ID: 3, Name: "lizard"},
	{ID: 4, Name: "snake"},
	{ID: 5, Name: "bird"},
	{ID: 6, Name: "hamster"},
}

func (r *Repository) seedPetTypes(db *gorm.DB) error {
	types := make([]petTypeRecord, len(defaultPetTypes))
	copy(types, defaultPetTypes)
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&types).Error
}

// Save inserts or updates an owner together with its pets and visits. The
// whole aggregate is written in one transaction.
func (r *Repository) Save(ctx context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errors.New("cannot save nil owner")
	}
	record := newOwnerRecord(owner)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"first_name": record.FirstName,
				"last_name":  record.LastName,
				"address":    record.Address,
				"city":       record.City,
				"telephone":  record.Telephone,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		for _, pet := range owner.Pets {
			petRec := newPetRecord(record.ID, pet)
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"owner_id":   petRec.OwnerID,
					"type_id":    petRec.TypeID,
					"name":       petRec.Name,
					"birth_date": petRec.BirthDate,
					"updated_at": gorm.Expr("NOW()"),
				}),
			}).Create(&petRec).Error; err != nil {
				return err
			}
			for _, visit := range pet.Visits {
				visitRec := newVisitRecord(petRec.ID, visit)
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "id"}},
					DoUpdates: clause.Assignments(map[string]any{
						"pet_id":      visitRec.PetID,
						"visit_date":  visitRec.VisitDate,
						"description": visitRec.Description,
						"updated_at":  gorm.Expr("NOW()"),
					}),
				}).Create(&visitRec).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// FindByID fetches an owner aggregate with its pets and visits.
func (r *Repository) FindByID(ctx context.Context, id int64) (*projection.Projection[*domain.Owner], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ownerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	owners, err := r.hydrate(ctx, []ownerRecord{record})
	if err != nil {
		return nil, err
	}
	return owners[0], nil
}

// FindByLastName pages through owners whose last name starts with the given
// prefix, case insensitive. An empty prefix matches every owner.
func (r *Repository) FindByLastName(ctx context.Context, lastName string, page, size int) (ports.OwnerPage, error) {
	if err := r.ensureDB(); err != nil {
		return ports.OwnerPage{}, err
	}
	if page < 1 {
		page = 1
	}
	pattern := strings.ToLower(strings.TrimSpace(lastName)) + "%"

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&ownerRecord{}).
		Where("lower(last_name) LIKE ?", pattern).
		Count(&total).Error; err != nil {
		return ports.OwnerPage{}, err
	}

	var records []ownerRecord
	if err := r.db.WithContext(ctx).
		Where("lower(last_name) LIKE ?", pattern).
		Order("last_name, id").
		Limit(size).
		Offset((page - 1) * size).
		Find(&records).Error; err != nil {
		return ports.OwnerPage{}, err
	}
	owners, err := r.hydrate(ctx, records)
	if err != nil {
		return ports.OwnerPage{}, err
	}
	return ports.OwnerPage{Owners: owners, TotalElements: int(total)}, nil
}

// FindPetTypes returns the type catalog ordered by name.
func (r *Repository) FindPetTypes(ctx context.Context) ([]domain.PetType, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petTypeRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	types := make([]domain.PetType, 0, len(records))
	for _, record := range records {
		types = append(types, domain.PetType{ID: record.ID, Name: record.Name})
	}
	return types, nil
}

// hydrate attaches pets, types, and visits to the given owner rows.
func (r *Repository) hydrate(ctx context.Context, records []ownerRecord) ([]*projection.Projection[*domain.Owner], error) {
	ownerIDs := make([]int64, 0, len(records))
	for _, record := range records {
		ownerIDs = append(ownerIDs, record.ID)
	}

	petsByOwner := make(map[int64][]petRecord)
	var petIDs []int64
	typeIDs := make(map[int64]struct{})
	if len(ownerIDs) > 0 {
		var pets []petRecord
		if err := r.db.WithContext(ctx).
			Where("owner_id IN ?", ownerIDs).
			Order("id").
			Find(&pets).Error; err != nil {
			return nil, err
		}
		for _, pet := range pets {
			petsByOwner[pet.OwnerID] = append(petsByOwner[pet.OwnerID], pet)
			petIDs = append(petIDs, pet.ID)
			if pet.TypeID != nil {
				typeIDs[*pet.TypeID] = struct{}{}
			}
		}
	}

	typesByID := make(map[int64]domain.PetType)
	if len(typeIDs) > 0 {
		ids := make([]int64, 0, len(typeIDs))
		for id := range typeIDs {
			ids = append(ids, id)
		}
		var types []petTypeRecord
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error; err != nil {
			return nil, err
		}
		for _, record := range types {
			typesByID[record.ID] = domain.PetType{ID: record.ID, Name: record.Name}
		}
	}

	visitsByPet := make(map[int64][]visitRecord)
	if len(petIDs) > 0 {
		var visits []visitRecord
		if err := r.db.WithContext(ctx).
			Where("pet_id IN ?", petIDs).
			Order("visit_date DESC, id DESC").
			Find(&visits).Error; err != nil {
			return nil, err
		}
		for _, visit := range visits {
			visitsByPet[visit.PetID] = append(visitsByPet[visit.PetID], visit)
		}
	}

	owners := make([]*projection.Projection[*domain.Owner], 0, len(records))
	for _, record := range records {
		owner := record.toDomain()
		for _, petRec := range petsByOwner[record.ID] {
			owner.Pets = append(owner.Pets, petRec.toDomain(typesByID, visitsByPet[petRec.ID]))
		}
		owners = append(owners, projection.New(owner, record.CreatedAt, record.UpdatedAt))
	}
	return owners, nil
}

func newOwnerRecord(owner *domain.Owner) ownerRecord {
	return ownerRecord{
		ID:        owner.ID,
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		Address:   owner.Address,
		City:      owner.City,
		Telephone: owner.Telephone,
	}
}

func newPetRecord(ownerID int64, pet *domain.Pet) petRecord {
	record := petRecord{
		ID:      pet.ID,
		OwnerID: ownerID,
		Name:    pet.Name,
	}
	if pet.Type != nil {
		typeID := pet.Type.ID
		record.TypeID = &typeID
	}
	if pet.BirthDate != nil {
		birthDate := *pet.BirthDate
		record.BirthDate = &birthDate
	}
	return record
}

func newVisitRecord(petID int64, visit domain.Visit) visitRecord {
	return visitRecord{
		ID:          visit.ID,
		PetID:       petID,
		VisitDate:   visit.Date,
		Description: visit.Description,
	}
}

func (r ownerRecord) toDomain() *domain.Owner {
	return &domain.Owner{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		City:      r.City,
		Telephone: r.Telephone,
	}
}

func (r petRecord) toDomain(types map[int64]domain.PetType, visits []visitRecord) *domain.Pet {
	pet := &domain.Pet{
		ID:   r.ID,
		Name: r.Name,
	}
	if r.TypeID != nil {
		if petType, ok := types[*r.TypeID]; ok {
			pet.Type = &domain.PetType{ID: petType.ID, Name: petType.Name}
		}
	}
	if r.BirthDate != nil {
		birthDate := r.BirthDate.UTC()
		pet.BirthDate = &birthDate
	}
	for _, visit := range visits {
		pet.Visits = append(pet.Visits, domain.Visit{
			ID:          visit.ID,
			Date:        visit.VisitDate.UTC(),
			Description: visit.Description,
		})
	}
	return pet
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres owner repository not configured")
	}
	return nil
}
