package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-petclinic-server/internal/domains/vets/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/vets/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository reads the vet directory from PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed vet directory. The caller owns the
// DB lifecycle. The clinic's staff roster is seeded on first use.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&vetRecord{}); err != nil {
			log.Printf("postgres vet repository migration failed: %v", err)
		}
		if err := repo.seedVets(db); err != nil {
			log.Printf("postgres vet repository seeding failed: %v", err)
		}
	}
	return repo
}

type vetRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	FirstName   string         `gorm:"column:first_name;type:varchar(30)"`
	LastName    string         `gorm:"column:last_name;type:varchar(30);index"`
	Specialties pq.StringArray `gorm:"column:specialties;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (vetRecord) TableName() string { return "vets" }

// defaultVets mirrors the clinic's staff roster.
var defaultVets = []vetRecord{
	{ID: 1, FirstName: "James", LastName: "Carter"},
	{ID: 2, FirstName: "Helen", LastName: "Leary", Specialties: pq.StringArray{"radiology"}},
	{ID: 3, FirstName: "Linda", LastName: "Douglas", Specialties: pq.StringArray{"dentistry", "surgery"}},
	{ID: 4, FirstName: "Rafael", LastName: "Ortega", Specialties: pq.StringArray{"surgery"}},
	{ID: 5, FirstName: "Henry", LastName: "Stevens", Specialties: pq.StringArray{"radiology"}},
	{ID: 6, FirstName: "Sharon", LastName: "Jenkins"},
}

func (r *Repository) seedVets(db *gorm.DB) error {
	vets := make([]vetRecord, len(defaultVets))
	copy(vets, defaultVets)
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vets).Error
}

// List returns one page of vets ordered by last name.
func (r *Repository) List(ctx context.Context, page, size int) (ports.VetPage, error) {
	if err := r.ensureDB(); err != nil {
		return ports.VetPage{}, err
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&vetRecord{}).Count(&total).Error; err != nil {
		return ports.VetPage{}, err
	}

	var records []vetRecord
	if err := r.db.WithContext(ctx).
		Order("last_name, id").
		Limit(size).
		Offset((page - 1) * size).
		Find(&records).Error; err != nil {
		return ports.VetPage{}, err
	}
	return ports.VetPage{Vets: toProjections(records), TotalElements: int(total)}, nil
}

// ListAll returns the whole directory ordered by last name.
func (r *Repository) ListAll(ctx context.Context) ([]*projection.Projection[*domain.Vet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []vetRecord
	if err := r.db.WithContext(ctx).Order("last_name, id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

func toProjections(records []vetRecord) []*projection.Projection[*domain.Vet] {
	list := make([]*projection.Projection[*domain.Vet], 0, len(records))
	for _, record := range records {
		list = append(list, projection.New(record.toDomain(), record.CreatedAt, record.UpdatedAt))
	}
	return list
}

func (r vetRecord) toDomain() *domain.Vet {
	vet := &domain.Vet{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	vet.SetSpecialties(r.Specialties)
	return vet
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres vet repository not configured")
	}
	return nil
}
