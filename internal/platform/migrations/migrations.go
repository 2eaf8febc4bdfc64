package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&ownerRecord{},
		&petTypeRecord{},
		&petRecord{},
		&visitRecord{},
		&vetRecord{},
	)
}

// Owner schema mirrors the owners Postgres adapter.
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

// Pet type catalog schema mirrors the owners Postgres adapter.
type petTypeRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;type:varchar(80);uniqueIndex"`
}

func (petTypeRecord) TableName() string { return "types" }

// Pet schema mirrors the owners Postgres adapter.
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

// Visit schema mirrors the owners Postgres adapter.
type visitRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	PetID       int64     `gorm:"column:pet_id;index"`
	VisitDate   time.Time `gorm:"column:visit_date"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (visitRecord) TableName() string { return "visits" }

// Vet schema mirrors the vets Postgres adapter.
type vetRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	FirstName   string         `gorm:"column:first_name;type:varchar(30)"`
	LastName    string         `gorm:"column:last_name;type:varchar(30);index"`
	Specialties pq.StringArray `gorm:"column:specialties;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (vetRecord) TableName() string { return "vets" }
