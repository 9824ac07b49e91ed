package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the database row of a scene document.
type Record struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName pins the table name.
func (Record) TableName() string {
	return "scenes"
}

// DBStore keeps scene documents as JSON in the scenes table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a store on db.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates or updates the scenes table.
func (s *DBStore) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

func (s *DBStore) Load(ctx context.Context, name string) (*Document, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", name, err)
	}
	return Decode([]byte(rec.Body), FormatJSON)
}

func (s *DBStore) Save(ctx context.Context, doc *Document) error {
	data, err := Encode(doc, FormatJSON)
	if err != nil {
		return err
	}
	rec := Record{Name: doc.Name, Body: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save scene %s: %w", doc.Name, err)
	}
	return nil
}

func (s *DBStore) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&Record{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	return names, nil
}

func (s *DBStore) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&Record{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete scene %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	return nil
}
