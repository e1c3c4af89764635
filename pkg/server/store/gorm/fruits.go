package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/model"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// Ensure FruitsStore implements store.FruitsStore
var _ store.FruitsStore = (*FruitsStore)(nil)

// FruitsStore implements store.FruitsStore using GORM
type FruitsStore struct {
	db *gorm.DB
}

// NewFruitsStore creates a new FruitsStore
func NewFruitsStore(db *gorm.DB) *FruitsStore {
	return &FruitsStore{db: db}
}

// EnsureTable creates the fruits table if it does not exist yet.
func (s *FruitsStore) EnsureTable(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Fruit{})
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid fruit id %q: %w", id, err)
	}
	return parsed.String(), nil
}

func toStore(f model.Fruit) store.Fruit {
	return store.Fruit{
		ID:         f.ID,
		Name:       f.Name,
		Color:      f.Color,
		ReadyToEat: f.ReadyToEat,
	}
}

func fromStore(f store.Fruit) model.Fruit {
	return model.Fruit{
		Name:       f.Name,
		Color:      f.Color,
		ReadyToEat: f.ReadyToEat,
	}
}

// find returns nil when no row matches
func (s *FruitsStore) find(ctx context.Context, id string) (*model.Fruit, error) {
	var fruits []model.Fruit
	tx := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&fruits)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(fruits) == 0 {
		return nil, nil
	}
	return &fruits[0], nil
}

// List returns every fruit in the table
func (s *FruitsStore) List(ctx context.Context) ([]store.Fruit, error) {
	var rows []model.Fruit
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	fruits := make([]store.Fruit, 0, len(rows))
	for _, row := range rows {
		fruits = append(fruits, toStore(row))
	}
	return fruits, nil
}

// Get fetches a fruit by its UUID
func (s *FruitsStore) Get(ctx context.Context, id string) (*store.Fruit, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row, err := s.find(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	fruit := toStore(*row)
	return &fruit, nil
}

// Create inserts one fruit
func (s *FruitsStore) Create(ctx context.Context, fruit store.Fruit) (*store.Fruit, error) {
	row := fromStore(fruit)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	created := toStore(row)
	return &created, nil
}

// CreateMany inserts all fruits in one batch
func (s *FruitsStore) CreateMany(ctx context.Context, fruits []store.Fruit) ([]store.Fruit, error) {
	if len(fruits) == 0 {
		return []store.Fruit{}, nil
	}

	rows := make([]model.Fruit, 0, len(fruits))
	for _, f := range fruits {
		rows = append(rows, fromStore(f))
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	created := make([]store.Fruit, 0, len(rows))
	for _, row := range rows {
		created = append(created, toStore(row))
	}
	return created, nil
}

// Update overwrites every field of the fruit, zero values included.
func (s *FruitsStore) Update(ctx context.Context, id string, fruit store.Fruit) (*store.Fruit, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).
		Model(&model.Fruit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":         fruit.Name,
			"color":        fruit.Color,
			"ready_to_eat": fruit.ReadyToEat,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	fruit.ID = id
	return &fruit, nil
}

// Delete removes the fruit with the given UUID and returns what was removed
func (s *FruitsStore) Delete(ctx context.Context, id string) (*store.Fruit, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row, err := s.find(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&model.Fruit{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	removed := toStore(*row)
	return &removed, nil
}

// DeleteAll removes every row of the fruits table
func (s *FruitsStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Fruit{}).Error
}
