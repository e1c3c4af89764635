package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fruit struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Name       string
	Color      string
	ReadyToEat bool `gorm:"column:ready_to_eat"`
}

func (Fruit) TableName() string {
	return "fruits"
}

// BeforeCreate assigns a random UUID when the caller did not supply one.
func (f *Fruit) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
