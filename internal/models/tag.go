package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is reference data used to label recipes. Name, slug and color are
// each unique on their own.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Slug  string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Color string    `gorm:"size:7;not null;uniqueIndex" json:"color"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
