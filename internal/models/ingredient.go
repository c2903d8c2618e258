package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is immutable reference data. The (name, measurement_unit)
// pair is unique so "сахар, г" and "сахар, кг" stay distinct entries.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:uniq_measurement_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:uniq_measurement_unit" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
