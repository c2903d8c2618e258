package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
)

type seedFile struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Tags        []models.Tag        `json:"tags"`
}

// Loads ingredient and tag reference data from a JSON file. Existing
// rows are left alone so reseeding is safe.
func main() {
	path := flag.String("file", "reference_data.json", "path to the reference data JSON file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *path, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("Failed to parse %s: %v", *path, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if len(data.Ingredients) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&data.Ingredients).Error; err != nil {
			log.Fatalf("Failed to seed ingredients: %v", err)
		}
	}
	if len(data.Tags) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&data.Tags).Error; err != nil {
			log.Fatalf("Failed to seed tags: %v", err)
		}
	}

	log.Printf("Seeded %d ingredients and %d tags", len(data.Ingredients), len(data.Tags))
}
