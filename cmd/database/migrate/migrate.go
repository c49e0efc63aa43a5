package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"givehub/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Profile{}); err != nil {
		log.Fatalf("Error migrating profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Donation{}); err != nil {
		log.Fatalf("Error migrating donation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DonationImage{}); err != nil {
		log.Fatalf("Error migrating donation image database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DonationRequest{}); err != nil {
		log.Fatalf("Error migrating donation request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}

	seedCategories(db)

	fmt.Println("Database migration complete")
	return nil
}

func seedCategories(db *gorm.DB) {
	categories := []string{
		"Furniture",
		"Clothing",
		"Electronics",
		"Books",
		"Kitchenware",
		"Toys",
		"Sports",
		"Other",
	}

	for _, name := range categories {
		var count int64
		db.Model(&entities.Category{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			db.Create(&entities.Category{Name: name})
		}
	}
}
