package database

import (
	"log"

	"learnmart/config"
	"learnmart/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance used by the stub server
var Database DbInstance

// ConnectDb opens the stub server's sqlite database
func ConnectDb() {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBName), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(1) // sqlite: single writer
	sqlDB.SetMaxIdleConns(1)

	runMigrations(db)
	seedCategories(db)

	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Category{},
		&models.Course{},
		&models.Section{},
		&models.Lecture{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedCategories inserts a default category set so a fresh stub server has
// somewhere to file courses
func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []models.Category{
		{Name: "Web Development", Description: "Frontend and backend web courses", Active: true},
		{Name: "Data Science", Description: "Statistics, ML and analytics courses", Active: true},
		{Name: "DevOps", Description: "Infrastructure and delivery courses", Active: true},
	}
	if err := db.Create(&defaults).Error; err != nil {
		log.Printf("Failed to seed categories: %v", err)
		return
	}
	log.Println("Seeded default categories.")
}
