// Package db opens the MySQL connection and runs schema migration.
package db

import (
	"fmt"
	"log"
	"os"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	brokerageadapters "invest_backend/internal/feature/brokerage/adapters"
	portfolioadapters "invest_backend/internal/feature/portfolio/adapters"
	searchadapters "invest_backend/internal/feature/search/adapters"
)

// OpenDB connects using DB_* environment variables and migrates the schema.
// INSTANCE_CONNECTION_NAME switches to a Cloud SQL unix socket.
func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")

	var dsn string
	if instance != "" {
		dsn = fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, instance, name)
	} else {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, host, port, name)
	}

	db, err := gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err := db.AutoMigrate(
		&brokerageadapters.AccessTokenModel{},
		&searchadapters.SecurityModel{},
		&portfolioadapters.HoldingModel{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
