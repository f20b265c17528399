package db

import (
	"database/sql"
	"fmt"
	"log"

	"VinylFM/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database. The handle is shared
// for the lifetime of the process.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createInventoryTable(); err != nil {
		return err
	}
	log.Println("Database initialization completed.")
	return nil
}

func createInventoryTable() error {
	// The id is assigned by the application (Unix seconds at creation), so
	// no AUTO_INCREMENT here.
	query := `
	CREATE TABLE IF NOT EXISTS inventory (
		id BIGINT PRIMARY KEY,
		artist VARCHAR(255) NOT NULL,
		album_name VARCHAR(255) NOT NULL,
		genre VARCHAR(100),
		year VARCHAR(10),
		cover_url VARCHAR(512),
		record_condition VARCHAR(10),
		duration_minutes INT DEFAULT 0,
		tracklist TEXT
	);
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create inventory table: %w", err)
	}
	return nil
}
