package cmd

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"
	logger "github.com/sirupsen/logrus"
)

// FileExists checks if a file exists and is readable
func FileExists(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer file.Close()
	return true
}

// Shared helper function. Open (or create) the local sqlite db file.
func OpenDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		logger.Fatalf("failed to open db file %s: %v", dbPath, err)
		return nil, err
	}
	return db, nil
}
