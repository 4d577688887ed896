package tools

import (
	"log"
	"os"
	"path/filepath"
)

const dataDirName = ".catalog-search"

var (
	dataDir string // Data directory for the editable catalog
)

func init() {
	dataDir = discoverDataDir()
}

// discoverDataDir picks the user home data directory, creating it if needed,
// and falls back to ./data
func discoverDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		userDataDir := filepath.Join(homeDir, dataDirName)

		if info, err := os.Stat(userDataDir); err == nil && info.IsDir() {
			log.Printf("✓ Data directory: %s (user home)", userDataDir)
			return userDataDir
		}

		if err := os.MkdirAll(userDataDir, 0755); err == nil {
			log.Printf("✓ Data directory: %s (user home, created)", userDataDir)
			return userDataDir
		}

		log.Printf("Warning: Could not create user data directory at %s: %v", userDataDir, err)
	} else {
		log.Printf("Warning: Could not determine user home directory: %v", err)
	}

	fallback := filepath.Join(".", "data")
	log.Printf("⚠️  Data directory (fallback): %s", fallback)
	os.MkdirAll(fallback, 0755)
	return fallback
}

// DataDir returns the directory holding the editable catalog
func DataDir() string {
	return dataDir
}
