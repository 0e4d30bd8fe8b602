package main

import (
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/pkg/imagestore"
)

// media_cleanup removes stored recipe images that no recipe references,
// e.g. files left behind by a crash between the upload and the transaction.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	var referenced []string
	if err := db.Model(&recipe.Recipe{}).Pluck("image", &referenced).Error; err != nil {
		log.Fatalf("load recipe images failed: %v", err)
	}
	inUse := make(map[string]bool, len(referenced))
	for _, url := range referenced {
		inUse[url] = true
	}

	store := imagestore.New(cfg.MediaDir, cfg.MediaURL, cfg.ImageMaxWidth, cfg.ImageMaxBytes)
	stored, err := store.List()
	if err != nil {
		log.Fatalf("list media failed: %v", err)
	}

	removed := 0
	for _, url := range stored {
		if inUse[url] {
			continue
		}
		if err := store.Delete(url); err != nil {
			log.Printf("remove %s failed: %v", url, err)
			continue
		}
		removed++
	}

	log.Printf("media cleanup completed: stored=%d referenced=%d removed=%d", len(stored), len(inUse), removed)
}
