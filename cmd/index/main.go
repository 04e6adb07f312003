package main

import (
	"context"
	"log"
	"time"

	"hackreg/internal/config"
	"hackreg/internal/database"
)

func main() {
	log.Println("Creating indexes...")

	cfg := config.Load()

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := database.EnsureIndexes(ctx, mongoDB.Database)
	for _, name := range names {
		log.Printf("Index ready: %s", name)
	}
	if err != nil {
		log.Fatalf("Index creation failed: %v", err)
	}

	log.Println("Indexes created successfully!")
}
