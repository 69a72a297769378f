package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"blogbootstrap/cmd/app"
	"blogbootstrap/internal/config"
	"blogbootstrap/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx := context.Background()

	db, services, err := app.App(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer database.MethodsDB.CloseDB(db)

	res, err := services.Pages.Generate(ctx, cfg.Site.OutputDir)
	if err != nil {
		log.Printf("Error generating static posts: %v", err)
		database.MethodsDB.CloseDB(db)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Successfully generated %d static post pages\n", res.Posts)
	fmt.Printf("✓ Files saved to: %s\n", cfg.Site.OutputDir)
}
