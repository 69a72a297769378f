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

	n, err := services.Sitemap.WriteFile(ctx, cfg.Site.SitemapPath)
	if err != nil {
		log.Printf("Error generating sitemap: %v", err)
		database.MethodsDB.CloseDB(db)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated sitemap.xml with %d posts\n", n)
	fmt.Printf("✓ Saved to: %s\n", cfg.Site.SitemapPath)
}
