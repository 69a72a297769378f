package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"blogbootstrap/cmd/app"
	"blogbootstrap/internal/config"
	"blogbootstrap/internal/database"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout))
}

// run returns the process exit code: 0 when the schema is in place, 1 otherwise.
func run(ctx context.Context, out io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Config error: %v", err)
		return 1
	}

	fmt.Fprintln(out, "🏗️  Supabase Blog Table Setup Script")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	if !database.CheckConnection(ctx, cfg) {
		fmt.Fprintln(out, "❌ Cannot connect to Supabase database!")
		fmt.Fprintln(out, "\n💡 Please make sure:")
		fmt.Fprintln(out, "   1. Supabase is running locally")
		fmt.Fprintf(out, "   2. Database is accessible on port %d\n", cfg.DB.Port)
		fmt.Fprintf(out, "   3. Default credentials are correct (%s/%s)\n", cfg.DB.User, cfg.DB.Password)
		fmt.Fprintln(out, "\n🔧 To start Supabase:")
		fmt.Fprintln(out, "   supabase start")
		return 1
	}

	fmt.Fprintln(out, "🔌 Connecting to Supabase database...")
	db, services, err := app.App(ctx, cfg, out)
	if err != nil {
		fmt.Fprintf(out, "❌ Connection failed: %v\n", err)
		fmt.Fprintln(out, "\n💡 Make sure Supabase is running locally:")
		fmt.Fprintln(out, "   - Check if Supabase is started")
		fmt.Fprintf(out, "   - Verify the database is accessible on port %d\n", cfg.DB.Port)
		fmt.Fprintln(out, "   - Try running: supabase start")
		return 1
	}
	fmt.Fprintln(out, "✅ Connected successfully!")

	if _, err := services.Provision.Provision(ctx); err != nil {
		fmt.Fprintf(out, "❌ Error: %v\n", err)
		return 1
	}

	if err := database.MethodsDB.CloseDB(db); err != nil {
		log.Printf("Closing database: %v", err)
	}

	fmt.Fprintln(out, "\n🚀 Your Supabase database is ready!")
	fmt.Fprintln(out, "You can now run your Flutter app with: flutter run")
	return 0
}
