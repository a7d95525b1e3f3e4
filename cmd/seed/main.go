// Command main fills a development database with demo catalog, client and
// portfolio data.
package main

import (
	"context"
	"flag"
	"log"

	"ratil/internal/bootstrap"
	"ratil/internal/config"
	"ratil/internal/seed"
)

func main() {
	subcategories := flag.Int("subcategories", 3, "Subcategories to create per category")
	items := flag.Int("items", 4, "Content items to create per subcategory")
	clients := flag.Int("clients", 5, "Number of clients to create")
	portfolio := flag.Int("portfolio", 12, "Number of portfolio items to create")
	days := flag.Int("days", 180, "Spread portfolio upload dates over this many past days")
	seedValue := flag.Int64("seed", 0, "Random seed for reproducible data (0 picks one)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed demo data into a production database")
	}

	ctx := context.Background()
	db, _, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedBuiltIns: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	summary, err := seed.NewFactory(db, seed.DemoOptions{
		SubcategoriesPerCategory: *subcategories,
		ItemsPerSubcategory:      *items,
		Clients:                  *clients,
		PortfolioItems:           *portfolio,
		MaxDays:                  *days,
		Seed:                     *seedValue,
	}).Demo(ctx)
	if err != nil {
		log.Fatalf("❌ Demo seeding failed: %v", err)
	}

	log.Printf("Created %d subcategories, %d content items, %d clients and %d portfolio items",
		summary.Subcategories, summary.ContentItems, summary.Clients, summary.PortfolioItems)
	log.Println("✨ All done! Log in as admin with the configured ADMIN_PASSWORD.")
}
