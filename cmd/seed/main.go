package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/comanda-pos/api/internal/catalog"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	out := flag.String("out", "", "Path to write the menu JSON file")
	flag.Parse()

	// Fall back to environment variable, then default
	if *out == "" {
		*out = os.Getenv("MENU_PATH")
	}
	if *out == "" {
		*out = "menu.json"
	}

	items := defaultMenu()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		log.Fatalf("marshal menu: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write menu file: %v", err)
	}

	log.Printf("Wrote %d menu items to %s", len(items), *out)
}

func defaultMenu() []catalog.Item {
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			log.Fatalf("bad price %q: %v", s, err)
		}
		return d
	}

	return []catalog.Item{
		{ID: uuid.New(), Name: "Grilled Salmon", Category: enum.CategoryMains, UnitPrice: price("18.99"), PrepTimeMinutes: 20, Available: true},
		{ID: uuid.New(), Name: "Ribeye Steak", Category: enum.CategoryMains, UnitPrice: price("24.50"), PrepTimeMinutes: 25, Available: true},
		{ID: uuid.New(), Name: "Chicken Enchiladas", Category: enum.CategoryMains, UnitPrice: price("12.75"), PrepTimeMinutes: 18, Available: true},
		{ID: uuid.New(), Name: "Caesar Salad", Category: enum.CategorySalads, UnitPrice: price("8.50"), PrepTimeMinutes: 8, Available: true},
		{ID: uuid.New(), Name: "Greek Salad", Category: enum.CategorySalads, UnitPrice: price("9.25"), PrepTimeMinutes: 8, Available: true},
		{ID: uuid.New(), Name: "Tortilla Soup", Category: enum.CategorySoups, UnitPrice: price("6.90"), PrepTimeMinutes: 10, Available: true},
		{ID: uuid.New(), Name: "Lemonade", Category: enum.CategoryDrinks, UnitPrice: price("3.50"), PrepTimeMinutes: 3, Available: true},
		{ID: uuid.New(), Name: "Espresso", Category: enum.CategoryDrinks, UnitPrice: price("2.80"), PrepTimeMinutes: 2, Available: true},
		{ID: uuid.New(), Name: "Horchata", Category: enum.CategoryDrinks, UnitPrice: price("3.20"), PrepTimeMinutes: 3, Available: false},
		{ID: uuid.New(), Name: "Flan", Category: enum.CategoryDesserts, UnitPrice: price("5.40"), PrepTimeMinutes: 5, Available: true},
		{ID: uuid.New(), Name: "Churros", Category: enum.CategoryDesserts, UnitPrice: price("4.95"), PrepTimeMinutes: 7, Available: true},
	}
}
