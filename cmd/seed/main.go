package main

import (
	"fmt"
	"log"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main migrates the catalog schema and loads a small demo dataset
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("PRODUCT FINDER - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	// Initialize database connections
	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	db := config.CatalogGorm

	if err := db.AutoMigrate(
		&models.Attribute{},
		&models.AttributeOption{},
		&models.AttributeSet{},
		&models.AttributeProfile{},
		&models.ProductRecord{},
		&models.StockStatus{},
		&models.WebsiteStockIndex{},
		&models.PriceIndex{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✓ Schema migrated")

	// Attributes and their options
	attributes := []models.Attribute{
		{AttributeCode: "color_attr", FrontendLabel: "Colour", FrontendInput: "select"},
		{AttributeCode: "product_type", FrontendLabel: "Type", FrontendInput: "select"},
		{AttributeCode: "material", FrontendLabel: "Material", FrontendInput: "multiselect"},
	}
	for i := range attributes {
		if err := db.Where("attribute_code = ?", attributes[i].AttributeCode).
			FirstOrCreate(&attributes[i]).Error; err != nil {
			log.Fatalf("Failed to seed attribute %s: %v", attributes[i].AttributeCode, err)
		}
	}
	log.Printf("✓ Seeded %d attributes", len(attributes))

	attrID := func(code string) int64 {
		for _, a := range attributes {
			if a.AttributeCode == code {
				return a.AttributeID
			}
		}
		log.Fatalf("Unknown attribute code %q", code)
		return 0
	}

	options := []models.AttributeOption{
		{OptionID: 5, AttributeID: attrID("color_attr"), StoreID: 0, Label: "Red", Position: 1},
		{OptionID: 6, AttributeID: attrID("color_attr"), StoreID: 0, Label: "Blue", Position: 2},
		{OptionID: 7, AttributeID: attrID("color_attr"), StoreID: 0, Label: "Green", Position: 3},
		{OptionID: 10, AttributeID: attrID("product_type"), StoreID: 0, Label: "Panel", Position: 1},
		{OptionID: 11, AttributeID: attrID("product_type"), StoreID: 0, Label: "Frame", Position: 2},
		{OptionID: 20, AttributeID: attrID("material"), StoreID: 0, Label: "Oak", Position: 1},
		{OptionID: 21, AttributeID: attrID("material"), StoreID: 0, Label: "Pine", Position: 2},
		// store 1 relabels Red to test store-scoped labels
		{OptionID: 5, AttributeID: attrID("color_attr"), StoreID: 1, Label: "Crimson", Position: 1},
	}
	for i := range options {
		if err := db.Where("option_id = ? AND store_id = ?", options[i].OptionID, options[i].StoreID).
			FirstOrCreate(&options[i]).Error; err != nil {
			log.Fatalf("Failed to seed option %d: %v", options[i].OptionID, err)
		}
	}
	log.Printf("✓ Seeded %d attribute options", len(options))

	sets := []models.AttributeSet{
		{AttributeSetID: 42, Name: "Panels"},
		{AttributeSetID: 99, Name: "Accessories"},
	}
	for i := range sets {
		if err := db.Where("attribute_set_id = ?", sets[i].AttributeSetID).
			FirstOrCreate(&sets[i]).Error; err != nil {
			log.Fatalf("Failed to seed attribute set %d: %v", sets[i].AttributeSetID, err)
		}
	}
	log.Printf("✓ Seeded %d attribute sets", len(sets))

	profiles := []models.AttributeProfile{
		{
			StoreID:        0,
			AttributeSetID: 42,
			SetName:        "Panels",
			Sections:       models.SectionList{"Colour", "Type"},
			Map:            models.CodeMap{"Colour": "color_attr", "Type": "product_type"},
			Extras:         datatypes.JSONMap{"material": "material"},
		},
		{
			StoreID:        0,
			AttributeSetID: 99,
			SetName:        "Accessories",
			Sections:       models.SectionList{"Colour"},
			Map:            models.CodeMap{"Colour": "color_attr"},
			Extras:         datatypes.JSONMap{},
		},
	}
	for i := range profiles {
		if err := profiles[i].Validate(); err != nil {
			log.Fatalf("Invalid profile: %v", err)
		}
		if err := db.Where("store_id = ? AND attribute_set_id = ?", profiles[i].StoreID, profiles[i].AttributeSetID).
			FirstOrCreate(&profiles[i]).Error; err != nil {
			log.Fatalf("Failed to seed profile for set %d: %v", profiles[i].AttributeSetID, err)
		}
	}
	log.Printf("✓ Seeded %d finder profiles", len(profiles))

	parent := int64(1000)
	products := []models.ProductRecord{
		{
			EntityID: 1000, AttributeSetID: 42, SKU: "PANEL-CONF", Name: "Panel Configurable",
			TypeID: models.TypeConfigurable, Status: models.StatusEnabled,
			Visibility: models.VisibilityCatalogSearch, Price: 120,
			Attributes: models.AttributeValues{"color_attr": "7", "product_type": "10"},
		},
		{
			// carries its own colour
			EntityID: 1001, ParentID: &parent, AttributeSetID: 42, SKU: "PANEL-RED", Name: "Panel Red",
			TypeID: models.TypeSimple, Status: models.StatusEnabled,
			Visibility: models.VisibilityNotVisible, Price: 120,
			Attributes: models.AttributeValues{"color_attr": "5", "product_type": "10", "material": "20,21"},
		},
		{
			// empty colour, inherits "7" from the parent; lives in another set
			EntityID: 1002, ParentID: &parent, AttributeSetID: 99, SKU: "PANEL-PLAIN", Name: "Panel Plain",
			TypeID: models.TypeSimple, Status: models.StatusEnabled,
			Visibility: models.VisibilityNotVisible, Price: 110,
			Attributes: models.AttributeValues{"color_attr": "", "product_type": "10"},
		},
		{
			EntityID: 1003, AttributeSetID: 42, SKU: "PANEL-BLUE", Name: "Panel Blue",
			TypeID: models.TypeSimple, Status: models.StatusEnabled,
			Visibility: models.VisibilityCatalogSearch, Price: 95,
			Attributes: models.AttributeValues{"color_attr": "6", "product_type": "11", "material": "21", "small_image": "/media/panel-blue.jpg"},
		},
		{
			// disabled, must never surface
			EntityID: 1004, AttributeSetID: 42, SKU: "PANEL-OLD", Name: "Panel Old",
			TypeID: models.TypeSimple, Status: models.StatusDisabled,
			Visibility: models.VisibilityCatalogSearch, Price: 40,
			Attributes: models.AttributeValues{"color_attr": "5"},
		},
	}
	for i := range products {
		if err := db.Where("entity_id = ?", products[i].EntityID).
			FirstOrCreate(&products[i]).Error; err != nil {
			log.Fatalf("Failed to seed product %s: %v", products[i].SKU, err)
		}
	}
	log.Printf("✓ Seeded %d products", len(products))

	stock := []models.StockStatus{
		{ProductID: 1000, WebsiteID: 0, StockStatus: 1},
		{ProductID: 1001, WebsiteID: 0, StockStatus: 1},
		{ProductID: 1002, WebsiteID: 0, StockStatus: 1},
		{ProductID: 1003, WebsiteID: 1, StockStatus: 1},
		{ProductID: 1004, WebsiteID: 0, StockStatus: 1},
	}
	for i := range stock {
		if err := db.Where("product_id = ? AND website_id = ?", stock[i].ProductID, stock[i].WebsiteID).
			FirstOrCreate(&stock[i]).Error; err != nil {
			log.Fatalf("Failed to seed stock row %d: %v", stock[i].ProductID, err)
		}
	}
	log.Printf("✓ Seeded %d stock rows", len(stock))

	prices := []models.PriceIndex{
		{EntityID: 1001, WebsiteID: 1, CustomerGroupID: 0, FinalPrice: 99.5},
		{EntityID: 1003, WebsiteID: 1, CustomerGroupID: 0, FinalPrice: 89},
	}
	for i := range prices {
		if err := db.Where("entity_id = ? AND website_id = ? AND customer_group_id = ?",
			prices[i].EntityID, prices[i].WebsiteID, prices[i].CustomerGroupID).
			FirstOrCreate(&prices[i]).Error; err != nil {
			log.Fatalf("Failed to seed price index row %d: %v", prices[i].EntityID, err)
		}
	}
	log.Printf("✓ Seeded %d price index rows", len(prices))

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Demo Catalog Seeded Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. GET /api/v1/store/finder/form")
	fmt.Println("3. GET /api/v1/store/finder/options?set_id=42&next_code=Colour")
	fmt.Println("4. GET /api/v1/store/finder/results?set_id=42&filters[Colour]=5")
	fmt.Println()
}
