// Package main implements a standalone seed script that populates the
// catalog service's MySQL database and Elasticsearch index with 10,000
// synthetic products, for load-testing search and facet queries against a
// catalog far larger than the default feed provides.
//
// Run it from the repo root with: go run scripts/seed_10k_products.go
package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	totalProducts = 10000
	batchSize     = 500
	indexName     = "products"
	// Seeded ids start above the feed's range so both data sets coexist.
	idOffset = 100000
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		getEnv("DB_USER", "root"),
		getEnv("DB_PASSWORD", "rootpassword"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "appdb"),
	)
}

func elasticsearchURL() string {
	return getEnv("ELASTICSEARCH_HOST", "http://localhost:9200")
}

// ---------------------------------------------------------------------------
// Synthetic catalog data
// ---------------------------------------------------------------------------

var categories = []string{
	"beauty", "fragrances", "furniture", "groceries", "home-decoration",
	"kitchen-accessories", "laptops", "mens-shirts", "mens-shoes",
	"mens-watches", "mobile-accessories", "motorcycle", "skin-care",
	"smartphones", "sports-accessories", "sunglasses", "tablets",
	"tops", "vehicle", "womens-bags",
}

var brands = []string{
	"Essence", "Glamour Beauty", "Velvet Touch", "Chic Cosmetics",
	"Nail Couture", "Calvin Klein", "Chanel", "Dior", "Gucci",
	"Annibale Colombo", "Furniture Co", "Knoll", "Bath Trends",
	"Apple", "Asus", "Huawei", "Lenovo", "Dell", "Fashion Trends",
	"Gigabyte", "Classic Wear", "Casual Comfort", "Urban Chic",
}

var adjectives = []string{
	"Classic", "Premium", "Deluxe", "Essential", "Signature", "Modern",
	"Vintage", "Compact", "Professional", "Everyday",
}

var nouns = []string{
	"Mascara", "Lipstick", "Perfume", "Sofa", "Desk Lamp", "Keyboard",
	"Watch", "Sneakers", "Backpack", "Sunglasses", "Tablet", "Charger",
	"Helmet", "Blender", "Shirt", "Jacket",
}

type product struct {
	ID          int
	Title       string
	Description string
	Category    string
	Price       float64
	Discount    float64
	Rating      float64
	Stock       int
	Brand       string
	SKU         string
	Thumbnail   string
	Tags        []string
}

func generate(rng *rand.Rand, i int) product {
	category := categories[rng.Intn(len(categories))]
	brand := brands[rng.Intn(len(brands))]
	title := fmt.Sprintf("%s %s %s",
		brand,
		adjectives[rng.Intn(len(adjectives))],
		nouns[rng.Intn(len(nouns))],
	)

	// Prices skew low with a long tail, like a real catalog.
	price := float64(rng.Intn(10000))/100 + 1
	if rng.Intn(10) == 0 {
		price *= 20
	}

	return product{
		ID:          idOffset + i,
		Title:       title,
		Description: fmt.Sprintf("%s from %s. Part of the %s range.", title, brand, category),
		Category:    category,
		Price:       float64(int(price*100)) / 100,
		Discount:    float64(rng.Intn(3000)) / 100,
		Rating:      1 + float64(rng.Intn(400))/100,
		Stock:       rng.Intn(200),
		Brand:       brand,
		SKU:         fmt.Sprintf("SEED-%06d", i),
		Thumbnail:   fmt.Sprintf("https://cdn.example.com/seed/%d/thumb.webp", idOffset+i),
		Tags:        []string{category, strings.ToLower(brand)},
	}
}

// ---------------------------------------------------------------------------
// MySQL loading
// ---------------------------------------------------------------------------

func upsertBatch(db *sql.DB, batch []product) error {
	placeholders := make([]string, len(batch))
	args := make([]any, 0, len(batch)*12)

	for i, p := range batch {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return err
		}
		args = append(args, p.ID, p.Title, p.Description, p.Category, p.Price,
			p.Discount, p.Rating, p.Stock, p.Brand, p.SKU, p.Thumbnail, tags)
	}

	query := `INSERT INTO products
		(id, title, description, category, price, discount_percentage, rating, stock, brand, sku, thumbnail, tags)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON DUPLICATE KEY UPDATE
		title = VALUES(title), description = VALUES(description),
		category = VALUES(category), price = VALUES(price),
		discount_percentage = VALUES(discount_percentage), rating = VALUES(rating),
		stock = VALUES(stock), brand = VALUES(brand), sku = VALUES(sku),
		thumbnail = VALUES(thumbnail), tags = VALUES(tags)`

	_, err := db.Exec(query, args...)
	return err
}

// ---------------------------------------------------------------------------
// Elasticsearch loading
// ---------------------------------------------------------------------------

func indexBatch(esURL string, batch []product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, p := range batch {
		if err := enc.Encode(map[string]any{
			"index": map[string]any{"_index": indexName, "_id": fmt.Sprintf("%d", p.ID)},
		}); err != nil {
			return err
		}
		if err := enc.Encode(map[string]any{
			"id":                 p.ID,
			"title":              p.Title,
			"description":        p.Description,
			"category":           p.Category,
			"price":              p.Price,
			"discountPercentage": p.Discount,
			"rating":             p.Rating,
			"stock":              p.Stock,
			"brand":              p.Brand,
			"sku":                p.SKU,
			"thumbnail":          p.Thumbnail,
			"tags":               p.Tags,
		}); err != nil {
			return err
		}
	}

	resp, err := http.Post(esURL+"/_bulk", "application/x-ndjson", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bulk request returned %d", resp.StatusCode)
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return err
	}
	if bulkResp.Errors {
		return fmt.Errorf("bulk response reported item errors")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	start := time.Now()
	rng := rand.New(rand.NewSource(42)) // reproducible catalog

	db, err := sql.Open("mysql", mysqlDSN())
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}

	esURL := elasticsearchURL()
	log.Printf("seeding %d products (mysql=%s, elasticsearch=%s)",
		totalProducts, getEnv("DB_HOST", "localhost"), esURL)

	for offset := 0; offset < totalProducts; offset += batchSize {
		batch := make([]product, 0, batchSize)
		for i := offset; i < offset+batchSize && i < totalProducts; i++ {
			batch = append(batch, generate(rng, i))
		}

		if err := upsertBatch(db, batch); err != nil {
			log.Fatalf("upsert batch at %d: %v", offset, err)
		}
		if err := indexBatch(esURL, batch); err != nil {
			log.Fatalf("index batch at %d: %v", offset, err)
		}

		if (offset/batchSize)%5 == 0 {
			log.Printf("seeded %d/%d", offset+len(batch), totalProducts)
		}
	}

	// A final refresh makes the documents searchable immediately.
	resp, err := http.Post(esURL+"/"+indexName+"/_refresh", "application/json", nil)
	if err != nil {
		log.Fatalf("refresh index: %v", err)
	}
	resp.Body.Close()

	log.Printf("done: %d products in %s", totalProducts, time.Since(start).Round(time.Millisecond))
}
