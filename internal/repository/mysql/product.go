package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/CatalogGo/internal/domain"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// productColumns is the canonical column list shared by inserts and selects.
var productColumns = []string{
	"id", "title", "description", "category", "price", "discount_percentage",
	"rating", "stock", "brand", "sku", "thumbnail", "tags", "images",
	"weight", "dim_width", "dim_height", "dim_depth",
	"warranty_information", "shipping_information", "availability_status",
	"return_policy", "minimum_order_quantity", "meta", "reviews",
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS products (
	id INT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	category VARCHAR(100),
	price DECIMAL(10, 2),
	discount_percentage DECIMAL(5, 2),
	rating DECIMAL(3, 2),
	stock INT,
	brand VARCHAR(100),
	sku VARCHAR(100),
	thumbnail TEXT,
	tags JSON NULL,
	images JSON NULL,
	weight INT NULL,
	dim_width DECIMAL(10,2) NULL,
	dim_height DECIMAL(10,2) NULL,
	dim_depth DECIMAL(10,2) NULL,
	warranty_information VARCHAR(255) NULL,
	shipping_information VARCHAR(255) NULL,
	availability_status VARCHAR(100) NULL,
	return_policy VARCHAR(255) NULL,
	minimum_order_quantity INT NULL,
	meta JSON NULL,
	reviews JSON NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	INDEX idx_category (category),
	INDEX idx_brand (brand),
	INDEX idx_price (price)
)`

// ProductRepository is a MySQL-backed implementation of the
// repository.ProductRepository interface.
type ProductRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProductRepository creates a repository on top of an existing pool.
func NewProductRepository(db *sql.DB, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

// Ping checks database connectivity.
func (r *ProductRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql ping: %w", err)
	}
	return nil
}

// EnsureSchema creates the products table with its secondary indexes if it
// does not exist yet.
func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("ensure products table: %w", err)
	}
	r.logger.Info("products table ready")
	return nil
}

// Count returns the number of products stored.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// GetByID fetches a single product by primary key.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	query := "SELECT " + strings.Join(productColumns, ", ") + " FROM products WHERE id = ?"

	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// BulkUpsert inserts products in a single multi-row statement, updating all
// attributes of rows whose id already exists.
func (r *ProductRepository) BulkUpsert(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(productColumns)), ", ") + ")"
	rows := make([]string, len(products))
	args := make([]any, 0, len(products)*len(productColumns))

	for i := range products {
		rows[i] = placeholder

		rowArgs, err := insertArgs(&products[i])
		if err != nil {
			return fmt.Errorf("bulk upsert: encode product %d: %w", products[i].ID, err)
		}
		args = append(args, rowArgs...)
	}

	updates := make([]string, 0, len(productColumns)-1)
	for _, col := range productColumns[1:] {
		updates = append(updates, col+" = VALUES("+col+")")
	}

	query := "INSERT INTO products (" + strings.Join(productColumns, ", ") + ") VALUES " +
		strings.Join(rows, ", ") +
		" ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("bulk upsert %d products: %w", len(products), err)
	}
	return nil
}

// insertArgs flattens a product into the column order of productColumns.
// Optional attributes become NULLs; composite attributes are stored as JSON.
func insertArgs(p *domain.Product) ([]any, error) {
	tags, err := nullableJSON(p.Tags)
	if err != nil {
		return nil, err
	}
	images, err := nullableJSON(p.Images)
	if err != nil {
		return nil, err
	}
	var meta any
	if p.Meta != nil {
		if meta, err = json.Marshal(p.Meta); err != nil {
			return nil, err
		}
	}
	reviews, err := nullableJSON(p.Reviews)
	if err != nil {
		return nil, err
	}

	var dimWidth, dimHeight, dimDepth any
	if p.Dimensions != nil {
		dimWidth = p.Dimensions.Width
		dimHeight = p.Dimensions.Height
		dimDepth = p.Dimensions.Depth
	}

	return []any{
		p.ID,
		p.Title,
		p.Description,
		p.Category,
		p.Price,
		p.DiscountPercentage,
		p.Rating,
		p.Stock,
		nullableString(p.Brand),
		p.SKU,
		p.Thumbnail,
		tags,
		images,
		nullableInt(p.Weight),
		dimWidth,
		dimHeight,
		dimDepth,
		nullableString(p.WarrantyInformation),
		nullableString(p.ShippingInformation),
		nullableString(p.AvailabilityStatus),
		nullableString(p.ReturnPolicy),
		nullableInt(p.MinimumOrderQuantity),
		meta,
		reviews,
	}, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableJSON(v any) (any, error) {
	switch t := v.(type) {
	case []string:
		if t == nil {
			return nil, nil
		}
	case []domain.Review:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row in productColumns order and rebuilds the domain
// entity, decoding the JSON columns and folding the dimension columns back
// into a struct.
func scanProduct(row scanner) (*domain.Product, error) {
	var (
		p                                domain.Product
		description, category, brand     sql.NullString
		sku, thumbnail                   sql.NullString
		warranty, shipping, availability sql.NullString
		returnPolicy                     sql.NullString
		price, discount, rating          sql.NullFloat64
		dimWidth, dimHeight, dimDepth    sql.NullFloat64
		stock, weight, minOrderQty       sql.NullInt64
		tagsJSON, imagesJSON             []byte
		metaJSON, reviewsJSON            []byte
	)

	err := row.Scan(
		&p.ID, &p.Title, &description, &category, &price, &discount,
		&rating, &stock, &brand, &sku, &thumbnail, &tagsJSON, &imagesJSON,
		&weight, &dimWidth, &dimHeight, &dimDepth,
		&warranty, &shipping, &availability,
		&returnPolicy, &minOrderQty, &metaJSON, &reviewsJSON,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Category = category.String
	p.Price = price.Float64
	p.DiscountPercentage = discount.Float64
	p.Rating = rating.Float64
	p.Stock = int(stock.Int64)
	p.Brand = brand.String
	p.SKU = sku.String
	p.Thumbnail = thumbnail.String
	p.Weight = int(weight.Int64)
	p.WarrantyInformation = warranty.String
	p.ShippingInformation = shipping.String
	p.AvailabilityStatus = availability.String
	p.ReturnPolicy = returnPolicy.String
	p.MinimumOrderQuantity = int(minOrderQty.Int64)

	if dimWidth.Valid || dimHeight.Valid || dimDepth.Valid {
		p.Dimensions = &domain.Dimensions{
			Width:  dimWidth.Float64,
			Height: dimHeight.Float64,
			Depth:  dimDepth.Float64,
		}
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if len(metaJSON) > 0 {
		p.Meta = &domain.Meta{}
		if err := json.Unmarshal(metaJSON, p.Meta); err != nil {
			return nil, fmt.Errorf("decode meta: %w", err)
		}
	}
	if len(reviewsJSON) > 0 {
		if err := json.Unmarshal(reviewsJSON, &p.Reviews); err != nil {
			return nil, fmt.Errorf("decode reviews: %w", err)
		}
	}

	return &p, nil
}
