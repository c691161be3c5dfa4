package domain

// Dimensions holds the physical size of a product. Present as a unit or absent.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Meta holds upstream bookkeeping attributes.
type Meta struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	QRCode    string `json:"qrCode,omitempty"`
}

// Review is a single customer review attached to a product.
type Review struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
	ReviewerName  string  `json:"reviewerName"`
	ReviewerEmail string  `json:"reviewerEmail"`
}

// Product is the catalog entity. The id is assigned by the source feed and is
// the join key between the relational store and the search index.
type Product struct {
	ID                   int         `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Price                float64     `json:"price"`
	DiscountPercentage   float64     `json:"discountPercentage"`
	Rating               float64     `json:"rating"`
	Stock                int         `json:"stock"`
	Tags                 []string    `json:"tags,omitempty"`
	Brand                string      `json:"brand,omitempty"`
	SKU                  string      `json:"sku"`
	Weight               int         `json:"weight,omitempty"`
	Dimensions           *Dimensions `json:"dimensions,omitempty"`
	WarrantyInformation  string      `json:"warrantyInformation,omitempty"`
	ShippingInformation  string      `json:"shippingInformation,omitempty"`
	AvailabilityStatus   string      `json:"availabilityStatus,omitempty"`
	Reviews              []Review    `json:"reviews,omitempty"`
	ReturnPolicy         string      `json:"returnPolicy,omitempty"`
	MinimumOrderQuantity int         `json:"minimumOrderQuantity,omitempty"`
	Meta                 *Meta       `json:"meta,omitempty"`
	Images               []string    `json:"images,omitempty"`
	Thumbnail            string      `json:"thumbnail"`
}
