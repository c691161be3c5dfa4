package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "products"

// buildIndexMapping returns the full JSON mapping for the products index.
// Field names match the Product JSON encoding; text fields are analyzed,
// exact-match fields are keywords, numeric fields are float/integer.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":                   { "type": "integer" },
      "title":                { "type": "text" },
      "description":          { "type": "text" },
      "category":             { "type": "keyword" },
      "price":                { "type": "float" },
      "discountPercentage":   { "type": "float" },
      "rating":               { "type": "float" },
      "stock":                { "type": "integer" },
      "brand":                { "type": "keyword" },
      "sku":                  { "type": "keyword" },
      "thumbnail":            { "type": "keyword" },
      "tags":                 { "type": "keyword" },
      "images":               { "type": "keyword" },
      "weight":               { "type": "integer" },
      "dimensions": {
        "properties": {
          "width":  { "type": "float" },
          "height": { "type": "float" },
          "depth":  { "type": "float" }
        }
      },
      "warrantyInformation":  { "type": "keyword" },
      "shippingInformation":  { "type": "keyword" },
      "availabilityStatus":   { "type": "keyword" },
      "returnPolicy":         { "type": "keyword" },
      "minimumOrderQuantity": { "type": "integer" },
      "meta": {
        "properties": {
          "createdAt": { "type": "date" },
          "updatedAt": { "type": "date" },
          "barcode":   { "type": "keyword" },
          "qrCode":    { "type": "keyword" }
        }
      },
      "reviews": {
        "properties": {
          "rating":        { "type": "float" },
          "comment":       { "type": "text" },
          "date":          { "type": "date" },
          "reviewerName":  { "type": "keyword" },
          "reviewerEmail": { "type": "keyword" }
        }
      }
    }
  }
}`
}
