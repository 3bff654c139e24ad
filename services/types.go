package services

import "catalog-service/repository"

// ProductQuery holds the optional product filters. Empty strings and nil
// pointers are left out of the store filter.
type ProductQuery struct {
	Category string
	Brand    string
	Featured *bool
	InStock  *bool
}

// Filter turns the query into an exact-match store filter.
func (q ProductQuery) Filter() repository.Filter {
	filter := repository.Filter{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.Featured != nil {
		filter["featured"] = *q.Featured
	}
	if q.InStock != nil {
		filter["in_stock"] = *q.InStock
	}
	return filter
}

// FeaturedQuery is the query behind the featured shortcut.
func FeaturedQuery() ProductQuery {
	featured := true
	return ProductQuery{Featured: &featured}
}

// StatusReport is the connectivity summary served on /test.
type StatusReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
