package services

import (
	"fmt"
	"os"

	"catalog-service/models"

	"gopkg.in/yaml.v3"
)

// Dataset holds the raw seed records per collection. Records go through the
// model constructors before anything is written.
type Dataset map[string][]map[string]any

// DefaultDataset is the demo catalog a fresh database is filled with.
func DefaultDataset() Dataset {
	return Dataset{
		models.CategoryCollection: {
			{
				"name":  "Shoes",
				"slug":  "shoes",
				"image": "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1200",
			},
			{
				"name":  "Clothing",
				"slug":  "clothing",
				"image": "https://images.unsplash.com/photo-1544441893-675973e31985?q=80&w=1200",
			},
			{
				"name":  "Accessories",
				"slug":  "accessories",
				"image": "https://images.unsplash.com/photo-1520975922284-9bcd8bdb1c46?q=80&w=1200",
			},
		},
		models.ProductCollection: {
			{
				"title":       "Air Zoom Pegasus 40",
				"description": "Everyday responsive road running shoe.",
				"price":       129.99,
				"category":    "Shoes",
				"brand":       "Nike",
				"images":      []any{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1600"},
				"colors":      []any{"Black", "White", "Volt"},
				"sizes":       []any{"7", "8", "9", "10", "11"},
				"rating":      4.7,
				"featured":    true,
				"in_stock":    true,
			},
			{
				"title":       "Metcon 9",
				"description": "Stability and durability for lifting and HIIT.",
				"price":       149.99,
				"category":    "Shoes",
				"brand":       "Nike",
				"images":      []any{"https://images.unsplash.com/photo-1608231387042-66d1773070a5?q=80&w=1600"},
				"colors":      []any{"Grey", "Blue"},
				"sizes":       []any{"6", "7", "8", "9", "10", "11", "12"},
				"rating":      4.6,
				"featured":    false,
				"in_stock":    true,
			},
			{
				"title":       "Tech Fleece Hoodie",
				"description": "Premium warmth and modern fit.",
				"price":       110.00,
				"category":    "Clothing",
				"brand":       "Nike",
				"images":      []any{"https://images.unsplash.com/photo-1520974735194-2c1b3b2b0cda?q=80&w=1600"},
				"colors":      []any{"Black", "Olive"},
				"sizes":       []any{"S", "M", "L", "XL"},
				"rating":      4.5,
				"featured":    true,
				"in_stock":    true,
			},
			{
				"title":       "Club Cap",
				"description": "Classic cap with adjustable strap.",
				"price":       25.00,
				"category":    "Accessories",
				"brand":       "Nike",
				"images":      []any{"https://images.unsplash.com/photo-1609250291996-6a9bff2e43a8?q=80&w=1600"},
				"colors":      []any{"Black", "White", "Navy"},
				"sizes":       []any{"One Size"},
				"rating":      4.3,
				"featured":    false,
				"in_stock":    true,
			},
		},
	}
}

// LoadDataset reads a YAML file whose top-level keys are collection names
// and whose values are lists of records:
//
//	category:
//	  - name: Shoes
//	    slug: shoes
//	product:
//	  - title: Club Cap
//	    price: 25
//	    category: Accessories
func LoadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed dataset: %w", err)
	}

	ds := Dataset{}
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse seed dataset %s: %w", path, err)
	}
	for collection := range ds {
		if _, ok := entityBuilders[collection]; !ok {
			return nil, fmt.Errorf("seed dataset %s: unknown collection %q", path, collection)
		}
	}
	return ds, nil
}
