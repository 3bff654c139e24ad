package models

// ProductCollection is the collection products are stored in.
const ProductCollection = "product"

// Product defaults applied when the field is omitted.
const (
	DefaultBrand  = "Nike"
	DefaultRating = 4.5
)

type Product struct {
	Title       string   `bson:"title" json:"title" validate:"required"`
	Description *string  `bson:"description" json:"description"`
	Price       float64  `bson:"price" json:"price" validate:"gte=0"`
	Category    string   `bson:"category" json:"category"`
	Brand       string   `bson:"brand" json:"brand"`
	Images      []string `bson:"images" json:"images" validate:"dive,http_url"`
	Colors      []string `bson:"colors" json:"colors"`
	Sizes       []string `bson:"sizes" json:"sizes"`
	Rating      float64  `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	Featured    bool     `bson:"featured" json:"featured"`
	InStock     bool     `bson:"in_stock" json:"in_stock"`
}

// NewProduct builds a Product from raw fields or returns a *ValidationError.
func NewProduct(fields map[string]any) (*Product, error) {
	r := newFieldReader(fields)

	p := &Product{}
	p.Title, _ = r.str("title", true)
	p.Description = r.optStr("description")
	p.Price, _ = r.number("price", true)
	p.Category, _ = r.str("category", true)

	p.Brand = DefaultBrand
	if brand, ok := r.str("brand", false); ok {
		p.Brand = brand
	}

	p.Images = r.strs("images")
	p.Colors = r.strs("colors")
	p.Sizes = r.strs("sizes")

	p.Rating = DefaultRating
	if rating, ok := r.number("rating", false); ok {
		p.Rating = rating
	}

	p.Featured = r.boolean("featured", false)
	p.InStock = r.boolean("in_stock", true)

	if err := r.check("product", p); err != nil {
		return nil, err
	}
	return p, nil
}
