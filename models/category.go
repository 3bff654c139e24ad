package models

// CategoryCollection is the collection categories are stored in.
const CategoryCollection = "category"

// Category is a storefront section such as "Shoes".
type Category struct {
	Name  string  `bson:"name" json:"name" validate:"required"`
	Slug  string  `bson:"slug" json:"slug" validate:"required"`
	Image *string `bson:"image" json:"image" validate:"omitempty,http_url"`
}

// NewCategory builds a Category from raw fields or returns a *ValidationError.
func NewCategory(fields map[string]any) (*Category, error) {
	r := newFieldReader(fields)

	c := &Category{}
	c.Name, _ = r.str("name", true)
	c.Slug, _ = r.str("slug", true)
	c.Image = r.optStr("image")

	if err := r.check("category", c); err != nil {
		return nil, err
	}
	return c, nil
}
