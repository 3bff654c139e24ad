package models

// UserCollection is reserved for storefront accounts; no endpoint reads it yet.
const UserCollection = "user"

type User struct {
	Name     string `bson:"name" json:"name" validate:"required"`
	Email    string `bson:"email" json:"email" validate:"required"`
	Address  string `bson:"address" json:"address" validate:"required"`
	Age      *int   `bson:"age" json:"age" validate:"omitempty,gte=0,lte=120"`
	IsActive bool   `bson:"is_active" json:"is_active"`
}

// NewUser builds a User from raw fields or returns a *ValidationError.
func NewUser(fields map[string]any) (*User, error) {
	r := newFieldReader(fields)

	u := &User{}
	u.Name, _ = r.str("name", true)
	u.Email, _ = r.str("email", true)
	u.Address, _ = r.str("address", true)
	u.Age = r.optInt("age")
	u.IsActive = r.boolean("is_active", true)

	if err := r.check("user", u); err != nil {
		return nil, err
	}
	return u, nil
}
