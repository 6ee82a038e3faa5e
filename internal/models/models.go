package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"not null"                 json:"username"`
	Email    string `gorm:"not null;index"           json:"email"`
	Password string `gorm:"not null"                 json:"-"`
	Role     string `gorm:"not null"                 json:"role"`
}

type Product struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"not null"                 json:"name"`
	Description        string    `gorm:"not null"                 json:"description"`
	Price              string    `gorm:"not null"                 json:"price"`
	OriginalPrice      *string   `json:"originalPrice"`
	DiscountPercentage int       `gorm:"default:0"                json:"discountPercentage"`
	Image              string    `gorm:"not null"                 json:"image"`
	Category           string    `gorm:"not null;index"           json:"category"`
	InStock            bool      `gorm:"not null"                 json:"inStock"`
	StockQuantity      int       `gorm:"default:0"                json:"stockQuantity"`
	Rating             string    `gorm:"default:0.0"              json:"rating"`
	ReviewCount        int       `gorm:"default:0"                json:"reviewCount"`
	Brand              *string   `json:"brand"`
	Features           *string   `json:"features"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// InsertUser is the creation payload for a user. Role defaults to "user"
// when empty.
type InsertUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// InsertProduct is the creation payload for a product. Optional fields
// left nil get their schema defaults at creation.
type InsertProduct struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              string  `json:"price"`
	OriginalPrice      *string `json:"originalPrice"`
	DiscountPercentage *int    `json:"discountPercentage"`
	Image              string  `json:"image"`
	Category           string  `json:"category"`
	InStock            *bool   `json:"inStock"`
	StockQuantity      *int    `json:"stockQuantity"`
	Rating             *string `json:"rating"`
	ReviewCount        *int    `json:"reviewCount"`
	Brand              *string `json:"brand"`
	Features           *string `json:"features"`
}

// ProductPatch updates only the fields that are non-nil. A nil field
// means "leave unchanged", never "reset".
type ProductPatch struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Price              *string `json:"price"`
	OriginalPrice      *string `json:"originalPrice"`
	DiscountPercentage *int    `json:"discountPercentage"`
	Image              *string `json:"image"`
	Category           *string `json:"category"`
	InStock            *bool   `json:"inStock"`
	StockQuantity      *int    `json:"stockQuantity"`
	Rating             *string `json:"rating"`
	ReviewCount        *int    `json:"reviewCount"`
	Brand              *string `json:"brand"`
	Features           *string `json:"features"`
}

// PublicUser is the wire shape of a user, without the password.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
