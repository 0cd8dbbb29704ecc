package entity

import (
	"time"
)

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Product struct {
	ID          string         `json:"id" firestore:"id"`
	VendorID    string         `json:"vendor_id" firestore:"vendorId"`
	CategoryID  string         `json:"category_id" firestore:"categoryId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Price       float64        `json:"price" firestore:"price"`
	Stock       int            `json:"stock" firestore:"stock"`
	Status      string         `json:"status" firestore:"status"` // "active", "inactive", "sold_out"
	Images      []ProductImage `json:"images" firestore:"images"`
	SoldCount   int            `json:"sold_count" firestore:"soldCount"`
	Views       int            `json:"views" firestore:"views"`

	Rating      float64 `json:"rating,omitempty" firestore:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty" firestore:"reviewCount,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	// deletedAt must be stored as an explicit null on live products: the
	// listing query filters on deletedAt == nil, and Firestore null equality
	// does not match documents where the field is missing.
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}

// Summary is the shape embedded in conversation and order payloads.
type ProductSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

func (p *Product) Summary() *ProductSummary {
	s := &ProductSummary{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
	}
	if len(p.Images) > 0 {
		s.ImageURL = p.Images[0].URL
	}
	return s
}
