package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role     string `json:"role" firestore:"role"` // "user", "vendor", "admin"
	Status   string `json:"status" firestore:"status"`

	StoreName string `json:"store_name,omitempty" firestore:"storeName,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	VendorRating      float64 `json:"vendor_rating,omitempty" firestore:"vendorRating,omitempty"`
	VendorReviewCount int     `json:"vendor_review_count,omitempty" firestore:"vendorReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
