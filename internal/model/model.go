// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// ItemType classifies how a listing changes hands.
type ItemType string

const (
	TypeSell    ItemType = "sell"
	TypeBorrow  ItemType = "borrow"
	TypeRecycle ItemType = "recycle"
)

// Valid reports whether the type is one of the known listing types.
func (t ItemType) Valid() bool {
	return t == TypeSell || t == TypeBorrow || t == TypeRecycle
}

// SellerInfo is the public descriptor shown on a listing card.
type SellerInfo struct {
	Name       string `json:"name,omitempty"`
	Year       string `json:"year"`
	Department string `json:"department"`
}

// Item is a catalog listing offered for sale, borrow, or free recycling.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Price      *float64   `json:"price,omitempty"` // nil for borrow/recycle listings
	Type       ItemType   `json:"type"`
	Category   string     `json:"category"`
	Image      string     `json:"image"`
	SellerID   string     `json:"sellerId"`
	Seller     SellerInfo `json:"seller"`
	IsUrgent   bool       `json:"isUrgent,omitempty"`
	Negotiable bool       `json:"negotiable,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ItemFilter narrows catalog listings. Zero values mean "no constraint".
type ItemFilter struct {
	Category   string
	Type       ItemType
	MinPrice   *float64
	MaxPrice   *float64
	UrgentOnly bool
	Query      string // case-insensitive title substring
}

// CollectionKind names a per-user item collection.
type CollectionKind string

const (
	KindCart     CollectionKind = "cart"
	KindWishlist CollectionKind = "wishlist"
)

// Valid reports whether the kind is a known collection.
func (k CollectionKind) Valid() bool {
	return k == KindCart || k == KindWishlist
}

// RequestStatus is the lifecycle state of a contact request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// ContactRequest is a buyer's ask for a seller's contact details.
// The ledger owns these records; buyer and seller see role-filtered
// projections. SellerEmail is withheld until the request is accepted.
type ContactRequest struct {
	ID          string        `json:"id"` // ULID, time-ordered and collision-free
	ItemID      uuid.UUID     `json:"itemId"`
	ItemTitle   string        `json:"itemTitle"`
	ItemPrice   *float64      `json:"itemPrice,omitempty"`
	ItemImage   string        `json:"itemImage,omitempty"`
	SellerID    string        `json:"sellerId"`
	SellerName  string        `json:"sellerName"`
	SellerEmail string        `json:"sellerEmail,omitempty"`
	BuyerID     string        `json:"buyerId"`
	BuyerName   string        `json:"buyerName"`
	BuyerEmail  string        `json:"buyerEmail"`
	BuyerPhone  string        `json:"buyerPhone"`
	Message     string        `json:"message"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewContactRequest carries caller input for a single ledger append.
type NewContactRequest struct {
	ItemID     uuid.UUID
	ItemTitle  string
	ItemPrice  *float64
	ItemImage  string
	SellerID   string
	SellerName string
	BuyerID    string
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
	Message    string // empty falls back to the default template
}

// BuyerContact is the contact form a buyer fills in at checkout.
type BuyerContact struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// User is an account stored by the identity module.
type User struct {
	ID        uuid.UUID
	Email     string // campus address: 12 digits + institutional domain
	PwdHash   []byte // Argon2id(password, Salt)
	Salt      []byte // per-user salt
	CreatedAt time.Time
}

// Profile is the companion record created at sign-up, keyed by user id.
type Profile struct {
	UserID     uuid.UUID `json:"userId"`
	College    string    `json:"college"`
	Name       string    `json:"name,omitempty"`
	Year       string    `json:"year,omitempty"`
	Department string    `json:"department,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
