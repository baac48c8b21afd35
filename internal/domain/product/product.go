package product

import (
	"salesdrive/internal/domain"
)

// Action is the operation the product and category handlers perform
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Product is a catalogue entry sent to the product handler. ID is the
// shop-side product identifier.
type Product struct {
	ID            string       `json:"id"`
	Name          string       `json:"name,omitempty"`
	NameTranslate string       `json:"nameTranslate,omitempty"`
	SKU           string       `json:"sku,omitempty"`
	Barcode       string       `json:"barcode,omitempty"`
	Manufacturer  string       `json:"manufacturer,omitempty"`
	Description   string       `json:"description,omitempty"`
	CostPerItem   domain.Flex  `json:"costPerItem,omitempty"`
	Currency      string       `json:"currency,omitempty"`
	Category      *CategoryRef `json:"category,omitempty"`
	Stock         domain.Flex  `json:"stockBalance,omitempty"`
	URL           string       `json:"url,omitempty"`
	Images        []Image      `json:"images,omitempty"`
	Extra         domain.Extra `json:"-"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return domain.EncodeRecord(plain(p), p.Extra)
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var v plain
	extra, err := domain.DecodeRecord(b, &v)
	if err != nil {
		return err
	}
	*p = Product(v)
	p.Extra = extra
	return nil
}

type CategoryRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Image struct {
	FullSize  string `json:"fullsize,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Category is a catalogue category
type Category struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ParentID int    `json:"parentId,omitempty"`
}

// ProductRequest is the body of the product handler
type ProductRequest struct {
	Action           Action    `json:"action"`
	Product          []Product `json:"product"`
	DontUpdateFields []string  `json:"dontUpdateFields,omitempty"`
}

// CategoryRequest is the body of the category handler
type CategoryRequest struct {
	Action   Action     `json:"action"`
	Category []Category `json:"category"`
}

// Response is returned by both handlers
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether the handler rejected the request
func (r Response) Failed() bool {
	return r.Status == "error"
}
