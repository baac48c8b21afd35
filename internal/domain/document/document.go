package document

import (
	"encoding/json"

	"salesdrive/internal/domain"
)

// Kind names a document list endpoint
type Kind string

const (
	KindInvoice        Kind = "invoice"
	KindSalesInvoice   Kind = "sales-invoice"
	KindCashOrder      Kind = "cash-order"
	KindArrivalProduct Kind = "arrival-product"
	KindAct            Kind = "act"
	KindContract       Kind = "contract"
	KindCheck          Kind = "check"
)

// Kinds lists every document kind the API exposes
var Kinds = []Kind{KindInvoice, KindSalesInvoice, KindCashOrder, KindArrivalProduct, KindAct, KindContract, KindCheck}

// Endpoint returns the list path for k
func (k Kind) Endpoint() string {
	return "/api/" + string(k) + "/list/"
}

// Item is one row of a document
type Item struct {
	Description     string          `json:"description"`
	Price           domain.Flex     `json:"price"`
	Count           domain.Flex     `json:"count"`
	PercentDiscount domain.Flex     `json:"percentDiscount"`
	Discount        domain.Flex     `json:"discount"`
	Product         json.RawMessage `json:"product,omitempty"`
	Unit            json.RawMessage `json:"unit,omitempty"`
}

// Document is the common shape of invoices, acts, contracts, checks and cash orders.
// Kind-specific members are kept in Extra.
type Document struct {
	ID             int             `json:"id"`
	Number         string          `json:"number"`
	Date           domain.DateTime `json:"date"`
	PayerTypeID    int             `json:"payerTypeId"`
	MaxPaymentDate domain.DateTime `json:"maxPaymentDate"`
	UserID         int             `json:"userId"`
	TotalSum       domain.Flex     `json:"totalSum"`
	CreatedAt      domain.DateTime `json:"createdAt"`
	UpdatedAt      domain.DateTime `json:"updatedAt"`
	NDS            domain.Flex     `json:"nds"`
	Comment        string          `json:"comment"`
	ResponsibleID  int             `json:"responsibleId"`
	Token          string          `json:"token"`
	Type           string          `json:"type,omitempty"`
	Payed          domain.Flex     `json:"payed"`
	Items          []Item          `json:"documentItems,omitempty"`
	Organization   json.RawMessage `json:"organization,omitempty"`
	Contact        json.RawMessage `json:"contact,omitempty"`
	Counterparty   json.RawMessage `json:"counterparty,omitempty"`
	Contract       json.RawMessage `json:"contract,omitempty"`
	Order          json.RawMessage `json:"order,omitempty"`
	Extra          domain.Extra    `json:"-"`
}

func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	var p plain
	extra, err := domain.DecodeRecord(b, &p)
	if err != nil {
		return err
	}
	*d = Document(p)
	d.Extra = extra
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return domain.EncodeRecord(plain(d), d.Extra)
}

// ListResponse is the body of every document list endpoint
type ListResponse struct {
	Status     string            `json:"status"`
	Data       []Document        `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Totals     domain.Totals     `json:"totals"`
	Message    string            `json:"message,omitempty"`
}
