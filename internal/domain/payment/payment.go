package payment

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"salesdrive/internal/domain"
)

// Type is the direction of a payment
type Type string

const (
	TypeIncoming  Type = "incoming"
	TypeOutcoming Type = "outcoming"
)

// Breakdown splits a payment across invoices or orders
type Breakdown struct {
	Sum     domain.Flex `json:"sum"`
	Invoice *struct {
		ID     int    `json:"id"`
		Number string `json:"number"`
		Date   string `json:"date"`
	} `json:"invoice,omitempty"`
	Order *struct {
		ID     int `json:"id"`
		FormID int `json:"formId"`
	} `json:"order,omitempty"`
}

// Payment represents a SalesDrive payment
type Payment struct {
	ID                  int             `json:"id"`
	Date                domain.DateTime `json:"date"`
	UserID              int             `json:"userId"`
	Comment             string          `json:"comment"`
	Sum                 domain.Flex     `json:"sum"`
	Purpose             *string         `json:"purpose"`
	NDS                 domain.Flex     `json:"nds"`
	PayerTypeID         int             `json:"payerTypeId"`
	CreatedAt           domain.DateTime `json:"createdAt"`
	UpdatedAt           domain.DateTime `json:"updatedAt"`
	ResponsibleID       int             `json:"responsibleId"`
	Type                Type            `json:"type"`
	IntegrationTypeID   *int            `json:"integrationTypeId"`
	OrganizationAccount json.RawMessage `json:"organizationAccount,omitempty"`
	Organization        json.RawMessage `json:"organization,omitempty"`
	Breakdown           []Breakdown     `json:"paymentBreakdown"`
	Contact             json.RawMessage `json:"contact,omitempty"`
	Counterparty        json.RawMessage `json:"counterparty,omitempty"`
	Extra               domain.Extra    `json:"-"`
}

func (p *Payment) UnmarshalJSON(b []byte) error {
	type plain Payment
	var v plain
	extra, err := domain.DecodeRecord(b, &v)
	if err != nil {
		return err
	}
	*p = Payment(v)
	p.Extra = extra
	return nil
}

func (p Payment) MarshalJSON() ([]byte, error) {
	type plain Payment
	return domain.EncodeRecord(plain(p), p.Extra)
}

// ListResponse is the body of the payment list endpoint
type ListResponse struct {
	Status     string            `json:"status"`
	Data       []Payment         `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Totals     domain.Totals     `json:"totals"`
	Message    string            `json:"message,omitempty"`
}

// AutoAttach selects how an incoming payment is matched to an order
type AutoAttach string

const (
	AttachByLastnameAndSum AutoAttach = "lastname_and_sum"
	AttachBySum            AutoAttach = "sum"
)

// CreateParams is the body of a payment create request
type CreateParams struct {
	OrganizationID            int         `json:"organizationId"`
	Datetime                  string      `json:"datetime,omitempty"`
	Timezone                  string      `json:"timezone,omitempty"`
	AccountNumber             string      `json:"accountNumber"`
	Sum                       domain.Flex `json:"sum"`
	Description               string      `json:"description,omitempty"`
	CounterpartyName          string      `json:"counterpartyName,omitempty"`
	CounterpartyCode          string      `json:"counterpartyCode,omitempty"`
	CounterpartyAccountNumber string      `json:"counterpartyAccountNumber,omitempty"`
	CounterpartyBankName      string      `json:"counterpartyBankName,omitempty"`
	UniqueID                  string      `json:"uniqueId,omitempty"`
	OrderID                   int         `json:"orderId"`
	OrderExternalID           int         `json:"orderExternalId,omitempty"`
	FormID                    int         `json:"formId"`
	AutoAttachToOrderType     AutoAttach  `json:"autoAttachToOrderType,omitempty"`
	PayerLastName             string      `json:"payerLastName,omitempty"`
}

// Validate checks the fields the API requires
func (c CreateParams) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OrganizationID, validation.Required),
		validation.Field(&c.AccountNumber, validation.Required),
		validation.Field(&c.Sum, validation.Required),
		validation.Field(&c.OrderID, validation.Required),
		validation.Field(&c.FormID, validation.Required),
		validation.Field(&c.AutoAttachToOrderType,
			validation.In(AttachByLastnameAndSum, AttachBySum)),
	)
}

// CreateResponse covers both the success and the error body of payment create
type CreateResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		PaymentID int `json:"paymentId"`
	} `json:"data,omitempty"`
}
