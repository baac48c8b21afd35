// Package order models SalesDrive orders and the bodies of the order endpoints.
package order

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"salesdrive/internal/domain"
)

// Product is a line item of an order
type Product struct {
	ProductID         int         `json:"productId"`
	Text              string      `json:"text"`
	DocumentName      string      `json:"documentName,omitempty"`
	SKU               string      `json:"sku,omitempty"`
	Barcode           string      `json:"barcode,omitempty"`
	Manufacturer      string      `json:"manufacturer,omitempty"`
	Description       string      `json:"description,omitempty"`
	Amount            domain.Flex `json:"amount"`
	Price             domain.Flex `json:"price"`
	Discount          domain.Flex `json:"discount"`
	PercentDiscount   domain.Flex `json:"percentDiscount"`
	Commission        domain.Flex `json:"commission"`
	PercentCommission domain.Flex `json:"percentCommission"`
	CostPrice         domain.Flex `json:"costPrice"`
	PreSale           domain.Flex `json:"preSale"`
	StockID           int         `json:"stockId,omitempty"`
	UKTZED            string      `json:"uktzed,omitempty"`
}

// DeliveryData is one shipment attached to an order
type DeliveryData struct {
	SenderID             int          `json:"senderId"`
	Provider             string       `json:"provider"`
	Type                 string       `json:"type"`
	ParentTrackingNumber *string      `json:"parentTrackingNumber"`
	TrackingNumber       string       `json:"trackingNumber"`
	StatusCode           int          `json:"statusCode"`
	DeliveryDateAndTime  string       `json:"deliveryDateAndTime"`
	CityName             string       `json:"cityName"`
	BranchNumber         int          `json:"branchNumber"`
	Address              string       `json:"address"`
	Payer                string       `json:"payer"`
	HasPostpay           int          `json:"hasPostpay"`
	PostpaySum           domain.Flex  `json:"postpaySum"`
	Extra                domain.Extra `json:"-"`
}

func (d *DeliveryData) UnmarshalJSON(b []byte) error {
	type plain DeliveryData
	var p plain
	extra, err := domain.DecodeRecord(b, &p)
	if err != nil {
		return err
	}
	*d = DeliveryData(p)
	d.Extra = extra
	return nil
}

func (d DeliveryData) MarshalJSON() ([]byte, error) {
	type plain DeliveryData
	return domain.EncodeRecord(plain(d), d.Extra)
}

// Contact is a customer linked to an order
type Contact struct {
	ID          int             `json:"id"`
	FormID      int             `json:"formId"`
	LName       string          `json:"lName"`
	FName       string          `json:"fName"`
	MName       string          `json:"mName"`
	Phone       []string        `json:"phone"`
	Email       []string        `json:"email"`
	Company     string          `json:"company"`
	Comment     string          `json:"comment"`
	UserID      int             `json:"userId"`
	Telegram    string          `json:"telegram"`
	DateOfBirth string          `json:"dateOfBirth"`
	CreateTime  domain.DateTime `json:"createTime"`
	LeadsCount  int             `json:"leadsCount"`
}

// Order is a SalesDrive order. Custom form fields land in Extra.
type Order struct {
	ID               int             `json:"id"`
	FormID           int             `json:"formId"`
	Version          int             `json:"version"`
	OrganizationID   int             `json:"organizationId"`
	TypeID           int             `json:"typeId"`
	StatusID         int             `json:"statusId"`
	UserID           int             `json:"userId"`
	ExternalID       string          `json:"externalId"`
	Token            string          `json:"token"`
	OrderTime        domain.DateTime `json:"orderTime"`
	UpdateAt         domain.DateTime `json:"updateAt"`
	PaymentDate      domain.DateTime `json:"paymentDate"`
	RejectionReason  *string         `json:"rejectionReason"`
	Comment          string          `json:"comment"`
	PaymentAmount    domain.Flex     `json:"paymentAmount"`
	CostPriceAmount  domain.Flex     `json:"costPriceAmount"`
	ShippingCosts    domain.Flex     `json:"shipping_costs"`
	CommissionAmount domain.Flex     `json:"commissionAmount"`
	ExpensesAmount   domain.Flex     `json:"expensesAmount"`
	ProfitAmount     domain.Flex     `json:"profitAmount"`
	PayedAmount      domain.Flex     `json:"payedAmount"`
	RestPay          domain.Flex     `json:"restPay"`
	DiscountAmount   domain.Flex     `json:"discountAmount"`
	ShippingMethod   json.RawMessage `json:"shipping_method,omitempty"`
	PaymentMethod    json.RawMessage `json:"payment_method,omitempty"`
	ShippingAddress  string          `json:"shipping_address"`
	Delivery         []DeliveryData  `json:"ord_delivery_data"`
	Products         []Product       `json:"products"`
	PrimaryContact   *Contact        `json:"primaryContact"`
	Contacts         []Contact       `json:"contacts"`
	UTMSource        string          `json:"utmSource"`
	UTMMedium        string          `json:"utmMedium"`
	UTMCampaign      string          `json:"utmCampaign"`
	Extra            domain.Extra    `json:"-"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	var p plain
	extra, err := domain.DecodeRecord(b, &p)
	if err != nil {
		return err
	}
	*o = Order(p)
	o.Extra = extra
	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return domain.EncodeRecord(plain(o), o.Extra)
}

// Totals summarizes an order list
type Totals struct {
	Count         int         `json:"count"`
	PaymentAmount domain.Flex `json:"paymentAmount"`
	Commission    domain.Flex `json:"commission"`
	Expenses      domain.Flex `json:"expenses"`
}

// ListResponse is the body of the order list endpoint
type ListResponse struct {
	Status     string            `json:"status"`
	Data       []Order           `json:"data"`
	Meta       *ListMeta         `json:"meta,omitempty"`
	Pagination domain.Pagination `json:"pagination"`
	Totals     Totals            `json:"totals"`
	Message    string            `json:"message,omitempty"`
}

type ListMeta struct {
	Fields map[string]json.RawMessage `json:"fields"`
}

// NovaPoshta, Ukrposhta, Meest and RozetkaDelivery carry carrier details on
// create and the tracking number on update.
type NovaPoshta struct {
	ServiceType     string `json:"ServiceType,omitempty"`
	Payer           string `json:"payer,omitempty"`
	Area            string `json:"area,omitempty"`
	Region          string `json:"region,omitempty"`
	City            string `json:"city,omitempty"`
	CityNameFormat  string `json:"cityNameFormat,omitempty"`
	WarehouseNumber string `json:"WarehouseNumber,omitempty"`
	Street          string `json:"Street,omitempty"`
	BuildingNumber  string `json:"BuildingNumber,omitempty"`
	Flat            string `json:"Flat,omitempty"`
	TTN             string `json:"ttn,omitempty"`
}

type Ukrposhta struct {
	ServiceType     string `json:"ServiceType,omitempty"`
	Payer           string `json:"payer,omitempty"`
	Type            string `json:"type,omitempty"`
	City            string `json:"city,omitempty"`
	WarehouseNumber string `json:"WarehouseNumber,omitempty"`
	Street          string `json:"Street,omitempty"`
	BuildingNumber  string `json:"BuildingNumber,omitempty"`
	Flat            string `json:"Flat,omitempty"`
	TTN             string `json:"ttn,omitempty"`
}

type Meest struct {
	ServiceType     string `json:"ServiceType,omitempty"`
	Payer           string `json:"payer,omitempty"`
	Area            string `json:"area,omitempty"`
	City            string `json:"city,omitempty"`
	WarehouseNumber string `json:"WarehouseNumber,omitempty"`
	TTN             string `json:"ttn,omitempty"`
}

type RozetkaDelivery struct {
	WarehouseNumber string `json:"WarehouseNumber,omitempty"`
	Payer           string `json:"payer,omitempty"`
	TTN             string `json:"ttn,omitempty"`
}

// CreateProduct is a line item in a create request
type CreateProduct struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	CostPerItem domain.Flex `json:"costPerItem,omitempty"`
	Amount      domain.Flex `json:"amount,omitempty"`
	Description string      `json:"description,omitempty"`
	Discount    string      `json:"discount,omitempty"`
	SKU         string      `json:"sku,omitempty"`
}

// CreateFields is the body of an order create request. Every field is optional;
// form-specific fields go in Extra.
type CreateFields struct {
	GetResultData   int              `json:"getResultData,omitempty"`
	LName           string           `json:"lName,omitempty"`
	FName           string           `json:"fName,omitempty"`
	MName           string           `json:"mName,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Company         string           `json:"company,omitempty"`
	DateOfBirth     string           `json:"dateOfBirth,omitempty"`
	Products        []CreateProduct  `json:"products,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	ShippingMethod  string           `json:"shipping_method,omitempty"`
	ShippingAddress string           `json:"shipping_address,omitempty"`
	Comment         string           `json:"comment,omitempty"`
	ExternalID      string           `json:"externalId,omitempty"`
	Sajt            string           `json:"sajt,omitempty"`
	NovaPoshta      *NovaPoshta      `json:"novaposhta,omitempty"`
	Ukrposhta       *Ukrposhta       `json:"ukrposhta,omitempty"`
	Meest           *Meest           `json:"meest,omitempty"`
	RozetkaDelivery *RozetkaDelivery `json:"rozetka_delivery,omitempty"`
	ConComment      string           `json:"con_comment,omitempty"`
	ConTelegram     string           `json:"con_telegram,omitempty"`
	StockID         int              `json:"stockId,omitempty"`
	ShippingCosts   domain.Flex      `json:"shipping_costs,omitempty"`
	OrganizationID  int              `json:"organizationId,omitempty"`
	Manager         int              `json:"salesdrive_manager,omitempty"`
	UTMSource       string           `json:"utmSource,omitempty"`
	UTMMedium       string           `json:"utmMedium,omitempty"`
	UTMCampaign     string           `json:"utmCampaign,omitempty"`
	UTMContent      string           `json:"utmContent,omitempty"`
	UTMTerm         string           `json:"utmTerm,omitempty"`
	UTMPage         string           `json:"utmPage,omitempty"`
	Extra           domain.Extra     `json:"-"`
}

func (c CreateFields) MarshalJSON() ([]byte, error) {
	type plain CreateFields
	return domain.EncodeRecord(plain(c), c.Extra)
}

// CreateResponse is the body returned by the create handler
type CreateResponse struct {
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success,omitempty"`
	Data    *struct {
		OrderID int `json:"orderId"`
		UserID  int `json:"userId"`
	} `json:"data,omitempty"`
}

// TTN sets the tracking number of one carrier on update
type TTN struct {
	TTN string `json:"ttn"`
}

// UpdateProduct is a line item in an update request
type UpdateProduct struct {
	ProductID   int         `json:"productId,omitempty"`
	Text        string      `json:"text,omitempty"`
	CostPrice   domain.Flex `json:"costPrice,omitempty"`
	Amount      domain.Flex `json:"amount,omitempty"`
	Description string      `json:"description,omitempty"`
	Discount    domain.Flex `json:"discount,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	Commission  domain.Flex `json:"commission,omitempty"`
	StockID     int         `json:"stockId,omitempty"`
}

// ProductsMode controls whether update products replace or extend the order's list
type ProductsMode string

const (
	ProductsReplace ProductsMode = "replace"
	ProductsAppend  ProductsMode = "append"
)

// UpdateData is the "data" member of an update request. At most one carrier
// tracking number may be set.
type UpdateData struct {
	StatusID          int             `json:"statusId,omitempty"`
	PaymentDate       string          `json:"paymentDate,omitempty"`
	RejectionReasonID int             `json:"rejectionReasonId,omitempty"`
	Manager           int             `json:"salesdrive_manager,omitempty"`
	Comment           string          `json:"comment,omitempty"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	ShippingMethod    string          `json:"shipping_method,omitempty"`
	ShippingAddress   string          `json:"shipping_address,omitempty"`
	Sajt              string          `json:"sajt,omitempty"`
	LName             string          `json:"lName,omitempty"`
	FName             string          `json:"fName,omitempty"`
	MName             string          `json:"mName,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	Company           string          `json:"company,omitempty"`
	DateOfBirth       string          `json:"dateOfBirth,omitempty"`
	NovaPoshta        *TTN            `json:"novaposhta,omitempty"`
	Ukrposhta         *TTN            `json:"ukrposhta,omitempty"`
	Meest             *TTN            `json:"meest,omitempty"`
	RozetkaDelivery   *TTN            `json:"rozetka_delivery,omitempty"`
	Products          []UpdateProduct `json:"products,omitempty"`
	ProductsMode      ProductsMode    `json:"productsMode,omitempty"`
	Extra             domain.Extra    `json:"-"`
}

func (u UpdateData) MarshalJSON() ([]byte, error) {
	type plain UpdateData
	return domain.EncodeRecord(plain(u), u.Extra)
}

// Validate checks the carrier and products mode rules before sending
func (u UpdateData) Validate() error {
	carriers := 0
	for _, set := range []bool{u.NovaPoshta != nil, u.Ukrposhta != nil, u.Meest != nil, u.RozetkaDelivery != nil} {
		if set {
			carriers++
		}
	}
	return validation.Errors{
		"ttn": validation.Validate(carriers, validation.Max(1).Error("only one carrier tracking number can be updated at a time")),
		"productsMode": validation.Validate(string(u.ProductsMode),
			validation.In(string(ProductsReplace), string(ProductsAppend))),
	}.Filter()
}

// UpdateResponse is the body returned by the update endpoint
type UpdateResponse struct {
	Success *bool  `json:"success,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// NoteResponse is the body returned by the note endpoint
type NoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		NoteID int `json:"noteId"`
	} `json:"data,omitempty"`
}
