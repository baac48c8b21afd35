package salesdrive

import (
	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/document"
	"salesdrive/internal/domain/manager"
	"salesdrive/internal/domain/order"
	"salesdrive/internal/domain/payment"
	"salesdrive/internal/domain/product"
	"salesdrive/internal/domain/reference"
	"salesdrive/internal/query"
)

type (
	Params     = query.Params
	Filter     = query.Filter
	Range      = query.Range
	LedgerType = query.LedgerType

	Order        = order.Order
	CreateFields = order.CreateFields
	UpdateData   = order.UpdateData
	TTN          = order.TTN

	Document     = document.Document
	DocumentKind = document.Kind

	Payment             = payment.Payment
	CreatePaymentParams = payment.CreateParams

	Product  = product.Product
	Category = product.Category

	ManagerMatch = manager.Match

	Currencies     = reference.Currencies
	CurrencyUpdate = reference.CurrencyUpdate
	Method         = reference.Method
	Status         = reference.Status

	Error     = apierr.Error
	ErrorKind = apierr.Kind
)

const (
	StatusNotDeleted = query.StatusNotDeleted
	StatusAll        = query.StatusAll

	LedgerAll       = query.LedgerAll
	LedgerIncoming  = query.LedgerIncoming
	LedgerOutcoming = query.LedgerOutcoming
)

var (
	ErrTransport       = apierr.ErrTransport
	ErrAuthentication  = apierr.ErrAuthentication
	ErrValidation      = apierr.ErrValidation
	ErrNotFound        = apierr.ErrNotFound
	ErrInvalidArgument = apierr.ErrInvalidArgument
	ErrAPI             = apierr.ErrAPI
)
