// Package reference models the account dictionaries: currencies, payment and
// delivery methods, order statuses.
package reference

import (
	"bytes"
	"encoding/json"

	"salesdrive/internal/domain"
)

type Currency struct {
	ID           int          `json:"id,omitempty"`
	Code         string       `json:"code"`
	Rate         domain.Flex  `json:"rate"`
	Abbreviation string       `json:"abbreviation,omitempty"`
	IsBase       bool         `json:"isBase,omitempty"`
	Extra        domain.Extra `json:"-"`
}

func (c *Currency) UnmarshalJSON(b []byte) error {
	type plain Currency
	var v plain
	extra, err := domain.DecodeRecord(b, &v)
	if err != nil {
		return err
	}
	*c = Currency(v)
	c.Extra = extra
	return nil
}

func (c Currency) MarshalJSON() ([]byte, error) {
	type plain Currency
	return domain.EncodeRecord(plain(c), c.Extra)
}

// Currencies is the canonical currency list. Accounts that answer with a bare
// array are read into Currencies with an empty BaseCurrency.
type Currencies struct {
	BaseCurrency string     `json:"baseCurrency,omitempty"`
	Currencies   []Currency `json:"currencies"`
}

func (c *Currencies) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []Currency
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*c = Currencies{Currencies: list}
		return nil
	}
	type plain Currencies
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Currencies(v)
	return nil
}

// CurrencyUpdate sets the rate of one currency
type CurrencyUpdate struct {
	ID   int         `json:"id,omitempty"`
	Code string      `json:"code,omitempty"`
	Rate domain.Flex `json:"rate"`
}

// Method is a payment or delivery method
type Method struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Parameter string `json:"parameter"`
}

// StatusType groups order statuses
type StatusType int

const (
	StatusTypeNew StatusType = iota + 1
	StatusTypeInProgress
	StatusTypeSuccess
	StatusTypeFailed
)

type Status struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Type StatusType `json:"type"`
}

// Envelope is the shared shape of the dictionary endpoints. Errors come back
// as {"status":"error","message":...} without a success flag.
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
}

// UnmarshalJSON also accepts a bare array, which some accounts return
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		*e = Envelope[T]{}
		return json.Unmarshal(b, &e.Data)
	}
	var v struct {
		Success *bool  `json:"success"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    []T    `json:"data"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = Envelope[T]{Success: v.Success, Status: v.Status, Message: v.Message, Data: v.Data}
	return nil
}

// Failed reports an error-shaped body
func (e Envelope[T]) Failed() bool {
	if e.Success != nil {
		return !*e.Success
	}
	return e.Status != "" && e.Status != "success"
}

// StatusResponse is returned by currency updates
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
