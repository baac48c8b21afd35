package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"salesdrive/internal/dates"
)

// DateTime is a server timestamp. Raw keeps the text as sent so it round-trips
// even when parsing fails.
type DateTime struct {
	time.Time
	Raw string
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = DateTime{Raw: s}
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return nil
	}
	if t, err := dateparse.ParseIn(s, time.Local); err == nil {
		d.Time = t
	}
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	switch {
	case d.Raw != "":
		return json.Marshal(d.Raw)
	case d.Time.IsZero():
		return []byte("null"), nil
	default:
		return json.Marshal(d.Time.Format(dates.Layout))
	}
}

// Valid reports whether the server value parsed into a time
func (d DateTime) Valid() bool {
	return !d.Time.IsZero()
}

// Flex is a number the server sends either as a JSON number or as a string.
type Flex float64

func (f *Flex) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = Flex(v)
	return nil
}

// Pagination is the paging block of every list response
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	PerPage     int `json:"perPage"`
}

// HasNext reports whether a later page exists
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.PageCount
}

// Totals is the summary block of document and payment lists
type Totals struct {
	Count int  `json:"count"`
	Sum   Flex `json:"sum"`
}
