package query

import (
	"fmt"

	"salesdrive/internal/dates"
)

// DateFields names the filter entries that carry date ranges for one resource
type DateFields []string

var (
	OrderDateFields    = DateFields{"updateAt", "orderTime", "setStatusTime"}
	DocumentDateFields = DateFields{"updatedAt", "date", "createdAt"}
)

// ShapeDateFilters returns a copy of p with the configured date ranges
// normalized: From with the start of day, To with the end of day. p is not
// modified. Entries that are not ranges are copied unchanged. Applying it to
// its own output changes nothing.
func ShapeDateFilters(p Params, fields DateFields) (Params, error) {
	out := p.Clone()
	if out.Filter == nil {
		return out, nil
	}

	for _, f := range fields {
		v, ok := out.Filter[f]
		if !ok || v == nil {
			continue
		}
		r, ok := asRange(v)
		if !ok {
			continue
		}

		if present(r.From) {
			s, err := dates.Normalize(r.From, dates.StartOfDay)
			if err != nil {
				return Params{}, fmt.Errorf("filter %s from: %w", f, err)
			}
			r.From = s
		}
		if present(r.To) {
			s, err := dates.Normalize(r.To, dates.EndOfDay)
			if err != nil {
				return Params{}, fmt.Errorf("filter %s to: %w", f, err)
			}
			r.To = s
		}
		out.Filter[f] = r
	}
	return out, nil
}

// present mirrors the API's notion of an unset boundary: nil, "" and 0 are skipped.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}
