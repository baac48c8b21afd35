// Package query accumulates list-endpoint parameters and turns them into the
// bracketed query string SalesDrive expects.
package query

import (
	"reflect"
)

// Status filter sentinels accepted where a status id is expected
const (
	StatusNotDeleted = "__NOTDELETED__"
	StatusAll        = "__ALL__"
)

// Filter holds per-field filter values. A value is a scalar, a slice, or a Range.
type Filter map[string]any

// Range is a from/to pair. Either side may be nil.
type Range struct {
	From any `json:"from,omitempty"`
	To   any `json:"to,omitempty"`
}

// Params is the full parameter set of one list request
type Params struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Filter Filter `json:"filter,omitempty"`
}

// Clone returns a deep copy. Ranges and slices inside the filter are copied,
// so mutating the clone never reaches p.
func (p Params) Clone() Params {
	out := Params{Page: p.Page, Limit: p.Limit}
	if p.Filter != nil {
		out.Filter = make(Filter, len(p.Filter))
		for k, v := range p.Filter {
			out.Filter[k] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Range:
		return Range{From: cloneValue(t.From), To: cloneValue(t.To)}
	case *Range:
		if t == nil {
			return nil
		}
		return Range{From: cloneValue(t.From), To: cloneValue(t.To)}
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, mv := range t {
			m[k] = cloneValue(mv)
		}
		return m
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() {
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		return cp.Interface()
	}
	return v
}

// rangeOf reads a filter entry as a Range. A missing or non-range entry
// yields the zero Range.
func rangeOf(v any) Range {
	r, _ := asRange(v)
	return r
}

// asRange reports whether v is one of the range shapes: Range, *Range or a
// from/to map.
func asRange(v any) (Range, bool) {
	switch t := v.(type) {
	case Range:
		return t, true
	case *Range:
		if t != nil {
			return *t, true
		}
	case map[string]any:
		return Range{From: t["from"], To: t["to"]}, true
	}
	return Range{}, false
}
