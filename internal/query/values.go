package query

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"time"

	"salesdrive/internal/dates"
)

// Values encodes p the way the API reads nested filters:
//
//	page=2&limit=20
//	filter[statusId]=5
//	filter[setStatusId][]=1&filter[setStatusId][]=2
//	filter[updateAt][from]=2023-01-01 00:00:00
//
// Unset pagination and empty filters produce no keys.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}

	keys := make([]string, 0, len(p.Filter))
	for k := range p.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		encodeValue(v, "filter["+k+"]", p.Filter[k])
	}
	return v
}

func encodeValue(v url.Values, key string, val any) {
	switch t := val.(type) {
	case nil:
		return
	case Range:
		encodeValue(v, key+"[from]", t.From)
		encodeValue(v, key+"[to]", t.To)
		return
	case *Range:
		if t != nil {
			encodeValue(v, key, *t)
		}
		return
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			encodeValue(v, key+"["+k+"]", t[k])
		}
		return
	case string:
		v.Add(key, t)
		return
	case time.Time:
		v.Add(key, t.In(time.Local).Format(dates.Layout))
		return
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			v.Add(key+"[]", scalar(rv.Index(i).Interface()))
		}
		return
	}
	v.Add(key, scalar(val))
}

func scalar(val any) string {
	switch t := val.(type) {
	case string:
		return t
	case time.Time:
		return t.In(time.Local).Format(dates.Layout)
	case bool:
		if t {
			return "1"
		}
		return "0"
	}
	return fmt.Sprint(val)
}
