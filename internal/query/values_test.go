package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsValues(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   url.Values
	}{
		{
			name:   "pagination only",
			params: Params{Page: 2, Limit: 20},
			want:   url.Values{"page": {"2"}, "limit": {"20"}},
		},
		{
			name:   "empty params",
			params: Params{},
			want:   url.Values{},
		},
		{
			name:   "scalar filter",
			params: Params{Filter: Filter{"statusId": 5}},
			want:   url.Values{"filter[statusId]": {"5"}},
		},
		{
			name:   "sentinel filter",
			params: Params{Filter: Filter{"statusId": StatusNotDeleted}},
			want:   url.Values{"filter[statusId]": {"__NOTDELETED__"}},
		},
		{
			name:   "list filter",
			params: Params{Filter: Filter{"setStatusId": []int{1, 2}}},
			want:   url.Values{"filter[setStatusId][]": {"1", "2"}},
		},
		{
			name:   "range filter",
			params: Params{Filter: Filter{"id": Range{From: 100, To: 200}}},
			want:   url.Values{"filter[id][from]": {"100"}, "filter[id][to]": {"200"}},
		},
		{
			name:   "half open range",
			params: Params{Filter: Filter{"updateAt": Range{From: "2023-01-01 00:00:00"}}},
			want:   url.Values{"filter[updateAt][from]": {"2023-01-01 00:00:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Values())
		})
	}
}

func TestParamsValuesEncode(t *testing.T) {
	p := Params{Limit: 20, Page: 2}
	assert.Equal(t, "limit=20&page=2", p.Values().Encode())
}
