package order

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/order"
	"salesdrive/internal/query"
	"salesdrive/internal/transport/transporttest"
)

const listBody = `{
	"status":"success",
	"data":[{"id":1,"statusId":5,"orderTime":"2023-01-02 10:00:00","customField":"v"}],
	"pagination":{"currentPage":2,"pageCount":3,"perPage":20},
	"totals":{"count":41,"paymentAmount":"1500.50","commission":0,"expenses":0}
}`

func newService(rec *transporttest.Recorder) *Service {
	return NewService(rec, zerolog.Nop())
}

func TestFindAwaitIssuesSingleGet(t *testing.T) {
	rec := transporttest.Reply(listBody)
	svc := newService(rec)

	resp, err := svc.Find(nil).Limit(20).Page(2).Execute(context.Background())
	require.NoError(t, err)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/api/order/list/", calls[0].Path)
	assert.Equal(t, url.Values{"limit": {"20"}, "page": {"2"}}, calls[0].Query)
	for k := range calls[0].Query {
		assert.NotContains(t, k, "filter")
	}

	require.Len(t, resp.Data, 1)
	assert.Equal(t, 5, resp.Data[0].StatusID)
	assert.Equal(t, 3, resp.Pagination.PageCount)
	assert.EqualValues(t, 1500.5, resp.Totals.PaymentAmount)
	assert.Contains(t, resp.Data[0].Extra, "customField")
}

func TestFindFilters(t *testing.T) {
	tests := []struct {
		name  string
		build func(q *Query) *Query
		want  url.Values
	}{
		{
			name:  "status id",
			build: func(q *Query) *Query { return q.StatusID(5) },
			want:  url.Values{"filter[statusId]": {"5"}},
		},
		{
			name:  "not deleted sentinel",
			build: func(q *Query) *Query { return q.Status(query.StatusNotDeleted) },
			want:  url.Values{"filter[statusId]": {"__NOTDELETED__"}},
		},
		{
			name:  "updated at from calendar date",
			build: func(q *Query) *Query { return q.UpdatedAtFrom("2023-01-01") },
			want:  url.Values{"filter[updateAt][from]": {"2023-01-01 00:00:00"}},
		},
		{
			name:  "order time range",
			build: func(q *Query) *Query { return q.OrderTimeFrom("2023-01-01").OrderTimeTo("2023-01-31") },
			want: url.Values{
				"filter[orderTime][from]": {"2023-01-01 00:00:00"},
				"filter[orderTime][to]":   {"2023-01-31 23:59:59"},
			},
		},
		{
			name:  "id range",
			build: func(q *Query) *Query { return q.IDFrom(100).IDTo(200) },
			want:  url.Values{"filter[id][from]": {"100"}, "filter[id][to]": {"200"}},
		},
		{
			name:  "set status ids",
			build: func(q *Query) *Query { return q.SetStatusID(1, 2) },
			want:  url.Values{"filter[setStatusId][]": {"1", "2"}},
		},
		{
			name:  "set status time keeps full date time",
			build: func(q *Query) *Query { return q.SetStatusTimeTo("2023-02-01 12:00:00") },
			want:  url.Values{"filter[setStatusTime][to]": {"2023-02-01 12:00:00"}},
		},
		{
			name:  "plain value on a date field is sent as is",
			build: func(q *Query) *Query { return q.Where("updateAt", "2023-01-01") },
			want:  url.Values{"filter[updateAt]": {"2023-01-01"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := transporttest.Reply(listBody)
			_, err := tt.build(newService(rec).Find(nil)).Execute(context.Background())
			require.NoError(t, err)
			require.Len(t, rec.Calls(), 1)
			assert.Equal(t, tt.want, rec.Last().Query)
		})
	}
}

func TestFindEachExecuteIssuesRequest(t *testing.T) {
	rec := transporttest.Reply(listBody)
	q := newService(rec).Find(nil).StatusID(1)

	_, err := q.Execute(context.Background())
	require.NoError(t, err)
	_, err = q.Start(context.Background()).Wait()
	require.NoError(t, err)

	assert.Len(t, rec.Calls(), 2)
}

func TestFindLimitValidation(t *testing.T) {
	rec := transporttest.Reply(listBody)
	q := newService(rec).Find(nil).Limit(101)

	assert.ErrorIs(t, q.Err(), apierr.ErrInvalidArgument)
	_, err := q.Execute(context.Background())
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
	assert.Empty(t, rec.Calls())
}

func TestFindInitialParams(t *testing.T) {
	rec := transporttest.Reply(listBody)
	initial := &query.Params{Page: 3, Filter: query.Filter{"orderTime": query.Range{From: "2024-01-01"}}}

	_, err := newService(rec).Find(initial).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, url.Values{"page": {"3"}, "filter[orderTime][from]": {"2024-01-01 00:00:00"}}, rec.Last().Query)
	assert.Equal(t, query.Range{From: "2024-01-01"}, initial.Filter["orderTime"])
}

func TestFetchOrdersAuthSentinel(t *testing.T) {
	rec := transporttest.Reply(`{"status":"error","message":"api key is invalid"}`)

	_, err := newService(rec).FetchOrders(context.Background(), query.Params{})
	assert.ErrorIs(t, err, apierr.ErrAuthentication)
}

func TestFetchOrdersTransportError(t *testing.T) {
	rec := transporttest.Fail(apierr.Wrap(apierr.KindTransport, errors.New("dial tcp: refused")))

	_, err := newService(rec).FetchOrders(context.Background(), query.Params{})
	assert.ErrorIs(t, err, apierr.ErrTransport)
}

func TestFindByID(t *testing.T) {
	rec := transporttest.Reply(listBody)

	o, err := newService(rec).FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, o.ID)
	assert.Equal(t, url.Values{"filter[id]": {"1"}}, rec.Last().Query)
}

func TestFindByIDNotFound(t *testing.T) {
	rec := transporttest.Reply(`{"status":"success","data":[]}`)

	_, err := newService(rec).FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestCreate(t *testing.T) {
	rec := transporttest.Reply(`{"success":true,"data":{"orderId":77,"userId":1}}`)

	id, err := newService(rec).Create(context.Background(), order.CreateFields{FName: "Ivan", Phone: "380501234567"})
	require.NoError(t, err)
	assert.Equal(t, 77, id)
	assert.Equal(t, "/handler/", rec.Last().Path)
	assert.JSONEq(t, `{"fName":"Ivan","phone":"380501234567"}`, string(rec.Last().Body))
}

func TestCreateErrors(t *testing.T) {
	_, err := newService(transporttest.Reply(`{"error":"bad field"}`)).Create(context.Background(), order.CreateFields{})
	require.ErrorIs(t, err, apierr.ErrValidation)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad field", apiErr.Message)

	_, err = newService(transporttest.Reply(`{"success":true}`)).Create(context.Background(), order.CreateFields{})
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestUpdateBodies(t *testing.T) {
	rec := transporttest.Reply(`{"success":true}`)
	svc := newService(rec)

	require.NoError(t, svc.UpdateByID(context.Background(), 123, order.UpdateData{Comment: "x"}))
	assert.Equal(t, "/api/order/update/", rec.Last().Path)
	assert.JSONEq(t, `{"id":123,"data":{"comment":"x"}}`, string(rec.Last().Body))

	require.NoError(t, svc.UpdateByExternalID(context.Background(), "ext-1", order.UpdateData{StatusID: 2}))
	assert.JSONEq(t, `{"externalId":"ext-1","data":{"statusId":2}}`, string(rec.Last().Body))
}

func TestUpdateOutcomes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "message means not found", body: `{"success":false,"message":"Order not found"}`, want: apierr.ErrNotFound},
		{name: "auth sentinel", body: `{"message":"api key is invalid"}`, want: apierr.ErrAuthentication},
		{name: "explicit failure", body: `{"success":false}`, want: apierr.ErrAPI},
		{name: "missing success", body: `{}`, want: apierr.ErrAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newService(transporttest.Reply(tt.body)).UpdateByID(context.Background(), 1, order.UpdateData{Comment: "x"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateValidation(t *testing.T) {
	rec := transporttest.Reply(`{"success":true}`)
	svc := newService(rec)

	err := svc.UpdateByID(context.Background(), 1, order.UpdateData{
		NovaPoshta: &order.TTN{TTN: "1"},
		Meest:      &order.TTN{TTN: "2"},
	})
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)

	err = svc.UpdateByExternalID(context.Background(), "", order.UpdateData{})
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)

	assert.Empty(t, rec.Calls())
}

func TestAddNote(t *testing.T) {
	rec := transporttest.Reply(`{"success":true,"data":{"noteId":9}}`)

	resp, err := newService(rec).AddNote(context.Background(), 5, "call back")
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Data.NoteID)
	assert.Equal(t, "/api/order/note/", rec.Last().Path)
	assert.JSONEq(t, `{"orderId":5,"note":"call back"}`, string(rec.Last().Body))

	_, err = newService(transporttest.Reply(`{"success":false,"message":"order is locked"}`)).AddNote(context.Background(), 5, "x")
	require.ErrorIs(t, err, apierr.ErrAPI)
	assert.Contains(t, err.Error(), "order is locked")
}
