package document

import (
	"context"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/document"
	"salesdrive/internal/query"
	"salesdrive/internal/transport/transporttest"
)

const invoicesBody = `{
	"status":"success",
	"data":[{"id":10,"number":"INV-10","date":"2023-03-01","totalSum":"250.00","documentItems":[{"description":"Box","price":50,"count":5}],"bankDetails":{"iban":"UA00"}}],
	"pagination":{"currentPage":1,"pageCount":1,"perPage":50},
	"totals":{"count":1,"sum":250}
}`

func TestFactoriesHitKindEndpoints(t *testing.T) {
	rec := transporttest.Reply(`{"status":"success","data":[]}`)
	svc := NewService(rec, zerolog.Nop())
	ctx := context.Background()

	runs := []func() error{
		func() error { _, err := svc.Invoices(nil).Execute(ctx); return err },
		func() error { _, err := svc.SalesInvoices(nil).Execute(ctx); return err },
		func() error { _, err := svc.CashOrders(nil).Execute(ctx); return err },
		func() error { _, err := svc.ArrivalProducts(nil).Execute(ctx); return err },
		func() error { _, err := svc.Acts(nil).Execute(ctx); return err },
		func() error { _, err := svc.Contracts(nil).Execute(ctx); return err },
		func() error { _, err := svc.Checks(nil).Execute(ctx); return err },
	}
	for _, run := range runs {
		require.NoError(t, run())
	}

	calls := rec.Calls()
	require.Len(t, calls, len(document.Kinds))
	for i, kind := range document.Kinds {
		assert.Equal(t, kind.Endpoint(), calls[i].Path)
	}
}

func TestInvoicesDecode(t *testing.T) {
	svc := NewService(transporttest.Reply(invoicesBody), zerolog.Nop())

	resp, err := svc.Invoices(nil).Limit(50).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	doc := resp.Data[0]
	assert.Equal(t, "INV-10", doc.Number)
	assert.EqualValues(t, 250, doc.TotalSum)
	assert.Equal(t, 2023, doc.Date.Year())
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Box", doc.Items[0].Description)
	assert.Contains(t, doc.Extra, "bankDetails")
}

func TestDocumentDateFilters(t *testing.T) {
	rec := transporttest.Reply(`{"status":"success","data":[]}`)
	svc := NewService(rec, zerolog.Nop())

	_, err := svc.Acts(nil).
		DateFrom("2023-01-01").
		DateTo("2023-01-31").
		UpdatedAtFrom("2023-01-05 08:30:00").
		OrganizationID(3).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"filter[date][from]":       {"2023-01-01 00:00:00"},
		"filter[date][to]":         {"2023-01-31 23:59:59"},
		"filter[updatedAt][from]":  {"2023-01-05 08:30:00"},
		"filter[organizationId][]": {"3"},
	}, rec.Last().Query)
}

func TestCashOrdersType(t *testing.T) {
	rec := transporttest.Reply(`{"status":"success","data":[]}`)
	svc := NewService(rec, zerolog.Nop())

	_, err := svc.CashOrders(nil).Type(query.LedgerIncoming).Page(2).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/cash-order/list/", rec.Last().Path)
	assert.Equal(t, url.Values{"page": {"2"}, "filter[type]": {"incoming"}}, rec.Last().Query)
}

func TestFetchDocumentsInvalidDate(t *testing.T) {
	rec := transporttest.Reply(`{}`)
	svc := NewService(rec, zerolog.Nop())

	_, err := svc.Checks(nil).CreatedAtFrom(true).Execute(context.Background())
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
	assert.Empty(t, rec.Calls())
}

func TestFetchDocumentsAuthSentinel(t *testing.T) {
	svc := NewService(transporttest.Reply(`{"message":"api key is invalid"}`), zerolog.Nop())

	_, err := svc.FetchDocuments(context.Background(), document.KindContract, query.Params{})
	assert.ErrorIs(t, err, apierr.ErrAuthentication)
}
