package query

// LedgerType narrows cash orders and payments by direction
type LedgerType string

const (
	LedgerAll       LedgerType = "all"
	LedgerIncoming  LedgerType = "incoming"
	LedgerOutcoming LedgerType = "outcoming"
)

// DatedFilters adds the date and organization setters shared by documents and payments.
type DatedFilters[S any] struct {
	self S
	st   *State
}

func NewDatedFilters[S any](self S, st *State) DatedFilters[S] {
	return DatedFilters[S]{self: self, st: st}
}

func (d *DatedFilters[S]) UpdatedAtFrom(v any) S {
	d.st.from("updatedAt", v)
	return d.self
}

func (d *DatedFilters[S]) UpdatedAtTo(v any) S {
	d.st.to("updatedAt", v)
	return d.self
}

func (d *DatedFilters[S]) DateFrom(v any) S {
	d.st.from("date", v)
	return d.self
}

func (d *DatedFilters[S]) DateTo(v any) S {
	d.st.to("date", v)
	return d.self
}

func (d *DatedFilters[S]) CreatedAtFrom(v any) S {
	d.st.from("createdAt", v)
	return d.self
}

func (d *DatedFilters[S]) CreatedAtTo(v any) S {
	d.st.to("createdAt", v)
	return d.self
}

// OrganizationID is always sent as a list, even for a single id.
func (d *DatedFilters[S]) OrganizationID(ids ...int) S {
	d.st.set("organizationId", append([]int(nil), ids...))
	return d.self
}

// TypeFilter adds the incoming/outcoming selector.
type TypeFilter[S any] struct {
	self S
	st   *State
}

func NewTypeFilter[S any](self S, st *State) TypeFilter[S] {
	return TypeFilter[S]{self: self, st: st}
}

func (t *TypeFilter[S]) Type(v LedgerType) S {
	t.st.set("type", string(v))
	return t.self
}

// OrderFilters holds the setters only the order list understands. The
// order list names its update timestamp "updateAt".
type OrderFilters[S any] struct {
	self S
	st   *State
}

func NewOrderFilters[S any](self S, st *State) OrderFilters[S] {
	return OrderFilters[S]{self: self, st: st}
}

func (o *OrderFilters[S]) UpdatedAtFrom(v any) S {
	o.st.from("updateAt", v)
	return o.self
}

func (o *OrderFilters[S]) UpdatedAtTo(v any) S {
	o.st.to("updateAt", v)
	return o.self
}

func (o *OrderFilters[S]) OrderTimeFrom(v any) S {
	o.st.from("orderTime", v)
	return o.self
}

func (o *OrderFilters[S]) OrderTimeTo(v any) S {
	o.st.to("orderTime", v)
	return o.self
}

func (o *OrderFilters[S]) SetStatusTimeFrom(v any) S {
	o.st.from("setStatusTime", v)
	return o.self
}

func (o *OrderFilters[S]) SetStatusTimeTo(v any) S {
	o.st.to("setStatusTime", v)
	return o.self
}

// StatusID filters by one status id (sent as a scalar) or several (sent as a list).
func (o *OrderFilters[S]) StatusID(ids ...int) S {
	if len(ids) == 1 {
		o.st.set("statusId", ids[0])
	} else {
		o.st.set("statusId", append([]int(nil), ids...))
	}
	return o.self
}

// Status filters by a sentinel such as StatusNotDeleted or StatusAll
func (o *OrderFilters[S]) Status(sentinel string) S {
	o.st.set("statusId", sentinel)
	return o.self
}

func (o *OrderFilters[S]) IDFrom(id int) S {
	o.st.from("id", id)
	return o.self
}

func (o *OrderFilters[S]) IDTo(id int) S {
	o.st.to("id", id)
	return o.self
}

// SetStatusID filters by the status the order was last moved to. Always a list.
func (o *OrderFilters[S]) SetStatusID(ids ...int) S {
	o.st.set("setStatusId", append([]int(nil), ids...))
	return o.self
}

// DocumentQuery lists invoices, acts, contracts and the other document kinds.
type DocumentQuery[R any] struct {
	Builder[*DocumentQuery[R], R]
	DatedFilters[*DocumentQuery[R]]
}

func NewDocumentQuery[R any](initial *Params, fetch Fetcher[R]) *DocumentQuery[R] {
	q := &DocumentQuery[R]{}
	st := NewState(initial)
	q.Builder = NewBuilder(q, st, fetch)
	q.DatedFilters = NewDatedFilters(q, st)
	return q
}

// LedgerQuery lists cash orders and payments, which also filter by direction.
type LedgerQuery[R any] struct {
	Builder[*LedgerQuery[R], R]
	DatedFilters[*LedgerQuery[R]]
	TypeFilter[*LedgerQuery[R]]
}

func NewLedgerQuery[R any](initial *Params, fetch Fetcher[R]) *LedgerQuery[R] {
	q := &LedgerQuery[R]{}
	st := NewState(initial)
	q.Builder = NewBuilder(q, st, fetch)
	q.DatedFilters = NewDatedFilters(q, st)
	q.TypeFilter = NewTypeFilter(q, st)
	return q
}
