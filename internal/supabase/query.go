package supabase

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query collects PostgREST filter, ordering and limit parameters
type Query struct {
	filters map[string]string
	order   []string
	limit   int
}

// NewQuery starts an empty query
func NewQuery() *Query {
	return &Query{filters: make(map[string]string)}
}

// Eq adds an equality filter on column. Repeating a column replaces the earlier value.
func (q *Query) Eq(column, value string) *Query {
	q.filters[column] = "eq." + value
	return q
}

// Order appends a sort key
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = append(q.order, column+"."+dir)
	return q
}

// Limit caps the number of returned rows
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Encode renders the query string. Filters are AND-combined by PostgREST.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}

	values := url.Values{}
	columns := make([]string, 0, len(q.filters))
	for column := range q.filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		values.Set(column, q.filters[column])
	}
	if len(q.order) > 0 {
		values.Set("order", strings.Join(q.order, ","))
	}
	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	return values.Encode()
}
