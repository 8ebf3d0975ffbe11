package query

import (
	"strings"

	"lightbnb/internal/domain"
)

// DefaultLimit is the row limit used when the caller does not ask for one.
const DefaultLimit = 10

const propertyListingBase = "SELECT properties.*, avg(property_reviews.rating) AS average_rating " +
	"FROM properties JOIN property_reviews ON properties.id = property_reviews.property_id"

type Mode int

const (
	// Compat reproduces the historical SQL exactly. owner_id always opens its
	// own WHERE, which is invalid SQL when a city or price filter is also set.
	Compat Mode = iota
	// Strict opens WHERE once and joins every later predicate with AND.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "compat"
}

type keyword string

const (
	kwWhere   keyword = "WHERE"
	kwAnd     keyword = "AND"
	kwGroupBy keyword = "GROUP BY"
	kwHaving  keyword = "HAVING"
	kwOrderBy keyword = "ORDER BY"
	kwLimit   keyword = "LIMIT"
)

// clause is a single fragment of the tail of a query. A bound clause gets a
// placeholder appended after expr and contributes value to the arguments.
type clause struct {
	kw    keyword
	expr  string
	value any
	bound bool

	// reopens marks a predicate that starts a new WHERE in Compat mode.
	reopens bool
}

func bind(kw keyword, expr string, v any) clause {
	return clause{kw: kw, expr: expr, value: v, bound: true}
}

// Builder is immutable after New and safe for concurrent use.
type Builder struct {
	dialect Dialect
	mode    Mode
}

type Option func(*Builder)

func WithMode(m Mode) Option { return func(b *Builder) { b.mode = m } }

func New(d Dialect, opts ...Option) *Builder {
	if d == nil {
		d = Postgres
	}
	b := &Builder{dialect: d, mode: Compat}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Builder) Mode() Mode { return b.mode }

// PropertyListing returns the listing query for f and its arguments.
// A limit <= 0 leaves the LIMIT clause out.
func (b *Builder) PropertyListing(f domain.FilterOptions, limit int) (string, []any) {
	cs := b.filterClauses(f)
	cs = append(cs, clause{kw: kwGroupBy, expr: "properties.id"})
	if f.MinimumRating != 0 {
		cs = append(cs, bind(kwHaving, "AVG(property_reviews.rating) >=", f.MinimumRating))
	}
	cs = append(cs, clause{kw: kwOrderBy, expr: "cost_per_night"})
	if limit > 0 {
		cs = append(cs, bind(kwLimit, "", limit))
	}
	return b.render(propertyListingBase, cs)
}

// filterClauses plans the WHERE predicates in their fixed order: city,
// minimum price, maximum price, owner. The first present predicate opens the
// WHERE clause and the rest continue it with AND, except that owner_id
// reopens WHERE in Compat mode.
func (b *Builder) filterClauses(f domain.FilterOptions) []clause {
	var cs []clause
	if f.City != "" {
		cs = append(cs, bind(kwAnd, "city LIKE", "%"+f.City+"%"))
	}
	if f.MinimumPricePerNight != 0 {
		cs = append(cs, bind(kwAnd, "cost_per_night >", f.MinimumPricePerNight))
	}
	if f.MaximumPricePerNight != 0 {
		cs = append(cs, bind(kwAnd, "cost_per_night <", f.MaximumPricePerNight))
	}
	if f.OwnerID != 0 {
		c := bind(kwAnd, "owner_id =", f.OwnerID)
		c.reopens = true
		cs = append(cs, c)
	}

	for i := range cs {
		if i == 0 || (b.mode == Compat && cs[i].reopens) {
			cs[i].kw = kwWhere
		}
	}
	return cs
}

func (b *Builder) render(base string, cs []clause) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	args := make([]any, 0, len(cs))
	for _, c := range cs {
		sb.WriteByte(' ')
		sb.WriteString(string(c.kw))
		if c.expr != "" {
			sb.WriteByte(' ')
			sb.WriteString(c.expr)
		}
		if c.bound {
			args = append(args, c.value)
			sb.WriteByte(' ')
			sb.WriteString(b.dialect.Placeholder(len(args)))
		}
	}
	return sb.String(), args
}

var defaultBuilder = New(Postgres)

// PropertyListing renders with the Postgres dialect in Compat mode.
func PropertyListing(f domain.FilterOptions, limit int) (string, []any) {
	return defaultBuilder.PropertyListing(f, limit)
}
