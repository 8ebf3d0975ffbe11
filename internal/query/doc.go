// Package query renders the parameterized SQL behind property listings.
//
// A Builder turns domain.FilterOptions and a row limit into a query string and
// the positional arguments that go with it. Values never enter the SQL text;
// the n-th argument always belongs to the n-th placeholder.
//
//	q, args := query.New(query.Postgres).PropertyListing(domain.FilterOptions{City: "van"}, query.DefaultLimit)
//	rows, err := db.QueryContext(ctx, q, args...)
//
// Filters are first planned as a list of typed clauses and then rendered, so
// the keyword each predicate gets is decided in one place. Compat mode keeps
// the historical output byte for byte, including the extra WHERE emitted for
// owner_id; Strict mode chains every predicate after the first with AND.
package query
