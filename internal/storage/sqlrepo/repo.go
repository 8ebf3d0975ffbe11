package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lightbnb/internal/adapters/observability"
	"lightbnb/internal/domain"
	"lightbnb/internal/query"
)

// Querier is what the repository runs statements on: a pool, a single
// acquired connection or a transaction.
type Querier interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

type Repo struct {
	db        Querier
	bindType  int
	returning bool // INSERT ... RETURNING id instead of LastInsertId
	builder   *query.Builder
}

type Option func(*repoOptions)

type repoOptions struct{ mode query.Mode }

// WithFilterMode selects how property listing filters are rendered.
func WithFilterMode(m query.Mode) Option { return func(o *repoOptions) { o.mode = m } }

func New(db *sqlx.DB, opts ...Option) *Repo { return NewWithQuerier(db, db.DriverName(), opts...) }

// NewWithQuerier builds a repository over q. driverName picks the SQL dialect.
func NewWithQuerier(q Querier, driverName string, opts ...Option) *Repo {
	o := repoOptions{mode: query.Compat}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repo{
		db:        q,
		bindType:  sqlx.BindType(driverName),
		returning: driverName != "mysql",
		builder:   query.New(query.DialectFor(driverName), query.WithMode(o.mode)),
	}
}

// ---- Users ----

func (r *Repo) GetUserWithEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	if err := r.get(ctx, "get_user_with_email", &u, getUserWithEmailSQL, email); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) GetUserWithID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	if err := r.get(ctx, "get_user_with_id", &u, getUserWithIDSQL, id); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) AddUser(ctx context.Context, u domain.NewUser) (domain.User, error) {
	id, err := r.insert(ctx, "add_user", insertUserSQL, u.Name, u.Email, u.Password)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: id, Name: u.Name, Email: u.Email, Password: u.Password}, nil
}

// ---- Reservations ----

func (r *Repo) GetAllReservations(ctx context.Context, guestID int64, limit int) ([]domain.ReservationView, error) {
	if limit <= 0 {
		limit = query.DefaultLimit
	}
	out := []domain.ReservationView{}
	if err := r.selectAll(ctx, "get_all_reservations", &out, r.rebind(getAllReservationsSQL), guestID, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- Properties ----

func (r *Repo) GetAllProperties(ctx context.Context, f domain.FilterOptions, limit int) ([]domain.Property, error) {
	q, args := r.builder.PropertyListing(f, limit)
	log.Debug().Str("sql", q).Interface("args", args).Str("mode", r.builder.Mode().String()).Msg("property listing")

	out := []domain.Property{}
	if err := r.selectAll(ctx, "get_all_properties", &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) AddProperty(ctx context.Context, p domain.NewProperty) (domain.Property, error) {
	id, err := r.insert(ctx, "add_property", insertPropertySQL,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
		p.Country,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
	)
	if err != nil {
		return domain.Property{}, err
	}
	return domain.Property{
		ID:                id,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Description:       p.Description,
		ThumbnailPhotoURL: p.ThumbnailPhotoURL,
		CoverPhotoURL:     p.CoverPhotoURL,
		CostPerNight:      p.CostPerNight,
		ParkingSpaces:     p.ParkingSpaces,
		NumberOfBathrooms: p.NumberOfBathrooms,
		NumberOfBedrooms:  p.NumberOfBedrooms,
		Country:           p.Country,
		Street:            p.Street,
		City:              p.City,
		Province:          p.Province,
		PostCode:          p.PostCode,
		Active:            true,
	}, nil
}

func (r *Repo) ListReviews(ctx context.Context, propertyID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = query.DefaultLimit
	}
	out := []domain.Review{}
	if err := r.selectAll(ctx, "list_reviews", &out, r.rebind(listReviewsSQL), propertyID, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- helpers ----

func (r *Repo) rebind(q string) string { return sqlx.Rebind(r.bindType, q) }

func (r *Repo) get(ctx context.Context, op string, dst any, q string, args ...any) error {
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, dst, r.rebind(q), args...)
	return r.done(op, start, err)
}

// selectAll expects q to be rebound already; builder output is dialect specific.
func (r *Repo) selectAll(ctx context.Context, op string, dst any, q string, args ...any) error {
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, dst, q, args...)
	return r.done(op, start, err)
}

func (r *Repo) insert(ctx context.Context, op, q string, args ...any) (int64, error) {
	start := time.Now()
	var id int64
	var err error
	if r.returning {
		err = r.db.QueryRowxContext(ctx, r.rebind(q+" RETURNING id"), args...).Scan(&id)
	} else {
		var res sql.Result
		if res, err = r.db.ExecContext(ctx, r.rebind(q), args...); err == nil {
			id, err = res.LastInsertId()
		}
	}
	return id, r.done(op, start, err)
}

func (r *Repo) done(op string, start time.Time, err error) error {
	err = classify(err)
	observability.ObserveDB(op, outcome(err), time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
