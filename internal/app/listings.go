package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"lightbnb/internal/domain"
)

// ListingService is the calling layer over the repository. Failures are
// logged here and surface as a nil result; callers treat nil as unknown.
// Lists return an empty slice for no matches, lookups a true ok flag.
type ListingService struct {
	repo     domain.ListingRepository
	hashCost int
}

func NewListingService(r domain.ListingRepository) *ListingService {
	return &ListingService{repo: r, hashCost: bcrypt.DefaultCost}
}

// ---- Users ----

// GetUserWithEmail reports ok=false when the lookup failed. A missing user
// is (nil, true).
func (s *ListingService) GetUserWithEmail(ctx context.Context, email string) (*domain.User, bool) {
	u, err := s.repo.GetUserWithEmail(ctx, email)
	return userResult(u, err, "get user with email")
}

func (s *ListingService) GetUserWithID(ctx context.Context, id int64) (*domain.User, bool) {
	u, err := s.repo.GetUserWithID(ctx, id)
	return userResult(u, err, "get user with id")
}

func userResult(u domain.User, err error, msg string) (*domain.User, bool) {
	if err != nil {
		logFailure(err, msg)
		return nil, errors.Is(err, domain.ErrNotFound)
	}
	return &u, true
}

// AddUser stores u. A password that is not already a bcrypt hash is hashed
// first. On failure the user is nil and err carries the logged cause.
func (s *ListingService) AddUser(ctx context.Context, u domain.NewUser) (*domain.User, error) {
	if _, err := bcrypt.Cost([]byte(u.Password)); err != nil {
		h, herr := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
		if herr != nil {
			logFailure(herr, "hash password")
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, herr)
		}
		u.Password = string(h)
	}
	out, err := s.repo.AddUser(ctx, u)
	if err != nil {
		logFailure(err, "add user")
		return nil, err
	}
	return &out, nil
}

// ---- Reservations ----

func (s *ListingService) GetAllReservations(ctx context.Context, guestID int64, limit int) []domain.ReservationView {
	rs, err := s.repo.GetAllReservations(ctx, guestID, limit)
	if err != nil {
		logFailure(err, "get all reservations")
		return nil
	}
	return rs
}

// ---- Properties ----

func (s *ListingService) GetAllProperties(ctx context.Context, f domain.FilterOptions, limit int) []domain.Property {
	ps, err := s.repo.GetAllProperties(ctx, f, limit)
	if err != nil {
		logFailure(err, "get all properties")
		return nil
	}
	return ps
}

func (s *ListingService) AddProperty(ctx context.Context, p domain.NewProperty) (*domain.Property, error) {
	out, err := s.repo.AddProperty(ctx, p)
	if err != nil {
		logFailure(err, "add property")
		return nil, err
	}
	return &out, nil
}

func (s *ListingService) ListReviews(ctx context.Context, propertyID int64, limit int) []domain.Review {
	rs, err := s.repo.ListReviews(ctx, propertyID, limit)
	if err != nil {
		logFailure(err, "list reviews")
		return nil
	}
	return rs
}

func logFailure(err error, msg string) {
	var ev *zerolog.Event
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ev = log.Debug()
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidInput):
		ev = log.Warn()
	default:
		ev = log.Error()
	}
	ev.Err(err).Msg(msg)
}
