package domain

import "context"

type ListingRepository interface {
	// Users
	GetUserWithEmail(ctx context.Context, email string) (User, error)
	GetUserWithID(ctx context.Context, id int64) (User, error)
	AddUser(ctx context.Context, u NewUser) (User, error)

	// Reservations
	GetAllReservations(ctx context.Context, guestID int64, limit int) ([]ReservationView, error)

	// Properties
	GetAllProperties(ctx context.Context, f FilterOptions, limit int) ([]Property, error)
	AddProperty(ctx context.Context, p NewProperty) (Property, error)
	ListReviews(ctx context.Context, propertyID int64, limit int) ([]Review, error)
}
