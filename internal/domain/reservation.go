package domain

import "time"

type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	GuestID    int64     `db:"guest_id" json:"guest_id"`
	PropertyID int64     `db:"property_id" json:"property_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
}

// ReservationView is a reservation with the reserved property's summary
// and its average review rating.
type ReservationView struct {
	Reservation
	Title             string  `db:"title" json:"title"`
	ThumbnailPhotoURL string  `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CostPerNight      int64   `db:"cost_per_night" json:"cost_per_night"`
	NumberOfBedrooms  int     `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	NumberOfBathrooms int     `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	ParkingSpaces     int     `db:"parking_spaces" json:"parking_spaces"`
	City              string  `db:"city" json:"city"`
	Country           string  `db:"country" json:"country"`
	AverageRating     float64 `db:"average_rating" json:"average_rating"`
}
