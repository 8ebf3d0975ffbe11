package domain

type Property struct {
	ID                int64   `db:"id" json:"id"`
	OwnerID           int64   `db:"owner_id" json:"owner_id"`
	Title             string  `db:"title" json:"title"`
	Description       string  `db:"description" json:"description"`
	ThumbnailPhotoURL string  `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string  `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int64   `db:"cost_per_night" json:"cost_per_night"` // smallest currency unit
	ParkingSpaces     int     `db:"parking_spaces" json:"parking_spaces"`
	NumberOfBathrooms int     `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	NumberOfBedrooms  int     `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	Country           string  `db:"country" json:"country"`
	Street            string  `db:"street" json:"street"`
	City              string  `db:"city" json:"city"`
	Province          string  `db:"province" json:"province"`
	PostCode          string  `db:"post_code" json:"post_code"`
	Active            bool    `db:"active" json:"active"`
	AverageRating     float64 `db:"average_rating" json:"average_rating"`
}

type NewProperty struct {
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      int64
	ParkingSpaces     int
	NumberOfBathrooms int
	NumberOfBedrooms  int
	Country           string
	Street            string
	City              string
	Province          string
	PostCode          string
}

// FilterOptions narrows a property listing. A zero field is absent.
type FilterOptions struct {
	City                 string  // substring match
	MinimumPricePerNight int64
	MaximumPricePerNight int64
	OwnerID              int64
	MinimumRating        float64
}
