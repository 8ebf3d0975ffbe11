package domain

type Review struct {
	ID            int64  `db:"id" json:"id"`
	GuestID       int64  `db:"guest_id" json:"guest_id"`
	PropertyID    int64  `db:"property_id" json:"property_id"`
	ReservationID int64  `db:"reservation_id" json:"reservation_id"`
	Rating        int    `db:"rating" json:"rating"` // 1..5, not enforced here
	Message       string `db:"message" json:"message"`
}
