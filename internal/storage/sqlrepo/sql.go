package sqlrepo

// Statements are written with ? and rebound to the driver's placeholder style.
// Inserts carry no trailing terminator so RETURNING can be appended.

const getUserWithEmailSQL = `
SELECT id, name, email, password
FROM users
WHERE email = ?`

const getUserWithIDSQL = `
SELECT id, name, email, password
FROM users
WHERE id = ?
LIMIT 1`

const insertUserSQL = `
INSERT INTO users (name, email, password)
VALUES (?, ?, ?)`

// Grouping by both primary keys lets the property columns ride along with
// the per-reservation average.
const getAllReservationsSQL = `
SELECT
  reservations.id,
  reservations.guest_id,
  reservations.property_id,
  reservations.start_date,
  reservations.end_date,
  properties.title,
  properties.thumbnail_photo_url,
  properties.cost_per_night,
  properties.number_of_bedrooms,
  properties.number_of_bathrooms,
  properties.parking_spaces,
  properties.city,
  properties.country,
  AVG(property_reviews.rating) AS average_rating
FROM reservations
JOIN properties ON properties.id = reservations.property_id
JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = ?
GROUP BY properties.id, reservations.id
ORDER BY reservations.start_date
LIMIT ?`

const insertPropertySQL = `
INSERT INTO properties
  (owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
   parking_spaces, number_of_bathrooms, number_of_bedrooms, country, street, city, province, post_code)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const listReviewsSQL = `
SELECT id, guest_id, property_id, reservation_id, rating, message
FROM property_reviews
WHERE property_id = ?
ORDER BY id DESC
LIMIT ?`
