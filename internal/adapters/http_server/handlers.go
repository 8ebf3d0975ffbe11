package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lightbnb/internal/app"
	"lightbnb/internal/domain"
	"lightbnb/internal/query"
)

const maxLimit = 200

type Handlers struct{ Svc *app.ListingService }

type problem struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []fieldError `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/properties", func(r chi.Router) {
		r.Get("/", h.listProperties)
		r.Post("/", h.addProperty)
		r.Get("/{id}/reviews", h.listReviews)
	})
	s.mux.Route("/v1/users", func(r chi.Router) {
		r.Get("/", h.getUserByEmail)
		r.Post("/", h.addUser)
		r.Get("/{id}", h.getUser)
		r.Get("/{id}/reservations", h.listReservations)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemFields(w, status, title, detail, nil)
}

func writeProblemFields(w http.ResponseWriter, status int, title, detail string, fields []fieldError) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Errors: fields}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with a weak ETag, or 304 when the client has it.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func writeUnavailable(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", detail)
}

func writeUnknownOwner(w http.ResponseWriter) {
	writeProblem(w, http.StatusUnprocessableEntity, "Unknown owner", "owner_id does not reference a user")
}

func writeEmailTaken(w http.ResponseWriter) {
	writeProblem(w, http.StatusConflict, "Email taken", "a user with this email already exists")
}

// writeUser maps a lookup result: failed -> 503, absent -> 404.
func writeUser(w http.ResponseWriter, r *http.Request, u *domain.User, ok bool) {
	switch {
	case !ok:
		writeUnavailable(w, "user could not be looked up")
	case u == nil:
		writeProblem(w, http.StatusNotFound, "Not Found", "user not found")
	default:
		writeCached(w, r, u)
	}
}

// ---- params ----

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	ls := r.URL.Query().Get("limit")
	if ls == "" {
		return query.DefaultLimit, true
	}
	l, err := strconv.Atoi(ls)
	if err != nil || l <= 0 || l > maxLimit {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
		return 0, false
	}
	return l, true
}

// filterParams reads FilterOptions from the query string. Absent and empty
// values leave the field at zero, which the builder treats as unset.
func filterParams(r *http.Request) (domain.FilterOptions, []fieldError) {
	q := r.URL.Query()
	var (
		f    domain.FilterOptions
		errs []fieldError
	)
	f.City = strings.TrimSpace(q.Get("city"))

	ints := []struct {
		key string
		dst *int64
	}{
		{"minimum_price_per_night", &f.MinimumPricePerNight},
		{"maximum_price_per_night", &f.MaximumPricePerNight},
		{"owner_id", &f.OwnerID},
	}
	for _, p := range ints {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			errs = append(errs, fieldError{Field: p.key, Error: humanize(p.key) + " must be a non-negative integer"})
			continue
		}
		*p.dst = n
	}

	if v := q.Get("minimum_rating"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || n > 5 {
			errs = append(errs, fieldError{Field: "minimum_rating", Error: "Minimum Rating must be a number between 0 and 5"})
		} else {
			f.MinimumRating = n
		}
	}
	return f, errs
}

// ---- properties ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	f, errs := filterParams(r)
	if errs != nil {
		writeProblemFields(w, http.StatusBadRequest, "Invalid filter", "one or more filters are invalid", errs)
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	ps := h.Svc.GetAllProperties(r.Context(), f, limit)
	if ps == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Listing unavailable", "properties could not be listed")
		return
	}
	writeCached(w, r, map[string]any{"properties": ps})
}

type propertyRequest struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string `json:"country" validate:"required"`
	Street            string `json:"street" validate:"required"`
	City              string `json:"city" validate:"required"`
	Province          string `json:"province" validate:"required"`
	PostCode          string `json:"post_code" validate:"required"`
}

func (h *Handlers) addProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	owner, ok := h.Svc.GetUserWithID(r.Context(), req.OwnerID)
	if !ok {
		writeUnavailable(w, "owner could not be checked")
		return
	}
	if owner == nil {
		writeUnknownOwner(w)
		return
	}

	p, err := h.Svc.AddProperty(r.Context(), domain.NewProperty{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Country:           req.Country,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		writeUnknownOwner(w) // owner deleted since the check
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid property", "property was rejected by the store")
		return
	case p == nil:
		writeUnavailable(w, "property could not be stored")
		return
	}
	w.Header().Set("Location", "/v1/properties/"+strconv.FormatInt(p.ID, 10))
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	rs := h.Svc.ListReviews(r.Context(), id, limit)
	if rs == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Reviews unavailable", "reviews could not be listed")
		return
	}
	writeCached(w, r, map[string]any{"reviews": rs})
}

// ---- users ----

type userRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"` // bcrypt input limit
}

func (h *Handlers) addUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	existing, ok := h.Svc.GetUserWithEmail(r.Context(), req.Email)
	if !ok {
		writeUnavailable(w, "email could not be checked")
		return
	}
	if existing != nil {
		writeEmailTaken(w)
		return
	}

	u, err := h.Svc.AddUser(r.Context(), domain.NewUser{Name: req.Name, Email: req.Email, Password: req.Password})
	switch {
	case errors.Is(err, domain.ErrConflict):
		writeEmailTaken(w) // registered concurrently
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid user", "user was rejected by the store")
		return
	case u == nil:
		writeUnavailable(w, "user could not be stored")
		return
	}
	w.Header().Set("Location", "/v1/users/"+strconv.FormatInt(u.ID, 10))
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeProblem(w, http.StatusBadRequest, "Missing email", "email query parameter is required")
		return
	}
	u, ok := h.Svc.GetUserWithEmail(r.Context(), email)
	writeUser(w, r, u, ok)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, ok := h.Svc.GetUserWithID(r.Context(), id)
	writeUser(w, r, u, ok)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	rs := h.Svc.GetAllReservations(r.Context(), id, limit)
	if rs == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Reservations unavailable", "reservations could not be listed")
		return
	}
	writeCached(w, r, map[string]any{"reservations": rs})
}
