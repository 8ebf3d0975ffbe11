// Package fixtures reads the static LightBnB JSON fixtures used to seed a database.
package fixtures

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"lightbnb/internal/app"
	"lightbnb/internal/domain"
)

const (
	UsersFile      = "users.json"
	PropertiesFile = "properties.json"
)

type userRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type propertyRecord struct {
	OwnerID           int64       `json:"owner_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	ThumbnailPhotoURL string      `json:"thumbnail_photo_url"`
	CoverPhotoURL     string      `json:"cover_photo_url"`
	CostPerNight      json.Number `json:"cost_per_night"`
	ParkingSpaces     int         `json:"parking_spaces"`
	NumberOfBathrooms int         `json:"number_of_bathrooms"`
	NumberOfBedrooms  int         `json:"number_of_bedrooms"`
	Country           string      `json:"country"`
	Street            string      `json:"street"`
	City              string      `json:"city"`
	Province          string      `json:"province"`
	PostCode          text        `json:"post_code"`
}

// Load reads both fixture files from dir. Records come back ordered by fixture id.
func Load(dir string) ([]app.SeedUser, []app.SeedProperty, error) {
	var users map[string]userRecord
	if err := readKeyed(filepath.Join(dir, UsersFile), &users); err != nil {
		return nil, nil, err
	}
	var props map[string]propertyRecord
	if err := readKeyed(filepath.Join(dir, PropertiesFile), &props); err != nil {
		return nil, nil, err
	}

	su := make([]app.SeedUser, 0, len(users))
	for _, k := range sortedKeys(users) {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: key %q is not an id", UsersFile, k)
		}
		u := users[k]
		su = append(su, app.SeedUser{
			FixtureID: id,
			User:      domain.NewUser{Name: u.Name, Email: u.Email, Password: u.Password},
		})
	}

	sp := make([]app.SeedProperty, 0, len(props))
	for _, k := range sortedKeys(props) {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: key %q is not an id", PropertiesFile, k)
		}
		p := props[k]
		cost, err := cents(p.CostPerNight)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: property %d cost_per_night: %w", PropertiesFile, id, err)
		}
		sp = append(sp, app.SeedProperty{
			FixtureID:      id,
			FixtureOwnerID: p.OwnerID,
			Property: domain.NewProperty{
				Title:             p.Title,
				Description:       p.Description,
				ThumbnailPhotoURL: p.ThumbnailPhotoURL,
				CoverPhotoURL:     p.CoverPhotoURL,
				CostPerNight:      cost,
				ParkingSpaces:     p.ParkingSpaces,
				NumberOfBathrooms: p.NumberOfBathrooms,
				NumberOfBedrooms:  p.NumberOfBedrooms,
				Country:           p.Country,
				Street:            p.Street,
				City:              p.City,
				Province:          p.Province,
				PostCode:          string(p.PostCode),
			},
		})
	}
	return su, sp, nil
}

// text decodes a JSON string or number as a string.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

func readKeyed(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// cents accepts an integer amount or a decimal that is rounded to the nearest unit.
func cents(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f)), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseInt(keys[i], 10, 64)
		b, _ := strconv.ParseInt(keys[j], 10, 64)
		if a != b {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
