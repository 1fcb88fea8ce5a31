package domain

import "time"

// User represents a bot user
type User struct {
	ID         string
	TelegramID int64
	Username   string
	FirstName  string
	Timezone   string
	Location   *UserLocation
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserLocation is the last location a user shared
type UserLocation struct {
	City    string
	Country string
	Lat     float64
	Lon     float64
}

// HasLocation reports whether weather can be fetched without asking
func (u *User) HasLocation() bool {
	return u != nil && u.Location != nil
}

// DisplayCity returns a printable place name for the saved location
func (l UserLocation) DisplayCity() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	case l.Country != "":
		return l.Country
	default:
		return "your location"
	}
}
