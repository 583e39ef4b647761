package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// DateOf truncates t to its calendar date in t's location
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when unset
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts "YYYY-MM-DD", "" or null
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Customer is a bank customer and the identity behind a session.
// Email is the unique login key; PasswordHash never holds plaintext.
type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Phone        string    `json:"phone"`
	DateOfBirth  Date      `json:"date_of_birth"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext contains the authenticated customer for one request
type AuthContext struct {
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// NewAuthContext builds the request identity from a stored customer
func NewAuthContext(c *Customer) *AuthContext {
	return &AuthContext{
		CustomerID: c.ID,
		Email:      c.Email,
		Name:       c.Name,
	}
}
