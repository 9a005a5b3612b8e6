package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Booking is one appointment request from the site form.
type Booking struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service,omitempty"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message,omitempty"`
}

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var ErrInvalidBooking = errors.New("invalid booking")

func (e *ValidationError) Unwrap() error { return ErrInvalidBooking }

// Slots are the bookable start times.
func Slots() []string {
	slots := make([]string, 0, 11)
	for hour := 10; hour <= 20; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

// Normalize trims every field in place.
func (b *Booking) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Service = strings.TrimSpace(b.Service)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
	b.Message = strings.TrimSpace(b.Message)
}

// Validate checks the required fields. today is the first bookable day.
func (b Booking) Validate(today time.Time) error {
	if b.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !validPhone(b.Phone) {
		return &ValidationError{Field: "phone", Reason: "must contain 9 to 15 digits"}
	}

	day, err := time.ParseInLocation(dateLayout, b.Date, today.Location())
	if err != nil {
		return &ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	y, m, d := today.Date()
	if day.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location())) {
		return &ValidationError{Field: "date", Reason: "must not be in the past"}
	}

	if !validSlot(b.Time) {
		return &ValidationError{Field: "time", Reason: "not a bookable slot"}
	}
	return nil
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 9 && digits <= 15
}

func validSlot(slot string) bool {
	for _, s := range Slots() {
		if s == slot {
			return true
		}
	}
	return false
}
