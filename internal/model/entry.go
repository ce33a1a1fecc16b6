package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one historical prediction. Entries are created by the prediction
// pipeline only, never mutated, and deleted only by their owner through the
// history service.
type Entry struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	Beds          int       `json:"beds" gorm:"not null"`
	Bathrooms     float64   `json:"bathrooms" gorm:"not null"`
	Accomodates   int       `json:"accomodates" gorm:"not null"`
	MinimumNights int       `json:"minimum_nights" gorm:"not null"`
	RoomType      string    `json:"room_type" gorm:"size:32;not null"`
	Neighborhood  string    `json:"neighborhood" gorm:"size:64;not null"`
	Wifi          bool      `json:"wifi"`
	Elevator      bool      `json:"elevator"`
	Pool          bool      `json:"pool"`
	ActualPrice   *float64  `json:"actual_price"`
	Link          *string   `json:"link" gorm:"size:512"`
	Prediction    float64   `json:"prediction" gorm:"not null"`
	Difference    *float64  `json:"difference"`
	Created       time.Time `json:"created" gorm:"column:created;not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// EntryInput carries the user-submitted feature values for one prediction.
// It excludes everything the system assigns: id, user id, prediction,
// difference and the creation timestamp.
type EntryInput struct {
	Beds          int
	Bathrooms     float64
	Accomodates   int
	MinimumNights int
	RoomType      string
	Neighborhood  string
	Wifi          bool
	Elevator      bool
	Pool          bool
	ActualPrice   *float64
	Link          *string
}

// Validate checks the feature rules in order and returns the first violation.
// The pipeline calls this before invoking the oracle, so an invalid candidate
// never costs an oracle round trip.
func (in EntryInput) Validate() error {
	return runRules([]rule{
		{"beds", "non_negative", func() bool { return in.Beds >= 0 }},
		{"bathrooms", "non_negative", func() bool { return in.Bathrooms >= 0 }},
		{"accomodates", "positive", func() bool { return in.Accomodates > 0 }},
		{"accomodates", "at_least_beds", func() bool { return in.Accomodates >= in.Beds }},
		{"minimum_nights", "non_negative", func() bool { return in.MinimumNights >= 0 }},
		{"room_type", "closed_set", func() bool { return ValidRoomType(in.RoomType) }},
		{"neighborhood", "closed_set", func() bool { return ValidNeighborhood(in.Neighborhood) }},
		{"actual_price", "positive", func() bool { return in.ActualPrice == nil || *in.ActualPrice > 0 }},
	})
}

// NewEntry validates the full candidate field set and returns an immutable
// Entry owned by userID. The difference is actual_price - prediction when an
// actual price was supplied, computed in decimal so the stored value is not
// polluted by binary float error; it is deliberately not validated for sign.
func NewEntry(userID uint, in EntryInput, prediction float64, created time.Time) (*Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	err := runRules([]rule{
		{"user_id", "required", func() bool { return userID != 0 }},
		{"prediction", "positive", func() bool { return prediction > 0 }},
		{"created", "required", func() bool { return !created.IsZero() }},
	})
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:        userID,
		Beds:          in.Beds,
		Bathrooms:     in.Bathrooms,
		Accomodates:   in.Accomodates,
		MinimumNights: in.MinimumNights,
		RoomType:      in.RoomType,
		Neighborhood:  in.Neighborhood,
		Wifi:          in.Wifi,
		Elevator:      in.Elevator,
		Pool:          in.Pool,
		ActualPrice:   in.ActualPrice,
		Link:          in.Link,
		Prediction:    prediction,
		Created:       created,
	}
	if in.ActualPrice != nil {
		diff, _ := decimal.NewFromFloat(*in.ActualPrice).
			Sub(decimal.NewFromFloat(prediction)).
			Float64()
		entry.Difference = &diff
	}
	return entry, nil
}
