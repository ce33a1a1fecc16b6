package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rentier/internal/errors"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func validInput() EntryInput {
	return EntryInput{
		Beds:          2,
		Bathrooms:     1,
		Accomodates:   3,
		MinimumNights: 90,
		RoomType:      "Shared room",
		Neighborhood:  "Marine Parade",
		Wifi:          true,
		Elevator:      true,
		Pool:          false,
	}
}

func TestNewEntry(t *testing.T) {
	created := time.Now().UTC()

	tests := []struct {
		name       string
		input      EntryInput
		prediction float64
	}{
		{
			name:       "no optional fields",
			input:      validInput(),
			prediction: 94,
		},
		{
			name: "with actual price and link",
			input: EntryInput{
				Beds: 1, Bathrooms: 1, Accomodates: 2, MinimumNights: 90,
				RoomType: "Private room", Neighborhood: "Bukit Timah",
				Wifi: true, Elevator: true, Pool: true,
				ActualPrice: floatPtr(80),
				Link:        strPtr("https://www.airbnb.com/rooms/71896"),
			},
			prediction: 70.83,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(1, tt.input, tt.prediction, created)
			require.NoError(t, err)

			assert.Equal(t, uint(1), entry.UserID)
			assert.Equal(t, tt.input.Beds, entry.Beds)
			assert.Equal(t, tt.input.Bathrooms, entry.Bathrooms)
			assert.Equal(t, tt.input.Accomodates, entry.Accomodates)
			assert.Equal(t, tt.input.MinimumNights, entry.MinimumNights)
			assert.Equal(t, tt.input.RoomType, entry.RoomType)
			assert.Equal(t, tt.input.Neighborhood, entry.Neighborhood)
			assert.Equal(t, tt.input.Wifi, entry.Wifi)
			assert.Equal(t, tt.input.Elevator, entry.Elevator)
			assert.Equal(t, tt.input.Pool, entry.Pool)
			assert.Equal(t, tt.input.ActualPrice, entry.ActualPrice)
			assert.Equal(t, tt.input.Link, entry.Link)
			assert.Equal(t, tt.prediction, entry.Prediction)
			assert.Equal(t, created, entry.Created)
		})
	}
}

// Constructing twice from the same field set yields entries equal in every
// field except the storage-assigned ID and the creation timestamp.
func TestNewEntry_Idempotent(t *testing.T) {
	first, err := NewEntry(1, validInput(), 94, time.Now().UTC())
	require.NoError(t, err)
	second, err := NewEntry(1, validInput(), 94, time.Now().UTC())
	require.NoError(t, err)

	first.Created = second.Created
	assert.Equal(t, first, second)
}

func TestNewEntry_Difference(t *testing.T) {
	in := validInput()
	in.ActualPrice = floatPtr(80)

	entry, err := NewEntry(1, in, 70.83, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, entry.Difference)
	assert.InDelta(t, 9.17, *entry.Difference, 1e-9)

	// Without an actual price there is nothing to compare against.
	entry, err = NewEntry(1, validInput(), 70.83, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, entry.Difference)

	// The sign is the convention actual - predicted, never validated.
	in.ActualPrice = floatPtr(50)
	entry, err = NewEntry(1, in, 70.83, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, entry.Difference)
	assert.InDelta(t, -20.83, *entry.Difference, 1e-9)
}

func TestNewEntry_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EntryInput)
		field  string
	}{
		{"negative beds", func(in *EntryInput) { in.Beds = -2 }, "beds"},
		{"negative bathrooms", func(in *EntryInput) { in.Bathrooms = -5 }, "bathrooms"},
		{"zero accomodates", func(in *EntryInput) { in.Accomodates = 0 }, "accomodates"},
		{"accomodates below beds", func(in *EntryInput) { in.Beds = 4; in.Accomodates = 3 }, "accomodates"},
		{"negative minimum nights", func(in *EntryInput) { in.MinimumNights = -42 }, "minimum_nights"},
		{"room type outside closed set", func(in *EntryInput) { in.RoomType = "Filet O Fish" }, "room_type"},
		{"empty room type", func(in *EntryInput) { in.RoomType = "" }, "room_type"},
		{"neighborhood outside closed set", func(in *EntryInput) { in.Neighborhood = "Polytechnic" }, "neighborhood"},
		{"neighborhood case mismatch", func(in *EntryInput) { in.Neighborhood = "marine parade" }, "neighborhood"},
		{"negative actual price", func(in *EntryInput) { in.ActualPrice = floatPtr(-100) }, "actual_price"},
		{"zero actual price", func(in *EntryInput) { in.ActualPrice = floatPtr(0) }, "actual_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			entry, err := NewEntry(1, in, 94, time.Now().UTC())
			assert.Nil(t, entry)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestNewEntry_SystemFields(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		prediction float64
		created    time.Time
		field      string
	}{
		{"missing user", 0, 94, time.Now().UTC(), "user_id"},
		{"negative prediction", 1, -431, time.Now().UTC(), "prediction"},
		{"zero prediction", 1, 0, time.Now().UTC(), "prediction"},
		{"zero created", 1, 94, time.Time{}, "created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(tt.userID, validInput(), tt.prediction, tt.created)
			assert.Nil(t, entry)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCatalog(t *testing.T) {
	assert.True(t, ValidRoomType("Entire home/apt"))
	assert.True(t, ValidNeighborhood("Ang Mo Kio"))
	assert.False(t, ValidRoomType("Entire home"))
	assert.False(t, ValidNeighborhood("ang mo kio"))
	assert.Len(t, Neighborhoods, 44)
}
