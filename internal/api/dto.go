package api

import (
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"
)

// localLayout is a timestamp without zone; it is read as UTC.
const localLayout = "2006-01-02T15:04:05"

// apiTime accepts RFC3339 or a zone-less local timestamp.
type apiTime struct {
	time.Time
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.ParseInLocation(localLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", raw)
	}
	t.Time = parsed
	return nil
}

type bookingRequestDTO struct {
	ItemID int64   `json:"itemId"`
	Start  apiTime `json:"start"`
	End    apiTime `json:"end"`
}

type itemSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type userRef struct {
	ID int64 `json:"id"`
}

type bookingResponse struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status models.BookingStatus `json:"status"`
	Item   itemSummary          `json:"item"`
	Booker userRef              `json:"booker"`
}

func newBookingResponse(b *models.Booking, item *models.Item) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item: itemSummary{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
		},
		Booker: userRef{ID: b.BookerID},
	}
}

type itemRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type itemResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Available   bool                 `json:"available"`
	OwnerID     int64                `json:"ownerId"`
	RequestID   *int64               `json:"requestId,omitempty"`
	LastBooking *models.BookingShort `json:"lastBooking"`
	NextBooking *models.BookingShort `json:"nextBooking"`
}

func newItemResponse(v *models.ItemView) itemResponse {
	return itemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		OwnerID:     v.OwnerID,
		RequestID:   v.RequestID,
		LastBooking: v.LastBooking,
		NextBooking: v.NextBooking,
	}
}

type userRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
