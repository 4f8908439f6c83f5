package domain

import "github.com/google/uuid"

const (
	userIDPrefix    = "u"
	bookingIDPrefix = "b"
	contactIDPrefix = "c"
)

func NewUserID() string    { return newID(userIDPrefix) }
func NewBookingID() string { return newID(bookingIDPrefix) }
func NewContactID() string { return newID(contactIDPrefix) }

// newID returns a time-ordered identifier. UUIDv7 keeps creation order and
// stays unique for records created within the same millisecond.
func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		return prefix + uuid.NewString()
	}
	return prefix + id.String()
}
