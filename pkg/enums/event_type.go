package enums

import "fmt"

// EventType labels a tracked analytics event.
type EventType string

const (
	EventTypeViewHome       EventType = "view_home"
	EventTypeViewProduct    EventType = "view_product"
	EventTypeViewProfile    EventType = "view_profile"
	EventTypeSearch         EventType = "search"
	EventTypeClickWhatsApp  EventType = "click_whatsapp"
	EventTypeClickInstagram EventType = "click_instagram"
	EventTypeClickCall      EventType = "click_call"
)

var validEventTypes = []EventType{
	EventTypeViewHome,
	EventTypeViewProduct,
	EventTypeViewProfile,
	EventTypeSearch,
	EventTypeClickWhatsApp,
	EventTypeClickInstagram,
	EventTypeClickCall,
}

// String implements fmt.Stringer.
func (t EventType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known EventType.
func (t EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
