package entity

import "time"

// Contact is a known person the elderly user can call or message. The
// contact extractor resolves spoken names against this list.
type Contact struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
