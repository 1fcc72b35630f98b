package domain

import "time"

// Client Model
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Name      string    `gorm:"size:128;not null" json:"name"` // Display name
	CreatedAt time.Time `json:"created_at"`                    // Creation time
}
