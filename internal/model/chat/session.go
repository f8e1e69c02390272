package chat

import "time"

// Session captures one anonymous visitor conversation. It lives only in
// memory: created when the frontend opens the page, gone with the process.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
