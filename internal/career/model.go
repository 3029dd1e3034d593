package career

import "time"

// Interaction is one stored career advice exchange.
type Interaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	Suggestions []string  `json:"suggestions"`
	CreatedAt   time.Time `json:"created_at"`
}

// Advice is the model reply split into a main response and follow-up items.
type Advice struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}
