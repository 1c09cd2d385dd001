package user

import "time"

type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"created_at"`
}

type Counts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}

type Profile struct {
	User
	Counts Counts `json:"_count"`
}

// Suggestion is a user the caller does not follow yet.
type Suggestion struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Image     string `json:"image"`
	Followers int    `json:"followers"`
}
