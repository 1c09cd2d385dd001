package social

import "time"

type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"author,omitempty"`
	Comments  []Comment `json:"comments"`
	Likes     []Like    `json:"likes"`
	Counts    *Counts   `json:"_count,omitempty"`
}

// Author is the public summary of a user shown next to posts and comments.
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"author,omitempty"`
}

type Like struct {
	UserID string `json:"user_id"`
}

type Counts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}
