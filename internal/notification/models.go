package notification

import "time"

type Type string

const (
	TypeLike    Type = "LIKE"
	TypeComment Type = "COMMENT"
	TypeFollow  Type = "FOLLOW"
)

// Notification informs UserID (the recipient) that CreatorID acted on their
// content or followed them. PostID and CommentID are empty when not relevant.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	UserID    string    `json:"user_id"`
	CreatorID string    `json:"creator_id"`
	PostID    string    `json:"post_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Creator   *Creator  `json:"creator,omitempty"`
}

type Creator struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}
