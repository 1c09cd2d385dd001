package notification

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/TomPannier1/Twist/internal/db"

	"github.com/google/uuid"
)

// Publisher pushes a payload to every live connection of a user.
type Publisher interface {
	Broadcast(userID string, payload []byte)
}

type Service struct {
	db  db.Querier
	pub Publisher
}

func NewService(db db.Querier, pub Publisher) *Service {
	return &Service{db: db, pub: pub}
}

// Create inserts n using q, which is normally the transaction carrying the
// engagement write that caused it.
func (s *Service) Create(ctx context.Context, q db.Querier, n Notification) (Notification, error) {
	n.ID = uuid.NewString()
	row := q.QueryRow(ctx, `
		INSERT INTO notifications (id, type, user_id, creator_id, post_id, comment_id)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''))
		RETURNING created_at
	`, n.ID, string(n.Type), n.UserID, n.CreatorID, n.PostID, n.CommentID)
	if err := row.Scan(&n.CreatedAt); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Announce streams a committed notification to its recipient.
func (s *Service) Announce(n Notification) {
	if s.pub == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		slog.Error("encode notification", "notification_id", n.ID, "error", err)
		return
	}
	s.pub.Broadcast(n.UserID, payload)
}

// List returns the recipient's notifications, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT n.id, n.type, n.user_id, n.creator_id, COALESCE(n.post_id, ''), COALESCE(n.comment_id, ''), n.created_at,
		       u.name, u.username, COALESCE(u.image, '')
		FROM notifications n
		JOIN users u ON u.id = n.creator_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		var (
			n       Notification
			typ     string
			creator Creator
		)
		if err := rows.Scan(&n.ID, &typ, &n.UserID, &n.CreatorID, &n.PostID, &n.CommentID, &n.CreatedAt,
			&creator.Name, &creator.Username, &creator.Image); err != nil {
			return nil, err
		}
		n.Type = Type(typ)
		creator.ID = n.CreatorID
		n.Creator = &creator
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
