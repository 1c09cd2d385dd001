package social

import (
	"context"
	"strings"

	"github.com/TomPannier1/Twist/internal/db"
	"github.com/TomPannier1/Twist/internal/notification"

	"github.com/google/uuid"
)

// ToggleLike likes the post when actorID has not liked it yet and unlikes it
// otherwise. It reports whether the post is liked by actorID afterwards.
//
// Liking inserts the like and, unless actorID wrote the post, a LIKE
// notification for the author in one transaction. Losing a race against a
// concurrent toggle by the same user is not an error: the state the caller
// asked for already holds.
func (s *Service) ToggleLike(ctx context.Context, postID, actorID string) (bool, error) {
	authorID, err := s.postAuthor(ctx, postID)
	if err != nil {
		return false, err
	}

	var exists bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)
	`, actorID, postID).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists {
		tag, err := s.db.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, actorID, postID)
		if err != nil {
			return false, err
		}
		if tag.RowsAffected() > 0 {
			s.invalidate(ctx)
		}
		return false, nil
	}

	var created *notification.Notification
	err = db.WithTx(ctx, s.db, func(tx db.Querier) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO likes (user_id, post_id) VALUES ($1,$2)
		`, actorID, postID); err != nil {
			return err
		}
		if authorID == actorID {
			return nil
		}
		n, err := s.notifier.Create(ctx, tx, notification.Notification{
			Type:      notification.TypeLike,
			UserID:    authorID,
			CreatorID: actorID,
			PostID:    postID,
		})
		if err != nil {
			return err
		}
		created = &n
		return nil
	})
	if db.IsUniqueViolation(err) {
		return true, nil
	}
	if db.IsForeignKeyViolation(err) {
		return false, ErrPostNotFound
	}
	if err != nil {
		return false, err
	}

	s.invalidate(ctx)
	s.announce(created)
	return true, nil
}

// CreateComment adds a comment and, unless actorID wrote the post, a COMMENT
// notification pointing at it. Both rows commit together.
func (s *Service) CreateComment(ctx context.Context, postID, actorID, content string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, ErrContentRequired
	}
	authorID, err := s.postAuthor(ctx, postID)
	if err != nil {
		return Comment{}, err
	}

	comment := Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	}
	var created *notification.Notification
	err = db.WithTx(ctx, s.db, func(tx db.Querier) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO comments (id, content, author_id, post_id)
			VALUES ($1,$2,$3,$4)
			RETURNING created_at
		`, comment.ID, comment.Content, comment.AuthorID, comment.PostID)
		if err := row.Scan(&comment.CreatedAt); err != nil {
			return err
		}
		if authorID == actorID {
			return nil
		}
		n, err := s.notifier.Create(ctx, tx, notification.Notification{
			Type:      notification.TypeComment,
			UserID:    authorID,
			CreatorID: actorID,
			PostID:    postID,
			CommentID: comment.ID,
		})
		if err != nil {
			return err
		}
		created = &n
		return nil
	})
	if db.IsForeignKeyViolation(err) {
		return Comment{}, ErrPostNotFound
	}
	if err != nil {
		return Comment{}, err
	}

	s.invalidate(ctx)
	s.announce(created)
	return comment, nil
}
