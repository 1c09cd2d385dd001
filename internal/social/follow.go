package social

import (
	"context"

	"github.com/TomPannier1/Twist/internal/db"
	"github.com/TomPannier1/Twist/internal/notification"
)

// ToggleFollow follows targetID, or unfollows it when actorID already does,
// and reports whether actorID follows targetID afterwards. A new follow always
// notifies the target.
func (s *Service) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
	`, actorID, targetID).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists {
		tag, err := s.db.Exec(ctx, `
			DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
		`, actorID, targetID)
		if err != nil {
			return false, err
		}
		if tag.RowsAffected() > 0 {
			s.invalidate(ctx)
		}
		return false, nil
	}

	var created notification.Notification
	err = db.WithTx(ctx, s.db, func(tx db.Querier) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO follows (follower_id, following_id) VALUES ($1,$2)
		`, actorID, targetID); err != nil {
			return err
		}
		n, err := s.notifier.Create(ctx, tx, notification.Notification{
			Type:      notification.TypeFollow,
			UserID:    targetID,
			CreatorID: actorID,
		})
		created = n
		return err
	})
	if db.IsUniqueViolation(err) {
		return true, nil
	}
	if db.IsForeignKeyViolation(err) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}

	s.invalidate(ctx)
	s.announce(&created)
	return true, nil
}
