package social

import (
	"context"
	"log/slog"

	"github.com/TomPannier1/Twist/internal/cache"
	"github.com/TomPannier1/Twist/internal/db"
	"github.com/TomPannier1/Twist/internal/notification"

	"github.com/google/uuid"
)

// Notifier records notifications inside engagement transactions and
// announces them once committed.
type Notifier interface {
	Create(ctx context.Context, q db.Querier, n notification.Notification) (notification.Notification, error)
	Announce(n notification.Notification)
}

type Service struct {
	db       db.TxQuerier
	notifier Notifier
	cache    cache.Invalidator
}

func NewService(db db.TxQuerier, notifier Notifier, invalidator cache.Invalidator) *Service {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &Service{db: db, notifier: notifier, cache: invalidator}
}

func (s *Service) CreatePost(ctx context.Context, actorID, content, image string) (Post, error) {
	post := Post{
		ID:       uuid.NewString(),
		AuthorID: actorID,
		Content:  content,
		Image:    image,
		Comments: []Comment{},
		Likes:    []Like{},
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, content, image)
		VALUES ($1,$2,$3,NULLIF($4,''))
		RETURNING created_at
	`, post.ID, post.AuthorID, post.Content, post.Image)
	if err := row.Scan(&post.CreatedAt); err != nil {
		return Post{}, err
	}
	s.invalidate(ctx)
	return post, nil
}

// ListPosts returns every post, newest first, with its author, comments
// (oldest first), likes and counts. All three reads share one snapshot so the
// counts agree with the loaded comments and likes.
func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := db.WithSnapshot(ctx, s.db, func(q db.Querier) error {
		var err error
		posts, err = listPosts(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func listPosts(ctx context.Context, q db.Querier) ([]Post, error) {
	rows, err := q.Query(ctx, `
		SELECT p.id, p.author_id, COALESCE(p.content, ''), COALESCE(p.image, ''), p.created_at,
		       u.name, u.username, COALESCE(u.image, ''),
		       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	var ids []string
	for rows.Next() {
		var (
			p      Post
			author Author
			counts Counts
		)
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Image, &p.CreatedAt,
			&author.Name, &author.Username, &author.Image, &counts.Likes, &counts.Comments); err != nil {
			return nil, err
		}
		author.ID = p.AuthorID
		p.Author = &author
		p.Counts = &counts
		ids = append(ids, p.ID)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	comments, err := loadComments(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	likes, err := loadLikes(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = comments[posts[i].ID]
		if posts[i].Comments == nil {
			posts[i].Comments = []Comment{}
		}
		posts[i].Likes = likes[posts[i].ID]
		if posts[i].Likes == nil {
			posts[i].Likes = []Like{}
		}
	}
	return posts, nil
}

func (s *Service) DeletePost(ctx context.Context, actorID, postID string) error {
	authorID, err := s.postAuthor(ctx, postID)
	if err != nil {
		return err
	}
	if authorID != actorID {
		return ErrNotPostAuthor
	}

	// comments, likes and notifications go with it via ON DELETE CASCADE
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) postAuthor(ctx context.Context, postID string) (string, error) {
	var authorID string
	err := s.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if db.IsNoRows(err) {
		return "", ErrPostNotFound
	}
	return authorID, err
}

func loadComments(ctx context.Context, q db.Querier, postIDs []string) (map[string][]Comment, error) {
	if len(postIDs) == 0 {
		return map[string][]Comment{}, nil
	}
	rows, err := q.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.name, u.username, COALESCE(u.image, '')
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at ASC
	`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := map[string][]Comment{}
	for rows.Next() {
		var (
			c      Comment
			author Author
		)
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt,
			&author.Name, &author.Username, &author.Image); err != nil {
			return nil, err
		}
		author.ID = c.AuthorID
		c.Author = &author
		comments[c.PostID] = append(comments[c.PostID], c)
	}
	return comments, rows.Err()
}

func loadLikes(ctx context.Context, q db.Querier, postIDs []string) (map[string][]Like, error) {
	if len(postIDs) == 0 {
		return map[string][]Like{}, nil
	}
	rows, err := q.Query(ctx, `
		SELECT post_id, user_id FROM likes WHERE post_id = ANY($1)
	`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := map[string][]Like{}
	for rows.Next() {
		var postID string
		var l Like
		if err := rows.Scan(&postID, &l.UserID); err != nil {
			return nil, err
		}
		likes[postID] = append(likes[postID], l)
	}
	return likes, rows.Err()
}

// invalidate runs after a committed mutation. A cache failure never undoes
// or fails the mutation.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("page cache invalidation failed", "error", err)
	}
}

func (s *Service) announce(n *notification.Notification) {
	if n != nil {
		s.notifier.Announce(*n)
	}
}
