package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TomPannier1/Twist/internal/auth"
	"github.com/TomPannier1/Twist/internal/db"

	"github.com/google/uuid"
)

const suggestionLimit = 3

const (
	externalIDConstraint = "users_external_id_key"
	usernameConstraint   = "users_username_key"
	maxUsernameAttempts  = 4
)

const selectUser = `
	SELECT id, external_id, name, username, email, COALESCE(image, ''), created_at
	FROM users WHERE external_id = $1
`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// ResolveOrCreate returns the user mapped to ident, creating it on first
// sight. When a concurrent call creates the same user first, the unique
// constraint on external_id rejects the insert and the winner is returned.
// A username already taken by someone else gets a short random suffix.
func (s *Service) ResolveOrCreate(ctx context.Context, ident auth.Identity) (User, error) {
	if ident.ExternalID == "" {
		return User{}, ErrExternalIDRequired
	}

	existing, err := s.byExternalID(ctx, ident.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !db.IsNoRows(err) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	u := newUser(ident)
	base := u.Username
	for attempt := 0; ; attempt++ {
		err := s.insert(ctx, &u)
		switch db.UniqueConstraint(err) {
		case "":
			if err != nil {
				return User{}, fmt.Errorf("create user: %w", err)
			}
			return u, nil
		case externalIDConstraint:
			winner, lookupErr := s.byExternalID(ctx, ident.ExternalID)
			if lookupErr != nil {
				return User{}, fmt.Errorf("create user: %w", err)
			}
			return winner, nil
		case usernameConstraint:
			if attempt+1 >= maxUsernameAttempts {
				return User{}, fmt.Errorf("create user: username %q: %w", base, err)
			}
			u.Username = withSuffix(base)
		default:
			return User{}, fmt.Errorf("create user: %w", err)
		}
	}
}

func (s *Service) insert(ctx context.Context, u *User) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, external_id, name, username, email, image)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''))
		RETURNING created_at
	`, u.ID, u.ExternalID, u.Name, u.Username, u.Email, u.Image)
	return row.Scan(&u.CreatedAt)
}

// Sync resolves the caller's user record. It fails softly: no session or any
// error yields nil, and errors are only logged.
func (s *Service) Sync(ctx context.Context, ident *auth.Identity) *User {
	if ident == nil {
		return nil
	}
	u, err := s.ResolveOrCreate(ctx, *ident)
	if err != nil {
		slog.Error("sync user", "external_id", ident.ExternalID, "error", err)
		return nil
	}
	return &u
}

// InternalID returns "" without error when there is no session, and
// ErrUserNotFound when the session has no user record.
func (s *Service) InternalID(ctx context.Context, ident *auth.Identity) (string, error) {
	if ident == nil || ident.ExternalID == "" {
		return "", nil
	}
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE external_id = $1`, ident.ExternalID).Scan(&id)
	if db.IsNoRows(err) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetByExternalID returns nil when no user matches.
func (s *Service) GetByExternalID(ctx context.Context, externalID string) (*Profile, error) {
	var p Profile
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.external_id, u.name, u.username, u.email, COALESCE(u.image, ''), u.created_at,
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id),
		       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
		       (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id)
		FROM users u
		WHERE u.external_id = $1
	`, externalID).Scan(&p.ID, &p.ExternalID, &p.Name, &p.Username, &p.Email, &p.Image, &p.CreatedAt,
		&p.Counts.Followers, &p.Counts.Following, &p.Counts.Posts)
	if db.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Suggestions picks up to three random users other than the caller that the
// caller does not follow. Any failure yields an empty list.
func (s *Service) Suggestions(ctx context.Context, ident *auth.Identity) []Suggestion {
	suggestions := []Suggestion{}

	userID, err := s.InternalID(ctx, ident)
	if err != nil {
		slog.Error("suggest users: resolve caller", "error", err)
		return suggestions
	}
	if userID == "" {
		return suggestions
	}

	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.username, COALESCE(u.image, ''),
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id)
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = u.id)
		ORDER BY random()
		LIMIT $2
	`, userID, suggestionLimit)
	if err != nil {
		slog.Error("suggest users", "user_id", userID, "error", err)
		return suggestions
	}
	defer rows.Close()

	for rows.Next() {
		var sg Suggestion
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Username, &sg.Image, &sg.Followers); err != nil {
			slog.Error("suggest users: scan", "user_id", userID, "error", err)
			return []Suggestion{}
		}
		suggestions = append(suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		slog.Error("suggest users: rows", "user_id", userID, "error", err)
		return []Suggestion{}
	}
	return suggestions
}

func (s *Service) byExternalID(ctx context.Context, externalID string) (User, error) {
	var u User
	err := s.db.QueryRow(ctx, selectUser, externalID).
		Scan(&u.ID, &u.ExternalID, &u.Name, &u.Username, &u.Email, &u.Image, &u.CreatedAt)
	return u, err
}

func newUser(ident auth.Identity) User {
	username := ident.Username
	if username == "" {
		username, _, _ = strings.Cut(ident.Email, "@")
	}
	if username == "" {
		username = withSuffix("user")
	}
	return User{
		ID:         uuid.NewString(),
		ExternalID: ident.ExternalID,
		Name:       strings.TrimSpace(ident.FirstName + " " + ident.LastName),
		Username:   username,
		Email:      ident.Email,
		Image:      ident.ImageURL,
	}
}

func withSuffix(username string) string {
	return username + "_" + uuid.NewString()[:6]
}
