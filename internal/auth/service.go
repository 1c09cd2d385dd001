package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token invalid")

type Service struct {
	secret []byte
}

// Claims mirrors the session token minted by the auth provider. The subject
// is the external identity id.
type Claims struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a session token for ident. Production tokens come from the
// provider; this is used by local tooling and tests.
func (s *Service) Issue(ident Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		FirstName: ident.FirstName,
		LastName:  ident.LastName,
		Username:  ident.Username,
		Email:     ident.Email,
		ImageURL:  ident.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ExternalID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) Verify(token string) (Identity, error) {
	parsed, err := parseClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{
		ExternalID: claims.Subject,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Username:   claims.Username,
		Email:      claims.Email,
		ImageURL:   claims.ImageURL,
	}, nil
}

var parseClaimsFn = jwt.ParseWithClaims
