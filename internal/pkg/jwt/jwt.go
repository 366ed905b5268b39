package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
)

// StreamClaims identifies the holder of an SSE token.
type StreamClaims struct {
	UserID    string
	Role      user.Role
	CompanyID *string
}

type Service interface {
	GenerateAccessToken(userID string, email string, companyID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(claims StreamClaims) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (StreamClaims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	sseTokenExpiration    time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds the token service. Access tokens are minted by the identity
// provider in production; GenerateAccessToken shares the same secret and claim layout.
func NewJWTService(secretKey string, accessExpiration, sseExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessExpiration,
		sseTokenExpiration:    sseExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, companyID *string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":    userID,
		"email":      email,
		"company_id": returnValueOrNil(companyID),
		"role":       string(role),
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(claims StreamClaims) (token string, expiresIn int, err error) {
	expiresIn = int(j.sseTokenExpiration.Seconds())
	expiresAt := time.Now().Add(j.sseTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    claims.UserID,
		"role":       string(claims.Role),
		"company_id": returnValueOrNil(claims.CompanyID),
		"type":       "sse",
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns its claims
func (j *JWTService) ValidateSSEToken(tokenString string) (StreamClaims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return StreamClaims{}, err
	}

	// Check token type
	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return StreamClaims{}, jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return StreamClaims{}, jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return StreamClaims{}, jwt.ErrInvalidJWT()
	}

	claims := StreamClaims{UserID: userID}
	if role, ok := token.Get("role"); ok {
		if s, ok := role.(string); ok {
			claims.Role = user.Role(s)
		}
	}
	if companyID, ok := token.Get("company_id"); ok {
		if s, ok := companyID.(string); ok && s != "" {
			claims.CompanyID = &s
		}
	}

	return claims, nil
}
