package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"otconsole/models"
	"otconsole/response"
)

type contextKey string

const UserContextKey contextKey = "user"

const TokenCookie = "token"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Auth issues and verifies session tokens and resolves them to users.
type Auth struct {
	db         *gorm.DB
	secret     []byte
	expiration time.Duration
}

func NewAuth(db *gorm.DB, secret string, expiration time.Duration) *Auth {
	return &Auth{db: db, secret: []byte(secret), expiration: expiration}
}

func (a *Auth) Expiration() time.Duration {
	return a.expiration
}

func (a *Auth) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Authenticate resolves the request's token to a user and stores it in the
// request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			ClearTokenCookie(w)
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		var user models.User
		if err := a.db.WithContext(r.Context()).First(&user, claims.UserID).Error; err != nil {
			response.Unauthorized(w, "User no longer exists")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Browsers cannot set headers on websocket upgrades.
	return r.URL.Query().Get("token")
}

func SetTokenCookie(w http.ResponseWriter, token string, expiration time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(expiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RequirePasswordChange blocks users with a temporary password from
// everything except the given paths.
func RequirePasswordChange(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user != nil && user.MustChangePassword {
				for _, path := range allowed {
					if r.URL.Path == path {
						next.ServeHTTP(w, r)
						return
					}
				}
				response.PasswordChangeRequired(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireCapability(capability models.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !user.Can(capability) {
				response.Forbidden(w, "Your role does not allow this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyCapability admits users holding at least one of the capabilities.
func RequireAnyCapability(capabilities ...models.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}
			for _, c := range capabilities {
				if user.Can(c) {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Your role does not allow this action")
		})
	}
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
