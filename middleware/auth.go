package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in token claims
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const principalContextKey = "principal"

// Claims is the JWT payload: the subject id lives in RegisteredClaims.Subject
// and the role is a custom claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the resolved identity attached to an authenticated request
type Principal struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IssueToken signs an HS256 token binding the subject id and role with an expiry
func IssueToken(subjectID uint, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token and resolves its principal.
// Any failure (bad signature, expired, malformed subject) is reported as an error.
func ParseToken(tokenString, secret string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Principal{}, jwt.ErrTokenUnverifiable
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, jwt.ErrTokenInvalidSubject
	}

	return Principal{ID: uint(id), Role: claims.Role}, nil
}

// resolvePrincipal extracts and verifies the bearer token from the request.
// On failure it writes the 401 response and returns false.
func resolvePrincipal(c *gin.Context, secret string) (Principal, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Authorization header is required",
			},
		})
		return Principal{}, false
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": "Authorization header must be a bearer token",
			},
		})
		return Principal{}, false
	}

	principal, err := ParseToken(parts[1], secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": "Could not validate credentials",
			},
		})
		return Principal{}, false
	}

	return principal, true
}

// RequireUser validates the bearer token and injects the principal into the context.
// Any authenticated subject may act as a user principal, admins included.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolvePrincipal(c, secret)
		if !ok {
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// RequireAdmin validates the bearer token and rejects non-admin principals
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolvePrincipal(c, secret)
		if !ok {
			return
		}

		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin privileges are required for this resource",
				},
			})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// GetPrincipal extracts the resolved principal from the Gin context
func GetPrincipal(c *gin.Context) (Principal, error) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return Principal{}, &AuthError{Code: "MISSING_PRINCIPAL", Message: "Principal not found in context"}
	}

	principal, ok := value.(Principal)
	if !ok {
		return Principal{}, &AuthError{Code: "INVALID_PRINCIPAL", Message: "Principal is not in the expected format"}
	}

	return principal, nil
}

// SetPrincipal stores a principal in the Gin context (primarily for testing)
func SetPrincipal(c *gin.Context, principal Principal) {
	c.Set(principalContextKey, principal)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
