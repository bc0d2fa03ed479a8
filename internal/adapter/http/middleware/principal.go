package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	. "todoapp/internal/adapter/http/helper"
	"todoapp/internal/core/domain"
	. "todoapp/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	PrincipalKey = "x-principal"
	UserIdKey    = "x-user-id"
)

// PrincipalMiddleware verifies the provider-attribute assertion issued by
// the external OAuth layer and materializes the matching principal
// variant on the request context.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := VerifyJwtToken(bearer[len("Bearer "):])

		if err != nil {
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		principal, err := PrincipalFromClaims(claims)

		if err != nil {
			SendDomainError(c, err)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFromClaims rebuilds the principal variant named by the
// provider claim. Attribute presence is not enforced here; the identity
// service owns that rule.
func PrincipalFromClaims(claims jwt.MapClaims) (domain.Principal, error) {
	provider, _ := claims["provider"].(string)

	switch domain.Provider(provider) {
	case domain.ProviderGoogle:
		return domain.GooglePrincipal{
			Sub:   stringClaim(claims, "sub"),
			Name:  stringClaim(claims, "name"),
			Email: stringClaim(claims, "email"),
		}, nil
	case domain.ProviderGithub:
		return domain.GithubPrincipal{
			Id:    stringClaim(claims, "id"),
			Login: stringClaim(claims, "login"),
			Email: stringClaim(claims, "email"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedPrincipal, provider)
	}
}

// stringClaim tolerates numeric claims, which JSON decoding hands over
// as float64.
func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GinJwtMiddleware guards todo routes with the session token and exposes
// the resolved local user id.
func GinJwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Unauthorized request"},
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Invalid authorization format"},
			})
			c.Abort()
			return
		}

		claims, err := VerifyJwtToken(bearer[len("Bearer "):])

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Unauthorized request", err.Error()},
			})
			c.Abort()
			return
		}

		rawUserId, ok := claims["user_id"].(float64)

		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Unauthorized request"},
			})
			c.Abort()
			return
		}

		c.Set(UserIdKey, int(rawUserId))
		c.Next()
	}
}

// CurrentPrincipal pulls the principal materialized by PrincipalMiddleware.
func CurrentPrincipal(c *gin.Context) domain.Principal {
	if value, ok := c.Get(PrincipalKey); ok {
		if principal, ok := value.(domain.Principal); ok {
			return principal
		}
	}

	return nil
}
