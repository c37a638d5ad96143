package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/response"
)

// Context key under which the authenticated merchant account is stored.
const MerchantAccountKey = "merchant_account"

type merchantClaims struct {
	jwt.StandardClaims
	MerchantID string `json:"merchant_id"`
}

// MerchantAuthMiddleware authenticates a request either by the merchant API
// key ("api-key" header) or by an HS256 bearer token signed with the
// merchant's API secret and carrying a merchant_id claim.
func MerchantAuthMiddleware(merchants repository.MerchantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, err := authenticate(c, merchants)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.ErrorT[any](response.APIResponseCodeUnauthorized, err.Error()))
			return
		}
		c.Set(MerchantAccountKey, acct)
		c.Next()
	}
}

func authenticate(c *gin.Context, merchants repository.MerchantRepository) (*models.MerchantAccount, error) {
	ctx := c.Request.Context()

	if apiKey := c.GetHeader("api-key"); apiKey != "" {
		acct, err := merchants.FindByAPIKey(ctx, apiKey)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, errors.New("invalid api key")
			}
			return nil, err
		}
		return acct, nil
	}

	authz := c.GetHeader("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, errors.New("missing credentials")
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")

	// The merchant_id claim selects the account whose secret verifies the
	// signature, so parse unverified first and re-verify with that secret.
	claims := &merchantClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, errors.New("malformed token")
	}
	if claims.MerchantID == "" {
		return nil, errors.New("token missing merchant_id")
	}

	acct, err := merchants.FindByMerchantID(ctx, claims.MerchantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("unknown merchant")
		}
		return nil, err
	}

	verified := &merchantClaims{}
	_, err = jwt.ParseWithClaims(tokenStr, verified, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(acct.APISecret), nil
	})
	if err != nil {
		return nil, errors.New("invalid token")
	}
	return acct, nil
}

// MerchantFromContext returns the merchant account set by the auth middleware.
func MerchantFromContext(c *gin.Context) (*models.MerchantAccount, bool) {
	v, ok := c.Get(MerchantAccountKey)
	if !ok {
		return nil, false
	}
	acct, ok := v.(*models.MerchantAccount)
	return acct, ok
}
