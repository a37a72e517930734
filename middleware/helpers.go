package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const jwtClaimRole = "role"

// GetOperatorRoleFromContext returns the role claim put in the context by Authenticate.
func GetOperatorRoleFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(operatorContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("operator claims not found in context or invalid type")
	}
	role, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	return role, nil
}
