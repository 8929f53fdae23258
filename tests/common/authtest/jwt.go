//go:build e2e

package authtest

import (
	"testing"

	"ops-console/internal/domain/user"
	"ops-console/internal/pkg/config"
	"ops-console/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken mints a token the test server will accept for the given role.
func IssueToken(t *testing.T, cfg config.Config, userID uuid.UUID, role user.Role) string {
	t.Helper()

	svc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
	token, err := svc.GenerateToken(userID, role)
	require.NoError(t, err, "failed to issue test token")
	return token
}
