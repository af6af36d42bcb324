package identity

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		adminRole string
		claims    jwt.MapClaims
		want      model.Identity
		wantErr   bool
	}{
		{
			name:   "keycloak user",
			claims: jwt.MapClaims{"sub": "u1", "realm_access": map[string]interface{}{"roles": []interface{}{"USER"}}},
			want:   model.Identity{UserID: "u1"},
		},
		{
			name:   "keycloak admin, case insensitive",
			claims: jwt.MapClaims{"sub": "u1", "realm_access": map[string]interface{}{"roles": []interface{}{"user", "admin"}}},
			want:   model.Identity{UserID: "u1", IsAdmin: true},
		},
		{
			name:   "legacy token with csv roles",
			claims: jwt.MapClaims{"user_id": "u2", "user_roles": "USER, ADMIN"},
			want:   model.Identity{UserID: "u2", IsAdmin: true},
		},
		{
			name:      "custom admin role via roles array",
			adminRole: "timeasy-admin",
			claims:    jwt.MapClaims{"sub": "u3", "roles": []interface{}{"ADMIN", "timeasy-admin"}},
			want:      model.Identity{UserID: "u3", IsAdmin: true},
		},
		{
			name:      "default admin role not honoured when custom role configured",
			adminRole: "timeasy-admin",
			claims:    jwt.MapClaims{"sub": "u3", "roles": []interface{}{"ADMIN"}},
			want:      model.Identity{UserID: "u3"},
		},
		{
			name:    "missing subject",
			claims:  jwt.MapClaims{"roles": []interface{}{"ADMIN"}},
			wantErr: true,
		},
		{
			name:    "blank subject",
			claims:  jwt.MapClaims{"sub": "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.adminRole).Resolve(tt.claims)
			if tt.wantErr {
				require.Error(t, err)
				var idErr *model.IdentityError
				assert.True(t, errors.As(err, &idErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoles(t *testing.T) {
	claims := jwt.MapClaims{
		"realm_access": map[string]interface{}{"roles": []interface{}{"a", 7}},
		"roles":        []string{"b"},
		"user_roles":   "c,,d",
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, Roles(claims))
	assert.Empty(t, Roles(jwt.MapClaims{}))
}
