package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

const DefaultAdminRole = "ADMIN"

// Resolver turns verified token claims into a caller identity. It performs no
// token validation and no I/O; the auth middleware does that before calling it.
type Resolver struct {
	adminRole string
}

func NewResolver(adminRole string) *Resolver {
	if strings.TrimSpace(adminRole) == "" {
		adminRole = DefaultAdminRole
	}
	return &Resolver{adminRole: adminRole}
}

// Resolve reads the subject from "sub" (legacy tokens: "user_id") and marks the
// caller as administrator when one of its roles equals the admin role.
func (r *Resolver) Resolve(claims jwt.MapClaims) (model.Identity, error) {
	userID := stringClaim(claims, "sub")
	if userID == "" {
		userID = stringClaim(claims, "user_id")
	}
	if userID == "" {
		return model.Identity{}, &model.IdentityError{Reason: "claims carry no subject"}
	}

	isAdmin := false
	for _, role := range Roles(claims) {
		if strings.EqualFold(role, r.adminRole) {
			isAdmin = true
			break
		}
	}
	return model.Identity{UserID: userID, IsAdmin: isAdmin}, nil
}

// Roles collects roles from Keycloak's realm_access.roles, a "roles" array and
// the comma separated "user_roles" claim.
func Roles(claims jwt.MapClaims) []string {
	var roles []string
	if realm, ok := claims["realm_access"].(map[string]interface{}); ok {
		roles = append(roles, stringList(realm["roles"])...)
	}
	roles = append(roles, stringList(claims["roles"])...)
	if csv := stringClaim(claims, "user_roles"); csv != "" {
		for _, role := range strings.Split(csv, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	return roles
}

func stringClaim(claims jwt.MapClaims, name string) string {
	switch v := claims[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
