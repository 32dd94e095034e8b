package entity

// Roles carried by the authenticated principal's token.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// AccessClaims is the identity extracted from a verified access token.
type AccessClaims struct {
	Sub    string
	Role   string
	Tenant string
}

// CanModify reports whether the actor may mutate an entity owned by
// tenantID: admins always may, anyone else only within their own tenant.
func (c AccessClaims) CanModify(tenantID string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	return c.Tenant == tenantID
}
