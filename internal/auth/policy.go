package auth

// Policy is the per-route authorization rule, fixed at route
// registration time and evaluated against verified claims. Two rules
// exist: any valid token, or a valid token whose subject is the
// configured admin email.
type Policy struct {
	adminEmail string
	adminOnly  bool
}

// AuthenticatedOnly admits any request carrying a valid token.
func AuthenticatedOnly() Policy {
	return Policy{}
}

// AdminOnly admits only the given admin subject. With an empty
// adminEmail it degrades to AuthenticatedOnly; that fallback matches
// the deployment where no admin email was ever configured.
func AdminOnly(adminEmail string) Policy {
	return Policy{adminEmail: adminEmail, adminOnly: adminEmail != ""}
}

// Admits reports whether verified claims satisfy the policy. Email
// comparison is ordinal and case-sensitive.
func (p Policy) Admits(claims *Claims) bool {
	if claims == nil {
		return false
	}
	if p.adminOnly {
		return claims.Subject == p.adminEmail
	}
	return true
}
