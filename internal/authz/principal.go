// Package authz holds the security context model and the access token codec
// that turns a context into a signed, self-contained credential.
package authz

// Principal is the authenticated identity a security context represents.
//
// It is a sealed sum type: new principal kinds (service accounts, ...) are
// added here as new variants without changing the token format consumers
// depend on. Only this package can implement it.
type Principal interface {
	// subject is the value carried in the token's "sub" claim.
	subject() string
}

// User is a principal backed by a local user account.
type User struct {
	UserID string
}

func (u User) subject() string { return u.UserID }
