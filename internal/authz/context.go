package authz

import (
	"time"

	"github.com/google/uuid"
)

// SecurityContext is what a principal has been issued: who, and for how
// long. It is created once by Generate and never mutated; its only durable
// form is the signed access token the client holds.
type SecurityContext struct {
	// ID is unique per issuance and becomes the token's "jti" claim.
	ID        string
	Principal Principal
	Issued    time.Time
	Expires   time.Time
}

// ContextService issues security contexts with a configured validity.
type ContextService struct {
	validity time.Duration
}

func NewContextService(validity time.Duration) *ContextService {
	return &ContextService{validity: validity}
}

// Generate issues a fresh security context for the principal. Timestamps are
// truncated to whole seconds so the context round-trips exactly through the
// token's numeric-date claims.
func (s *ContextService) Generate(principal Principal) SecurityContext {
	issued := time.Now().UTC().Truncate(time.Second)

	return SecurityContext{
		ID:        uuid.NewString(),
		Principal: principal,
		Issued:    issued,
		Expires:   issued.Add(s.validity),
	}
}
