package users

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dropDatabas3/hancock/internal/cache"
)

// CachedLookup is a read-through cache over a Lookup. Misses are not cached,
// so a user created after a failed login is visible immediately.
type CachedLookup struct {
	next Lookup
	c    cache.Cache
	ttl  time.Duration
}

func NewCachedLookup(next Lookup, c cache.Cache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, c: c, ttl: ttl}
}

func (l *CachedLookup) GetByID(ctx context.Context, id UserID) (*UserResource, error) {
	key := "user:id:" + id.String()
	if u, ok := l.cached(key); ok {
		return u, nil
	}
	u, err := l.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.store(key, u)
	return u, nil
}

func (l *CachedLookup) GetByAuthentication(ctx context.Context, service AuthenticationService, id AuthenticationID) (*UserResource, error) {
	key := "user:auth:" + string(service) + ":" + string(id)
	if u, ok := l.cached(key); ok {
		return u, nil
	}
	u, err := l.next.GetByAuthentication(ctx, service, id)
	if err != nil {
		return nil, err
	}
	l.store(key, u)
	return u, nil
}

func (l *CachedLookup) cached(key string) (*UserResource, bool) {
	b, ok := l.c.Get(key)
	if !ok {
		return nil, false
	}
	var u UserResource
	if err := json.Unmarshal(b, &u); err != nil {
		l.c.Delete(key)
		return nil, false
	}
	return &u, true
}

func (l *CachedLookup) store(key string, u *UserResource) {
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	l.c.Set(key, b, l.ttl)
}
