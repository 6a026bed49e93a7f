package auth

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Denylist remembers revoked token ids until the tokens would have expired anyway.
type Denylist struct {
	entries *cache.Cache
}

// NewDenylist creates an empty Denylist purging expired ids every cleanupInterval.
func NewDenylist(cleanupInterval time.Duration) *Denylist {
	return &Denylist{entries: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Revoke records tokenID for ttl.
func (d *Denylist) Revoke(tokenID string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	d.entries.Set(tokenID, struct{}{}, ttl)
}

// Revoked reports whether tokenID was revoked and has not expired yet.
func (d *Denylist) Revoked(tokenID string) bool {
	_, found := d.entries.Get(tokenID)
	return found
}
