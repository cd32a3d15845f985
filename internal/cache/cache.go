// Package cache memoizes finished pipeline responses so repeated questions
// skip classification, lookups and rendering entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

const DefaultTTL = 5 * time.Minute

// ResponseCache keys on the normalized message plus intent. Expiry is lazy:
// no janitor goroutine runs, and expired entries are reclaimed on the access
// that discovers them.
type ResponseCache struct {
	store *gocache.Cache
}

func New(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{store: gocache.New(ttl, 0)}
}

// Get returns the cached response for the message/intent pair, if fresh.
func (c *ResponseCache) Get(message, intent string) (*model.PipelineOutput, bool) {
	k := key(message, intent)
	v, ok := c.store.Get(k)
	if !ok {
		// Reclaim a possibly expired entry under this key.
		c.store.Delete(k)
		return nil, false
	}
	out, ok := v.(*model.PipelineOutput)
	if !ok {
		c.store.Delete(k)
		return nil, false
	}
	logx.Debug().Str("intent", intent).Msg("response cache hit")
	return out, true
}

// Set stores a response under the message/intent pair with the default TTL.
func (c *ResponseCache) Set(message, intent string, out *model.PipelineOutput) {
	if out == nil {
		return
	}
	c.store.SetDefault(key(message, intent), out)
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.store.Flush()
}

// Size reports the number of stored entries, expired ones included until
// their lazy reclamation.
func (c *ResponseCache) Size() int {
	return c.store.ItemCount()
}

func key(message, intent string) string {
	normalized := strings.ToLower(strings.TrimSpace(message)) + ":" + intent
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
