package cache

import (
	"context"
	"log"
	"sort"
	"time"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"

	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed holder can block an email.
const DefaultLockTTL = 30 * time.Second

// EmailLocker serializes writers that claim the same member emails.
type EmailLocker interface {
	// Lock claims every email or none. A busy email yields ErrRegistrationInProgress.
	// The returned release func is safe to call once the critical section ends.
	Lock(ctx context.Context, emails []string) (release func(), err error)
}

type emailLocker struct {
	cache Cache
	ttl   time.Duration
}

// NewEmailLocker creates an EmailLocker backed by cache SETNX keys.
func NewEmailLocker(cache Cache, ttl time.Duration) EmailLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &emailLocker{cache: cache, ttl: ttl}
}

// Lock acquires the keys in sorted order so overlapping callers cannot deadlock.
func (l *emailLocker) Lock(ctx context.Context, emails []string) (func(), error) {
	keys := lockKeys(emails)
	token := uuid.NewString()

	held := make([]string, 0, len(keys))
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, key := range held {
			if _, err := l.cache.CompareAndDelete(ctx, key, token); err != nil {
				log.Printf("Failed to release %s: %v", key, err)
			}
		}
	}

	for _, key := range keys {
		ok, err := l.cache.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			release()
			return nil, err
		}
		if !ok {
			release()
			return nil, apperrors.ErrRegistrationInProgress
		}
		held = append(held, key)
	}

	return release, nil
}

func lockKeys(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	keys := make([]string, 0, len(emails))
	for _, e := range emails {
		e = models.NormalizeEmail(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		keys = append(keys, RegistrationLockKey(e))
	}
	sort.Strings(keys)
	return keys
}
