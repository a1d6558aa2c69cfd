package cache

import (
	"errors"
	"strconv"
	"time"
)

// Cooldown blocks new runs for a while after a failed one.
type Cooldown struct {
	cache  CacheService
	key    string
	period time.Duration
	now    func() time.Time
}

func NewCooldown(c CacheService, key string, period time.Duration) *Cooldown {
	return &Cooldown{cache: c, key: "cooldown:" + key, period: period, now: time.Now}
}

// Remaining returns how long the cooldown still lasts; zero when inactive.
// Cache errors other than a miss are returned so callers can decide to
// proceed anyway.
func (c *Cooldown) Remaining() (time.Duration, error) {
	b, err := c.cache.Get(c.key)
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	until, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, nil
	}
	left := time.Unix(until, 0).Sub(c.now())
	if left < 0 {
		return 0, nil
	}
	return left, nil
}

// Trip starts the cooldown. A zero period disables it.
func (c *Cooldown) Trip() error {
	if c.period <= 0 {
		return nil
	}
	until := c.now().Add(c.period).Unix()
	return c.cache.Set(c.key, []byte(strconv.FormatInt(until, 10)), c.period)
}

func (c *Cooldown) Reset() error {
	return c.cache.Delete(c.key)
}
