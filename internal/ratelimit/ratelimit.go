// Package ratelimit caps accepted contact submissions per client identity
// within a fixed window.
package ratelimit

import (
	"math"
	"time"
)

// Policy describes how many submissions an identity may make per window.
type Policy struct {
	Ceiling int
	Window  time.Duration
}

// DefaultPolicy allows 5 submissions per hour
func DefaultPolicy() Policy {
	return Policy{Ceiling: 5, Window: time.Hour}
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RetryMinutes rounds ResetIn up to whole minutes, never less than one.
func (d Decision) RetryMinutes() int {
	m := int(math.Ceil(d.ResetIn.Minutes()))
	if m < 1 {
		return 1
	}
	return m
}

// RetryAfterSeconds rounds ResetIn up to whole seconds, never less than one.
func (d Decision) RetryAfterSeconds() int {
	s := int(math.Ceil(d.ResetIn.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// Limiter applies a Policy on top of a Store.
type Limiter struct {
	store  Store
	policy Policy
	now    func() time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func NewLimiter(store Store, policy Policy, opts ...Option) *Limiter {
	if store == nil {
		store = NewMemoryStore()
	}
	l := &Limiter{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records an attempt by id and decides whether it may proceed.
func (l *Limiter) Allow(id string) Decision {
	now := l.now()
	rec, ok := l.store.Increment(id, now, l.policy)

	resetIn := l.policy.Window - now.Sub(rec.WindowStart)
	if resetIn < 0 {
		resetIn = 0
	}

	d := Decision{
		Allowed: ok,
		Limit:   l.policy.Ceiling,
		ResetIn: resetIn,
	}
	if ok {
		d.Remaining = l.policy.Ceiling - rec.Count
	}
	return d
}

// Sweep removes expired records from the underlying store.
func (l *Limiter) Sweep() int {
	return l.store.Sweep(l.now(), l.policy.Window)
}

func (l *Limiter) Policy() Policy {
	return l.policy
}
