package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimit allows Requests per Window for a single key, with up to Burst
// requests admitted back to back.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (l RateLimit) String() string {
	return fmt.Sprintf("%d/%s,%d", l.Requests, l.Window, l.Burst)
}

// Limits are the throttling tiers applied by the HealthMate router.
type Limits struct {
	// Credential guards register, login and password change.
	Credential RateLimit
	// Write covers metric entries, water logs, goals and profile edits.
	Write RateLimit
	// Read covers history and summary reads. The client refreshes after
	// every write so this sits well above Write.
	Read RateLimit
	// Probe covers health probes and the public tools catalogue.
	Probe RateLimit
}

// DefaultLimits are the production tiers.
func DefaultLimits() Limits {
	return Limits{
		Credential: RateLimit{Requests: 5, Window: time.Minute, Burst: 5},
		Write:      RateLimit{Requests: 30, Window: time.Minute, Burst: 10},
		Read:       RateLimit{Requests: 120, Window: time.Minute, Burst: 60},
		Probe:      RateLimit{Requests: 600, Window: time.Minute, Burst: 600},
	}
}

// Uniform applies l to every tier.
func Uniform(l RateLimit) Limits {
	return Limits{Credential: l, Write: l, Read: l, Probe: l}
}

// Validate rejects a limit with a non-positive field.
func (l RateLimit) Validate() error {
	if l.Requests <= 0 || l.Window <= 0 || l.Burst <= 0 {
		return fmt.Errorf("rate limit %s: requests, window and burst must be positive", l)
	}
	return nil
}

// ParseRateLimit parses "requests/window[,burst]". The burst defaults to the
// request count.
func ParseRateLimit(s string) (RateLimit, error) {
	rateStr, burstStr, hasBurst := strings.Cut(strings.TrimSpace(s), ",")
	reqStr, windowStr, ok := strings.Cut(rateStr, "/")
	if !ok {
		return RateLimit{}, fmt.Errorf("rate limit %q: want requests/window[,burst]", s)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(reqStr))
	if err != nil || requests <= 0 {
		return RateLimit{}, fmt.Errorf("rate limit %q: bad request count", s)
	}
	window, err := time.ParseDuration(strings.TrimSpace(windowStr))
	if err != nil || window <= 0 {
		return RateLimit{}, fmt.Errorf("rate limit %q: bad window", s)
	}

	limit := RateLimit{Requests: requests, Window: window, Burst: requests}
	if hasBurst {
		burst, err := strconv.Atoi(strings.TrimSpace(burstStr))
		if err != nil || burst <= 0 {
			return RateLimit{}, fmt.Errorf("rate limit %q: bad burst", s)
		}
		limit.Burst = burst
	}
	return limit, nil
}

// KeyFunc groups requests into rate limit buckets. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ClientIP returns the caller address, honouring X-Forwarded-For and X-Real-IP
// from a fronting proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AccountOrIP keys authenticated requests by user id and anonymous ones by IP.
func AccountOrIP(r *http.Request) string {
	if id := UserIDFromCtx(r.Context()); id != "" {
		return "user:" + id
	}
	return "ip:" + ClientIP(r)
}

// BodyField keys by a lowercased string field of a JSON body. The body is
// restored so the handler can decode it again.
func BodyField(name string) KeyFunc {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return ""
		}

		var body map[string]any
		if json.Unmarshal(raw, &body) != nil {
			return ""
		}
		v, _ := body[name].(string)
		return strings.ToLower(strings.TrimSpace(v))
	}
}

// JoinKeys concatenates the non-empty keys produced by fns.
func JoinKeys(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, "|")
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets holds one token bucket per key. Buckets idle for longer than
// idleAfter are dropped on the next sweep.
type buckets struct {
	limit     RateLimit
	idleAfter time.Duration

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
}

func newBuckets(limit RateLimit) *buckets {
	return &buckets{
		limit:     limit,
		idleAfter: max(2*limit.Window, 5*time.Minute),
		byKey:     make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// take reports whether key may proceed, and if not how long until it may.
func (b *buckets) take(key string, now time.Time) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) > b.idleAfter {
		for k, bk := range b.byKey {
			if now.Sub(bk.lastSeen) > b.idleAfter {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.byKey[key]
	if !ok {
		every := rate.Every(b.limit.Window / time.Duration(b.limit.Requests))
		bk = &bucket{limiter: rate.NewLimiter(every, b.limit.Burst)}
		b.byKey[key] = bk
	}
	bk.lastSeen = now

	if bk.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := bk.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// Throttle rejects requests with 429 once their key exhausts limit.
func Throttle(limit RateLimit, key KeyFunc) Middleware {
	b := newBuckets(limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			ok, wait := b.take(k, time.Now())
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retry := max(int((wait+time.Second-1)/time.Second), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Policy", limit.String())

			slogx.FromContext(r.Context()).Warn("request throttled",
				"key", k,
				"path", r.URL.Path,
				"retry_after_s", retry,
			)
			WriteError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests, try again shortly.")
		})
	}
}

// PerIP throttles by client address.
func PerIP(limit RateLimit) Middleware { return Throttle(limit, ClientIP) }

// PerAccount throttles by authenticated user, falling back to IP.
func PerAccount(limit RateLimit) Middleware { return Throttle(limit, AccountOrIP) }

// PerIPAndEmail throttles credential attempts by address plus the email in
// the request body.
func PerIPAndEmail(limit RateLimit) Middleware {
	return Throttle(limit, JoinKeys(ClientIP, BodyField("email")))
}
