package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// writeLimiter throttles the mutating endpoints per client IP. The read
// endpoints stay unthrottled; they are cheap and the shop dashboard
// polls them.
type writeLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow

	perMinute int
	stop      chan struct{}
	stopOnce  sync.Once
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

func newWriteLimiter(perMinute int) *writeLimiter {
	l := &writeLimiter{
		clients:   make(map[string]*clientWindow),
		perMinute: perMinute,
		stop:      make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *writeLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.clients[clientIP]
	if !ok || now.Sub(c.windowStart) > time.Minute {
		l.clients[clientIP] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	c.requests++
	return c.requests <= l.perMinute
}

func (l *writeLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for ip, c := range l.clients {
				if c.windowStart.Before(cutoff) {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

func (l *writeLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *writeLimiter) middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
