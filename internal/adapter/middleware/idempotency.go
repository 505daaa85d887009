package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"lending-core/internal/infrastructure/logging"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderActorID        = "X-Actor-Id"

	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response of a mutating request retried with the same key.
type Idempotency struct {
	rdb      *redis.Client
	ttl      time.Duration
	required bool
	log      logrus.FieldLogger
}

type IdempotencyOption func(*Idempotency)

// RequireKey rejects mutating requests that carry no Idempotency-Key.
func RequireKey() IdempotencyOption { return func(m *Idempotency) { m.required = true } }

func WithIdempotencyLogger(l logrus.FieldLogger) IdempotencyOption {
	return func(m *Idempotency) { m.log = l }
}

func NewIdempotency(rdb *redis.Client, ttl time.Duration, opts ...IdempotencyOption) *Idempotency {
	m := &Idempotency{rdb: rdb, ttl: ttl, log: logging.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

func (m *Idempotency) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			// Only enforce on mutating methods
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			idemKey := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey)))
			if idemKey == "" {
				if m.required {
					return errJSON(c, http.StatusBadRequest, "missing "+HeaderIdempotencyKey)
				}
				return next(c)
			}
			if !validKey(idemKey) {
				return errJSON(c, http.StatusBadRequest, "invalid "+HeaderIdempotencyKey+" format")
			}
			actor := strings.TrimSpace(req.Header.Get(HeaderActorID))
			if actor == "" {
				actor = "anonymous"
			}

			var body []byte
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					return errJSON(c, http.StatusBadRequest, "unreadable body")
				}
				body = b
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, req.URL.Path, actor, idemKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, m.rdb, key, idempEntry{
				InProgress: true,
				BodySHA256: bhash,
				Key:        idemKey,
				CreatedAt:  nowUTC(),
			})
			if err != nil {
				m.log.WithError(err).Warn("idempotency store unavailable")
				return errJSON(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, m.rdb, key)
				if errLoad != nil {
					m.log.WithError(errLoad).WithField("key", key).Warn("load idempotency entry")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return errJSON(c, http.StatusConflict, HeaderIdempotencyKey+" reused with different body")
				}
				if !cur.InProgress && cur.Code != 0 {
					c.Response().Header().Set("Idempotent-Replayed", "true")
					if len(cur.Body) == 0 {
						return c.NoContent(cur.Code)
					}
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return errJSON(c, http.StatusConflict, "request is already in progress")
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// server failures are not stored so the client can retry
			if rec.code >= http.StatusInternalServerError {
				if err := m.rdb.Del(context.Background(), key).Err(); err != nil {
					m.log.WithError(err).WithField("key", key).Warn("release idempotency key")
				}
				return nil
			}
			final := idempEntry{
				Code:       rec.code,
				Body:       rec.buf.Bytes(),
				BodySHA256: bhash,
				Key:        idemKey,
				CreatedAt:  nowUTC(),
			}
			if err := saveFinal(context.Background(), m.rdb, key, final, m.ttl); err != nil {
				m.log.WithError(err).WithField("key", key).Warn("save idempotency entry")
			}
			return nil
		}
	}
}
