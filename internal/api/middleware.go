package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/auth"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
	"net/http"
	"strings"
	"time"
)

const (
	SessionCookie = "cd_session"

	loggerKey  = "logger"
	sessionKey = "session"
)

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			c.Set(loggerKey, reqLogger)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			latency := time.Since(start)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", latency),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

func GetLoggerFromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// SessionMiddleware attaches the caller's session when the request carries a
// valid token. Requests without one pass through anonymously.
func SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				if cookie, err := c.Cookie(SessionCookie); err == nil {
					token = cookie.Value
				}
			}

			if token != "" {
				if session, ok := auth.SessionFromToken(token); ok {
					c.Set(sessionKey, session)
					GetLoggerFromContext(c).Debug("session attached", zap.String("email", session.Email))
				}
			}

			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFromContext(c) == nil {
				return c.JSON(http.StatusUnauthorized, struct {
					Error *service.Error `json:"error"`
				}{Error: service.NewError(service.ErrorCodeUnauthorized, "sign in required")})
			}
			return next(c)
		}
	}
}

func SessionFromContext(c echo.Context) *auth.Session {
	if s, ok := c.Get(sessionKey).(*auth.Session); ok {
		return s
	}
	return nil
}

// callerEmail is empty for anonymous requests.
func callerEmail(c echo.Context) string {
	if s := SessionFromContext(c); s != nil {
		return s.Email
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
