package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/auth"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	stateCookie    = "cd_oauth_state"
	verifierCookie = "cd_oauth_verifier"

	loginCookieTTL = 10 * time.Minute
)

func (h *Handler) Login(e echo.Context) error {
	if h.oauth == nil {
		return h.transportError(e, service.NewError(service.ErrorCodeNotImplemented, "sign-in is not configured"))
	}

	challenge := h.oauth.Begin()

	e.SetCookie(h.cookie(stateCookie, challenge.State, loginCookieTTL))
	e.SetCookie(h.cookie(verifierCookie, challenge.Verifier, loginCookieTTL))

	return e.Redirect(http.StatusTemporaryRedirect, challenge.URL)
}

func (h *Handler) Callback(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	if h.oauth == nil {
		return h.transportError(e, service.NewError(service.ErrorCodeNotImplemented, "sign-in is not configured"))
	}

	state, err := e.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != e.QueryParam("state") {
		l.Warn("oauth state mismatch")
		return h.transportError(e, service.NewError(service.ErrorCodeInvalidBody, auth.ErrInvalidState.Error()))
	}

	code := e.QueryParam("code")
	if code == "" {
		return h.transportError(e, service.NewError(service.ErrorCodeInvalidBody, "missing authorization code"))
	}

	var verifier string
	if c, cerr := e.Cookie(verifierCookie); cerr == nil {
		verifier = c.Value
	}

	session, err := h.oauth.Complete(ctx, code, verifier)
	if err != nil {
		l.Warn("oauth exchange failed", zap.Error(err))
		return h.transportError(e, service.NewError(service.ErrorCodeUnauthorized, "sign-in failed"))
	}

	if _, serr := h.users.SignIn(ctx, session.Email, session.Name); serr != nil {
		l.Error("failed to record user, continuing sign-in", zap.String("email", session.Email), zap.Any("error", serr))
	}

	token, err := auth.GenerateToken(session, h.sessionTTL)
	if err != nil {
		l.Error("failed to issue session", zap.Error(err))
		return h.transportError(e, service.NewError(service.ErrorCodeUnspecified, "failed to issue session"))
	}

	e.SetCookie(h.cookie(SessionCookie, token, h.sessionTTL))
	e.SetCookie(h.cookie(stateCookie, "", -1))
	e.SetCookie(h.cookie(verifierCookie, "", -1))

	l.Info("user signed in", zap.String("email", session.Email))
	return e.Redirect(http.StatusFound, "/")
}

func (h *Handler) GetSession(e echo.Context) error {
	session := SessionFromContext(e)
	if session == nil {
		return h.transportError(e, service.NewError(service.ErrorCodeUnauthorized, "not signed in"))
	}
	return e.JSON(http.StatusOK, session)
}

func (h *Handler) Logout(e echo.Context) error {
	e.SetCookie(h.cookie(SessionCookie, "", -1))
	return e.JSON(http.StatusOK, okResponse{OK: true})
}

// cookie builds an HttpOnly cookie. A negative ttl deletes it.
func (h *Handler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	c.Expires = time.Now().Add(ttl)
	return c
}
