package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
)

const (
	sessionCookieName = "portfolio_session"
	adminSubject      = "admin"
)

// sessionIssuer signs and verifies the admin session cookie.
type sessionIssuer struct {
	secret       []byte
	ttl          time.Duration
	secureCookie bool
}

func (s sessionIssuer) issue(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s sessionIssuer) verify(tokenString string) (session, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return session{}, errs.NewUnauthorizedError("Invalid or expired session")
	}
	if claims.Subject != adminSubject {
		return session{}, errs.NewUnauthorizedError("Invalid or expired session")
	}
	return session{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s sessionIssuer) cookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	sessions  sessionIssuer
}

func newAuthHandler(password string, sessions sessionIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		password:  password,
		sessions:  sessions,
	}
}

// login checks {"password"} against the shared admin password and sets the session cookie.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.password == "" || len(h.sessions.secret) == 0 {
			h.responder.WriteError(w, errs.NewServiceDisabledError("Admin login"))
			return
		}

		payload, err := readJSONObject(w, r, "login")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		password, _ := payload["password"].(string)
		if password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) != 1 {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Failed admin login")
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid password"))
			return
		}

		token, expiresAt, err := h.sessions.issue(time.Now())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign session", err))
			return
		}

		http.SetCookie(w, h.sessions.cookie(token, expiresAt))
		h.logger.Info().Msg("Admin logged in")
		h.responder.WriteSuccess(w)
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expired := h.sessions.cookie("", time.Unix(0, 0))
		expired.MaxAge = -1
		http.SetCookie(w, expired)
		h.responder.WriteSuccess(w)
	}
}

// session reports whether the request carries a valid admin session. It never fails.
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authenticated := false
		if cookie, err := r.Cookie(sessionCookieName); err == nil && len(h.sessions.secret) > 0 {
			_, verifyErr := h.sessions.verify(cookie.Value)
			authenticated = verifyErr == nil
		}
		h.responder.WriteJSON(w, sessionResponse{Authenticated: authenticated})
	}
}
