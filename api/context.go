package api

import (
	"context"
	"errors"
	"time"
)

type keyType string

const sessionKey keyType = "session"

// session is the verified admin session carried by the request context.
type session struct {
	Subject   string
	ExpiresAt time.Time
}

func ctxWithSession(ctx context.Context, s session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func ctxGetSession(ctx context.Context) (session, error) {
	if ctxValue := ctx.Value(sessionKey); ctxValue == nil {
		return session{}, errors.New("key not found in context")
	} else if s, ok := ctxValue.(session); !ok {
		return session{}, errors.New("value is not of type `session`")
	} else {
		return s, nil
	}
}
