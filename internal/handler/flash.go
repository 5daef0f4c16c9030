package handler

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "organizer"

// Flash categories.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// Session values are gob-encoded into the cookie.
	gob.Register(Flash{})
}

// Flasher stores flash messages in a signed cookie session.
type Flasher struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewFlasher signs session cookies with secret.
func NewFlasher(secret []byte, logger *slog.Logger) *Flasher {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flasher{store: store, logger: logger}
}

// session returns the request's session. A cookie that fails to decode (for
// example after a secret change) yields a fresh session.
func (f *Flasher) session(r *http.Request) *sessions.Session {
	sess, err := f.store.Get(r, sessionName)
	if err != nil {
		f.logger.Debug("discarding unreadable session", slog.String("error", err.Error()))
	}
	return sess
}

// Add queues a message. It sets a cookie, so it must run before the response
// status is written.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, category, message string) {
	sess := f.session(r)
	sess.AddFlash(Flash{Category: category, Message: message})
	if err := sess.Save(r, w); err != nil {
		f.logger.Error("failed to save flash", slog.String("error", err.Error()))
	}
}

// Pop returns and clears the queued messages.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	sess := f.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		f.logger.Error("failed to clear flashes", slog.String("error", err.Error()))
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if fl, ok := v.(Flash); ok {
			flashes = append(flashes, fl)
		}
	}
	return flashes
}
