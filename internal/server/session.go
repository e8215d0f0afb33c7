package server

import (
	"net/http"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/session"
)

// loadSession returns the caller's session, starting a new one (and setting
// the cookie) when the cookie is missing, malformed, or points at an expired
// session.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	ctx := r.Context()
	if c, err := r.Cookie(cookieName); err == nil && session.ValidID(c.Value) {
		sess, err := s.Sessions.Get(ctx, c.Value)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	sess := session.New(avatar.Default(), s.SessionTTL)
	if err := s.Sessions.Set(ctx, sess); err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.SessionTTL.Seconds()),
	})
	s.Logger.Debug("new session", "id", sess.ID)
	return sess, nil
}

// saveSession stores cfg in sess and extends its expiry.
func (s *Server) saveSession(r *http.Request, sess *session.Session, cfg avatar.Config) error {
	sess.Update(cfg, s.SessionTTL)
	return s.Sessions.Set(r.Context(), sess)
}
