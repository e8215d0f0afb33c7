package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/buildinfo"
	"github.com/matzehuels/avatarkit/pkg/errors"
	avatario "github.com/matzehuels/avatarkit/pkg/io"
	"github.com/matzehuels/avatarkit/pkg/pipeline"
	"github.com/matzehuels/avatarkit/pkg/session"
	"github.com/matzehuels/avatarkit/pkg/studio"
)

// Thumbnail bounds for ?size=.
const (
	minThumb = 16
	maxThumb = 1024
)

// Query parameters that are render options rather than slots.
var renderParams = map[string]bool{
	"width": true, "height": true, "scale": true, "seed": true,
	"clothing_color": true, "size": true, "download": true, "refresh": true,
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type slotInfo struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Color    bool     `json:"color"`
	Variants []string `json:"variants"`
}

type catalogResponse struct {
	Slots        []slotInfo `json:"slots"`
	Combinations uint64     `json:"combinations"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := catalogResponse{Combinations: avatar.Combinations()}
	for _, sl := range avatar.Slots() {
		resp.Slots = append(resp.Slots, slotInfo{
			Key:      sl.Key(),
			Label:    sl.Label(),
			Color:    sl.IsColor(),
			Variants: avatar.Variants(sl),
		})
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, resp)
}

type avatarResponse struct {
	Avatar      avatar.Config `json:"avatar"`
	Fingerprint string        `json:"fingerprint"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ExpiresAt   time.Time     `json:"expires_at,omitzero"`
}

func newAvatarResponse(sess *session.Session) avatarResponse {
	return avatarResponse{
		Avatar:      sess.Avatar,
		Fingerprint: sess.Avatar.Fingerprint(),
		UpdatedAt:   sess.UpdatedAt,
		ExpiresAt:   sess.ExpiresAt,
	}
}

func (s *Server) handleGetAvatar(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAvatarResponse(sess))
}

// edit loads the session, applies fn to a controller holding its avatar and
// stores the result.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, fn func(*studio.Controller) error) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctrl, err := studio.New(studio.WithConfig(sess.Avatar), studio.WithLogger(s.Logger))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := fn(ctrl); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.saveSession(r, sess, ctrl.Config()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAvatarResponse(sess))
}

func (s *Server) handlePutAvatar(w http.ResponseWriter, r *http.Request) {
	cfg, err := avatario.ReadConfigStrict(http.MaxBytesReader(w, r.Body, 1<<16), avatario.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.edit(w, r, func(c *studio.Controller) error { return c.Load(cfg) })
}

type setSlotRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleSetSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := avatar.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req setSlotRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	s.edit(w, r, func(c *studio.Controller) error { return c.Set(slot, req.Value) })
}

func (s *Server) handleRandomize(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, func(c *studio.Controller) error {
		c.Randomize()
		return nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, func(c *studio.Controller) error {
		c.Reset()
		return nil
	})
}

func (s *Server) handleAvatarPNG(w http.ResponseWriter, r *http.Request) {
	s.renderSession(w, r, pipeline.FormatPNG)
}

func (s *Server) handleAvatarSVG(w http.ResponseWriter, r *http.Request) {
	s.renderSession(w, r, pipeline.FormatSVG)
}

func (s *Server) renderSession(w http.ResponseWriter, r *http.Request, format string) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Config = sess.Avatar
	opts.Formats = []string{format}
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, r, opts)
}

// handleRender renders slots given in the query string on top of the default
// avatar, without touching the session.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts, err := renderOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	slots := map[string]string{}
	for k := range q {
		if !renderParams[k] {
			slots[k] = q.Get(k)
		}
	}
	if opts.Config, err = avatar.Default().Apply(slots); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if opts.Cacheable() {
		w.Header().Set("Cache-Control", "public, max-age=86400")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	s.render(w, r, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	q := r.URL.Query()
	format := opts.Formats[0]

	size, err := thumbnailSize(q, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := res.Artifacts[format]

	if size > 0 {
		if data, err = thumbnail(data, size); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if isTrue(q.Get("download")) {
		name := studio.ExportFilename(s.Now())
		if format != pipeline.FormatPNG {
			name = name[:len(name)-len(".png")] + "." + format
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Avatar-Seed", strconv.FormatUint(res.Seed, 10))
	w.Header().Set("X-Avatar-Fingerprint", res.Fingerprint)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderOptions reads size, scale, seed and clothing color from q.
func renderOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error
	if opts.Width, err = intParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height"); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale %q is not a number", v)
		}
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed %q is not an unsigned integer", v)
		}
	}
	opts.ClothingColor = q.Get("clothing_color")
	opts.Refresh = isTrue(q.Get("refresh"))
	return opts, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s %q is not an integer", name, v)
	}
	return n, nil
}

func isTrue(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

// thumbnail downsizes a PNG to fit a size×size box.
// thumbnailSize reads ?size= for format. Zero means no thumbnail.
func thumbnailSize(q url.Values, format string) (int, error) {
	if !q.Has("size") {
		return 0, nil
	}
	if format != pipeline.FormatPNG {
		return 0, errors.New(errors.ErrCodeInvalidInput, "size only applies to png")
	}
	v := q.Get("size")
	size, err := strconv.Atoi(v)
	if err != nil || size < minThumb || size > maxThumb {
		return 0, errors.New(errors.ErrCodeInvalidSize, "size must be an integer in [%d, %d], got %q", minThumb, maxThumb, v)
	}
	return size, nil
}

func thumbnail(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode png")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, size, size, imaging.Lanczos), imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode thumbnail")
	}
	return buf.Bytes(), nil
}
