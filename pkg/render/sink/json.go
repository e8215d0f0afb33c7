package sink

import (
	"encoding/json"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
)

type jsonOutput struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Seed        uint64        `json:"seed,omitempty"`
	Fingerprint string        `json:"fingerprint"`
	Avatar      avatar.Config `json:"avatar"`
	Features    []jsonFeature `json:"features"`
	Layers      []string      `json:"layers"`
}

type jsonFeature struct {
	Slot    string `json:"slot"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Index   int    `json:"index"`
	Choices int    `json:"choices"`
}

// RenderJSON exports cfg with its catalog position per slot. The output can
// be read back by pkg/io to reproduce the avatar.
func RenderJSON(cfg avatar.Config, opts ...Option) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	out := jsonOutput{
		Width:       o.width,
		Height:      o.height,
		Seed:        o.seed,
		Fingerprint: cfg.Fingerprint(),
		Avatar:      cfg,
		Layers:      compositor.Layers(),
	}
	for _, s := range avatar.Slots() {
		v := cfg.Get(s)
		out.Features = append(out.Features, jsonFeature{
			Slot:    s.Key(),
			Label:   s.Label(),
			Value:   v,
			Index:   avatar.Index(s, v),
			Choices: len(avatar.Variants(s)),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
