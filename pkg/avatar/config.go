package avatar

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/avatarkit/pkg/errors"
)

// Config assigns one variant to every feature slot.
//
// The zero value is not valid; start from [Default] or [Random].
type Config struct {
	FaceShape   FaceShape    `json:"face_shape" toml:"face_shape" yaml:"face_shape"`
	SkinTone    Color        `json:"skin_tone" toml:"skin_tone" yaml:"skin_tone"`
	HairStyle   HairStyle    `json:"hair_style" toml:"hair_style" yaml:"hair_style"`
	HairColor   Color        `json:"hair_color" toml:"hair_color" yaml:"hair_color"`
	EyeShape    EyeShape     `json:"eye_shape" toml:"eye_shape" yaml:"eye_shape"`
	EyeColor    Color        `json:"eye_color" toml:"eye_color" yaml:"eye_color"`
	Eyebrows    EyebrowStyle `json:"eyebrows" toml:"eyebrows" yaml:"eyebrows"`
	Nose        NoseShape    `json:"nose" toml:"nose" yaml:"nose"`
	Mouth       MouthShape   `json:"mouth" toml:"mouth" yaml:"mouth"`
	FacialHair  FacialHair   `json:"facial_hair" toml:"facial_hair" yaml:"facial_hair"`
	Accessories Accessory    `json:"accessories" toml:"accessories" yaml:"accessories"`
	Clothing    Clothing     `json:"clothing" toml:"clothing" yaml:"clothing"`
	Background  Background   `json:"background" toml:"background" yaml:"background"`
}

// Default returns the initial avatar shown by the editor.
func Default() Config {
	return Config{
		FaceShape:   FaceOval,
		SkinTone:    "#eaa485",
		HairStyle:   HairMedium,
		HairColor:   "#8b4513",
		EyeShape:    EyeNormal,
		EyeColor:    "#654321",
		Eyebrows:    BrowNormal,
		Nose:        NoseNormal,
		Mouth:       MouthNormal,
		FacialHair:  FacialHairNone,
		Accessories: AccessoryNone,
		Clothing:    ClothingShirt,
		Background:  "#ffffff",
	}
}

// Get returns the value held by slot s, or "" for an unknown slot.
func (c Config) Get(s Slot) string {
	switch s {
	case SlotFaceShape:
		return string(c.FaceShape)
	case SlotSkinTone:
		return string(c.SkinTone)
	case SlotHairStyle:
		return string(c.HairStyle)
	case SlotHairColor:
		return string(c.HairColor)
	case SlotEyeShape:
		return string(c.EyeShape)
	case SlotEyeColor:
		return string(c.EyeColor)
	case SlotEyebrows:
		return string(c.Eyebrows)
	case SlotNose:
		return string(c.Nose)
	case SlotMouth:
		return string(c.Mouth)
	case SlotFacialHair:
		return string(c.FacialHair)
	case SlotAccessories:
		return string(c.Accessories)
	case SlotClothing:
		return string(c.Clothing)
	case SlotBackground:
		return string(c.Background)
	}
	return ""
}

// With returns a copy of c with slot s set to v. The receiver is never
// modified; an out-of-catalog value yields an INVALID_VARIANT error.
func (c Config) With(s Slot, v string) (Config, error) {
	if !s.valid() {
		return c, errors.New(errors.ErrCodeInvalidSlot, "unknown feature slot %d", int(s))
	}
	if !Contains(s, v) {
		return c, errors.New(errors.ErrCodeInvalidVariant, "%q is not a valid %s", v, s.Key())
	}
	c.set(s, v)
	return c, nil
}

func (c *Config) set(s Slot, v string) {
	switch s {
	case SlotFaceShape:
		c.FaceShape = FaceShape(v)
	case SlotSkinTone:
		c.SkinTone = Color(v)
	case SlotHairStyle:
		c.HairStyle = HairStyle(v)
	case SlotHairColor:
		c.HairColor = Color(v)
	case SlotEyeShape:
		c.EyeShape = EyeShape(v)
	case SlotEyeColor:
		c.EyeColor = Color(v)
	case SlotEyebrows:
		c.Eyebrows = EyebrowStyle(v)
	case SlotNose:
		c.Nose = NoseShape(v)
	case SlotMouth:
		c.Mouth = MouthShape(v)
	case SlotFacialHair:
		c.FacialHair = FacialHair(v)
	case SlotAccessories:
		c.Accessories = Accessory(v)
	case SlotClothing:
		c.Clothing = Clothing(v)
	case SlotBackground:
		c.Background = Background(v)
	}
}

// Validate reports every missing or out-of-catalog slot in a single
// INVALID_CONFIG error. It returns nil when c is renderable.
func (c Config) Validate() error {
	var problems []string
	for _, s := range Slots() {
		v := c.Get(s)
		switch {
		case v == "":
			problems = append(problems, s.Key()+" is missing")
		case !Contains(s, v):
			problems = append(problems, fmt.Sprintf("%s %q is not in the catalog", s.Key(), v))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid avatar: %s", strings.Join(problems, "; "))
}

// Map returns the config keyed by slot key.
func (c Config) Map() map[string]string {
	m := make(map[string]string, slotCount)
	for _, s := range Slots() {
		m[s.Key()] = c.Get(s)
	}
	return m
}

// Apply sets every slot named in m, resolving keys with [ParseSlot].
// Keys are resolved in sorted order and values applied in [Slots] order, so
// the result and the reported error do not depend on map iteration. Two
// keys naming the same slot (for example "face_shape" and "faceShape") are
// an INVALID_CONFIG error. On error c is returned unchanged.
func (c Config) Apply(m map[string]string) (Config, error) {
	resolved := make(map[Slot]string, len(m))
	keys := make(map[Slot]string, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		s, err := ParseSlot(k)
		if err != nil {
			return c, err
		}
		if prev, dup := keys[s]; dup {
			return c, errors.New(errors.ErrCodeInvalidConfig, "%q and %q both set %s", prev, k, s.Key())
		}
		keys[s] = k
		resolved[s] = m[k]
	}

	out := c
	for _, s := range Slots() {
		v, ok := resolved[s]
		if !ok {
			continue
		}
		var err error
		if out, err = out.With(s, v); err != nil {
			return c, err
		}
	}
	return out, nil
}

// Fingerprint returns a stable content hash of c, suitable as a cache key.
func (c Config) Fingerprint() string {
	// Struct field order is fixed, so the encoding is canonical.
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
