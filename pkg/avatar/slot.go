package avatar

import (
	"github.com/matzehuels/avatarkit/pkg/errors"
)

// Slot identifies one feature of an avatar.
type Slot int

// Feature slots in canonical order.
const (
	SlotFaceShape Slot = iota
	SlotSkinTone
	SlotHairStyle
	SlotHairColor
	SlotEyeShape
	SlotEyeColor
	SlotEyebrows
	SlotNose
	SlotMouth
	SlotFacialHair
	SlotAccessories
	SlotClothing
	SlotBackground

	slotCount
)

var slotKeys = [slotCount]string{
	SlotFaceShape:   "face_shape",
	SlotSkinTone:    "skin_tone",
	SlotHairStyle:   "hair_style",
	SlotHairColor:   "hair_color",
	SlotEyeShape:    "eye_shape",
	SlotEyeColor:    "eye_color",
	SlotEyebrows:    "eyebrows",
	SlotNose:        "nose",
	SlotMouth:       "mouth",
	SlotFacialHair:  "facial_hair",
	SlotAccessories: "accessories",
	SlotClothing:    "clothing",
	SlotBackground:  "background",
}

var slotLabels = [slotCount]string{
	SlotFaceShape:   "Face shape",
	SlotSkinTone:    "Skin tone",
	SlotHairStyle:   "Hair style",
	SlotHairColor:   "Hair color",
	SlotEyeShape:    "Eye shape",
	SlotEyeColor:    "Eye color",
	SlotEyebrows:    "Eyebrows",
	SlotNose:        "Nose",
	SlotMouth:       "Mouth",
	SlotFacialHair:  "Facial hair",
	SlotAccessories: "Accessories",
	SlotClothing:    "Clothing",
	SlotBackground:  "Background",
}

// slotAliases maps the editor's control identifiers to slots.
var slotAliases = map[string]Slot{
	"faceShape":  SlotFaceShape,
	"skinTone":   SlotSkinTone,
	"hairStyle":  SlotHairStyle,
	"hairColor":  SlotHairColor,
	"eyeShape":   SlotEyeShape,
	"eyeColor":   SlotEyeColor,
	"facialHair": SlotFacialHair,
}

// Slots returns every slot in canonical order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// Key returns the snake_case identifier used in config files and URLs.
func (s Slot) Key() string {
	if !s.valid() {
		return ""
	}
	return slotKeys[s]
}

// Label returns a human-readable name.
func (s Slot) Label() string {
	if !s.valid() {
		return ""
	}
	return slotLabels[s]
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	if k := s.Key(); k != "" {
		return k
	}
	return "slot(invalid)"
}

// IsColor reports whether the slot holds a #rrggbb color literal.
func (s Slot) IsColor() bool {
	return s == SlotSkinTone || s == SlotHairColor || s == SlotEyeColor
}

func (s Slot) valid() bool {
	return s >= 0 && s < slotCount
}

// ParseSlot resolves a slot from its snake_case key or camelCase control id.
func ParseSlot(name string) (Slot, error) {
	for i, k := range slotKeys {
		if k == name {
			return Slot(i), nil
		}
	}
	if s, ok := slotAliases[name]; ok {
		return s, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidSlot, "unknown feature slot %q", name)
}
