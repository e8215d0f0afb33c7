package avatar

import "slices"

// FaceShape selects the face primitive.
type FaceShape string

const (
	FaceCircle  FaceShape = "circle"
	FaceOval    FaceShape = "oval"
	FaceSquare  FaceShape = "square"
	FaceHeart   FaceShape = "heart"
	FaceDiamond FaceShape = "diamond"
)

// HairStyle selects the hair composition.
type HairStyle string

const (
	HairBald     HairStyle = "bald"
	HairShort    HairStyle = "short"
	HairMedium   HairStyle = "medium"
	HairLong     HairStyle = "long"
	HairCurly    HairStyle = "curly"
	HairStraight HairStyle = "straight"
	HairWavy     HairStyle = "wavy"
	HairBuzzCut  HairStyle = "buzz-cut"
	HairMohawk   HairStyle = "mohawk"
	HairPonytail HairStyle = "ponytail"
	HairBraids   HairStyle = "braids"
	HairAfro     HairStyle = "afro"
)

// EyeShape selects the sclera proportions.
type EyeShape string

const (
	EyeNormal EyeShape = "normal"
	EyeLarge  EyeShape = "large"
	EyeSmall  EyeShape = "small"
	EyeNarrow EyeShape = "narrow"
	EyeRound  EyeShape = "round"
	EyeAlmond EyeShape = "almond"
)

// EyebrowStyle selects the eyebrow primitive and thickness.
type EyebrowStyle string

const (
	BrowThin   EyebrowStyle = "thin"
	BrowNormal EyebrowStyle = "normal"
	BrowThick  EyebrowStyle = "thick"
	BrowBushy  EyebrowStyle = "bushy"
	BrowArched EyebrowStyle = "arched"
)

// NoseShape selects the nose proportions.
type NoseShape string

const (
	NoseSmall  NoseShape = "small"
	NoseNormal NoseShape = "normal"
	NoseLarge  NoseShape = "large"
	NoseWide   NoseShape = "wide"
)

// MouthShape selects the mouth primitive.
type MouthShape string

const (
	MouthSmall   MouthShape = "small"
	MouthNormal  MouthShape = "normal"
	MouthWide    MouthShape = "wide"
	MouthSmile   MouthShape = "smile"
	MouthFrown   MouthShape = "frown"
	MouthNeutral MouthShape = "neutral"
)

// FacialHair selects the facial hair overlay.
type FacialHair string

const (
	FacialHairNone      FacialHair = "none"
	FacialHairMustache  FacialHair = "mustache"
	FacialHairBeard     FacialHair = "beard"
	FacialHairGoatee    FacialHair = "goatee"
	FacialHairStubble   FacialHair = "stubble"
	FacialHairFullBeard FacialHair = "full-beard"
)

// Accessory selects the accessory overlay.
type Accessory string

const (
	AccessoryNone       Accessory = "none"
	AccessoryGlasses    Accessory = "glasses"
	AccessorySunglasses Accessory = "sunglasses"
	AccessoryHat        Accessory = "hat"
	AccessoryCap        Accessory = "cap"
	AccessoryEarrings   Accessory = "earrings"
	AccessoryNecklace   Accessory = "necklace"
	AccessoryScarf      Accessory = "scarf"
)

// Clothing selects the clothing silhouette.
type Clothing string

const (
	ClothingShirt   Clothing = "shirt"
	ClothingTShirt  Clothing = "t-shirt"
	ClothingSweater Clothing = "sweater"
	ClothingJacket  Clothing = "jacket"
	ClothingDress   Clothing = "dress"
	ClothingHoodie  Clothing = "hoodie"
)

// Color is a #rrggbb literal.
type Color string

// Background is a #rrggbb literal or [BackgroundGradient].
type Background string

// BackgroundGradient selects the fixed two-stop diagonal gradient.
const BackgroundGradient Background = "gradient"

// catalog holds the ordered variants of every slot.
var catalog = [slotCount][]string{
	SlotFaceShape:   {"circle", "oval", "square", "heart", "diamond"},
	SlotSkinTone:    {"#fdbcb4", "#eaa485", "#d08b5b", "#ae7242", "#8d5524", "#754c24", "#613d24", "#4a2c2a"},
	SlotHairStyle:   {"bald", "short", "medium", "long", "curly", "straight", "wavy", "buzz-cut", "mohawk", "ponytail", "braids", "afro"},
	SlotHairColor:   {"#2c1b18", "#8b4513", "#daa520", "#dc143c", "#a0522d", "#808080", "#f5f5f5", "#ff69b4"},
	SlotEyeShape:    {"normal", "large", "small", "narrow", "round", "almond"},
	SlotEyeColor:    {"#654321", "#4169e1", "#228b22", "#8fbc8f", "#708090", "#ffbf00"},
	SlotEyebrows:    {"thin", "normal", "thick", "bushy", "arched"},
	SlotNose:        {"small", "normal", "large", "wide"},
	SlotMouth:       {"small", "normal", "wide", "smile", "frown", "neutral"},
	SlotFacialHair:  {"none", "mustache", "beard", "goatee", "stubble", "full-beard"},
	SlotAccessories: {"none", "glasses", "sunglasses", "hat", "cap", "earrings", "necklace", "scarf"},
	SlotClothing:    {"shirt", "t-shirt", "sweater", "jacket", "dress", "hoodie"},
	SlotBackground:  {"#ffffff", "#e6f3ff", "#e6ffe6", "#ffe6f3", "#fff9e6", "#f0f0f0", "#1e3a8a", "#065f46", "#7c2d92", "gradient"},
}

// Variants returns a copy of the ordered variants allowed for s.
// It returns nil for an unknown slot.
func Variants(s Slot) []string {
	if !s.valid() {
		return nil
	}
	return slices.Clone(catalog[s])
}

// Contains reports whether v is an allowed variant of s.
func Contains(s Slot, v string) bool {
	if !s.valid() {
		return false
	}
	return slices.Contains(catalog[s], v)
}

// Index returns the position of v within the variants of s, or -1.
func Index(s Slot, v string) int {
	if !s.valid() {
		return -1
	}
	return slices.Index(catalog[s], v)
}

// Combinations returns the number of distinct valid configurations.
func Combinations() uint64 {
	n := uint64(1)
	for _, vs := range catalog {
		n *= uint64(len(vs))
	}
	return n
}
