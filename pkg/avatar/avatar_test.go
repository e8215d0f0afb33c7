package avatar

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matzehuels/avatarkit/pkg/errors"
)

func TestSlotsCanonicalOrder(t *testing.T) {
	want := []string{
		"face_shape", "skin_tone", "hair_style", "hair_color", "eye_shape",
		"eye_color", "eyebrows", "nose", "mouth", "facial_hair",
		"accessories", "clothing", "background",
	}
	slots := Slots()
	if len(slots) != len(want) {
		t.Fatalf("len(Slots()) = %d, want %d", len(slots), len(want))
	}
	for i, s := range slots {
		if s.Key() != want[i] {
			t.Errorf("Slots()[%d] = %s, want %s", i, s.Key(), want[i])
		}
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		want    Slot
		wantErr bool
	}{
		{"face_shape", SlotFaceShape, false},
		{"faceShape", SlotFaceShape, false},
		{"facialHair", SlotFacialHair, false},
		{"background", SlotBackground, false},
		{"eyebrows", SlotEyebrows, false},
		{"tattoos", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlot(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSlot(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidSlot) {
					t.Errorf("ParseSlot(%q) code = %s, want INVALID_SLOT", tt.name, errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSlot(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestVariantsIsCopy(t *testing.T) {
	vs := Variants(SlotNose)
	vs[0] = "mutated"
	if Variants(SlotNose)[0] != "small" {
		t.Error("Variants should return a copy")
	}
	if Variants(Slot(99)) != nil {
		t.Error("Variants(invalid) should be nil")
	}
}

func TestCombinations(t *testing.T) {
	if got, want := Combinations(), uint64(47775744000); got != want {
		t.Errorf("Combinations() = %d, want %d", got, want)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := Default()
	c.HairStyle = "dreadlocks"
	c.Background = ""
	c.SkinTone = "#123456"

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
	}
	for _, frag := range []string{"hair_style", "background is missing", "skin_tone"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("Validate() = %q, missing %q", err, frag)
		}
	}
}

func TestZeroConfigInvalid(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("zero Config should not validate")
	}
}

func TestWith(t *testing.T) {
	base := Default()

	got, err := base.With(SlotHairStyle, "curly")
	if err != nil {
		t.Fatalf("With(hair_style, curly) error: %v", err)
	}
	if got.HairStyle != HairCurly {
		t.Errorf("HairStyle = %s, want curly", got.HairStyle)
	}
	if base.HairStyle != HairMedium {
		t.Error("With modified its receiver")
	}

	unchanged, err := base.With(SlotHairStyle, "dreadlocks")
	if !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Fatalf("With(invalid) error = %v, want INVALID_VARIANT", err)
	}
	if unchanged != base {
		t.Error("With(invalid) should return the config unchanged")
	}
}

func TestWithEveryVariant(t *testing.T) {
	for _, s := range Slots() {
		for _, v := range Variants(s) {
			c, err := Default().With(s, v)
			if err != nil {
				t.Fatalf("With(%s, %s) error: %v", s, v, err)
			}
			if c.Get(s) != v {
				t.Errorf("Get(%s) = %q after With(%q)", s, c.Get(s), v)
			}
			if err := c.Validate(); err != nil {
				t.Errorf("With(%s, %s).Validate() = %v", s, v, err)
			}
		}
	}
}

func TestApply(t *testing.T) {
	c, err := Default().Apply(map[string]string{"hairStyle": "afro", "mouth": "smile"})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if c.HairStyle != HairAfro || c.Mouth != MouthSmile {
		t.Errorf("Apply = %+v", c)
	}

	if _, err := Default().Apply(map[string]string{"ears": "big"}); err == nil {
		t.Error("Apply(unknown slot) should fail")
	}
}

func TestApplyRejectsDuplicateAliases(t *testing.T) {
	_, err := Default().Apply(map[string]string{"face_shape": "circle", "faceShape": "square"})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("error = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), "face_shape") {
		t.Errorf("error %q should name the slot", err)
	}
}

func TestApplyReportsFirstSlotInOrder(t *testing.T) {
	m := map[string]string{"mouth": "grin", "nose": "roman", "accessories": "monocle"}
	for i := 0; i < 20; i++ {
		_, err := Default().Apply(m)
		if !errors.Is(err, errors.ErrCodeInvalidVariant) {
			t.Fatalf("error = %v, want INVALID_VARIANT", err)
		}
		if !strings.Contains(err.Error(), "nose") {
			t.Fatalf("run %d reported %q, want the nose error", i, err)
		}
	}
}

func TestMapRoundTrip(t *testing.T) {
	c := Random(rand.New(rand.NewPCG(1, 2)))
	back, err := Config{}.Apply(c.Map())
	if err != nil {
		t.Fatalf("Apply(Map()) error: %v", err)
	}
	if back != c {
		t.Errorf("Apply(Map()) = %+v, want %+v", back, c)
	}
}

func TestRandomAlwaysValid(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 1000; i++ {
		if err := Random(r).Validate(); err != nil {
			t.Fatalf("Random() #%d invalid: %v", i, err)
		}
	}
	if err := Random(nil).Validate(); err != nil {
		t.Fatalf("Random(nil) invalid: %v", err)
	}
}

func TestRandomDeterministicWithSeed(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(42, 0)))
	b := Random(rand.New(rand.NewPCG(42, 0)))
	if a != b {
		t.Errorf("Random with equal seeds differs:\n%+v\n%+v", a, b)
	}
}

func TestRandomCoversCatalog(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 9))
	seen := make(map[Slot]map[string]bool)
	for i := 0; i < 2000; i++ {
		c := Random(r)
		for _, s := range Slots() {
			if seen[s] == nil {
				seen[s] = map[string]bool{}
			}
			seen[s][c.Get(s)] = true
		}
	}
	for _, s := range Slots() {
		if len(seen[s]) != len(Variants(s)) {
			t.Errorf("slot %s: saw %d variants, want %d", s, len(seen[s]), len(Variants(s)))
		}
	}
}

func TestJSONKeys(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, s := range Slots() {
		if _, ok := m[s.Key()]; !ok {
			t.Errorf("JSON missing key %s", s.Key())
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal configs should share a fingerprint")
	}
	c, _ := a.With(SlotNose, "wide")
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different configs should not share a fingerprint")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("len(Fingerprint()) = %d, want 64", len(a.Fingerprint()))
	}
}

func ExampleConfig_With() {
	cfg, err := Default().With(SlotHairStyle, "mohawk")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.HairStyle)

	_, err = cfg.With(SlotHairStyle, "mullet")
	fmt.Println(errors.GetCode(err))
	// Output:
	// mohawk
	// INVALID_VARIANT
}
