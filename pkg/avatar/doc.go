// Package avatar defines the feature catalog and the avatar configuration
// record that drives the compositor.
//
// # Catalog
//
// An avatar is described by thirteen feature slots (face shape, skin tone,
// hair style, ...). Each slot has a fixed, ordered set of allowed variants:
//
//	avatar.Variants(avatar.SlotHairStyle)
//	// [bald short medium long curly straight wavy buzz-cut mohawk ponytail braids afro]
//
// Shape slots are typed string enums ([FaceShape], [HairStyle], ...) so the
// renderer can dispatch on them through lookup tables. Color slots hold
// #rrggbb literals ([Color]); the background slot additionally accepts the
// sentinel [BackgroundGradient].
//
// # Config
//
// A [Config] assigns exactly one variant to every slot. A config is valid
// only when every slot is set and every value belongs to its slot's catalog;
// [Config.Validate] reports all violations at once. Configs are plain values:
// edit one slot with [Config.With], replace all of them with [Random] or
// [Default].
//
//	cfg := avatar.Default()
//	cfg, err := cfg.With(avatar.SlotHairStyle, "curly")
//	if err != nil {
//	    return err // INVALID_VARIANT
//	}
package avatar
