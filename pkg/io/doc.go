// Package io reads and writes avatar configurations as JSON, TOML, or YAML.
//
// # Formats
//
// A configuration document is a flat object keyed by slot:
//
//	{
//	  "face_shape": "oval",
//	  "skin_tone": "#f5d0a9",
//	  "hair_style": "curly",
//	  ...
//	}
//
// The same keys work in TOML and YAML. Slot names are resolved with
// [avatar.ParseSlot], so the camelCase form "hairStyle" is accepted too.
// Slots missing from a document keep their [avatar.Default] value.
//
// Documents written by the JSON sink carry the configuration under an
// "avatar" key next to render metadata; [ReadConfig] unwraps that key, so a
// rendered .json file can be fed back in.
//
// # Import
//
// Use [ImportConfig] to read from a file path (format chosen by extension),
// or [ReadConfig] to read from any io.Reader:
//
//	cfg, err := io.ImportConfig("me.toml")
//
// # Export
//
// Use [ExportConfig] to write to a file, or [WriteConfig] to write to any
// io.Writer. Exported documents list every slot.
package io
