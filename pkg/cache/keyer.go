package cache

// Keyer derives cache keys for rendered outputs.
type Keyer interface {
	// ArtifactKey identifies one rendered format of one avatar.
	ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string

	// SheetKey identifies a contact sheet for one slot.
	SheetKey(slot string, opts SheetKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes an artifact's bytes.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Scale         float64 `json:"scale"`
	Seed          uint64  `json:"seed"`
	ClothingColor string  `json:"clothing_color,omitempty"`
}

// SheetKeyOpts lists every option that changes a contact sheet.
type SheetKeyOpts struct {
	Base    string `json:"base"` // fingerprint of the base avatar
	Cell    int    `json:"cell"`
	Columns int    `json:"columns"`
	Seed    uint64 `json:"seed"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", fingerprint, opts)
}

// SheetKey returns "sheet:<slot>:<hash>".
func (DefaultKeyer) SheetKey(slot string, opts SheetKeyOpts) string {
	return hashKey("sheet:"+slot, opts)
}

var _ Keyer = DefaultKeyer{}
