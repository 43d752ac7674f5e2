package recovery

import "fmt"

// AlbumMode selects how object keys are mapped to album paths.
type AlbumMode string

const (
	// ModeAuto files by directory, except sharded YYYY/MM upload keys
	// which stay unattached.
	ModeAuto AlbumMode = "auto"
	// ModeByDir files every object under its parent directory.
	ModeByDir AlbumMode = "by-dir"
	// ModeNone leaves every object unattached.
	ModeNone AlbumMode = "none"
)

// ParseAlbumMode validates a mode string from the CLI.
func ParseAlbumMode(s string) (AlbumMode, error) {
	switch AlbumMode(s) {
	case ModeAuto, ModeByDir, ModeNone:
		return AlbumMode(s), nil
	default:
		return "", fmt.Errorf("unsupported album mode: %q (want auto, by-dir or none)", s)
	}
}

// Options controls a recovery run.
type Options struct {
	// Subdir restricts the walk to one directory under the storage root.
	// Keys stay relative to the root, so restricting the walk never
	// changes what a file's key would be.
	Subdir string

	// Mode decides album placement for scanned keys.
	Mode AlbumMode

	// PublicAlbums marks albums created during this run as public.
	PublicAlbums bool

	// IncludeHidden walks dotfiles and dot-directories instead of
	// skipping them.
	IncludeHidden bool

	// Repair re-checks rows whose key already exists and rewrites
	// drifted metadata.
	Repair bool

	// Preview runs the full pipeline without writing to the catalog.
	Preview bool
}

// RunStats summarizes one recovery run.
type RunStats struct {
	// Scanned counts every object the walk visited.
	Scanned int `json:"scanned"`

	// Inserted counts file rows created.
	Inserted int `json:"inserted"`

	// Repaired counts existing rows whose metadata was rewritten.
	Repaired int `json:"repaired"`

	// CreatedAlbums counts album rows materialized for chain segments.
	CreatedAlbums int `json:"created_albums"`

	// SkippedNonImage counts objects rejected by the image filter.
	SkippedNonImage int `json:"skipped_non_image"`

	// SkippedExisting counts objects whose key already had a row.
	SkippedExisting int `json:"skipped_existing"`

	// Failed counts per-file errors that did not abort the run.
	Failed int `json:"failed"`
}
