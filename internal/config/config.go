package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/a11yscan/a11yscan/internal/model"
)

// Default configuration values. Scheduler and guard defaults mirror the
// budgets a cooperative host can sustain without visible stalls.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "a11yscan"

	// DefaultConfigFile is the config file name searched for in the
	// working directory before falling back to the XDG config dir.
	DefaultConfigFile = ".a11yscan.yml"

	// DefaultChunkSize is the maximum number of elements evaluated
	// between two yields. 25 elements keeps a chunk comfortably inside
	// one frame budget on typical documents.
	DefaultChunkSize = 25

	// DefaultChunkBudget is the per-chunk time budget. A chunk ends when
	// either the element count or this budget is exhausted, whichever
	// comes first. 16ms corresponds to one 60Hz frame.
	DefaultChunkBudget = 16 * time.Millisecond

	// DefaultMaxDuration is the wall-clock budget for a whole session.
	// When exceeded, the session is force-finalized with the findings
	// collected so far rather than treated as a failure.
	DefaultMaxDuration = 5000 * time.Millisecond

	// DefaultCooldown is the minimum interval between session starts
	// enforced by the concurrency guard.
	DefaultCooldown = 1000 * time.Millisecond

	// DefaultMinFontSize is the minimum readable font size in pixels for
	// the small-text check.
	DefaultMinFontSize = 12

	// DefaultMarkerClass is the overlay class token applied to
	// annotation markers.
	DefaultMarkerClass = "a11yscan-marker"

	// DefaultSnippetLength is the maximum length of the sanitized
	// element snippet stored on each finding.
	DefaultSnippetLength = 200
)

// RuleConfig is the full configuration tree: one subtree per rule
// category, display filter toggles, and scheduler budgets. The YAML tags
// define the persisted layout.
type RuleConfig struct {
	Images    ImagesConfig    `yaml:"images"`
	Buttons   ButtonsConfig   `yaml:"buttons"`
	Links     LinksConfig     `yaml:"links"`
	Forms     FormsConfig     `yaml:"forms"`
	Tables    TablesConfig    `yaml:"tables"`
	Frames    FramesConfig    `yaml:"frames"`
	Media     MediaConfig     `yaml:"media"`
	ARIA      ARIAConfig      `yaml:"aria"`
	Text      TextConfig      `yaml:"text"`
	Landmarks LandmarksConfig `yaml:"landmarks"`
	Display   DisplayConfig   `yaml:"display"`
	Scan      ScanConfig      `yaml:"scan"`
}

// ImagesConfig gates the image alternative-text checks.
type ImagesConfig struct {
	Enabled           bool `yaml:"enabled"`
	MissingAlt        bool `yaml:"missing_alt"`
	UninformativeAlt  bool `yaml:"uninformative_alt"`
	EmptyAltWithTitle bool `yaml:"empty_alt_with_title"`
	AltTitleMismatch  bool `yaml:"alt_title_mismatch"`
}

// ButtonsConfig gates the button accessible-name check.
type ButtonsConfig struct {
	Enabled     bool `yaml:"enabled"`
	MissingName bool `yaml:"missing_name"`
}

// LinksConfig gates the four independent link checks.
type LinksConfig struct {
	Enabled        bool `yaml:"enabled"`
	EmptyLink      bool `yaml:"empty_link"`
	InvalidHref    bool `yaml:"invalid_href"`
	GenericText    bool `yaml:"generic_text"`
	RedundantTitle bool `yaml:"redundant_title"`
}

// FormsConfig gates the fieldset and input labeling checks.
type FormsConfig struct {
	Enabled        bool `yaml:"enabled"`
	FieldsetLegend bool `yaml:"fieldset_legend"`
	InputLabel     bool `yaml:"input_label"`
	ImageInputAlt  bool `yaml:"image_input_alt"`
}

// TablesConfig gates the table structure checks.
type TablesConfig struct {
	Enabled       bool `yaml:"enabled"`
	Headers       bool `yaml:"headers"`
	Nesting       bool `yaml:"nesting"`
	LayoutSummary bool `yaml:"layout_summary"`
}

// FramesConfig gates the iframe title check.
type FramesConfig struct {
	Enabled bool `yaml:"enabled"`
	Title   bool `yaml:"title"`
}

// MediaConfig gates the audio/video checks.
type MediaConfig struct {
	Enabled  bool `yaml:"enabled"`
	Autoplay bool `yaml:"autoplay"`
	Captions bool `yaml:"captions"`
}

// ARIAConfig gates the role-based checks.
type ARIAConfig struct {
	Enabled          bool `yaml:"enabled"`
	RoleImgName      bool `yaml:"role_img_name"`
	PositiveTabindex bool `yaml:"positive_tabindex"`
}

// TextConfig gates the small-text check and carries its threshold.
type TextConfig struct {
	Enabled   bool `yaml:"enabled"`
	SmallText bool `yaml:"small_text"`
	// MinFontSize is the minimum readable font size in pixels. Text
	// resolving below this threshold is flagged.
	MinFontSize float64 `yaml:"min_font_size"`
}

// LandmarksConfig gates the whole-document landmark presence check.
type LandmarksConfig struct {
	Enabled bool `yaml:"enabled"`
	Present bool `yaml:"present"`
}

// DisplayConfig holds the annotation visibility filter toggles. These
// only affect marker visibility; the finding log is never filtered.
type DisplayConfig struct {
	ShowErrors   bool `yaml:"show_errors"`
	ShowWarnings bool `yaml:"show_warnings"`
}

// ScanConfig holds scheduler and guard budgets. Durations are persisted
// as millisecond integers to keep the file a plain boolean/numeric tree.
type ScanConfig struct {
	ChunkSize     int `yaml:"chunk_size"`
	ChunkBudgetMS int `yaml:"chunk_budget_ms"`
	MaxDurationMS int `yaml:"max_duration_ms"`
	CooldownMS    int `yaml:"cooldown_ms"`
}

// ChunkBudget returns the per-chunk time budget as a duration.
func (s ScanConfig) ChunkBudget() time.Duration {
	return time.Duration(s.ChunkBudgetMS) * time.Millisecond
}

// MaxDuration returns the session wall-clock budget as a duration.
func (s ScanConfig) MaxDuration() time.Duration {
	return time.Duration(s.MaxDurationMS) * time.Millisecond
}

// Cooldown returns the guard cooldown as a duration.
func (s ScanConfig) Cooldown() time.Duration {
	return time.Duration(s.CooldownMS) * time.Millisecond
}

// Default returns the built-in configuration: every category and check
// enabled, both severities shown, and the documented scheduler budgets.
//
// Design decision: defaults live in code rather than an embedded file so
// the zero-config path has no I/O and cannot fail.
func Default() *RuleConfig {
	return &RuleConfig{
		Images: ImagesConfig{
			Enabled:           true,
			MissingAlt:        true,
			UninformativeAlt:  true,
			EmptyAltWithTitle: true,
			AltTitleMismatch:  true,
		},
		Buttons: ButtonsConfig{Enabled: true, MissingName: true},
		Links: LinksConfig{
			Enabled:        true,
			EmptyLink:      true,
			InvalidHref:    true,
			GenericText:    true,
			RedundantTitle: true,
		},
		Forms: FormsConfig{
			Enabled:        true,
			FieldsetLegend: true,
			InputLabel:     true,
			ImageInputAlt:  true,
		},
		Tables: TablesConfig{
			Enabled:       true,
			Headers:       true,
			Nesting:       true,
			LayoutSummary: true,
		},
		Frames:    FramesConfig{Enabled: true, Title: true},
		Media:     MediaConfig{Enabled: true, Autoplay: true, Captions: true},
		ARIA:      ARIAConfig{Enabled: true, RoleImgName: true, PositiveTabindex: true},
		Text:      TextConfig{Enabled: true, SmallText: true, MinFontSize: DefaultMinFontSize},
		Landmarks: LandmarksConfig{Enabled: true, Present: true},
		Display:   DisplayConfig{ShowErrors: true, ShowWarnings: true},
		Scan: ScanConfig{
			ChunkSize:     DefaultChunkSize,
			ChunkBudgetMS: int(DefaultChunkBudget / time.Millisecond),
			MaxDurationMS: int(DefaultMaxDuration / time.Millisecond),
			CooldownMS:    int(DefaultCooldown / time.Millisecond),
		},
	}
}

// CategoryEnabled reports whether the given rule category is enabled.
// The rule catalog skips an entire family when its category is off.
func (c *RuleConfig) CategoryEnabled(cat model.Category) bool {
	switch cat {
	case model.CategoryImages:
		return c.Images.Enabled
	case model.CategoryButtons:
		return c.Buttons.Enabled
	case model.CategoryLinks:
		return c.Links.Enabled
	case model.CategoryForms:
		return c.Forms.Enabled
	case model.CategoryTables:
		return c.Tables.Enabled
	case model.CategoryFrames:
		return c.Frames.Enabled
	case model.CategoryMedia:
		return c.Media.Enabled
	case model.CategoryARIA:
		return c.ARIA.Enabled
	case model.CategoryText:
		return c.Text.Enabled
	case model.CategoryLandmarks:
		return c.Landmarks.Enabled
	default:
		return false
	}
}

// EnabledCategories returns the set of enabled categories in stable
// order, for the annotation visibility filter.
func (c *RuleConfig) EnabledCategories() map[model.Category]bool {
	out := make(map[model.Category]bool)
	for _, cat := range model.Categories() {
		if c.CategoryEnabled(cat) {
			out[cat] = true
		}
	}
	return out
}

// XDGConfigDir returns the XDG config directory for a11yscan.
// On Linux: ~/.config/a11yscan
// On macOS: ~/Library/Application Support/a11yscan
// On Windows: %APPDATA%\a11yscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
