package config

import "errors"

// Configuration errors. Package-level sentinels so callers can use
// errors.Is for programmatic handling while keeping the messages
// human-readable.
var (
	// ErrConfigNotFound is returned by Load when no configuration file
	// exists at any searched location. Callers treat this as "use
	// defaults", not as a failure.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidChunkSize is returned by Validate when the chunk size is
	// not positive. A zero chunk would make the scheduler spin without
	// progressing.
	ErrInvalidChunkSize = errors.New("invalid chunk size: must be positive")

	// ErrInvalidMaxDuration is returned by Validate when the session
	// wall-clock budget is not positive.
	ErrInvalidMaxDuration = errors.New("invalid max duration: must be positive")

	// ErrInvalidCooldown is returned by Validate when the guard cooldown
	// is negative. Use 0 to disable the cooldown entirely.
	ErrInvalidCooldown = errors.New("invalid cooldown: must be non-negative")

	// ErrInvalidMinFontSize is returned by Validate when the small-text
	// threshold is not positive.
	ErrInvalidMinFontSize = errors.New("invalid min font size: must be positive")
)

// Validate checks the numeric budgets of the configuration. Boolean
// toggles cannot be invalid, so only the scan subtree and thresholds
// are checked. Returns the first error found.
func (c *RuleConfig) Validate() error {
	if c.Scan.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.Scan.MaxDurationMS <= 0 {
		return ErrInvalidMaxDuration
	}
	if c.Scan.CooldownMS < 0 {
		return ErrInvalidCooldown
	}
	if c.Text.MinFontSize <= 0 {
		return ErrInvalidMinFontSize
	}
	return nil
}
