package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/a11yscan/a11yscan/internal/model"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
	for _, cat := range model.Categories() {
		if !cfg.CategoryEnabled(cat) {
			t.Errorf("category %s should be enabled by default", cat)
		}
	}
	if cfg.Text.MinFontSize != DefaultMinFontSize {
		t.Errorf("MinFontSize = %v, want %v", cfg.Text.MinFontSize, float64(DefaultMinFontSize))
	}
	if got := cfg.Scan.MaxDuration(); got != 5000*time.Millisecond {
		t.Errorf("MaxDuration = %v, want 5s", got)
	}
	if got := cfg.Scan.Cooldown(); got != time.Second {
		t.Errorf("Cooldown = %v, want 1s", got)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("user leaf values win", func(t *testing.T) {
		t.Parallel()

		cfg, err := Merge([]byte("images:\n  missing_alt: false\ntext:\n  min_font_size: 14\n"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Images.MissingAlt {
			t.Error("missing_alt override was not applied")
		}
		if cfg.Text.MinFontSize != 14 {
			t.Errorf("min_font_size = %v, want 14", cfg.Text.MinFontSize)
		}
	})

	t.Run("unspecified keys keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Merge([]byte("images:\n  missing_alt: false\n"))
		if err != nil {
			t.Fatal(err)
		}
		if !cfg.Images.Enabled {
			t.Error("sibling key lost its default during merge")
		}
		if !cfg.Links.Enabled || !cfg.Links.GenericText {
			t.Error("untouched subtree lost its defaults during merge")
		}
		if cfg.Scan.ChunkSize != DefaultChunkSize {
			t.Errorf("chunk_size = %d, want default %d", cfg.Scan.ChunkSize, DefaultChunkSize)
		}
	})

	t.Run("disabling a category survives the round trip", func(t *testing.T) {
		t.Parallel()

		cfg, err := Merge([]byte("tables:\n  enabled: false\n"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.CategoryEnabled(model.CategoryTables) {
			t.Error("tables category should be disabled")
		}
		if _, ok := cfg.EnabledCategories()[model.CategoryTables]; ok {
			t.Error("disabled category must not appear in the enabled set")
		}
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Merge(nil)
		if err != nil {
			t.Fatal(err)
		}
		if *cfg != *Default() {
			t.Error("merging an empty document should reproduce defaults")
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Merge([]byte("images: [unclosed")); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RuleConfig)
		want   error
	}{
		{"zero chunk size", func(c *RuleConfig) { c.Scan.ChunkSize = 0 }, ErrInvalidChunkSize},
		{"zero max duration", func(c *RuleConfig) { c.Scan.MaxDurationMS = 0 }, ErrInvalidMaxDuration},
		{"negative cooldown", func(c *RuleConfig) { c.Scan.CooldownMS = -1 }, ErrInvalidCooldown},
		{"zero font threshold", func(c *RuleConfig) { c.Text.MinFontSize = 0 }, ErrInvalidMinFontSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("load merges file over defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := "links:\n  generic_text: false\nscan:\n  chunk_size: 10\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		loader := NewLoader(WithPath(path))
		cfg, err := loader.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Links.GenericText {
			t.Error("generic_text override was not applied")
		}
		if cfg.Scan.ChunkSize != 10 {
			t.Errorf("chunk_size = %d, want 10", cfg.Scan.ChunkSize)
		}
		if !cfg.Images.Enabled {
			t.Error("defaults were lost on load")
		}
	})

	t.Run("missing file is ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		loader := NewLoader(WithPath(filepath.Join(t.TempDir(), "absent.yml")))
		if _, err := loader.Load(context.Background()); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid budgets fail load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("scan:\n  chunk_size: 0\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		loader := NewLoader(WithPath(path))
		if _, err := loader.Load(context.Background()); !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("expected ErrInvalidChunkSize, got %v", err)
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		loader := NewLoader(WithPath(path))

		cfg := Default()
		cfg.Media.Autoplay = false
		if err := loader.Save(context.Background(), cfg); err != nil {
			t.Fatal(err)
		}

		loaded, err := loader.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Media.Autoplay {
			t.Error("saved override was lost on reload")
		}
	})
}
