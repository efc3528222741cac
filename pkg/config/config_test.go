package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/astrolabe/pkg/autolayout"
	"github.com/matzehuels/astrolabe/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Strategy != "center" {
		t.Errorf("Strategy = %q, want center", cfg.Strategy)
	}
	if cfg.Layout != autolayout.DefaultSettings() {
		t.Errorf("Layout = %+v, want defaults", cfg.Layout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	data := `
strategy = "right"

[layout]
direction = "LR"
node_sep = 60
ranker = "tight-tree"

[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
prefix = "astrolabe:"
ttl = "24h"
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Strategy != "right" {
		t.Errorf("Strategy = %q", cfg.Strategy)
	}
	if cfg.Layout.Direction != autolayout.LeftToRight || cfg.Layout.NodeSep != 60 || cfg.Layout.Ranker != autolayout.TightTree {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Layout.RankSep != autolayout.RankSepRange.Default {
		t.Errorf("unset rank_sep = %v, want default %v", cfg.Layout.RankSep, autolayout.RankSepRange.Default)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout.Duration != 30*time.Second {
		t.Errorf("unset write_timeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisURL != "redis://localhost:6379/1" || cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", `strategy = `, errors.ErrCodeInvalidInput},
		{"unknown key", `colour = "blue"`, errors.ErrCodeInvalidInput},
		{"bad strategy", `strategy = "diagonal"`, errors.ErrCodeInvalidStrategy},
		{"bad direction", "[layout]\ndirection = \"up\"", errors.ErrCodeInvalidSettings},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidInput},
		{"bad duration", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidInput},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Strategy != Default().Strategy {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load(directory) should fail")
	}
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %s, an existing but unreadable path is not FILE_NOT_FOUND", errors.GetCode(err))
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestParseLayoutEnumsAnyCase(t *testing.T) {
	cfg, err := Parse([]byte("[layout]\ndirection = \"lr\"\nranker = \"Longest-Path\"\nalign = \"dr\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := autolayout.ConfigFor(cfg.Layout)
	if got.Direction != autolayout.LeftToRight {
		t.Errorf("Direction = %s, want LR", got.Direction)
	}
	if got.Ranker != autolayout.LongestPath {
		t.Errorf("Ranker = %s, want longest-path", got.Ranker)
	}
	if got.Align != autolayout.AlignDR {
		t.Errorf("Align = %q, want DR", got.Align)
	}

	dot, _ := autolayout.BuildDOT([]autolayout.Vertex{{ID: "a", Width: 1, Height: 1}}, nil, got)
	for _, want := range []string{"rankdir=LR", "nslimit1=0"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`strategy = "bottom"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Strategy != "bottom" {
		t.Errorf("Strategy = %q, want bottom", cfg.Strategy)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, AppName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, AppName, "config.toml"), []byte(`strategy = "left"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Strategy != "left" {
		t.Errorf("Strategy = %q, want left", cfg.Strategy)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "astrolabe", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg-cache")

	got, err := Default().CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg-cache", "astrolabe"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}

	cfg := Default()
	cfg.Cache.Dir = "/custom"
	if got, _ := cfg.CacheDir(); got != "/custom" {
		t.Errorf("configured CacheDir() = %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "top"
	cfg.Layout.Direction = autolayout.RightToLeft
	cfg.Cache.TTL = Duration{90 * time.Minute}

	out := cfg.String()
	if !strings.Contains(out, `ttl = "1h30m0s"`) {
		t.Errorf("encoded ttl missing:\n%s", out)
	}

	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(encoded): %v\n%s", err, out)
	}
	if back.Strategy != "top" || back.Layout.Direction != autolayout.RightToLeft || back.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
