package config

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_BOOL_ON", "true")
	t.Setenv("TEST_BOOL_OFF", "0")
	t.Setenv("TEST_BOOL_JUNK", "maybe")
	t.Setenv("TEST_INT", "17")
	t.Setenv("TEST_INT_JUNK", "seventeen")
	t.Setenv("TEST_DUR", "45s")
	t.Setenv("TEST_DUR_JUNK", "soon")

	if got := envStr("TEST_STR", "d"); got != "value" {
		t.Errorf("envStr set = %q", got)
	}
	if got := envStr("TEST_UNSET", "d"); got != "d" {
		t.Errorf("envStr default = %q", got)
	}
	if !envBool("TEST_BOOL_ON", false) {
		t.Error("envBool true value not recognized")
	}
	if envBool("TEST_BOOL_OFF", true) {
		t.Error("envBool false value not recognized")
	}
	if !envBool("TEST_BOOL_JUNK", true) || envBool("TEST_BOOL_JUNK", false) {
		t.Error("envBool junk must fall back to default")
	}
	if got := envInt("TEST_INT", 1); got != 17 {
		t.Errorf("envInt = %d", got)
	}
	if got := envInt("TEST_INT_JUNK", 5); got != 5 {
		t.Errorf("envInt junk = %d, want default 5", got)
	}
	if got := envDur("TEST_DUR", time.Second); got != 45*time.Second {
		t.Errorf("envDur = %v", got)
	}
	if got := envDur("TEST_DUR_JUNK", 2*time.Second); got != 2*time.Second {
		t.Errorf("envDur junk = %v, want default 2s", got)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "-5s")
	cfg := LoadRateLimitConfig()
	if cfg.Limit != 1 {
		t.Errorf("Limit = %d, want clamped to 1", cfg.Limit)
	}
	if cfg.Window != time.Second {
		t.Errorf("Window = %v, want clamped to 1s", cfg.Window)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter disabled by default")
	}
	if cfg.Limit != 30 || cfg.Window != 10*time.Second {
		t.Errorf("defaults = %d/%v, want 30/10s", cfg.Limit, cfg.Window)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("prefix = %q", cfg.Prefix)
	}
}
