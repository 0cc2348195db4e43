package config

import (
	"strings"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "WANDER_TEST_VAR",
			value:     "test_value",
			shouldSet: true,
		},
		{
			name:      "variable not set",
			key:       "WANDER_TEST_VAR_MISSING",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  string
		wantPanic bool
	}{
		{name: "default when unset", value: "", expected: "redis"},
		{name: "allowed value", value: "memory", expected: "memory"},
		{name: "case insensitive", value: "NONE", expected: "none"},
		{name: "rejected value", value: "memcached", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WANDER_TEST_ONEOF", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("oneOf() should have panicked")
					}
				}()
			}

			result := oneOf("WANDER_TEST_ONEOF", "redis", "redis", "memory", "none")
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("oneOf() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{"valid duration", "30s", 5 * time.Second, 30 * time.Second},
		{"invalid duration uses default", "not_a_duration", 5 * time.Second, 5 * time.Second},
		{"missing uses default", "", 10 * time.Second, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WANDER_TEST_DURATION", tt.value)
			if got := mustDuration("WANDER_TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"false", "false", true, false},
		{"invalid uses default", "maybe", true, true},
		{"missing uses default", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WANDER_TEST_BOOL", tt.value)
			if got := mustBool("WANDER_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` a.example.com , "b.example.com",,'c' `)
	want := []string{"a.example.com", "b.example.com", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.CacheBackend != CacheRedis {
		t.Errorf("CacheBackend = %q, want redis", cfg.CacheBackend)
	}
	if cfg.GazetteerSource != GazetteerEmbedded {
		t.Errorf("GazetteerSource = %q, want embedded", cfg.GazetteerSource)
	}
	if cfg.SuggestionTTL != time.Hour || cfg.PopularTTL != 24*time.Hour {
		t.Errorf("TTLs = %v/%v, want 1h/24h", cfg.SuggestionTTL, cfg.PopularTTL)
	}
	if cfg.ProviderLimit != 25 || cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("provider = %d/%v, want 25/10s", cfg.ProviderLimit, cfg.ProviderTimeout)
	}
	if cfg.ProviderEnabled() {
		t.Error("provider should be disabled without an API key")
	}
}

func TestLoadSQLRequiresDSN(t *testing.T) {
	t.Setenv("WANDER_GAZETTEER_SOURCE", "sql")
	t.Setenv("WANDER_GAZETTEER_DSN", "")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Load() should panic without WANDER_GAZETTEER_DSN")
		}
		if !strings.Contains(r.(string), "WANDER_GAZETTEER_DSN") {
			t.Errorf("panic message = %v", r)
		}
	}()
	Load()
}

func TestLoadRejectsShortRequestTimeout(t *testing.T) {
	t.Setenv("WANDER_REQUEST_TIMEOUT", "5s")
	t.Setenv("WANDER_PROVIDER_TIMEOUT", "10s")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when request timeout <= provider timeout")
		}
	}()
	Load()
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisPassword: "hunter2", ProviderAPIKey: "key", RedisURL: ""}
	r := cfg.Redacted()
	if r.RedisPassword == "hunter2" || r.ProviderAPIKey == "key" {
		t.Errorf("secrets not redacted: %+v", r)
	}
	if r.RedisURL != "" {
		t.Errorf("empty secret should stay empty, got %q", r.RedisURL)
	}
	if cfg.RedisPassword != "hunter2" {
		t.Error("Redacted() must not modify the original")
	}
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("WANDER_GAZETTEER_DRIVER", "PGX")
	t.Setenv("WANDER_GAZETTEER_DSN", "postgres://wander@localhost/wander")

	db := LoadDatabase()
	if db.Driver != "pgx" {
		t.Errorf("Driver = %q, want pgx", db.Driver)
	}
	if db.DSN != "postgres://wander@localhost/wander" {
		t.Errorf("DSN = %q", db.DSN)
	}
}
