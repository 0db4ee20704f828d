package config

import (
	"io"
	"os"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("nttgen", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Q != 3329 {
			t.Errorf("Expected default Q 3329, got %d", cfg.Q)
		}
		if cfg.N != 256 {
			t.Errorf("Expected default N 256, got %d", cfg.N)
		}
		if cfg.Zeta != 17 {
			t.Errorf("Expected default Zeta 17, got %d", cfg.Zeta)
		}
		if cfg.RootCount != DefaultRootCount {
			t.Errorf("Expected default RootCount %d, got %d", DefaultRootCount, cfg.RootCount)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.OutputFile != DefaultOutputFile {
			t.Errorf("Expected default OutputFile %q, got %q", DefaultOutputFile, cfg.OutputFile)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-q", "17",
			"-n", "8",
			"-zeta", "9",
			"-roots", "3",
			"-v",
			"-timeout", "10s",
			"-output", "small.txt",
			"-server",
			"-port", "9090",
		}
		cfg, err := ParseConfig("nttgen", args, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Q != 17 {
			t.Errorf("Expected Q 17, got %d", cfg.Q)
		}
		if cfg.N != 8 {
			t.Errorf("Expected N 8, got %d", cfg.N)
		}
		if cfg.Zeta != 9 {
			t.Errorf("Expected Zeta 9, got %d", cfg.Zeta)
		}
		if cfg.RootCount != 3 {
			t.Errorf("Expected RootCount 3, got %d", cfg.RootCount)
		}
		if !cfg.Verbose {
			t.Error("Expected Verbose true")
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if cfg.OutputFile != "small.txt" {
			t.Errorf("Expected OutputFile small.txt, got %s", cfg.OutputFile)
		}
		if !cfg.ServerMode {
			t.Error("Expected ServerMode true")
		}
		if cfg.Port != "9090" {
			t.Errorf("Expected Port 9090, got %s", cfg.Port)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		env := map[string]string{
			"NTTGEN_Q":       "7681",
			"NTTGEN_N":       "512",
			"NTTGEN_ZETA":    "0",
			"NTTGEN_ROOTS":   "4",
			"NTTGEN_TIMEOUT": "2m",
			"NTTGEN_OUTPUT":  "env.txt",
			"NTTGEN_PORT":    "3000",
			"NTTGEN_QUIET":   "true",
			"NTTGEN_JSON":    "true",
		}

		for k, v := range env {
			os.Setenv(k, v)
		}
		defer func() {
			for k := range env {
				os.Unsetenv(k)
			}
		}()

		// No flags set, should take from env
		cfg, err := ParseConfig("nttgen", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Q != 7681 {
			t.Errorf("Expected Q 7681 from env, got %d", cfg.Q)
		}
		if cfg.N != 512 {
			t.Errorf("Expected N 512 from env, got %d", cfg.N)
		}
		if cfg.Zeta != 0 {
			t.Errorf("Expected Zeta 0 from env, got %d", cfg.Zeta)
		}
		if cfg.RootCount != 4 {
			t.Errorf("Expected RootCount 4, got %d", cfg.RootCount)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
		}
		if cfg.OutputFile != "env.txt" {
			t.Errorf("Expected OutputFile env.txt, got %s", cfg.OutputFile)
		}
		if cfg.Port != "3000" {
			t.Errorf("Expected Port 3000, got %s", cfg.Port)
		}
		if !cfg.Quiet {
			t.Error("Expected Quiet true")
		}
		if !cfg.JSONOutput {
			t.Error("Expected JSONOutput true")
		}
	})

	t.Run("FlagPrecedenceOverEnv", func(t *testing.T) {
		os.Setenv("NTTGEN_Q", "7681")
		defer os.Unsetenv("NTTGEN_Q")

		// Flag set explicitly
		cfg, err := ParseConfig("nttgen", []string{"-q", "12289", "-n", "512"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Q != 12289 {
			t.Errorf("Expected Q 12289 from flag, got %d", cfg.Q)
		}
	})

	t.Run("CustomFieldDerivesZeta", func(t *testing.T) {
		t.Parallel()
		// The built-in zeta belongs to the default field; a custom -q or -n
		// without an explicit -zeta must switch to derivation.
		cfg, err := ParseConfig("nttgen", []string{"-q", "7681", "-n", "256"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Zeta != 0 {
			t.Errorf("Expected Zeta 0 (derive) for a custom field, got %d", cfg.Zeta)
		}

		cfg, err = ParseConfig("nttgen", []string{"-n", "128"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Zeta != 0 {
			t.Errorf("Expected Zeta 0 (derive) when only -n is customized, got %d", cfg.Zeta)
		}
	})

	t.Run("CustomFieldKeepsExplicitZeta", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("nttgen", []string{"-q", "17", "-n", "8", "-zeta", "9"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Zeta != 9 {
			t.Errorf("Expected explicit Zeta 9 to be kept, got %d", cfg.Zeta)
		}
	})

	t.Run("CustomFieldKeepsEnvZeta", func(t *testing.T) {
		os.Setenv("NTTGEN_ZETA", "9")
		defer os.Unsetenv("NTTGEN_ZETA")

		cfg, err := ParseConfig("nttgen", []string{"-q", "17", "-n", "8"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Zeta != 9 {
			t.Errorf("Expected env Zeta 9 to be kept for a custom field, got %d", cfg.Zeta)
		}
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseConfig("nttgen", []string{"-unknown"}, io.Discard); err == nil {
			t.Error("Expected error for unknown flag")
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Parallel()
		// Composite modulus
		if _, err := ParseConfig("nttgen", []string{"-q", "3327"}, io.Discard); err == nil {
			t.Error("Expected error for composite modulus")
		}
		// Non power-of-two size
		if _, err := ParseConfig("nttgen", []string{"-n", "100"}, io.Discard); err == nil {
			t.Error("Expected error for non power-of-two size")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Q: 3329, N: 256, Zeta: 17, RootCount: 10, Timeout: 1 * time.Second}
		if err := c.Validate(); err != nil {
			t.Errorf("Unexpected validation error: %v", err)
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Q: 3329, N: 256, RootCount: 10, Timeout: 0}
		if err := c.Validate(); err == nil {
			t.Error("Expected error for zero timeout")
		}
	})

	t.Run("InvalidRootCount", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Q: 3329, N: 256, RootCount: 0, Timeout: 1 * time.Second}
		if err := c.Validate(); err == nil {
			t.Error("Expected error for zero root count")
		}
	})

	t.Run("InvalidFieldParameters", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Q: 15, N: 256, RootCount: 10, Timeout: 1 * time.Second}
		if err := c.Validate(); err == nil {
			t.Error("Expected error for composite modulus")
		}
	})

	t.Run("ZetaDeferredToDerivation", func(t *testing.T) {
		t.Parallel()
		// Zeta 0 requests derivation and must pass validation.
		c := AppConfig{Q: 3329, N: 256, Zeta: 0, RootCount: 10, Timeout: 1 * time.Second}
		if err := c.Validate(); err != nil {
			t.Errorf("Unexpected validation error: %v", err)
		}
	})
}

func TestEnvHelpers(t *testing.T) {
	prefix := EnvPrefix

	t.Run("getEnvString", func(t *testing.T) {
		key := "TEST_STRING"
		os.Setenv(prefix+key, "value")
		defer os.Unsetenv(prefix + key)
		if val := getEnvString(key, "default"); val != "value" {
			t.Errorf("Expected 'value', got '%s'", val)
		}
		if val := getEnvString("NONEXISTENT", "default"); val != "default" {
			t.Errorf("Expected 'default', got '%s'", val)
		}
	})

	t.Run("getEnvUint64", func(t *testing.T) {
		key := "TEST_UINT"
		os.Setenv(prefix+key, "123")
		defer os.Unsetenv(prefix + key)
		if val := getEnvUint64(key, 0); val != 123 {
			t.Errorf("Expected 123, got %d", val)
		}
		// Invalid
		os.Setenv(prefix+"INVALID", "abc")
		defer os.Unsetenv(prefix + "INVALID")
		if val := getEnvUint64("INVALID", 999); val != 999 {
			t.Errorf("Expected default 999 for invalid input, got %d", val)
		}
	})

	t.Run("getEnvInt", func(t *testing.T) {
		key := "TEST_INT"
		os.Setenv(prefix+key, "-123")
		defer os.Unsetenv(prefix + key)
		if val := getEnvInt(key, 0); val != -123 {
			t.Errorf("Expected -123, got %d", val)
		}
	})

	t.Run("getEnvBool", func(t *testing.T) {
		key := "TEST_BOOL"
		os.Setenv(prefix+key, "true")
		defer os.Unsetenv(prefix + key)
		if val := getEnvBool(key, false); !val {
			t.Error("Expected true")
		}

		os.Setenv(prefix+key, "0")
		if val := getEnvBool(key, true); val {
			t.Error("Expected false for '0'")
		}

		os.Setenv(prefix+key, "invalid")
		if val := getEnvBool(key, true); !val {
			t.Error("Expected default true for invalid input")
		}
	})

	t.Run("getEnvDuration", func(t *testing.T) {
		key := "TEST_DURATION"
		os.Setenv(prefix+key, "1h")
		defer os.Unsetenv(prefix + key)
		if val := getEnvDuration(key, 0); val != time.Hour {
			t.Errorf("Expected 1h, got %v", val)
		}
	})
}
