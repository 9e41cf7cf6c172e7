package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/statcard/internal/app/system/timeouts"
)

func TestDefaults(t *testing.T) {
	timeouts.Reset()
	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping: got %v", timeouts.Ping())
	}
	if timeouts.Short() != timeouts.DefaultShort {
		t.Errorf("Short: got %v", timeouts.Short())
	}
	if timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("Medium: got %v", timeouts.Medium())
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	timeouts.Configure(timeouts.Config{Short: 7 * time.Second})

	if timeouts.Short() != 7*time.Second {
		t.Errorf("Short: got %v, want 7s", timeouts.Short())
	}
	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping should keep default, got %v", timeouts.Ping())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	t.Setenv("TIMEOUT_PING", "500ms")
	t.Setenv("TIMEOUT_SHORT", "not-a-duration")
	t.Setenv("TIMEOUT_MEDIUM", "")

	if n := timeouts.ConfigureFromEnv(); n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	if timeouts.Ping() != 500*time.Millisecond {
		t.Errorf("Ping: got %v, want 500ms", timeouts.Ping())
	}
	if timeouts.Short() != timeouts.DefaultShort {
		t.Errorf("Short should keep default, got %v", timeouts.Short())
	}
}
