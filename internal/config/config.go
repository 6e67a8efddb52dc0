package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/predictor"
	"github.com/Veraticus/biblio/internal/workflow"
)

// Configuration keys.
const (
	KeyServiceBaseURL       = "service.base_url"
	KeyServiceTimeout       = "service.timeout"
	KeyServiceCategoryField = "service.category_field"
	KeyServiceRateLimit     = "service.rate_limit"
	KeyWorkflowDebounce     = "workflow.debounce"
	KeyWorkflowErrorRevert  = "workflow.error_revert"
	KeyWorkflowDiscardStale = "workflow.discard_stale"
	KeyDatabasePath         = "database.path"
	KeyStubAddr             = "stub.addr"
	KeyStubResponseField    = "stub.response_field"
)

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	defaults := predictor.DefaultConfig()
	v.SetDefault(KeyServiceBaseURL, defaults.BaseURL)
	v.SetDefault(KeyServiceTimeout, defaults.Timeout)
	v.SetDefault(KeyServiceCategoryField, string(defaults.CategoryField))
	v.SetDefault(KeyServiceRateLimit, 0)
	v.SetDefault(KeyWorkflowDebounce, workflow.DefaultDebounceDelay)
	v.SetDefault(KeyWorkflowErrorRevert, workflow.DefaultErrorRevertDelay)
	v.SetDefault(KeyWorkflowDiscardStale, true)
	v.SetDefault(KeyDatabasePath, "")
	v.SetDefault(KeyStubAddr, "127.0.0.1:8000")
	v.SetDefault(KeyStubResponseField, string(predictor.FieldCluster))
}

// LoadServiceConfig reads the remote service settings.
func LoadServiceConfig(v *viper.Viper) (predictor.Config, error) {
	cfg := predictor.DefaultConfig()

	cfg.BaseURL = strings.TrimSpace(v.GetString(KeyServiceBaseURL))
	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyServiceBaseURL)
	}

	if timeout := v.GetDuration(KeyServiceTimeout); timeout > 0 {
		cfg.Timeout = timeout
	} else if v.IsSet(KeyServiceTimeout) {
		return cfg, fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyServiceTimeout)
	}

	field, err := predictor.ParseCategoryField(v.GetString(KeyServiceCategoryField))
	if err != nil {
		return cfg, err
	}
	cfg.CategoryField = field

	cfg.RequestsPerMinute = v.GetInt(KeyServiceRateLimit)
	if cfg.RequestsPerMinute < 0 {
		return cfg, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyServiceRateLimit)
	}

	return cfg, nil
}

// LoadWorkflowOptions reads the controller timings. Collaborators are left
// for the caller to fill in.
func LoadWorkflowOptions(v *viper.Viper) (workflow.Options, error) {
	opts := workflow.DefaultOptions()

	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&opts.DebounceDelay, KeyWorkflowDebounce},
		{&opts.ErrorRevertDelay, KeyWorkflowErrorRevert},
	}
	for _, d := range durations {
		if !v.IsSet(d.key) {
			continue
		}
		value := v.GetDuration(d.key)
		if value <= 0 {
			return opts, fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, d.key)
		}
		*d.dst = value
	}

	if v.IsSet(KeyWorkflowDiscardStale) {
		opts.DiscardStale = v.GetBool(KeyWorkflowDiscardStale)
	}

	return opts, nil
}

// DatabasePath returns the expanded database location. An unset path means
// biblio.db in DataDir.
func DatabasePath(v *viper.Viper) (string, error) {
	raw := strings.TrimSpace(v.GetString(KeyDatabasePath))
	if raw == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, databaseFile), nil
	}
	return ExpandPath(raw)
}
