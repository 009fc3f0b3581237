package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. TAXON_LOG_LEVEL.
const EnvPrefix = "TAXON"

// ConfigFileEnv names a settings file when --config is not given.
const ConfigFileEnv = "TAXON_CONFIG_FILE"

// Settings are user preferences layered from defaults, a settings file,
// environment variables and command-line flags (highest priority).
type Settings struct {
	Theme      string             `mapstructure:"theme" validate:"oneof=auto light dark"`
	Unicode    bool               `mapstructure:"unicode"`
	Watch      bool               `mapstructure:"watch"`
	Log        LogSettings        `mapstructure:"log"`
	Detail     DetailSettings     `mapstructure:"detail"`
	Breadcrumb BreadcrumbSettings `mapstructure:"breadcrumb"`
}

// LogSettings controls the diagnostic log.
type LogSettings struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	File  string `mapstructure:"file"`
}

// DetailSettings controls the detail panel text.
type DetailSettings struct {
	Template string `mapstructure:"template"`
}

// BreadcrumbSettings controls how the breadcrumb is drawn.
type BreadcrumbSettings struct {
	Marker string `mapstructure:"marker" validate:"required,max=8"`
}

// SetDefaults registers the default value of every settings key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("theme", "auto")
	v.SetDefault("unicode", true)
	v.SetDefault("watch", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("detail.template", "")
	v.SetDefault("breadcrumb.marker", "→")
}

// LoadSettings reads settings into v and returns the validated result.
//
// Lookup order for the settings file:
//  1. explicitPath (the --config flag)
//  2. the TAXON_CONFIG_FILE environment variable
//  3. $XDG_CONFIG_HOME/taxon/config.yaml (or the platform equivalent)
//
// A missing default file is not an error; a missing explicit file is.
func LoadSettings(v *viper.Viper, explicitPath string) (*Settings, error) {
	SetDefaults(v)

	explicit := explicitPath
	if explicit == "" {
		explicit = os.Getenv(ConfigFileEnv)
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "taxon"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, taxonerrors.NewParseError(configPathForError(v, explicit), extractLine(err), err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// ValidateSettings checks settings values against their allowed ranges.
func ValidateSettings(s *Settings) error {
	if s == nil {
		return taxonerrors.NewValidationError("settings", "settings are nil", nil)
	}
	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError("", err)
	}
	return nil
}

func configPathForError(v *viper.Viper, explicit string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if explicit != "" {
		return explicit
	}
	return "settings"
}
