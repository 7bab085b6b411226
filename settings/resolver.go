// Copyright (c) Microsoft. All rights reserved.

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

const (
	envFileName     = ".env"
	appSettingsName = "appsettings.json"
)

// Resolver looks settings up across the environment and settings files.
type Resolver struct {
	dotenv      map[string]string
	appSettings *viper.Viper
	files       []string
}

type resolverConfig struct {
	envDirs      []string
	settingsDirs []string
}

// Option configures a [Resolver].
type Option func(*resolverConfig)

// WithEnvFileDirs replaces the directories searched for a .env file.
func WithEnvFileDirs(dirs ...string) Option {
	return func(c *resolverConfig) { c.envDirs = dirs }
}

// WithAppSettingsDirs replaces the directories searched for appsettings.json.
func WithAppSettingsDirs(dirs ...string) Option {
	return func(c *resolverConfig) { c.settingsDirs = dirs }
}

// NewResolver loads the settings files. Files that do not exist are
// skipped; files that cannot be read or parsed are errors.
func NewResolver(opts ...Option) (*Resolver, error) {
	cfg := defaultSearchDirs()
	for _, o := range opts {
		o(&cfg)
	}

	r := &Resolver{}
	if path, ok := firstExisting(cfg.envDirs, envFileName); ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", af.ErrConfig, path, err)
		}
		values, err := ParseEnvFile(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r.dotenv = values
		r.files = append(r.files, path)
	}

	if path, ok := firstExisting(cfg.settingsDirs, appSettingsName); ok {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", af.ErrInvalidSetting, path, err)
		}
		r.appSettings = v
		r.files = append(r.files, path)
	}
	return r, nil
}

// Files returns the settings files that were loaded, in lookup order.
func (r *Resolver) Files() []string {
	return slices.Clone(r.files)
}

// Lookup returns the first non-blank value for key. A value found only in a
// settings file is exported into the process environment.
func (r *Resolver) Lookup(key string) (string, bool) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v, true
	}
	v, ok := r.fileValue(key)
	if !ok {
		return "", false
	}
	_ = os.Setenv(key, v)
	return v, true
}

func (r *Resolver) fileValue(key string) (string, bool) {
	if v := r.dotenv[normalizeKey(key)]; v != "" {
		return v, true
	}
	if r.appSettings != nil && r.appSettings.IsSet(key) {
		if v := strings.TrimSpace(r.appSettings.GetString(key)); v != "" {
			return v, true
		}
	}
	return "", false
}

// Require returns the value of the first key that resolves. Later keys are
// aliases of the first, which is the name reported when none resolves.
func (r *Resolver) Require(keys ...string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("%w: no setting name given", af.ErrMissingSetting)
	}
	for _, k := range keys {
		if v, ok := r.Lookup(k); ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s is not configured", af.ErrMissingSetting, keys[0])
}

func defaultSearchDirs() resolverConfig {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	var exeDir string
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	cfg := resolverConfig{
		envDirs:      slices.Clone(dirs),
		settingsDirs: slices.Clone(dirs),
	}
	if exeDir != "" {
		cfg.envDirs = append(cfg.envDirs, exeDir, filepath.Join(exeDir, "..", "..", ".."))
		cfg.settingsDirs = append(cfg.settingsDirs, exeDir)
	}
	return cfg
}

func firstExisting(dirs []string, name string) (string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
