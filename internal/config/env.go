package config

import (
	"sort"

	"github.com/spf13/viper"
)

// Template variables recognized by the launcher, with their
// compiled-in defaults. These must stay in sync with Default().
func defaultVars() map[string]string {
	return map[string]string{
		"LISTEN_PORT":   "8000",
		"APP_HOST":      "app",
		"APP_PORT":      "9000",
		"STATIC_PREFIX": "/static",
		"STATIC_ROOT":   "/vol/static",
		"MAX_BODY_SIZE": "10m",
		"STATUS_PORT":   "0",
	}
}

// KnownVars returns the recognized template variable names, sorted.
func KnownVars() []string {
	defaults := defaultVars()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveVars maps the given placeholder names to substitution values.
// Each name resolves from the environment first; recognized names fall
// back to their compiled-in default. An environment variable set to
// the empty string counts as unset. Names that resolve to no value are
// returned in missing, sorted.
func ResolveVars(names []string) (values map[string]string, missing []string) {
	v := viper.New()
	for name, def := range defaultVars() {
		v.SetDefault(name, def)
	}

	values = make(map[string]string, len(names))
	for _, name := range names {
		// Binding is per-name so placeholders outside the recognized
		// set still read their environment variable.
		_ = v.BindEnv(name)
		val := v.GetString(name)
		if val == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = val
	}

	sort.Strings(missing)
	return values, missing
}
