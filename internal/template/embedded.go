package template

import _ "embed"

//go:embed config.yaml.tmpl
var builtin string

// Builtin returns the default config template compiled into the
// binary. Images copy this to the template path at build time;
// `wsgate template` prints it for that purpose.
func Builtin() string {
	return builtin
}
