// Package template renders the proxy configuration from its template.
//
// The template is plain text/template syntax where every placeholder
// is a field reference naming a substitution variable:
//
//	listen:
//	  port: {{ .LISTEN_PORT }}
//	upstream:
//	  host: {{ .APP_HOST }}
//	  port: {{ .APP_PORT }}
//
// Rendering is a pure function of template text and a value map, so
// rendering the same inputs twice yields byte-identical output. Every
// placeholder must have a value: Render fails listing the unresolved
// names rather than emitting a config with holes in it.
//
// # Rendering
//
//	text, err := template.Load("/etc/wsgate/config.yaml.tmpl")
//	if err != nil {
//	    return err
//	}
//	rendered, err := template.Render(text, values)
//	if err != nil {
//	    return err
//	}
//	err = template.Install("/etc/wsgate/config.yaml", []byte(rendered), 0o644)
//
// Install stages the content in a temporary file in the target
// directory and renames it into place, so a reader of the output path
// sees either the previous config or the complete new one, never a
// partial write.
//
// # Placeholder Discovery
//
// Placeholders walks the parsed template and returns the referenced
// variable names. The launcher uses this to resolve exactly the values
// the template needs, which is what lets deployments add placeholders
// without code changes.
//
// # Embedded Default
//
// The default template is compiled into the binary via go:embed.
// `wsgate template` prints it, and images copy it to the template path
// at build time.
package template
