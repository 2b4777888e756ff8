package template

import (
	"bytes"
	"os"
	"sort"
	"text/template"
	"text/template/parse"

	"github.com/ksyq12/wsgate/internal/errors"
)

// Load reads template text from disk.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapTarget(errors.ErrCodeTemplate, path, err)
	}
	return string(data), nil
}

// compile parses template text. missingkey=error makes execution fail
// on any lookup the placeholder check did not cover, instead of
// printing "<no value>" into the config.
func compile(text string) (*template.Template, error) {
	tmpl, err := template.New("config").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplate, "failed to parse template", err)
	}
	return tmpl, nil
}

// Placeholders returns the variable names referenced by the template,
// sorted and deduplicated.
func Placeholders(text string) ([]string, error) {
	tmpl, err := compile(text)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	collectNode(tmpl.Tree.Root, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func collectNode(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, item := range n.Nodes {
			collectNode(item, seen)
		}
	case *parse.ActionNode:
		collectPipe(n.Pipe, seen)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.TemplateNode:
		collectPipe(n.Pipe, seen)
	}
}

func collectBranch(branch *parse.BranchNode, seen map[string]bool) {
	collectPipe(branch.Pipe, seen)
	collectNode(branch.List, seen)
	if branch.ElseList != nil {
		collectNode(branch.ElseList, seen)
	}
}

func collectPipe(pipe *parse.PipeNode, seen map[string]bool) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				if len(a.Ident) > 0 {
					seen[a.Ident[0]] = true
				}
			case *parse.PipeNode:
				collectPipe(a, seen)
			}
		}
	}
}

// Render substitutes values into the template text. Every placeholder
// must have a value; otherwise Render fails listing the unresolved
// names and produces no output. Rendering is deterministic: the same
// inputs always yield byte-identical output.
func Render(text string, values map[string]string) (string, error) {
	tmpl, err := compile(text)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	collectNode(tmpl.Tree.Root, seen)

	var missing []string
	for name := range seen {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", errors.Unresolved(missing)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "failed to render template", err)
	}
	return buf.String(), nil
}
