package runtime

import (
	"context"
	"fmt"

	"github.com/risor-io/risor/object"
)

// ScriptRenderer renders page import statements with a Risor script.
// The script receives the globals name and source; its final expression
// must be a string.
type ScriptRenderer struct {
	rt     *Runtime
	source string
}

// NewScriptRenderer wraps Risor source in a renderer evaluated by rt.
// Import statements in the script resolve through rt's FS or scripts dir.
func NewScriptRenderer(rt *Runtime, source string) *ScriptRenderer {
	return &ScriptRenderer{
		rt:     rt,
		source: source,
	}
}

// RenderImport evaluates the script for one page.
func (s *ScriptRenderer) RenderImport(ctx context.Context, name, source string) (string, error) {
	result, err := s.rt.Eval(ctx, s.source, "import", map[string]any{
		"name":   name,
		"source": source,
	})
	if err != nil {
		return "", err
	}
	str, ok := result.(*object.String)
	if !ok {
		return "", fmt.Errorf("runtime: import script returned %s, want string", result.Type())
	}
	return str.Value(), nil
}
