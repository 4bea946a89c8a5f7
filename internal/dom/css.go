package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

// TransitionGuardCSS is the rule behind NoTransitionsClass.
const TransitionGuardCSS = "." + NoTransitionsClass + ", ." + NoTransitionsClass + " * {\n  transition: none !important;\n}\n"

// RenderCSS renders the custom properties of a state as a rule scoped to its
// marker class, for hosts that inject a stylesheet instead of inline styles.
func RenderCSS(state types.DOMState) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":root.%s {\n", state.AddClass)

	names := make([]string, 0, len(state.SetProperties))
	for name := range state.SetProperties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, state.SetProperties[name])
	}
	b.WriteString("}\n")
	return b.String()
}
