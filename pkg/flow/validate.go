package flow

import (
	"errors"
	"fmt"

	"github.com/Maroco0109/AgentForge-sub000/pkg/condition"
)

// ErrDanglingEdge indicates an edge references a node id that is not in
// the flow.
var ErrDanglingEdge = errors.New("edge references missing node")

// Validate checks structural integrity without mutating the flow.
//
// Dangling edge endpoints are errors (joined when multiple). Duplicate
// edges, unparsable conditions, and out-of-range agent configuration are
// reported as warnings: the editor tolerates them, the backend may not.
func (f *Flow) Validate() (warnings []string, err error) {
	ids := make(map[string]bool, len(f.nodes))
	for _, n := range f.nodes {
		ids[n.ID] = true
	}

	var errs []error
	seen := make(map[[2]string]int)
	for _, e := range f.edges {
		if !ids[e.Source] {
			errs = append(errs, fmt.Errorf("%w: source %q", ErrDanglingEdge, e.Source))
		}
		if !ids[e.Target] {
			errs = append(errs, fmt.Errorf("%w: target %q", ErrDanglingEdge, e.Target))
		}
		seen[[2]string{e.Source, e.Target}]++
		if e.Condition != "" {
			if _, perr := condition.Parse(e.Condition); perr != nil {
				warnings = append(warnings, fmt.Sprintf("edge %s -> %s: %v", e.Source, e.Target, perr))
			}
		}
	}
	for pair, count := range seen {
		if count > 1 {
			warnings = append(warnings, fmt.Sprintf("duplicate edge %s -> %s (%d copies)", pair[0], pair[1], count))
		}
	}

	for _, n := range f.nodes {
		if cerr := n.Data.Config.Validate(); cerr != nil {
			warnings = append(warnings, fmt.Sprintf("node %s: %v", n.ID, cerr))
		}
	}

	return warnings, errors.Join(errs...)
}
