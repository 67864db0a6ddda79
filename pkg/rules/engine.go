package rules

import (
	"fmt"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

// defaultMaxIterations mirrors : 10 for Main, 2 for Post.
func defaultMaxIterations(p Phase) int {
	if p == PhasePost {
		return 2
	}
	return 10
}

// Applier is the minimal surface pkg/fix must expose back to the lint
// loop: apply a fix bundle to a tree, returning the rewritten tree, whether
// the rewrite passed the re-parse sanity check, and the patches the
// accepted bundles lower to.
type Applier interface {
	Apply(tree *segment.Segment, fixes []fix.LintFix, d *dialect.Dialect, tables *segment.Tables) (rewritten *segment.Segment, applied bool, valid bool, patches []fix.FixPatch)
}

// RunResult is what one Run call produces. Patches accumulates every
// applied iteration's lowered edits, in application order, for callers
// reconstructing fixed source against a templated file.
type RunResult struct {
	Tree       *segment.Segment
	Violations []Violation
	Patches    []fix.FixPatch
}

// Violation pairs a LintResult with the rule that produced it, for
// diagnostic rendering.
type Violation struct {
	Rule   Rule
	Result fix.LintResult
}

// Run executes 's linting loop: for each phase, repeatedly
// crawl with every in-phase rule, collect LintResults, and — in fix mode —
// apply the proposed fixes via applier, looping until a fixed point or the
// phase's iteration cap. Diagnostics from the very first pass of each phase
// are kept as the reported Violations regardless of how many fix iterations
// follow, since later passes reflect an already-partially-fixed tree.
func Run(tree *segment.Segment, rulesInOrder []Rule, d *dialect.Dialect, tables *segment.Tables, applier Applier, fixMode bool) (RunResult, error) {
	var firstPassViolations []Violation
	var patches []fix.FixPatch
	phases := []Phase{PhaseMain, PhasePost}

	for _, phase := range phases {
		inPhase := InPhase(rulesInOrder, phase)
		if len(inPhase) == 0 {
			continue
		}
		maxIter := 1
		if fixMode {
			maxIter = defaultMaxIterations(phase)
		}

		for iteration := 0; iteration < maxIter; iteration++ {
			anyChange := false
			for _, r := range inPhase {
				if !fixMode && iteration > 0 && !r.IsFixCompatible() {
					continue
				}
				results := evalRule(tree, r, d, tables)
				if iteration == 0 {
					for _, res := range results {
						firstPassViolations = append(firstPassViolations, Violation{Rule: r, Result: res})
					}
				}
				if !fixMode {
					continue
				}
				var fixes []fix.LintFix
				for _, res := range results {
					fixes = append(fixes, res.Fixes...)
				}
				if len(fixes) == 0 {
					continue
				}
				rewritten, applied, valid, bundlePatches := applier.Apply(tree, fixes, d, tables)
				if !valid {
					continue
				}
				if applied {
					tree = rewritten
					patches = append(patches, bundlePatches...)
					anyChange = true
				}
			}
			if !anyChange {
				break
			}
		}
	}

	return RunResult{Tree: tree, Violations: firstPassViolations, Patches: patches}, nil
}

// evalRule runs r's Crawl once and Evals every resulting Context. All
// Contexts from this one pass share a single Memory map, not a fresh one
// each — rules like keyword capitalisation narrow a running hypothesis
// as they visit successive matches, and that only
// works if state survives from one Context to the next within the pass.
func evalRule(tree *segment.Segment, r Rule, d *dialect.Dialect, tables *segment.Tables) []fix.LintResult {
	if !AppliesToDialect(r, d.Name) {
		return nil
	}
	var out []fix.LintResult
	memory := make(map[string]any)
	for _, ctx := range r.CrawlBehaviour().Crawl(tree, d, tables) {
		ctx.Memory = memory
		out = append(out, r.Eval(ctx)...)
	}
	return out
}

// RequireNonNilTree is a defensive check used by callers constructing a Run
// from externally-supplied state (e.g. a CLI that mis-wires a nil parse
// result); kept here rather than relying on a nil-pointer panic deep in the
// crawl so the failure mode is a clear error.
func RequireNonNilTree(tree *segment.Segment) error {
	if tree == nil {
		return fmt.Errorf("rules: cannot run rule pack over a nil tree")
	}
	return nil
}
