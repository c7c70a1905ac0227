package engine

// generate.go - generation runs over the inheritance graph

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/gumcodegen/internal/codegen"
	"github.com/leapstack-labs/gumcodegen/internal/dag"
	"github.com/leapstack-labs/gumcodegen/internal/loader"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// GeneratedFileSuffix ends every generated file name.
const GeneratedFileSuffix = ".Generated.cs"

// Skip reasons.
const (
	SkipDisabled = "generation disabled"
	SkipUpToDate = "up to date"
)

// GenerateOptions selects what a generation run does.
type GenerateOptions struct {
	// Elements limits the run to these element names. Empty means all.
	Elements []string
	// Force regenerates elements whose sources are unchanged
	Force bool
	// DryRun generates code without writing files or touching the ledger
	DryRun bool
}

// Output is the outcome for one element.
type Output struct {
	Element string
	Kind    core.ElementKind
	// Path is where the code is (or would be) written
	Path string
	// Code is empty for skipped elements
	Code       string
	Skipped    bool
	SkipReason string
	// SourceHash covers the element document and its base documents
	SourceHash string
}

// GenerateResult describes a generation run.
type GenerateResult struct {
	// Run is the ledger entry. Nil for dry runs.
	Run      *core.Run
	Outputs  []*Output
	Duration time.Duration
}

// Generated returns the outputs that produced code.
func (r *GenerateResult) Generated() []*Output {
	var out []*Output
	for _, o := range r.Outputs {
		if !o.Skipped {
			out = append(out, o)
		}
	}
	return out
}

// Skipped returns the outputs that were skipped.
func (r *GenerateResult) Skipped() []*Output {
	var out []*Output
	for _, o := range r.Outputs {
		if o.Skipped {
			out = append(out, o)
		}
	}
	return out
}

// Summary returns a human-readable summary.
func (r *GenerateResult) Summary() string {
	return fmt.Sprintf("Generated: %d | Skipped: %d | Duration: %s",
		len(r.Generated()), len(r.Skipped()), r.Duration.Round(time.Millisecond))
}

// Generate generates code for the selected elements, base elements first.
// Elements at the same inheritance depth are generated concurrently.
func (e *Engine) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	start := time.Now()

	e.mu.RLock()
	loaded := e.loaded
	e.mu.RUnlock()
	if !loaded {
		if _, err := e.Load(); err != nil {
			return nil, err
		}
	}

	e.mu.RLock()
	gen, graph, reg, documents := e.generator, e.graph, e.registry, e.documents
	e.mu.RUnlock()

	work, err := selectElements(graph, opts.Elements)
	if err != nil {
		return nil, err
	}

	levels, err := work.GetExecutionLevels()
	if err != nil {
		return nil, fmt.Errorf("dependency sort failed: %w", err)
	}

	e.logger.Info("starting generation",
		"elements", work.NodeCount(), "edges", work.EdgeCount(),
		"force", opts.Force, "dry_run", opts.DryRun)

	result := &GenerateResult{}
	if !opts.DryRun {
		run, err := e.store.CreateRun()
		if err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
		result.Run = run
		e.logger.Debug("created run", "run_id", run.ID)
	}

	var mu sync.Mutex
	var runErr error
	for depth, level := range levels {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))

		for _, name := range level {
			el := reg.Element(name)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := e.generateElement(gen, el, documents, opts)
				if err != nil {
					return err
				}
				mu.Lock()
				result.Outputs = append(result.Outputs, out)
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			e.logger.Debug("generation level failed", "level", depth, "error", err)
			runErr = err
			break
		}
	}

	slices.SortFunc(result.Outputs, func(a, b *Output) int { return strings.Compare(a.Element, b.Element) })
	result.Duration = time.Since(start)

	if result.Run != nil {
		e.completeRun(result, runErr, len(opts.Elements) == 0)
	}

	if runErr != nil {
		e.logger.Info("generation failed", "error", runErr.Error())
		return result, runErr
	}
	e.logger.Info("generation completed", "summary", result.Summary())
	return result, nil
}

// selectElements narrows graph to the requested names. Empty selects
// everything.
func selectElements(graph *dag.Graph[*core.Element], names []string) (*dag.Graph[*core.Element], error) {
	if len(names) == 0 {
		return graph, nil
	}

	var missing []error
	for _, name := range names {
		if _, ok := graph.GetNode(name); !ok {
			missing = append(missing, fmt.Errorf("%w: %s", ErrElementNotFound, name))
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return graph.Subgraph(names), nil
}

// generateElement produces, and unless dry-running writes, one element.
func (e *Engine) generateElement(gen *codegen.Generator, el *core.Element, documents map[string]*loader.Document, opts GenerateOptions) (*Output, error) {
	out := &Output{
		Element:    el.Name,
		Kind:       el.Kind,
		Path:       e.OutputPath(gen, el),
		SourceHash: e.sourceHash(el, documents),
	}

	if !el.Settings.Generate {
		out.Skipped, out.SkipReason = true, SkipDisabled
		return out, nil
	}

	if !opts.Force && !opts.DryRun && e.upToDate(el, out) {
		out.Skipped, out.SkipReason = true, SkipUpToDate
		return out, nil
	}

	out.Code = gen.Generate(el)
	if opts.DryRun {
		return out, nil
	}

	if err := os.MkdirAll(filepath.Dir(out.Path), 0o750); err != nil {
		return nil, fmt.Errorf("%s: failed to create output directory: %w", el.Name, err)
	}
	if err := os.WriteFile(out.Path, []byte(out.Code), 0o600); err != nil {
		return nil, fmt.Errorf("%s: failed to write %s: %w", el.Name, out.Path, err)
	}
	e.logger.Debug("element generated", "element", el.Name, "path", out.Path)
	return out, nil
}

// OutputPath returns the file generated code for el is written to.
func (e *Engine) OutputPath(gen *codegen.Generator, el *core.Element) string {
	parts := []string{e.outputDir, el.Kind.OutputFolder()}
	parts = append(parts, el.Folders()...)
	parts = append(parts, codegen.ClassName(el.Name, gen.RuntimeOf(el))+GeneratedFileSuffix)
	return filepath.Join(parts...)
}

// hashKey is the ledger key of an element's source hash.
func hashKey(kind core.ElementKind, name string) string {
	return string(kind) + "/" + name
}

// sourceHash covers everything the generated code depends on: the element
// document, the documents of its resolved base elements, the documents its
// instances are built from and the generator options.
func (e *Engine) sourceHash(el *core.Element, documents map[string]*loader.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%+v\n", e.options)
	for _, name := range e.sourceElements(el) {
		b.WriteString(name)
		b.WriteByte('=')
		if doc := documents[name]; doc != nil {
			b.WriteString(doc.Hash)
		}
		b.WriteByte('\n')
	}
	return loader.Hash([]byte(b.String()))
}

// sourceElements returns el, its bases, and the types of its instances with
// their bases, in a stable order.
func (e *Engine) sourceElements(el *core.Element) []string {
	graph := e.Graph()
	names := []string{el.Name}
	names = append(names, graph.GetUpstreamNodes(el.Name)...)

	var instanceTypes []string
	for _, inst := range el.Instances {
		instanceTypes = append(instanceTypes, inst.BaseType)
		instanceTypes = append(instanceTypes, graph.GetUpstreamNodes(inst.BaseType)...)
	}
	slices.Sort(instanceTypes)
	return append(names, slices.Compact(instanceTypes)...)
}

// upToDate reports whether the ledger already holds out.SourceHash for el
// and the generated file still exists.
func (e *Engine) upToDate(el *core.Element, out *Output) bool {
	existing, err := e.store.GetContentHash(hashKey(el.Kind, el.Name))
	if err != nil || existing != out.SourceHash {
		return false
	}
	_, err = os.Stat(out.Path)
	return err == nil
}

// completeRun records outputs and hashes, then closes the run.
func (e *Engine) completeRun(result *GenerateResult, runErr error, full bool) {
	runID := result.Run.ID

	generated := result.Generated()
	for _, out := range generated {
		if err := e.store.RecordOutput(&core.ElementOutput{
			RunID:       runID,
			Element:     out.Element,
			OutputPath:  out.Path,
			ContentHash: out.SourceHash,
			CodeHash:    loader.Hash([]byte(out.Code)),
		}); err != nil {
			e.logger.Warn("failed to record output", "element", out.Element, "error", err)
			continue
		}
		if err := e.store.SetContentHash(hashKey(out.Kind, out.Element), out.SourceHash, string(out.Kind)); err != nil {
			e.logger.Warn("failed to save source hash", "element", out.Element, "error", err)
		}
	}

	if full && runErr == nil {
		e.cleanupDeletedHashes()
	}

	status := core.RunStatusCompleted
	errMsg := ""
	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		status, errMsg = core.RunStatusCancelled, runErr.Error()
	case runErr != nil:
		status, errMsg = core.RunStatusFailed, runErr.Error()
	}

	if err := e.store.CompleteRun(runID, status, len(generated), len(result.Outputs)-len(generated), errMsg); err != nil {
		e.logger.Warn("failed to complete run", "run_id", runID, "error", err)
	}
	if run, err := e.store.GetRun(runID); err == nil {
		result.Run = run
	}
}

// cleanupDeletedHashes drops ledger hashes of elements that no longer exist.
func (e *Engine) cleanupDeletedHashes() {
	hashes, err := e.store.ListContentHashes()
	if err != nil {
		return
	}
	reg := e.Registry()
	deleted := 0
	for key := range hashes {
		_, name, ok := strings.Cut(key, "/")
		if ok && reg.Element(name) != nil {
			continue
		}
		if err := e.store.DeleteContentHash(key); err == nil {
			deleted++
		}
	}
	if deleted > 0 {
		e.logger.Debug("removed stale source hashes", "count", deleted)
	}
}
