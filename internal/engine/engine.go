// Package engine generates code for a whole Gum project.
// It ties the loader, the element registry, the generator and the
// generation ledger together and handles ordering, incremental builds and
// file watching.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/gumcodegen/internal/codegen"
	"github.com/leapstack-labs/gumcodegen/internal/dag"
	"github.com/leapstack-labs/gumcodegen/internal/loader"
	"github.com/leapstack-labs/gumcodegen/internal/registry"
	"github.com/leapstack-labs/gumcodegen/internal/state"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// ErrElementNotFound is returned when a requested element is not loaded.
var ErrElementNotFound = errors.New("element not found")

// ErrNotLoaded is returned by queries made before Load.
var ErrNotLoaded = errors.New("project not loaded")

// Engine orchestrates code generation for a project.
type Engine struct {
	logger *slog.Logger
	store  state.Store
	loader *loader.Loader

	outputDir string
	options   codegen.Options

	mu        sync.RWMutex
	loaded    bool
	documents map[string]*loader.Document
	registry  *registry.Registry
	generator *codegen.Generator
	graph     *dag.Graph[*core.Element]
}

// Config holds engine configuration.
type Config struct {
	// ProjectDir is the directory holding the kind folders
	ProjectDir string
	// OutputDir receives the generated files
	OutputDir string
	// StatePath is the path to the SQLite ledger. Empty keeps it in memory.
	StatePath string
	// Options configures the generator
	Options codegen.Options
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine and opens its ledger.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine", "project_dir", cfg.ProjectDir, "output_dir", cfg.OutputDir)

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = ":memory:"
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(statePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	return &Engine{
		logger:    logger,
		store:     store,
		loader:    loader.New(cfg.ProjectDir, logger),
		outputDir: cfg.OutputDir,
		options:   cfg.Options,
		documents: make(map[string]*loader.Document),
		registry:  registry.New(),
		graph:     dag.NewGraph[*core.Element](),
	}, nil
}

// Close releases the ledger.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")
	if e.store == nil {
		return nil
	}
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("failed to close state store: %w", err)
	}
	return nil
}

// Load discovers every element of the project and rebuilds the registry
// and inheritance graph. Documents that fail to decode are reported in the
// result; an inheritance cycle fails the load.
func (e *Engine) Load() (*loader.Result, error) {
	e.logger.Info("loading project", "project_dir", e.loader.Root())

	result, err := e.loader.Load()
	if err != nil {
		return nil, err
	}

	reg := registry.New(result.Elements()...)
	if err := reg.Validate(); err != nil {
		return result, err
	}

	documents := make(map[string]*loader.Document, len(result.Documents))
	for _, doc := range result.Documents {
		documents[doc.Element.Name] = doc
	}

	e.mu.Lock()
	e.documents = documents
	e.registry = reg
	e.generator = codegen.New(reg, e.options)
	e.graph = reg.Graph()
	e.loaded = true
	e.mu.Unlock()

	e.logger.Info("project loaded", "summary", result.Summary())
	return result, nil
}

// --- Getters (public accessors) ---

// Registry returns the element registry of the last load.
func (e *Engine) Registry() *registry.Registry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry
}

// Graph returns the inheritance graph of the last load.
func (e *Engine) Graph() *dag.Graph[*core.Element] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}

// Generator returns the generator bound to the last load, or nil before Load.
func (e *Engine) Generator() *codegen.Generator {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generator
}

// StateStore returns the generation ledger.
func (e *Engine) StateStore() state.Store {
	return e.store
}

// OutputDir returns the directory generated files are written to.
func (e *Engine) OutputDir() string {
	return e.outputDir
}

// Element returns a loaded element by name.
func (e *Engine) Element(name string) (*core.Element, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.loaded {
		return nil, ErrNotLoaded
	}
	el := e.registry.Element(name)
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, name)
	}
	return el, nil
}

// Document returns the loaded document of an element, or nil.
func (e *Engine) Document(name string) *loader.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.documents[name]
}
