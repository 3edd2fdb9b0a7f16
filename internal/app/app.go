// Package app implements the application layer for ormwire.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ormwire/internal/adapters/cas"
	"go.trai.ch/ormwire/internal/adapters/telemetry"
	"go.trai.ch/ormwire/internal/adapters/watcher"
	"go.trai.ch/ormwire/internal/build"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/ormwire/internal/engine/compiler"
	"go.trai.ch/ormwire/internal/engine/extension"
	"go.trai.ch/ormwire/internal/engine/schemafilter"
	"go.trai.ch/ormwire/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	fingerprinter ports.Fingerprinter
	store         ports.GraphStore
	dumper        ports.GraphDumper
	watcher       ports.Watcher
	logger        ports.Logger
	extension     *extension.Extension
	compiler      *compiler.Compiler
	passes        []ports.CompilerPass

	recorder *telemetry.Recorder
	version  string
	debounce time.Duration
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fingerprinter ports.Fingerprinter,
	store ports.GraphStore,
	dumper ports.GraphDumper,
	w ports.Watcher,
	log ports.Logger,
	ext *extension.Extension,
	comp *compiler.Compiler,
	passes []ports.CompilerPass,
) *App {
	return &App{
		configLoader:  loader,
		fingerprinter: fingerprinter,
		store:         store,
		dumper:        dumper,
		watcher:       w,
		logger:        log,
		extension:     ext,
		compiler:      comp,
		passes:        passes,
		version:       build.Version,
		debounce:      watcher.DefaultDebounceWindow,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}
}

// WithRecorder enables span summaries for the Trace option.
func (a *App) WithRecorder(r *telemetry.Recorder) *App {
	a.recorder = r
	return a
}

// WithOutput redirects the command output and the trace summaries.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounce sets the window in which file changes are coalesced during Watch.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// WithVersion sets the tool version that cached graphs are keyed by.
func (a *App) WithVersion(version string) *App {
	a.version = version
	return a
}

// SetJSONLog switches the logger to JSON output when it supports it.
func (a *App) SetJSONLog(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// CompileOptions configuration for the Compile and Watch methods.
type CompileOptions struct {
	NoCache bool
	Trace   bool
	// CacheDir overrides the directory of the compiled graph cache.
	CacheDir string
}

// Build loads the configuration at path and returns the compiled graph.
func (a *App) Build(ctx context.Context, path string) (*domain.Container, error) {
	cfg, fingerprint, err := a.load(path)
	if err != nil {
		return nil, err
	}
	return a.compile(ctx, cfg, fingerprint)
}

// Compile writes the YAML dump of the graph described by path. Unless NoCache is set,
// a dump cached under the same input fingerprint and tool version is written without
// compiling.
func (a *App) Compile(ctx context.Context, path string, opts CompileOptions) error {
	cfg, fingerprint, err := a.load(path)
	if err != nil {
		return err
	}

	store := a.store
	if opts.CacheDir != "" {
		store = cas.NewStore(opts.CacheDir)
	}

	key := cacheKey(a.version, fingerprint)
	if !opts.NoCache {
		cached, err := store.Get(key)
		if err != nil {
			return err
		}
		if cached != nil {
			a.logger.Info("using cached graph " + key)
			return a.write(cached)
		}
	}

	if a.recorder != nil {
		a.recorder.Reset()
	}
	graph, err := a.compile(ctx, cfg, fingerprint)
	if opts.Trace && a.recorder != nil {
		writeTrace(a.stderr, a.recorder.Summaries())
	}
	if err != nil {
		return err
	}

	data, err := a.dumper.Dump(graph)
	if err != nil {
		return err
	}
	if err := store.Put(key, data); err != nil {
		a.logger.Warn("failed to cache compiled graph: " + err.Error())
	}
	return a.write(data)
}

// Check compiles every file concurrently and reports each failure. It returns
// ErrCheckFailed when at least one file does not compile.
func (a *App) Check(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return domain.ErrNoConfigFiles
	}

	results := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			_, results[i] = a.Build(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range results {
		if err != nil {
			failed++
			a.logger.Error(zerr.With(err, "file", paths[i]))
			continue
		}
		_, _ = fmt.Fprintf(a.stdout, "%s %s\n", style.Check, paths[i])
	}
	if failed > 0 {
		return errors.Join(domain.ErrCheckFailed, zerr.New(fmt.Sprintf("%d of %d files failed", failed, len(paths))))
	}
	return nil
}

// Show describes one service of the compiled graph.
func (a *App) Show(ctx context.Context, path, id string) error {
	graph, err := a.Build(ctx, path)
	if err != nil {
		return err
	}
	out, err := a.dumper.Describe(graph, id)
	if err != nil {
		return err
	}
	return a.write([]byte(out))
}

// Filter prints the assets that survive the schema filters of connection, one per
// line. An empty connection selects the default connection.
func (a *App) Filter(ctx context.Context, path, connection string, assets []string) error {
	graph, err := a.Build(ctx, path)
	if err != nil {
		return err
	}
	if connection == "" {
		connection, _ = graph.ResolveString("%" + domain.DefaultConnectionParam + "%")
	}

	kept, err := schemafilter.New(graph).Filter(connection, assets)
	if err != nil {
		return err
	}
	for _, asset := range kept {
		if _, err := fmt.Fprintln(a.stdout, asset); err != nil {
			return zerr.Wrap(err, "failed to write output")
		}
	}
	return nil
}

// Watch compiles path and recompiles it whenever one of its source files changes,
// until ctx is canceled. Compilation failures are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, path string, opts CompileOptions) error {
	cfg, _, err := a.load(path)
	if err != nil {
		return err
	}
	if err := a.Compile(ctx, path, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, cfg.Sources); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		a.logger.Info("recompiling after changes to " + strings.Join(paths, ", "))
		if err := a.Compile(ctx, path, opts); err != nil {
			a.logger.Error(err)
		}
	})
	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}
	debouncer.Flush()
	return nil
}

func (a *App) load(path string) (*domain.Config, string, error) {
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}
	fingerprint, err := a.fingerprinter.Fingerprint(cfg.Sources)
	if err != nil {
		return nil, "", err
	}
	return cfg, fingerprint, nil
}

func (a *App) compile(ctx context.Context, cfg *domain.Config, fingerprint string) (*domain.Container, error) {
	graph, err := a.extension.Load(ctx, cfg, fingerprint)
	if err != nil {
		return nil, err
	}
	if err := a.compiler.Compile(ctx, graph, a.passes...); err != nil {
		return nil, err
	}
	return graph, nil
}

// cacheKey derives the graph cache key from the config fingerprint and the version
// of the builders that produced the graph.
func cacheKey(version, fingerprint string) string {
	h := xxhash.New()
	_, _ = h.WriteString(version)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(fingerprint)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (a *App) write(data []byte) error {
	if _, err := a.stdout.Write(data); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
