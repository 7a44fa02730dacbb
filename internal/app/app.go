// Package app implements the application layer for sigil.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sigil/internal/adapters/detector"
	"go.trai.ch/sigil/internal/adapters/fs"
	"go.trai.ch/sigil/internal/adapters/progress"
	"go.trai.ch/sigil/internal/adapters/raster"
	"go.trai.ch/sigil/internal/adapters/telemetry"
	"go.trai.ch/sigil/internal/adapters/toolchain"
	"go.trai.ch/sigil/internal/adapters/tui"
	"go.trai.ch/sigil/internal/adapters/watcher"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/engine/pipeline"
	"go.trai.ch/sigil/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	selector     *toolchain.Selector
	digester     ports.Digester
	history      ports.HistoryStore
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	selector *toolchain.Selector,
	digester ports.Digester,
	history ports.HistoryStore,
	watch ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		selector:     selector,
		digester:     digester,
		history:      history,
		watcher:      watch,
		tracer:       tracer,
		logger:       log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// SignOptions configures Sign and Preview. Zero values mean "not given":
// the stored history for the target applies first, then the configuration.
type SignOptions struct {
	// Target is the document to sign.
	Target string
	// Output overrides the derived .signed.pdf path.
	Output string
	// Page is a page spec: first, last, or a 1-based number.
	Page string
	// Signature is a signature name or path.
	Signature string
	// SignaturePage selects the page inside a multi-page signature file.
	SignaturePage int
	// Anchor is the placement corner: bl, br, tl, tr, or c.
	Anchor string
	// DX and DY are offsets from the anchor in points, toward the page
	// interior. HasOffset marks them as explicitly given.
	DX, DY    float64
	HasOffset bool
	// Scale is the signature scale factor.
	Scale float64
	// DPI is the preview raster resolution.
	DPI int
	// SignatureDir overrides the signature directory.
	SignatureDir string
	// Toolchain overrides the configured PDF backend selection.
	Toolchain string
	// NoHistory skips reading and writing the per-target placement
	// history.
	NoHistory bool
}

// session holds everything prepare resolved for one sign or preview run.
type session struct {
	cfg       domain.Config
	kit       toolchain.Kit
	workspace *fs.Workspace
	pipe      *pipeline.Pipeline

	target     string
	outPath    string
	pageSpec   domain.PageSpec
	placement  domain.Placement
	dpi        int
	signatures []domain.Signature
	sigIdx     int
}

// Sign applies the signature in one shot. Step progress prints to stderr;
// the signed document lands at the output path.
func (a *App) Sign(ctx context.Context, opts SignOptions) error {
	printer := progress.NewPrinter(os.Stderr)
	setupOTel(telemetry.NewBridge(printer))

	st, err := a.prepare(opts, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.workspace.Close()
	}()

	if err := st.pipe.Refresh(ctx); err != nil {
		return err
	}
	page, err := st.pipe.ResolvePage(ctx, st.pageSpec)
	if err != nil {
		return err
	}
	st.pipe.SetPage(page)

	out, err := st.pipe.Save(ctx, st.outPath)
	printer.Flush()
	if err != nil {
		return zerr.Wrap(err, "signing failed")
	}

	if !opts.NoHistory {
		a.remember(st, page)
	}

	a.logger.Info("signed document written to " + out)
	return nil
}

// Preview opens the interactive placement preview. It returns once the user
// quits; the last placement is stored for the next run.
func (a *App) Preview(ctx context.Context, opts SignOptions) error {
	if !detector.Detect().CanPreview() {
		return domain.ErrNotATerminal
	}

	st, err := a.prepare(opts, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.workspace.Close()
	}()

	// The TUI owns the terminal, so log output diverts to a file in the
	// workspace for the duration of the preview.
	if lw, ok := a.logger.(interface{ SetOutput(w io.Writer) }); ok {
		if debugLog, openErr := os.OpenFile(st.workspace.Path(domain.DebugLogFile),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePerm); openErr == nil {
			lw.SetOutput(debugLog)
			defer func() {
				lw.SetOutput(nil)
				_ = debugLog.Close()
			}()
		}
	}

	if err := st.pipe.Refresh(ctx); err != nil {
		return err
	}
	page, err := st.pipe.ResolvePage(ctx, st.pageSpec)
	if err != nil {
		return err
	}
	st.pipe.SetPage(page)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := pipeline.NewSession(st.pipe)
	model := tui.NewModel(ctx, tui.Config{
		Driver:     sess,
		Target:     st.target,
		OutPath:    st.outPath,
		Signatures: st.signatures,
		SigIdx:     st.sigIdx,
		Page:       page,
		Placement:  st.placement,
		DPI:        st.dpi,
	}, os.Stderr)

	teaOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	}, a.teaOptions...)
	program := tea.NewProgram(model, teaOpts...)

	// Recompute steps surface in the status area and the output pane.
	setupOTel(telemetry.NewBridge(tui.NewSink(program)))

	watched := []string{st.target}
	for _, sig := range st.signatures {
		watched = append(watched, sig.Path)
	}
	if err := a.watcher.Start(ctx, watched); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	debounce := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		for _, p := range paths {
			program.Send(tui.MsgFileChanged{Path: p})
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sess.Run(gctx)
	})

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if event.Operation == ports.OpWrite || event.Operation == ports.OpCreate {
				debounce.Add(event.Path)
			}
		}
		return nil
	})

	var final *tui.Model
	g.Go(func() error {
		m, err := program.Run()
		// Stopping the shared context ends the session loop and the
		// watcher iterator.
		cancel()
		if fm, ok := m.(*tui.Model); ok {
			final = fm
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if final != nil && !opts.NoHistory {
		st.placement = final.Placement
		if final.SigIdx >= 0 && final.SigIdx < len(st.signatures) {
			st.sigIdx = final.SigIdx
		}
		a.remember(st, final.Page)
	}
	return nil
}

// InfoResult is what Info reports about a document.
type InfoResult struct {
	Doc    domain.DocumentInfo
	Report toolchain.Report
}

// Info inspects a document and reports page count, page sizes, file size
// and the toolchain that served the request.
func (a *App) Info(ctx context.Context, path string) (InfoResult, error) {
	cfg, err := a.loadConfig("")
	if err != nil {
		return InfoResult{}, err
	}

	kit, err := a.selector.Build(cfg.Toolchain)
	if err != nil {
		return InfoResult{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return InfoResult{}, zerr.With(errors.Join(domain.ErrTargetNotFound, err), "path", path)
	}

	count, err := kit.Inspector.PageCount(ctx, path)
	if err != nil {
		return InfoResult{}, err
	}

	doc := domain.DocumentInfo{
		Path:      path,
		PageCount: count,
		FileSize:  fi.Size(),
		Pages:     make([]domain.PageInfo, 0, count),
	}
	for n := 1; n <= count; n++ {
		size, err := kit.Inspector.PageSize(ctx, path, n)
		if err != nil {
			return InfoResult{}, err
		}
		doc.Pages = append(doc.Pages, domain.PageInfo{Number: n, Size: size})
	}

	return InfoResult{Doc: doc, Report: kit.Report}, nil
}

// Signatures lists the discovered signature files and the directory they
// came from.
func (a *App) Signatures(dirOverride string) (string, []string, error) {
	cfg, err := a.loadConfig("")
	if err != nil {
		return "", nil, err
	}

	resolver := fs.NewResolver(dirOverride, cfg.SignatureDir)
	dir, err := resolver.Dir()
	if err != nil {
		return "", nil, err
	}
	files, err := resolver.List()
	if err != nil {
		return dir, nil, err
	}
	return dir, files, nil
}

// Clean removes the stored placement history.
func (a *App) Clean(_ context.Context) error {
	if err := a.history.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear placement history")
	}
	a.logger.Info("placement history cleared")
	return nil
}

// prepare resolves configuration, history and flags into a ready pipeline.
// Precedence per setting: explicit option, then stored history, then
// configuration.
func (a *App) prepare(opts SignOptions, frameOut io.Writer) (*session, error) {
	cfg, err := a.loadConfig(opts.Toolchain)
	if err != nil {
		return nil, err
	}

	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return nil, zerr.With(domain.ErrTargetNotFound, "path", opts.Target)
	}
	if _, err := os.Stat(target); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrTargetNotFound, err), "path", target)
	}

	var hist domain.HistoryEntry
	if !opts.NoHistory {
		entry, ok, lookupErr := a.history.Lookup(target)
		if lookupErr != nil {
			a.logger.Warn("ignoring unreadable placement history: " + lookupErr.Error())
		} else if ok {
			hist = entry
		}
	}

	resolver := fs.NewResolver(opts.SignatureDir, cfg.SignatureDir)
	files, err := resolver.List()
	if err != nil {
		return nil, err
	}

	sigName := opts.Signature
	if sigName == "" {
		sigName = hist.Signature
	}
	if sigName == "" {
		sigName = cfg.Signature
	}
	sigPath, err := resolver.Resolve(sigName)
	if err != nil {
		return nil, err
	}

	sigPage := opts.SignaturePage
	if sigPage < 1 {
		sigPage = 1
	}
	signatures := make([]domain.Signature, 0, len(files)+1)
	sigIdx := -1
	for i, f := range files {
		page := 1
		if samePath(f, sigPath) {
			sigIdx = i
			page = sigPage
		}
		signatures = append(signatures, domain.Signature{Path: f, Page: page})
	}
	// An explicit path may live outside the signature directory, or spell a
	// listed file differently. It still has to be the one that gets stamped.
	if sigIdx < 0 {
		sigIdx = len(signatures)
		signatures = append(signatures, domain.Signature{Path: sigPath, Page: sigPage})
	}

	placement, err := mergePlacement(cfg, hist, opts)
	if err != nil {
		return nil, err
	}

	pageValue := opts.Page
	if pageValue == "" {
		pageValue = hist.Page
	}
	pageSpec, err := domain.ParsePageSpec(pageValue)
	if err != nil {
		return nil, err
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = cfg.DPI
	}

	kit, err := a.selector.Build(cfg.Toolchain)
	if err != nil {
		return nil, err
	}

	workspace, err := fs.NewWorkspace()
	if err != nil {
		return nil, err
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = domain.SignedOutputPath(target)
	}

	pipe := pipeline.New(
		pipeline.Tools{
			Inspector:  kit.Inspector,
			Rasterizer: kit.Rasterizer,
			Composer:   kit.Composer,
			Digester:   a.digester,
			Renderer:   raster.NewHalfBlockRenderer(output.New(frameOut)),
			Tracer:     a.tracer,
		},
		pipeline.Paths{
			Page:    workspace.Path("page.pdf"),
			Overlay: workspace.Path("overlay.pdf"),
			Stamped: workspace.Path("stamped.pdf"),
			Preview: workspace.Path("preview.png"),
		},
		target,
		signatures[sigIdx],
		placement,
		dpi,
	)

	return &session{
		cfg:        cfg,
		kit:        kit,
		workspace:  workspace,
		pipe:       pipe,
		target:     target,
		outPath:    outPath,
		pageSpec:   pageSpec,
		placement:  placement,
		dpi:        dpi,
		signatures: signatures,
		sigIdx:     sigIdx,
	}, nil
}

// samePath reports whether two spellings name the same file.
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// loadConfig reads the configuration and applies the toolchain override.
func (a *App) loadConfig(toolchainOverride string) (domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, source, err := a.configLoader.Load(cwd)
	if err != nil {
		return domain.Config{}, err
	}
	if source != "" {
		a.logger.Info("using configuration from " + source)
	}

	if toolchainOverride != "" {
		cfg.Toolchain = domain.Toolchain(toolchainOverride)
		if err := cfg.Validate(); err != nil {
			return domain.Config{}, err
		}
	}
	return cfg, nil
}

// mergePlacement folds config defaults, history and explicit flags into the
// starting placement.
func mergePlacement(cfg domain.Config, hist domain.HistoryEntry, opts SignOptions) (domain.Placement, error) {
	pl := cfg.Placement
	if hist.Placement.Scale > 0 {
		pl = hist.Placement
	}
	if opts.Anchor != "" {
		anchor, err := domain.ParseAnchor(opts.Anchor)
		if err != nil {
			return domain.Placement{}, err
		}
		pl.Anchor = anchor
	}
	if opts.HasOffset {
		pl.DX, pl.DY = opts.DX, opts.DY
	}
	if opts.Scale != 0 {
		if opts.Scale < 0 {
			return domain.Placement{}, zerr.With(domain.ErrInvalidPlacement, "scale", fmt.Sprintf("%g", opts.Scale))
		}
		pl.Scale = opts.Scale
	}
	return pl, nil
}

// remember stores the session's final placement for the target.
func (a *App) remember(st *session, page int) {
	entry := domain.HistoryEntry{
		Placement: st.placement,
		Signature: st.signatures[st.sigIdx].Path,
		Page:      strconv.Itoa(page),
	}
	if err := a.history.Save(st.target, entry); err != nil {
		a.logger.Warn("failed to store placement history: " + err.Error())
	}
}

// setupOTel installs a tracer provider routing spans through the bridge, so
// pipeline steps reach the run's step sink.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
