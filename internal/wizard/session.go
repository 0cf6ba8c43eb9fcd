package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/resuexpress/internal/autosave"
	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/editor"
	"github.com/jonathan/resuexpress/internal/export"
	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/jonathan/resuexpress/internal/rendering"
	"github.com/jonathan/resuexpress/internal/store"
	"github.com/jonathan/resuexpress/internal/types"
)

// DefaultWriteTimeout bounds a single write to the store.
const DefaultWriteTimeout = 5 * time.Second

// Options configures a Session. Only Store is required.
type Options struct {
	Store        store.Store
	Registry     *rendering.Registry
	Scheduler    autosave.Scheduler
	Delay        time.Duration
	WriteTimeout time.Duration
	Observer     Observer
	Logger       *slog.Logger
	Metrics      *observability.Metrics
	Assembler    *export.Assembler
	Printer      *export.Printer
}

// Preview is the most recent successful render of the active template.
type Preview struct {
	TemplateKey  string
	TemplateName string
	HTML         string
}

type pendingWrite struct {
	seq  uint64
	blob []byte
}

// Session is the explicitly owned document plus the components that edit, navigate,
// render and persist it. All operations are serialized.
type Session struct {
	mu      sync.Mutex
	doc     *types.ResumeDocument
	staged  []pendingWrite
	preview Preview
	closed  bool

	registry     *rendering.Registry
	writer       *store.SequencedWriter
	autosave     *autosave.Coordinator
	editor       *editor.Editor
	machine      *navigation.Machine
	observer     Observer
	logger       *slog.Logger
	metrics      *observability.Metrics
	assembler    *export.Assembler
	printer      *export.Printer
	writeTimeout time.Duration
}

// Open loads and hydrates the persisted document, heals its template selection and
// renders the first preview. Load failures fall back to the defaults and are logged.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	registry := opts.Registry
	if registry == nil {
		var err error
		if registry, err = rendering.NewRegistry(); err != nil {
			return nil, err
		}
	}

	s := &Session{
		registry:     registry,
		writer:       store.NewSequencedWriter(opts.Store),
		observer:     opts.Observer,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		assembler:    opts.Assembler,
		printer:      opts.Printer,
		writeTimeout: opts.WriteTimeout,
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.assembler == nil {
		s.assembler = export.NewAssembler(nil)
	}
	if s.printer == nil {
		s.printer = &export.Printer{Logger: s.logger}
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = DefaultWriteTimeout
	}

	s.doc = s.load(ctx, opts.Store)
	if _, ok := registry.Lookup(s.doc.SelectedTemplate); !ok {
		s.logger.Warn("wizard: selected template not registered, using default",
			slog.String("template", s.doc.SelectedTemplate),
			slog.String("default", registry.Default().Key))
		s.doc.SelectedTemplate = registry.Default().Key
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = autosave.NewTimerScheduler()
	}
	var hooks autosave.Hooks
	if opts.Metrics != nil {
		hooks = opts.Metrics
	}
	s.autosave = autosave.NewCoordinator(sched, opts.Delay, s.autosaveFired, hooks)
	s.editor = editor.New(s.doc, s.autosave, s.observer)
	s.machine = navigation.New(s.doc, persister{s})

	s.mu.Lock()
	s.renderLocked()
	s.mu.Unlock()
	return s, nil
}

func (s *Session) load(ctx context.Context, st store.Store) *types.ResumeDocument {
	raw, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		raw = nil
	case err != nil:
		s.logger.Warn("wizard: load failed, using defaults", slog.String("error", err.Error()))
		s.metrics.Loaded(observability.ResultError)
		raw = nil
	}

	doc, err := document.Hydrate(raw)
	switch {
	case err != nil:
		s.logger.Warn("wizard: stored document unusable, using defaults", slog.String("error", err.Error()))
		s.metrics.Loaded(observability.ResultError)
	case raw == nil:
		s.metrics.Loaded(observability.ResultDefault)
	default:
		s.metrics.Loaded(observability.ResultOK)
	}
	return doc
}

// SetField writes a scalar field and schedules the debounced write-back.
func (s *Session) SetField(name, value string) error {
	return s.mutate(func() error {
		if err := document.SetScalarField(s.doc, name, value); err != nil {
			return err
		}
		s.autosave.Touch()
		return nil
	})
}

// AddRecord appends an empty record to section and returns its index.
func (s *Session) AddRecord(section types.Section) (int, error) {
	var index int
	err := s.mutate(func() error {
		var err error
		index, err = s.editor.AddRecord(section)
		return err
	})
	return index, err
}

// RemoveRecord deletes one record; the last record of a section is cleared instead.
func (s *Session) RemoveRecord(section types.Section, index int) error {
	return s.mutate(func() error {
		return s.editor.RemoveRecord(section, index)
	})
}

// UpdateRecordField writes one field of one record.
func (s *Session) UpdateRecordField(section types.Section, index int, field, value string) error {
	return s.mutate(func() error {
		return s.editor.UpdateField(section, index, field, value)
	})
}

// Advance moves one step forward (+1) or back (-1). Accepted moves are written
// through immediately; rejected ones change nothing.
func (s *Session) Advance(direction int) (navigation.StepView, error) {
	var view navigation.StepView
	err := s.mutate(func() error {
		var err error
		view, err = s.machine.Advance(direction)
		if err != nil {
			var verr *navigation.ValidationError
			if errors.As(err, &verr) {
				s.metrics.Rejected()
				s.logger.Info("wizard: step blocked", slog.Any("missing", verr.Missing))
			}
			return err
		}
		s.observer.StepChanged(view)
		return nil
	})
	return view, err
}

// SelectTemplate switches the active template, re-renders and writes through
// immediately. Selecting the active template again does nothing.
func (s *Session) SelectTemplate(key string) error {
	return s.mutate(func() error {
		if _, ok := s.registry.Lookup(key); !ok {
			return ErrUnknownTemplate
		}
		if key == s.doc.SelectedTemplate {
			return nil
		}
		s.doc.SelectedTemplate = key
		s.stageLocked()
		s.renderLocked()
		s.observer.TemplateChanged(key)
		return nil
	})
}

// Snapshot returns a deep copy of the document.
func (s *Session) Snapshot() *types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Preview returns the latest successful render.
func (s *Session) Preview() Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// StepView returns the view of the current step.
func (s *Session) StepView() navigation.StepView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// Templates lists the registered templates in selection order.
func (s *Session) Templates() []*rendering.Template {
	return s.registry.List()
}

// SelectedTemplate returns the active template.
func (s *Session) SelectedTemplate() *rendering.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Resolve(s.doc.SelectedTemplate)
}

// Export assembles a standalone HTML document from the current document and active
// template. Persisted state is not touched.
func (s *Session) Export() (*export.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	art, err := s.exportLocked()
	if err != nil {
		return nil, err
	}
	s.metrics.Exported("html")
	return art, nil
}

// ExportPDF prints the exported HTML document through headless Chrome.
func (s *Session) ExportPDF(ctx context.Context) (*export.Artifact, []byte, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrClosed
	}
	art, err := s.exportLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.printer.PDF(ctx, art)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.Exported("pdf")
	return art, pdf, nil
}

func (s *Session) exportLocked() (*export.Artifact, error) {
	// Rendered from the live document rather than s.preview, which lags while an
	// autosave is pending.
	tmpl := s.registry.Resolve(s.doc.SelectedTemplate)
	markup, err := tmpl.Render(s.doc)
	if err != nil {
		return nil, err
	}
	return s.assembler.Assemble(markup, s.doc.Name, tmpl.DisplayName)
}

// Flush runs a pending debounced write-back now. It reports whether one was pending.
func (s *Session) Flush() bool {
	return s.autosave.Flush()
}

// Close flushes pending work and rejects further operations. The store stays open;
// it belongs to the caller.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.autosave.Flush()
	s.autosave.Stop()
	return nil
}

// mutate runs fn under the session lock, then performs the writes fn staged.
func (s *Session) mutate(fn func() error) error {
	staged, err := s.locked(fn)
	for _, w := range staged {
		s.write(w)
	}
	return err
}

func (s *Session) locked(fn func() error) ([]pendingWrite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	err := fn()
	staged := s.staged
	s.staged = nil
	return staged, err
}

// autosaveFired persists the whole document, then refreshes the preview. The write
// still happens on a closed session so that Close loses nothing.
func (s *Session) autosaveFired() {
	s.mu.Lock()
	w, ok := s.snapshotLocked()
	s.mu.Unlock()

	if ok {
		s.write(w)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.renderLocked()
	}
}

// stageLocked queues an immediate write of the current document.
func (s *Session) stageLocked() {
	if w, ok := s.snapshotLocked(); ok {
		s.staged = append(s.staged, w)
	}
}

func (s *Session) snapshotLocked() (pendingWrite, bool) {
	blob, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Warn("wizard: encode failed", slog.String("error", err.Error()))
		s.metrics.Saved(observability.ResultError)
		return pendingWrite{}, false
	}
	return pendingWrite{seq: s.writer.Next(), blob: blob}, true
}

// write saves one snapshot. Failures are logged and swallowed; the in-memory
// document stays authoritative.
func (s *Session) write(w pendingWrite) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	written, err := s.writer.Write(ctx, w.seq, w.blob)
	switch {
	case err != nil:
		s.logger.Warn("wizard: save failed", slog.String("error", err.Error()), slog.Uint64("seq", w.seq))
		s.metrics.Saved(observability.ResultError)
	case !written:
		s.logger.Debug("wizard: stale write dropped", slog.Uint64("seq", w.seq))
		s.metrics.Saved(observability.ResultStale)
	default:
		s.metrics.Saved(observability.ResultOK)
	}
}

// renderLocked re-renders the active template. On failure the previous preview stays.
func (s *Session) renderLocked() {
	tmpl := s.registry.Resolve(s.doc.SelectedTemplate)
	html, err := tmpl.Render(s.doc)
	if err != nil {
		s.logger.Warn("wizard: render failed", slog.String("template", tmpl.Key), slog.String("error", err.Error()))
		s.metrics.Rendered(tmpl.Key, false)
		return
	}
	s.metrics.Rendered(tmpl.Key, true)
	s.preview = Preview{TemplateKey: tmpl.Key, TemplateName: tmpl.DisplayName, HTML: html}
	s.observer.PreviewRendered(tmpl.Key, html)
}

// persister lets the navigation machine write through while the session is locked.
type persister struct{ s *Session }

func (p persister) PersistNow() { p.s.stageLocked() }
