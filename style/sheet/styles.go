package sheet

import (
	"context"
	"errors"
	"sync"

	"github.com/npillmayer/livestyle/maybe"
	"github.com/npillmayer/livestyle/signal"
	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/cssom"
	"github.com/npillmayer/livestyle/style/ruleids"
	"github.com/npillmayer/livestyle/task"
)

// Styles owns the rules it appends to a stylesheet.
type Styles struct {
	sheet    cssom.StyleSheet
	ids      ruleids.MonotonicIDs
	base     int // number of rules present before we took over
	prefixes []string
	mu       sync.Mutex // guards resize
	resize   map[ruleids.ID][]style.ResizeHandler
}

// Option configures a Styles.
type Option func(*Styles)

// VendorPrefixes sets the prefixes tried by the property fallback.
// The default is style.VendorPrefixes.
func VendorPrefixes(prefixes []string) Option {
	return func(s *Styles) {
		s.prefixes = prefixes
	}
}

// New creates an owner for stylesheet s. Rules already in s are kept in
// front of the rules applied through the owner and are never touched.
// No other party may insert or delete rules of s afterwards.
//
// New panics with a *ResourceError if s is nil.
func New(s cssom.StyleSheet, opts ...Option) *Styles {
	if s == nil {
		panic(&ResourceError{Op: "new", Err: errors.New("no stylesheet")})
	}
	styles := &Styles{
		sheet:    s,
		base:     s.Len(),
		prefixes: style.VendorPrefixes,
		resize:   make(map[ruleids.ID][]style.ResizeHandler),
	}
	for _, opt := range opts {
		opt(styles)
	}
	return styles
}

// StyleSheet returns the stylesheet s owns.
func (s *Styles) StyleSheet() cssom.StyleSheet {
	return s.sheet
}

// Apply projects g onto the stylesheet for the remaining life of s.
// Bindings of g are never cancelled.
func (s *Styles) Apply(g *style.Group) *Styles {
	s.apply(g, nil)
	return s
}

// ApplyScoped projects g onto the stylesheet. The rule lives until the
// returned handle is released.
func (s *Styles) ApplyScoped(g *style.Group) *Handle {
	var tasks task.Handles
	id := s.apply(g, &tasks)
	return &Handle{styles: s, id: id, tasks: tasks}
}

// Len returns the number of live rules applied through s.
func (s *Styles) Len() int {
	return s.ids.Len()
}

// Index returns the current position of the rule of h in the stylesheet.
func (s *Styles) Index(h *Handle) (int, bool) {
	if h == nil || h.styles != s {
		return -1, false
	}
	index, ok := s.ids.Index(h.id)
	if !ok {
		return -1, false
	}
	return s.base + index, true
}

// Resize calls the resize handlers of all live groups, in rule order.
func (s *Styles) Resize(width, height uint32) {
	var handlers []style.ResizeHandler
	s.mu.Lock()
	for _, id := range s.ids.Live() {
		handlers = append(handlers, s.resize[id]...)
	}
	s.mu.Unlock()
	tracer().Debugf("resize to %d×%d, %d handlers", width, height, len(handlers))
	for _, h := range handlers {
		h(width, height)
	}
}

// apply inserts a rule for g and binds its entries. If tasks is nil, the
// bindings are permanent, otherwise their handles are appended to tasks.
func (s *Styles) apply(g *style.Group, tasks *task.Handles) ruleids.ID {
	if err := g.Submit(); err != nil {
		panic(&ConfigurationError{Kind: GroupReused, Input: g.Selector(), Err: err})
	}
	checkClasses(g)
	id, decl, classes := s.insertRule(g.Selector())
	for _, name := range g.StaticProps().Names() {
		pv := g.StaticProps()[name]
		setProperty(decl, name, pv.Value.String(), pv.Important, s.prefixes)
	}
	if static := g.StaticClasses().Names(); len(static) > 0 {
		if classes == nil {
			tracer().Infof("stylesheet does not carry classes, ignoring classes of %q", g.Selector())
		} else {
			for _, class := range static {
				classes.Add(class)
			}
		}
	}
	start := func(fn task.Func) {
		if tasks == nil {
			task.Start(fn)
		} else {
			*tasks = append(*tasks, task.StartDroppable(fn))
		}
	}
	dynamic := g.DynamicProps()
	for _, name := range dynamic.Names() {
		start(s.propertyBinding(decl, name, dynamic[name]))
	}
	if dc := g.DynamicClasses(); len(dc) > 0 {
		if classes == nil {
			tracer().Infof("stylesheet does not carry classes, ignoring class signals of %q", g.Selector())
		} else {
			for _, class := range dc.Names() {
				start(classBinding(classes, class, dc[class]))
			}
		}
	}
	if handlers := g.ResizeHandlers(); len(handlers) > 0 {
		s.mu.Lock()
		s.resize[id] = append([]style.ResizeHandler(nil), handlers...)
		s.mu.Unlock()
	}
	tracer().Debugf("applied rule %d for %q", id, g.Selector())
	return id
}

func checkClasses(g *style.Group) {
	names := append(g.StaticClasses().Names(), g.DynamicClasses().Names()...)
	for _, class := range names {
		if err := style.CheckClassName(class); err != nil {
			panic(&ConfigurationError{Kind: InvalidClass, Input: class, Err: err})
		}
	}
}

// insertRule appends an empty rule for selector. Class list is nil if the
// stylesheet does not carry classes.
func (s *Styles) insertRule(selector string) (ruleids.ID, cssom.Declaration, cssom.ClassList) {
	if err := style.CheckSelector(selector); err != nil {
		panic(&ConfigurationError{Kind: InvalidSelector, Input: selector, Err: err})
	}
	id, index, guard := s.ids.AddNewID()
	pos := s.base + index
	if err := s.sheet.InsertRule(selector+"{}", pos); err != nil {
		guard.Rollback()
		if errors.Is(err, cssom.ErrIndexOutOfRange) {
			panic(&ResourceError{Op: "insert rule", Err: err})
		}
		panic(&ConfigurationError{Kind: InvalidSelector, Input: selector, Err: err})
	}
	decl, err := s.sheet.RuleStyle(pos)
	if err != nil {
		_ = s.sheet.DeleteRule(pos)
		guard.Rollback()
		panic(&ResourceError{Op: "select rule", Err: err})
	}
	var classes cssom.ClassList
	if carrier, ok := s.sheet.(cssom.ClassCarrier); ok {
		if classes, err = carrier.RuleClasses(pos); err != nil {
			_ = s.sheet.DeleteRule(pos)
			guard.Rollback()
			panic(&ResourceError{Op: "select rule classes", Err: err})
		}
	}
	guard.Unlock()
	return id, decl, classes
}

// removeRule deletes the rule of id.
func (s *Styles) removeRule(id ruleids.ID) {
	s.mu.Lock()
	delete(s.resize, id)
	s.mu.Unlock()
	index, guard := s.ids.RemoveID(id)
	if err := s.sheet.DeleteRule(s.base + index); err != nil {
		guard.Rollback()
		panic(&ResourceError{Op: "delete rule", Err: err})
	}
	guard.Unlock()
	tracer().Debugf("removed rule %d from index %d", id, s.base+index)
}

func (s *Styles) propertyBinding(decl cssom.Declaration, name string, values style.CSSSignal) task.Func {
	return func(ctx context.Context) {
		for v := range values.Subscribe(ctx) {
			if ctx.Err() != nil {
				return
			}
			if value, ok := justValue(v); ok {
				setProperty(decl, name, value, false, s.prefixes)
			} else if err := decl.RemoveProperty(name); err != nil {
				tracer().Errorf("cannot remove property %s: %v", name, err)
			}
		}
	}
}

func justValue(v maybe.Maybe[string]) (string, bool) {
	if v == nil {
		return "", false
	}
	return v.Get()
}

func classBinding(classes cssom.ClassList, class string, enabled signal.Signal[bool]) task.Func {
	return func(ctx context.Context) {
		for on := range enabled.Subscribe(ctx) {
			if ctx.Err() != nil {
				return
			}
			if on {
				classes.Add(class)
			} else {
				classes.Remove(class)
			}
		}
	}
}

// --- Handles -----------------------------------------------------------

// Handle owns a rule applied with ApplyScoped.
type Handle struct {
	styles *Styles
	id     ruleids.ID
	tasks  task.Handles
	once   sync.Once
}

// Release cancels all bindings of the rule, waits for them to terminate,
// then deletes the rule. Releasing a handle more than once is a no-op.
//
// If a binding has panicked, Release re-raises the panic after the rule
// has been deleted.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		r := h.tasks.CancelAll()
		h.styles.removeRule(h.id)
		if r != nil {
			tracer().Errorf("binding of rule %d panicked:\n%s", h.id, r.Stack)
			panic(r.Value)
		}
	})
}
