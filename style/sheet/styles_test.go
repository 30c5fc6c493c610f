package sheet

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/npillmayer/livestyle/maybe"
	"github.com/npillmayer/livestyle/signal"
	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/cssom"
	"github.com/npillmayer/livestyle/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func catchPanic(f func()) (r any) {
	defer func() {
		r = recover()
	}()
	f()
	return nil
}

func configError(t *testing.T, r any) *ConfigurationError {
	t.Helper()
	err, ok := r.(error)
	require.Truef(t, ok, "expected an error panic, got %v", r)
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr), "expected a configuration error, got %v", err)
	return cerr
}

func TestPermanentStaticRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	styles.Apply(style.NewGroup(".button").Style("background", "purple"))
	require.Equal(t, 1, fake.Len())
	assert.Equal(t, []string{".button"}, fake.selectors())
	props, _ := fake.rule(0).snapshot()
	assert.Equal(t, map[string]string{"background": "purple"}, props)
	assert.Equal(t, 1, styles.Len())
}

func TestStaticPropertiesInNameOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	New(fake).Apply(style.NewGroup("p").
		Style("width", "10px").
		StyleImportant("color", "red").
		Style("margin", "0"))
	_, history := fake.rule(0).snapshot()
	assert.Equal(t, []string{
		"set color red !important",
		"set margin 0",
		"set width 10px",
	}, history)
}

func TestIndicesAfterRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	a := styles.ApplyScoped(style.NewGroup(".a"))
	b := styles.ApplyScoped(style.NewGroup(".b"))
	c := styles.ApplyScoped(style.NewGroup(".c"))
	b.Release()
	index, ok := styles.Index(c)
	require.True(t, ok)
	assert.Equal(t, 1, index)
	_, ok = styles.Index(b)
	assert.False(t, ok)

	d := styles.ApplyScoped(style.NewGroup(".d"))
	index, _ = styles.Index(d)
	assert.Equal(t, 2, index)
	assert.Equal(t, []string{".a", ".c", ".d"}, fake.selectors())
	index, _ = styles.Index(a)
	assert.Equal(t, 0, index)
}

func TestPreexistingRulesStayInFront(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	require.NoError(t, fake.InsertRule("html{}", 0))
	styles := New(fake)
	h := styles.ApplyScoped(style.NewGroup("body"))
	index, _ := styles.Index(h)
	assert.Equal(t, 1, index)
	h.Release()
	assert.Equal(t, []string{"html"}, fake.selectors())
}

func TestDynamicPropertyHistory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	visible := signal.FromValues(true, false, true)
	New(fake).Apply(style.NewGroup(".panel").
		StyleSignal("display", signal.When(visible, "block")))
	rule := fake.rule(0)
	require.Eventually(t, func() bool {
		_, history := rule.snapshot()
		return len(history) == 3
	}, waitFor, tick)
	props, history := rule.snapshot()
	assert.Equal(t, []string{"set display block", "remove display", "set display block"}, history)
	assert.Equal(t, "block", props["display"])
}

func TestNothingRemovesProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	color := signal.NewMutable("red")
	h := New(fake).ApplyScoped(style.NewGroup("a").
		StyleSignalString("color", color.Signal()))
	defer h.Release()
	rule := fake.rule(0)
	require.Eventually(t, func() bool {
		return rule.PropertyValue("color") == "red"
	}, waitFor, tick)
	color.Set("")
	require.Eventually(t, func() bool {
		_, history := rule.snapshot()
		return len(history) > 0 && history[len(history)-1] == "remove color"
	}, waitFor, tick)
	assert.Equal(t, "", rule.PropertyValue("color"))
}

func TestReleaseStopsBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	width := signal.NewMutable(maybe.Just("10px"))
	h := styles.ApplyScoped(style.NewGroup(".box").StyleSignal("width", width.Signal()))
	rule := fake.rule(0)
	require.Eventually(t, func() bool {
		return rule.PropertyValue("width") == "10px"
	}, waitFor, tick)

	h.Release()
	assert.Equal(t, 0, fake.Len())
	assert.Equal(t, 0, styles.Len())
	_, before := rule.snapshot()
	width.Set(maybe.Just("20px"))
	require.Eventually(t, func() bool {
		return width.Subscribers() == 0
	}, waitFor, tick)
	_, after := rule.snapshot()
	assert.Equal(t, before, after, "no writes after release")
}

func TestScopedApplyThenReleaseRestoresSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	styles.Apply(style.NewGroup("body").Style("margin", "0"))
	n := fake.Len()
	h := styles.ApplyScoped(style.NewGroup(".tmp").
		Style("color", "red").
		StyleSignal("display", signal.Always(maybe.Just("none"))))
	assert.Equal(t, n+1, fake.Len())
	h.Release()
	assert.Equal(t, n, fake.Len())
	assert.Equal(t, []string{"body"}, fake.selectors())
	assert.NotPanics(t, h.Release)
	assert.Equal(t, n, fake.Len())
}

func TestRepeatedGroupsYieldEqualRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	accept := func(name, value string) bool { return name == "-moz-appearance" || name == "color" }
	group := func() *style.Group {
		return style.NewGroup("button").Style("appearance", "none").Style("color", "red")
	}
	one, two := newFakeSheet(accept), newFakeSheet(accept)
	New(one).Apply(group())
	s := New(two)
	s.Apply(group())
	s.Apply(group())
	props1, _ := one.rule(0).snapshot()
	for i := 0; i < 2; i++ {
		props2, _ := two.rule(i).snapshot()
		assert.Equal(t, props1, props2)
	}
}

func TestVendorFallbackOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool {
		return name == "-moz-user-select" && value == "none"
	})
	New(fake).Apply(style.NewGroup(".label").Style("user-select", "none"))
	rule := fake.rule(0)
	props, _ := rule.snapshot()
	assert.Equal(t, map[string]string{"-moz-user-select": "none"}, props)
	tried := rule.attempts()
	// verbatim, then 5 values for "", 5 values for -webkit-, first value for -moz-
	require.Len(t, tried, 12)
	assert.Equal(t, "user-select: none", tried[0])
	assert.Equal(t, "user-select: -webkit-none", tried[2])
	assert.Equal(t, "-webkit-user-select: -ms-none", tried[10])
	assert.Equal(t, "-moz-user-select: none", tried[11])
}

func TestVendorFallbackOnValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool {
		return value == "-webkit-box"
	})
	name, value, ok := tryProperty(fake.mustDecl(t), "display", "box", false, style.VendorPrefixes)
	require.True(t, ok)
	assert.Equal(t, "display", name)
	assert.Equal(t, "-webkit-box", value)
}

func (s *fakeSheet) mustDecl(t *testing.T) cssom.Declaration {
	require.NoError(t, s.InsertRule("x{}", s.Len()))
	decl, err := s.RuleStyle(s.Len() - 1)
	require.NoError(t, err)
	return decl
}

func TestCustomVendorPrefixes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool {
		return name == "-khtml-user-drag"
	})
	New(fake, VendorPrefixes([]string{"-khtml-"})).
		Apply(style.NewGroup("img").Style("user-drag", "none"))
	props, _ := fake.rule(0).snapshot()
	assert.Equal(t, "none", props["-khtml-user-drag"])
	assert.Len(t, fake.rule(0).attempts(), 1+2+1)
}

func TestExhaustedFallbackPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool { return false })
	r := catchPanic(func() {
		New(fake).Apply(style.NewGroup(".x").Style("colour", "red"))
	})
	cerr := configError(t, r)
	assert.Equal(t, InvalidProperty, cerr.Kind)
	assert.Equal(t, "colour: red;", cerr.Input)
	assert.Contains(t, cerr.Error(), "colour: red;")
	assert.Len(t, fake.rule(0).attempts(), 1+25)
}

func TestInvalidSelectorPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	for _, sel := range []string{"", "a{", "p) x", "@media"} {
		r := catchPanic(func() { styles.Apply(style.NewGroup(sel)) })
		cerr := configError(t, r)
		assert.Equal(t, InvalidSelector, cerr.Kind)
		assert.Equal(t, sel, cerr.Input)
	}
	assert.Equal(t, 0, fake.Len())
	assert.Equal(t, 0, styles.Len())
}

func TestEngineRejectedSelectorRollsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	styles := New(douceuradapter.New())
	r := catchPanic(func() { styles.Apply(style.NewGroup("a, ")) })
	if r != nil { // engine-dependent; the registry must stay consistent either way
		assert.Equal(t, InvalidSelector, configError(t, r).Kind)
		assert.Equal(t, 0, styles.Len())
	}
	h := styles.ApplyScoped(style.NewGroup(".ok"))
	index, _ := styles.Index(h)
	assert.Equal(t, styles.Len()-1, index)
}

func TestGroupReusePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	styles := New(fake)
	g := style.NewGroup("p").Style("color", "red")
	styles.Apply(g)
	r := catchPanic(func() { styles.Apply(g) })
	cerr := configError(t, r)
	assert.Equal(t, GroupReused, cerr.Kind)
	assert.True(t, errors.Is(cerr, style.ErrGroupSubmitted))
	assert.Equal(t, 1, fake.Len())
}

func TestClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	active := signal.NewMutable(false)
	h := New(fake).ApplyScoped(style.NewGroup(".tab").
		Class("primary").
		ClassSignal("active", active.Signal()))
	defer h.Release()
	rule := fake.rule(0)
	assert.True(t, rule.Contains("primary"))
	active.Set(true)
	require.Eventually(t, func() bool { return rule.Contains("active") }, waitFor, tick)
	active.Set(false)
	require.Eventually(t, func() bool { return !rule.Contains("active") }, waitFor, tick)
	assert.True(t, rule.Contains("primary"))
}

func TestInvalidClassPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	r := catchPanic(func() {
		New(fake).Apply(style.NewGroup(".x").Class("1st"))
	})
	cerr := configError(t, r)
	assert.Equal(t, InvalidClass, cerr.Kind)
	assert.Equal(t, "1st", cerr.Input)
	assert.Equal(t, 0, fake.Len())
}

type plainSheet struct {
	cssom.StyleSheet
}

func TestClassesIgnoredWithoutCarrier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(nil)
	assert.NotPanics(t, func() {
		New(plainSheet{fake}).Apply(style.NewGroup(".x").
			Class("primary").
			ClassSignal("active", signal.Always(true)))
	})
	assert.False(t, fake.rule(0).Contains("primary"))
}

func TestResizeHandlers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	var calls []string
	record := func(tag string) style.ResizeHandler {
		return func(w, h uint32) {
			calls = append(calls, tag)
			assert.Equal(t, uint32(800), w)
			assert.Equal(t, uint32(600), h)
		}
	}
	styles := New(newFakeSheet(nil))
	styles.Apply(style.NewGroup("body").OnResize(record("body")))
	h := styles.ApplyScoped(style.NewGroup(".dialog").OnResize(record("dialog")))
	styles.Apply(style.NewGroup(".footer").OnResize(record("footer")))
	styles.Resize(800, 600)
	assert.Equal(t, []string{"body", "dialog", "footer"}, calls)

	calls = nil
	h.Release()
	styles.Resize(800, 600)
	assert.Equal(t, []string{"body", "footer"}, calls)
}

func TestPanickingBindingResurfacesOnRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool { return name != "color" && name[0] != '-' })
	styles := New(fake)
	width := signal.NewMutable(maybe.Just("1px"))
	h := styles.ApplyScoped(style.NewGroup("a").
		StyleSignal("color", signal.FromValues(maybe.Just("red"))).
		StyleSignal("width", width.Signal()))
	rule := fake.rule(0)
	require.Eventually(t, func() bool {
		return slices.Contains(rule.attempts(), "-ms-color: -ms-red") &&
			rule.PropertyValue("width") == "1px"
	}, waitFor, tick)

	r := catchPanic(h.Release)
	cerr := configError(t, r)
	assert.Equal(t, InvalidProperty, cerr.Kind)
	assert.Equal(t, "color: red;", cerr.Input)
	assert.Equal(t, 0, fake.Len(), "rule is deleted despite the panic")
	assert.Equal(t, 0, styles.Len())

	_, before := rule.snapshot()
	width.Set(maybe.Just("2px"))
	require.Eventually(t, func() bool {
		return width.Subscribers() == 0
	}, waitFor, tick)
	_, after := rule.snapshot()
	assert.Equal(t, before, after, "sibling binding is stopped")
	assert.NotPanics(t, h.Release)

	next := styles.ApplyScoped(style.NewGroup("b"))
	index, _ := styles.Index(next)
	assert.Equal(t, 0, index)
}

func TestSetPropertyTwiceOnSameDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	fake := newFakeSheet(func(name, value string) bool {
		return name == "color" || name == "-moz-appearance" || name == "padding"
	})
	decl := fake.mustDecl(t)
	apply := func() {
		setProperty(decl, "color", "red", false, style.VendorPrefixes)
		setProperty(decl, "appearance", "none", false, style.VendorPrefixes)
		setProperty(decl, "padding", "2px", true, style.VendorPrefixes)
	}
	apply()
	once, _ := fake.rule(0).snapshot()
	apply()
	twice, _ := fake.rule(0).snapshot()
	assert.Equal(t, map[string]string{
		"color":           "red",
		"-moz-appearance": "none",
		"padding":         "2px !important",
	}, once)
	assert.Equal(t, once, twice)
}

func TestRealEngine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.sheet")
	defer teardown()
	//
	engine := douceuradapter.New()
	styles := New(engine)
	styles.Apply(style.NewGroup(".button").Style("background", "purple"))
	h := styles.ApplyScoped(style.NewGroup(".label").
		Style("user-select", "none").
		Class("small"))
	rules := engine.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "purple", rules[0].Value("background").String())
	assert.Equal(t, "none", rules[1].Value("-webkit-user-select").String())
	assert.Equal(t, []string{"small"}, engine.Classes(1))
	h.Release()
	assert.Equal(t, 1, engine.Len())
}
