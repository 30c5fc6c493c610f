package style

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestWithEmptyPrefix(t *testing.T) {
	assert.Equal(t, []string{"", "-webkit-", "-moz-", "-o-", "-ms-"}, WithEmptyPrefix(VendorPrefixes))
	assert.Equal(t, []string{"", "-x-"}, WithEmptyPrefix([]string{"", "-x-"}))
}

func TestCheckClassName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.style")
	defer teardown()
	//
	for _, ok := range []string{"primary", "btn-large", "_x", "-moz-thing"} {
		assert.NoErrorf(t, CheckClassName(ok), "class %q", ok)
	}
	for _, bad := range []string{"", "1st", "two words", "a.b", "x{"} {
		assert.Errorf(t, CheckClassName(bad), "class %q", bad)
	}
}

func TestCheckSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "livestyle.style")
	defer teardown()
	//
	for _, ok := range []string{".button", "div > p:hover", "a[href^='http']", "li:nth-child(2n+1)", ":not(.x)"} {
		assert.NoErrorf(t, CheckSelector(ok), "selector %q", ok)
	}
	for _, bad := range []string{"", "   ", "a{", "p; q", "a[x", "p)", "@media print", "li:not(.x"} {
		assert.Errorf(t, CheckSelector(bad), "selector %q", bad)
	}
}

func TestSplitCompoundProperty(t *testing.T) {
	kv, err := SplitCompoundProperty("margin", "1px 2px 3px")
	assert.NoError(t, err)
	assert.Equal(t, []KeyValue{
		{"margin-top", "1px"}, {"margin-right", "2px"},
		{"margin-bottom", "3px"}, {"margin-left", "2px"},
	}, kv)
	kv, err = SplitCompoundProperty("border-radius", "4px")
	assert.NoError(t, err)
	assert.Equal(t, "border-bottom-left-radius", kv[3].Key)
	_, err = SplitCompoundProperty("color", "red")
	assert.Error(t, err)
	assert.True(t, IsKnownProperty("--accent"))
	assert.False(t, IsKnownProperty("colour"))
	assert.Equal(t, PGFlex, GroupNameFromPropertyKey("justify-content"))
}
