package ldtest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFiltersWithNoPatternsAllowEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(id("MS-OXWSFOLD", "GetFolder")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("GetFolder"))
	assert.True(t, f.AsFilter(id("MS-OXWSFOLD", "GetFolder")))
	assert.False(t, f.AsFilter(id("MS-OXWSFOLD", "CopyFolder")))
}

func TestRegexFiltersAllowParentsOfLiteralPath(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set(regexp.QuoteMeta("MS-LISTSWS/UpdateListItems/adds an item (New)")))
	assert.True(t, f.AsFilter(id("MS-LISTSWS")))
	assert.True(t, f.AsFilter(id("MS-LISTSWS", "UpdateListItems")))
	assert.True(t, f.AsFilter(id("MS-LISTSWS", "UpdateListItems", "adds an item (New)")))
	assert.False(t, f.AsFilter(id("MS-LISTSWS", "GetList")))
}

func TestRegexFiltersMustNotMatchWins(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("MS-OXWSCORE"))
	require.NoError(t, f.MustNotMatch.Set("SendItem"))
	assert.True(t, f.AsFilter(id("MS-OXWSCORE", "GetItem")))
	assert.False(t, f.AsFilter(id("MS-OXWSCORE", "SendItem")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var r RegexList
	require.NoError(t, r.Set("a"))
	require.NoError(t, r.Set("b"))
	assert.Equal(t, `"a" or "b"`, r.String())
	assert.Equal(t, []string{"a", "b"}, r.Patterns())
}
