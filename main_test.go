package main

import (
	"os"
	"testing"

	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolListAcceptsRepeatedAndCommaSeparatedValues(t *testing.T) {
	var p protocolList
	require.NoError(t, p.Set("MS-OXWSFOLD, MS-OXWSCORE"))
	require.NoError(t, p.Set("MS-LISTSWS"))
	assert.Equal(t, protocolList{"MS-OXWSFOLD", "MS-OXWSCORE", "MS-LISTSWS"}, p)
	assert.True(t, p.Has("ms-listsws"))
	assert.False(t, p.Has("MS-OXWSSRCH"))
}

func TestReadRequiresConfig(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"contract-tests", "-run", "GetFolder"}))

	params = commandParams{}
	assert.True(t, params.Read([]string{"contract-tests", "-list-requirements"}))
	assert.True(t, params.listRequirements)
}

func TestRerunCommandSelectsOnlyFailedTests(t *testing.T) {
	id := func(path ...string) ldtest.TestID { return ldtest.TestID{Path: path} }
	results := ldtest.Results{Failures: []ldtest.TestResult{
		{TestID: id("MS-OXWSFOLD", "GetFolder", "all properties")},
		{TestID: id("MS-OXWSFOLD", "GetFolder")},
		{TestID: id("MS-LISTSWS", "list items", "row limit")},
	}}
	params := commandParams{configPath: "my sut.toml"}

	expected := commandBuilder{}
	expected.add(os.Args[0], "-config", "my sut.toml",
		"-run", "MS-LISTSWS/list items/row limit",
		"-run", "MS-OXWSFOLD/GetFolder/all properties")
	assert.Equal(t, expected.String(), rerunCommand(params, results))
	assert.Contains(t, rerunCommand(params, results), `'my sut.toml'`)
}
