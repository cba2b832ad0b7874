package requirements

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDString(t *testing.T) {
	assert.Equal(t, "MS-LISTSWS_R1234", ID{"MS-LISTSWS", 1234}.String())
}

func TestCatalogOrdersByNumber(t *testing.T) {
	c := NewCatalog()
	b := Builder{Protocol: "MS-LISTSWS"}
	c.Register(b.Must(20, "b"), b.Must(3, "a"), Builder{Protocol: "MS-OXWSCORE"}.May(1, "c"))

	reqs := c.Protocol("MS-LISTSWS")
	require.Len(t, reqs, 2)
	assert.Equal(t, 3, reqs[0].ID.Number)
	assert.Equal(t, 20, reqs[1].ID.Number)
	assert.Equal(t, []string{"MS-LISTSWS", "MS-OXWSCORE"}, c.Protocols())
	assert.Equal(t, 3, c.Len())
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	c := NewCatalog()
	b := Builder{Protocol: "MS-LISTSWS"}
	c.Register(b.Must(1, "a"))
	assert.Panics(t, func() { c.Register(b.Must(1, "again")) })
	assert.Panics(t, func() { c.Register(b.Must(0, "zero")) })
}

func TestTogglesDefaultToEnabled(t *testing.T) {
	toggles := make(Toggles)
	toggles.SetAll("MS-OXWSFOLD", map[int]bool{1: false, 2: true})
	assert.False(t, toggles.IsEnabled(ID{"MS-OXWSFOLD", 1}))
	assert.True(t, toggles.IsEnabled(ID{"MS-OXWSFOLD", 2}))
	assert.True(t, toggles.IsEnabled(ID{"MS-OXWSFOLD", 3}))
	assert.True(t, toggles.IsEnabled(ID{"MS-LISTSWS", 1}))
}

func TestCoverageSummaryAndJSON(t *testing.T) {
	c := NewCatalog()
	b := Builder{Protocol: "MS-OXWSFOLD"}
	c.Register(b.Must(1, "one"), b.Must(2, "two"), b.Should(3, "three"), b.Must(4, "four"))

	cov := NewCoverage()
	cov.Record(ID{"MS-OXWSFOLD", 1}, Verified, "a")
	cov.Record(ID{"MS-OXWSFOLD", 1}, Verified, "b")
	cov.Record(ID{"MS-OXWSFOLD", 2}, Verified, "a")
	cov.Record(ID{"MS-OXWSFOLD", 2}, Failed, "b")
	cov.Record(ID{"MS-OXWSFOLD", 3}, Disabled, "a")

	summary := cov.Summarize(c)
	require.Len(t, summary, 1)
	assert.Equal(t, ProtocolSummary{
		Protocol: "MS-OXWSFOLD", Total: 4, Verified: 1, Failed: 1, Disabled: 1, Untested: 1,
	}, summary[0])

	var doc struct {
		Protocols []struct {
			Protocol     string `json:"protocol"`
			Untested     int    `json:"untested"`
			Requirements []struct {
				ID          string   `json:"id"`
				Status      string   `json:"status"`
				FailedTests []string `json:"failedTests"`
			} `json:"requirements"`
		} `json:"protocols"`
	}
	require.NoError(t, json.Unmarshal(cov.JSON(c), &doc))
	require.Len(t, doc.Protocols, 1)
	assert.Equal(t, 1, doc.Protocols[0].Untested)
	reqs := doc.Protocols[0].Requirements
	require.Len(t, reqs, 4)
	assert.Equal(t, "MS-OXWSFOLD_R2", reqs[1].ID)
	assert.Equal(t, "failed", reqs[1].Status)
	assert.Equal(t, []string{"b"}, reqs[1].FailedTests)
	assert.Equal(t, "untested", reqs[3].Status)
}
