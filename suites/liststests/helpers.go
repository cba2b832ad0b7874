package liststests

import (
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	sharepoint "github.com/msprotocols/protocol-contract-tests/listsws"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/require"
)

// addList creates a list that is deleted again when the test ends.
func addList(t *ldtest.T, c *suites.Context) sharepoint.ListDefinitionSchema {
	template := c.Config.SharePoint.ListTemplate
	if template == 0 {
		template = sharepoint.TemplateGenericList
	}
	resp, err := c.Lists.AddList(t, &sharepoint.AddList{
		ListName:    suites.UniqueName("List"),
		Description: "Created by the protocol contract tests.",
		TemplateID:  template,
	})
	require.NoError(t, err)
	list := resp.List
	require.NotEmpty(t, list.ID)

	t.Defer(func() {
		_, _, err := c.Lists.Binding().DeleteList(c.Lists.Context(), &sharepoint.DeleteList{ListName: list.ID},
			t.DebugLogger())
		if err != nil {
			t.Debug("could not delete list %s: %s", list.ID, err)
		}
	})
	return list
}

// addItems adds items with the given titles and returns their IDs.
func addItems(t *ldtest.T, c *suites.Context, list sharepoint.ListDefinitionSchema, titles ...string) []string {
	var batch sharepoint.Batch
	for _, title := range titles {
		batch.Add(sharepoint.CmdNew, sharepoint.BatchField{Name: "Title", Value: title})
	}
	resp, err := c.Lists.UpdateListItems(t, &sharepoint.UpdateListItems{ListName: list.ID, Updates: batch})
	require.NoError(t, err)
	require.Len(t, resp.Results, len(titles))

	var ids []string
	for _, r := range resp.Results {
		require.True(t, r.Succeeded(), "could not add item: %s", r.ErrorText)
		require.NotNil(t, r.Row)
		ids = append(ids, r.Row.ID())
	}
	return ids
}

func deleteItems(t *ldtest.T, c *suites.Context, list sharepoint.ListDefinitionSchema, ids ...string) {
	var batch sharepoint.Batch
	for _, id := range ids {
		batch.Add(sharepoint.CmdDelete, sharepoint.BatchField{Name: "ID", Value: id})
	}
	resp, err := c.Lists.UpdateListItems(t, &sharepoint.UpdateListItems{ListName: list.ID, Updates: batch})
	require.NoError(t, err)
	for _, r := range resp.Results {
		require.True(t, r.Succeeded(), "could not delete item: %s", r.ErrorText)
	}
}

func itemTitles(t *ldtest.T, c *suites.Context, list sharepoint.ListDefinitionSchema) []string {
	resp, err := c.Lists.GetListItems(t, &sharepoint.GetListItems{
		ListName:   list.ID,
		ViewFields: sharepoint.ViewFields("Title"),
	})
	require.NoError(t, err)
	var ret []string
	for _, r := range resp.Rows() {
		title, _ := r.Get("Title")
		ret = append(ret, title)
	}
	return ret
}
