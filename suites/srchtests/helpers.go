package srchtests

import (
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/require"
)

// createFolder creates a search fixture folder that is deleted again when the test ends.
func createFolder(t *ldtest.T, c *suites.Context, parent ews.TargetFolderIdType, name string) ews.FolderIdType {
	b := c.Search.Binding()
	resp, _, err := b.CreateFolder(c.Search.Context(), &ews.CreateFolderType{
		ParentFolderId: parent,
		Folders: ews.ArrayOfFoldersType{
			Folders: []ews.FolderType{{BaseFolderType: ews.BaseFolderType{DisplayName: name}}},
		},
	}, t.DebugLogger())
	require.NoError(t, err)
	require.Len(t, resp.ResponseMessages.Messages, 1)
	m := &resp.ResponseMessages.Messages[0]
	require.True(t, m.IsSuccess(), "could not create folder %q: %s", name, m.String())
	folders := m.Folders.All()
	require.Len(t, folders, 1)
	require.NotNil(t, folders[0].FolderId)
	id := ews.FolderIdType{Id: folders[0].FolderId.Id}

	t.Defer(func() {
		_, _, err := b.DeleteFolder(c.Search.Context(), &ews.DeleteFolderType{
			DeleteType: ews.DeleteTypeHardDelete,
			FolderIds:  ews.FolderIds(id),
		}, t.DebugLogger())
		if err != nil {
			t.Debug("could not delete folder %s: %s", id.Id, err)
		}
	})
	return id
}

// createMessages saves messages in a fixture folder. They go away with the folder.
func createMessages(t *ldtest.T, c *suites.Context, folder ews.FolderIdType, subjects ...string) {
	target := ews.TargetFolder(folder)
	req := &ews.CreateItemType{MessageDisposition: ews.DispositionSaveOnly, SavedItemFolderId: &target}
	for _, s := range subjects {
		req.Items.Messages = append(req.Items.Messages, ews.MessageType{ItemType: ews.ItemType{Subject: s}})
	}
	resp, _, err := c.Search.Binding().CreateItem(c.Search.Context(), req, t.DebugLogger())
	require.NoError(t, err)
	require.Len(t, resp.ResponseMessages.Messages, len(subjects))
	for i := range resp.ResponseMessages.Messages {
		m := &resp.ResponseMessages.Messages[i]
		require.True(t, m.IsSuccess(), "could not create item: %s", m.String())
	}
}

func findFolders(t *ldtest.T, c *suites.Context, req *ews.FindFolderType) *ews.FindFolderParentType {
	resp, err := c.Search.FindFolder(t, req)
	require.NoError(t, err)
	require.Len(t, resp.ResponseMessages.Messages, 1)
	m := &resp.ResponseMessages.Messages[0]
	require.True(t, m.IsSuccess(), "response message was %s", m.String())
	require.NotNil(t, m.RootFolder)
	return m.RootFolder
}

func findItems(t *ldtest.T, c *suites.Context, req *ews.FindItemType) *ews.FindItemParentType {
	resp, err := c.Search.FindItem(t, req)
	require.NoError(t, err)
	require.Len(t, resp.ResponseMessages.Messages, 1)
	m := &resp.ResponseMessages.Messages[0]
	require.True(t, m.IsSuccess(), "response message was %s", m.String())
	require.NotNil(t, m.RootFolder)
	return m.RootFolder
}
