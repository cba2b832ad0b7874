package foldtests

import (
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/require"
)

func newCreateFolder(parent ews.TargetFolderIdType, name string) *ews.CreateFolderType {
	return &ews.CreateFolderType{
		ParentFolderId: parent,
		Folders: ews.ArrayOfFoldersType{
			Folders: []ews.FolderType{{BaseFolderType: ews.BaseFolderType{DisplayName: name}}},
		},
	}
}

func newDeleteFolder(id ews.FolderIdType) *ews.DeleteFolderType {
	return &ews.DeleteFolderType{
		DeleteType: ews.DeleteTypeHardDelete,
		FolderIds:  ews.FolderIds(ews.FolderIdType{Id: id.Id}),
	}
}

// createFolder creates a folder that is deleted again when the test ends.
func createFolder(t *ldtest.T, c *suites.Context, parent ews.TargetFolderIdType, name string) ews.FolderIdType {
	resp, err := c.Folders.CreateFolder(t, newCreateFolder(parent, name))
	require.NoError(t, err)
	f := singleFolder(t, resp)
	deleteFolderLater(t, c, *f.FolderId)
	return *f.FolderId
}

// deleteFolderLater deletes a folder at the end of the test without verifying the response.
// The folder may already be gone, or may have been moved under another folder that is deleted
// first.
func deleteFolderLater(t *ldtest.T, c *suites.Context, id ews.FolderIdType) {
	t.Defer(func() {
		_, _, err := c.Folders.Binding().DeleteFolder(c.Folders.Context(), newDeleteFolder(id), t.DebugLogger())
		if err != nil {
			t.Debug("could not delete folder %s: %s", id.Id, err)
		}
	})
}

func getFolder(t *ldtest.T, c *suites.Context, shape string, id ews.FolderIdType) *ews.BaseFolderType {
	resp, err := c.Folders.GetFolder(t, &ews.GetFolderType{
		FolderShape: ews.FolderResponseShapeType{BaseShape: shape},
		FolderIds:   ews.FolderIds(id),
	})
	require.NoError(t, err)
	return singleFolder(t, resp)
}

// singleFolder returns the only folder of a response that has one successful message.
func singleFolder(t *ldtest.T, resp *ews.FolderInfoResponseType) *ews.BaseFolderType {
	require.Len(t, resp.ResponseMessages.Messages, 1)
	m := &resp.ResponseMessages.Messages[0]
	require.True(t, m.IsSuccess(), "response message was %s", m.String())
	folders := m.Folders.All()
	require.Len(t, folders, 1)
	require.NotNil(t, folders[0].FolderId)
	return folders[0]
}

func requireSuccess(t *ldtest.T, messages []*ews.ResponseMessageType) {
	require.NotEmpty(t, messages)
	for _, m := range messages {
		require.True(t, m.IsSuccess(), "response message was %s", m.String())
	}
}
