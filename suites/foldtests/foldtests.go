// Package foldtests contains the MS-OXWSFOLD scenarios: creating, reading, changing, copying,
// moving, emptying and deleting mailbox folders.
package foldtests

import (
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwsfold"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CapabilityCreateManagedFolder means that the mailbox has a retention policy that offers the
// configured managed folder.
var CapabilityCreateManagedFolder = framework.QualifiedCapability(oxwsfold.Protocol, "CreateManagedFolder")

func DoFolderTests(t *ldtest.T) {
	c := suites.FromT(t)
	if c.Folders == nil {
		t.SkipWithReason(oxwsfold.Protocol + " is not enabled")
	}

	t.Run("CreateFolder", doCreateFolderTests)
	t.Run("GetFolder", doGetFolderTests)
	t.Run("UpdateFolder", doUpdateFolderTests)
	t.Run("CopyFolder", doCopyFolderTests)
	t.Run("MoveFolder", doMoveFolderTests)
	t.Run("EmptyFolder", doEmptyFolderTests)
	t.Run("DeleteFolder", doDeleteFolderTests)
	t.Run("CreateManagedFolder", doCreateManagedFolderTests)
}

func doCreateFolderTests(t *ldtest.T) {
	t.Run("in inbox", func(t *ldtest.T) {
		c := suites.FromT(t)
		name := suites.UniqueName("Folder")
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), name)

		f := getFolder(t, c, ews.ShapeDefault, id)
		assert.Equal(t, name, f.DisplayName)
	})

	t.Run("nested", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		child := createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Child"))

		f := getFolder(t, c, ews.ShapeAllProperties, child)
		require.NotNil(t, f.ParentFolderId)
		assert.Equal(t, parent.Id, f.ParentFolderId.Id)
	})

	t.Run("duplicate name", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := c.TargetDistinguishedFolder(ews.FolderInbox)
		name := suites.UniqueName("Folder")
		createFolder(t, c, parent, name)

		resp, err := c.Folders.CreateFolder(t, newCreateFolder(parent, name))
		require.NoError(t, err)
		require.Len(t, resp.ResponseMessages.Messages, 1)
		m := resp.ResponseMessages.Messages[0]
		assert.Equal(t, ews.ResponseClassError, m.ResponseClass)
		assert.Equal(t, ews.ResponseCodeErrorFolderExists, m.ResponseCode)
	})
}

func doGetFolderTests(t *ldtest.T) {
	t.Run("distinguished folders", func(t *ldtest.T) {
		c := suites.FromT(t)
		names := []string{ews.FolderInbox, ews.FolderDrafts, ews.FolderSentItems, ews.FolderDeletedItems}
		resp, err := c.Folders.GetFolder(t, &ews.GetFolderType{
			FolderShape: ews.FolderResponseShapeType{BaseShape: ews.ShapeDefault},
			FolderIds:   c.DistinguishedFolderIds(names...),
		})
		require.NoError(t, err)
		require.Len(t, resp.ResponseMessages.Messages, len(names))
		for _, m := range resp.ResponseMessages.Messages {
			assert.True(t, m.IsSuccess(), "response message was %s", m.String())
		}
	})

	t.Run("all properties", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))

		f := getFolder(t, c, ews.ShapeAllProperties, id)
		assert.Equal(t, id.Id, f.FolderId.Id)
		assert.NotNil(t, f.EffectiveRights)
	})

	t.Run("additional properties", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))

		resp, err := c.Folders.GetFolder(t, &ews.GetFolderType{
			FolderShape: ews.FolderResponseShapeType{
				BaseShape: ews.ShapeIdOnly,
				AdditionalProperties: &ews.NonEmptyArrayOfPathsToElementType{
					FieldURIs: []ews.PathToUnindexedFieldType{{FieldURI: "folder:DisplayName"}},
				},
			},
			FolderIds: ews.FolderIds(id),
		})
		require.NoError(t, err)
		f := singleFolder(t, resp)
		assert.NotEmpty(t, f.DisplayName)
		assert.Nil(t, f.TotalCount)
	})
}

func doUpdateFolderTests(t *ldtest.T) {
	t.Run("set display name", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		newName := suites.UniqueName("Renamed")

		resp, err := c.Folders.UpdateFolder(t, &ews.UpdateFolderType{
			FolderChanges: ews.NonEmptyArrayOfFolderChangesType{FolderChanges: []ews.FolderChangeType{{
				FolderId: &id,
				Updates: ews.NonEmptyArrayOfFolderChangeDescriptionsType{
					SetFolderFields: []ews.SetFolderFieldType{{
						FieldURI: ews.PathToUnindexedFieldType{FieldURI: "folder:DisplayName"},
						Folder:   &ews.FolderType{BaseFolderType: ews.BaseFolderType{DisplayName: newName}},
					}},
				},
			}}},
		})
		require.NoError(t, err)
		updated := singleFolder(t, resp)

		f := getFolder(t, c, ews.ShapeDefault, *updated.FolderId)
		assert.Equal(t, newName, f.DisplayName)
	})
}

func doCopyFolderTests(t *ldtest.T) {
	t.Run("to another folder", func(t *ldtest.T) {
		c := suites.FromT(t)
		name := suites.UniqueName("Folder")
		source := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), name)
		target := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Target"))

		resp, err := c.Folders.CopyFolder(t, &ews.CopyFolderType{
			ToFolderId: ews.TargetFolder(target),
			FolderIds:  ews.FolderIds(source),
		})
		require.NoError(t, err)
		copied := singleFolder(t, resp)
		deleteFolderLater(t, c, *copied.FolderId)

		f := getFolder(t, c, ews.ShapeAllProperties, *copied.FolderId)
		assert.Equal(t, name, f.DisplayName)
		require.NotNil(t, f.ParentFolderId)
		assert.Equal(t, target.Id, f.ParentFolderId.Id)

		// the original is still there
		getFolder(t, c, ews.ShapeIdOnly, source)
	})
}

func doMoveFolderTests(t *ldtest.T) {
	t.Run("to another folder", func(t *ldtest.T) {
		c := suites.FromT(t)
		source := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		target := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Target"))

		resp, err := c.Folders.MoveFolder(t, &ews.MoveFolderType{
			ToFolderId: ews.TargetFolder(target),
			FolderIds:  ews.FolderIds(source),
		})
		require.NoError(t, err)
		moved := singleFolder(t, resp)

		f := getFolder(t, c, ews.ShapeAllProperties, *moved.FolderId)
		require.NotNil(t, f.ParentFolderId)
		assert.Equal(t, target.Id, f.ParentFolderId.Id)
	})
}

func doEmptyFolderTests(t *ldtest.T) {
	t.Run("with subfolders", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Child"))

		resp, err := c.Folders.EmptyFolder(t, &ews.EmptyFolderType{
			DeleteType:       ews.DeleteTypeHardDelete,
			DeleteSubFolders: true,
			FolderIds:        ews.FolderIds(ews.FolderIdType{Id: parent.Id}),
		})
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		f := getFolder(t, c, ews.ShapeDefault, parent)
		require.NotNil(t, f.ChildFolderCount)
		assert.Equal(t, 0, *f.ChildFolderCount)
	})
}

func doDeleteFolderTests(t *ldtest.T) {
	t.Run("hard delete", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))

		resp, err := c.Folders.DeleteFolder(t, newDeleteFolder(id))
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		get, err := c.Folders.GetFolder(t, &ews.GetFolderType{
			FolderShape: ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
			FolderIds:   ews.FolderIds(id),
		})
		require.NoError(t, err)
		messages := get.StatusMessages()
		require.Len(t, messages, 1)
		c.Folders.VerifyFolderNotFound(t, messages[0])
	})

	t.Run("folder that does not exist", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		resp, err := c.Folders.DeleteFolder(t, newDeleteFolder(id))
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		resp, err = c.Folders.DeleteFolder(t, newDeleteFolder(id))
		require.NoError(t, err)
		messages := resp.StatusMessages()
		require.Len(t, messages, 1)
		c.Folders.VerifyFolderNotFound(t, messages[0])
	})
}

func doCreateManagedFolderTests(t *ldtest.T) {
	t.RequireCapability(CapabilityCreateManagedFolder)

	t.Run("configured folder", func(t *ldtest.T) {
		c := suites.FromT(t)
		name := c.Config.Exchange.ManagedFolder
		if name == "" {
			t.SkipWithReason("exchange.managed_folder is not configured")
		}

		resp, err := c.Folders.CreateManagedFolder(t, &ews.CreateManagedFolderRequestType{
			FolderNames: ews.ArrayOfFolderNamesType{FolderNames: []string{name}},
		})
		require.NoError(t, err)
		require.Len(t, resp.ResponseMessages.Messages, 1)
		m := resp.ResponseMessages.Messages[0]
		if m.ResponseCode == ews.ResponseCodeErrorFolderExists {
			// left over from an earlier run; managed folders cannot always be deleted
			return
		}
		f := singleFolder(t, resp)
		deleteFolderLater(t, c, *f.FolderId)
	})
}
