// Package srchtests contains the MS-OXWSSRCH scenarios: finding folders and items with
// traversal, restriction and paging options.
//
// The folders and items that the searches run against are created through the same endpoint
// without verifying those responses, so that the suite depends only on MS-OXWSSRCH.
package srchtests

import (
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwssrch"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoSearchTests(t *ldtest.T) {
	c := suites.FromT(t)
	if c.Search == nil {
		t.SkipWithReason(oxwssrch.Protocol + " is not enabled")
	}

	t.Run("FindFolder", doFindFolderTests)
	t.Run("FindItem", doFindItemTests)
}

func doFindFolderTests(t *ldtest.T) {
	t.Run("shallow traversal", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		child := createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Child"))
		createFolder(t, c, ews.TargetFolder(child), suites.UniqueName("Grandchild"))

		root := findFolders(t, c, &ews.FindFolderType{
			Traversal:       ews.TraversalShallow,
			FolderShape:     ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
			ParentFolderIds: ews.FolderIds(parent),
		})
		folders := root.Folders.All()
		require.Len(t, folders, 1)
		assert.Equal(t, child.Id, folders[0].FolderId.Id)
	})

	t.Run("deep traversal", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		child := createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Child"))
		createFolder(t, c, ews.TargetFolder(child), suites.UniqueName("Grandchild"))

		root := findFolders(t, c, &ews.FindFolderType{
			Traversal:       ews.TraversalDeep,
			FolderShape:     ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
			ParentFolderIds: ews.FolderIds(parent),
		})
		assert.Equal(t, 2, root.Folders.Len())
	})

	t.Run("restriction", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		wanted := suites.UniqueName("Wanted")
		createFolder(t, c, ews.TargetFolder(parent), wanted)
		createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Other"))

		root := findFolders(t, c, &ews.FindFolderType{
			Traversal:       ews.TraversalShallow,
			FolderShape:     ews.FolderResponseShapeType{BaseShape: ews.ShapeDefault},
			Restriction:     ews.IsEqualTo("folder:DisplayName", wanted),
			ParentFolderIds: ews.FolderIds(parent),
		})
		folders := root.Folders.All()
		require.Len(t, folders, 1)
		assert.Equal(t, wanted, folders[0].DisplayName)
	})

	t.Run("paging", func(t *ldtest.T) {
		c := suites.FromT(t)
		parent := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Parent"))
		for i := 0; i < 3; i++ {
			createFolder(t, c, ews.TargetFolder(parent), suites.UniqueName("Child"))
		}

		first := findFolders(t, c, &ews.FindFolderType{
			Traversal:             ews.TraversalShallow,
			FolderShape:           ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
			IndexedPageFolderView: ews.IndexedPage(0, 2),
			ParentFolderIds:       ews.FolderIds(parent),
		})
		assert.Equal(t, 2, first.Folders.Len())
		require.NotNil(t, first.IncludesLastItemInRange)
		assert.False(t, *first.IncludesLastItemInRange)
		require.NotNil(t, first.IndexedPagingOffset)

		second := findFolders(t, c, &ews.FindFolderType{
			Traversal:             ews.TraversalShallow,
			FolderShape:           ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
			IndexedPageFolderView: ews.IndexedPage(*first.IndexedPagingOffset, 2),
			ParentFolderIds:       ews.FolderIds(parent),
		})
		assert.Equal(t, 1, second.Folders.Len())
		require.NotNil(t, second.IncludesLastItemInRange)
		assert.True(t, *second.IncludesLastItemInRange)
	})
}

func doFindItemTests(t *ldtest.T) {
	t.Run("restriction", func(t *ldtest.T) {
		c := suites.FromT(t)
		folder := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		wanted := suites.UniqueName("Wanted")
		createMessages(t, c, folder, wanted, suites.UniqueName("Other"))

		root := findItems(t, c, &ews.FindItemType{
			Traversal:       ews.TraversalShallow,
			ItemShape:       ews.ItemResponseShapeType{BaseShape: ews.ShapeDefault},
			Restriction:     ews.IsEqualTo("item:Subject", wanted),
			ParentFolderIds: ews.FolderIds(folder),
		})
		items := root.Items.All()
		require.Len(t, items, 1)
		assert.Equal(t, wanted, items[0].Subject)
	})

	t.Run("substring restriction", func(t *ldtest.T) {
		c := suites.FromT(t)
		folder := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		createMessages(t, c, folder, "Quarterly report "+suites.UniqueName("A"), "Weekly REPORT "+suites.UniqueName("B"),
			suites.UniqueName("Other"))

		root := findItems(t, c, &ews.FindItemType{
			Traversal:       ews.TraversalShallow,
			ItemShape:       ews.ItemResponseShapeType{BaseShape: ews.ShapeIdOnly},
			Restriction:     ews.ContainsSubstring("item:Subject", "report"),
			ParentFolderIds: ews.FolderIds(folder),
		})
		assert.Equal(t, 2, root.Items.Len())
	})

	t.Run("paging", func(t *ldtest.T) {
		c := suites.FromT(t)
		folder := createFolder(t, c, c.TargetDistinguishedFolder(ews.FolderInbox), suites.UniqueName("Folder"))
		createMessages(t, c, folder, suites.UniqueName("Message"), suites.UniqueName("Message"), suites.UniqueName("Message"))

		req := &ews.FindItemType{
			Traversal:           ews.TraversalShallow,
			ItemShape:           ews.ItemResponseShapeType{BaseShape: ews.ShapeIdOnly},
			IndexedPageItemView: ews.IndexedPage(0, 2),
			SortOrder: &ews.NonEmptyArrayOfFieldOrdersType{FieldOrders: []ews.FieldOrderType{{
				Order:    "Ascending",
				FieldURI: ews.PathToUnindexedFieldType{FieldURI: "item:Subject"},
			}}},
			ParentFolderIds: ews.FolderIds(folder),
		}
		first := findItems(t, c, req)
		assert.Equal(t, 2, first.Items.Len())
		require.NotNil(t, first.TotalItemsInView)
		assert.Equal(t, 3, *first.TotalItemsInView)
		require.NotNil(t, first.IndexedPagingOffset)

		req.IndexedPageItemView = ews.IndexedPage(*first.IndexedPagingOffset, 2)
		second := findItems(t, c, req)
		assert.Equal(t, 1, second.Items.Len())
	})
}
