// Package liststests contains the MS-LISTSWS scenarios: list life cycle, list items, change
// tracking, attachments, content types and document check-out.
package liststests

import (
	"encoding/base64"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/adapters/listsws"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	sharepoint "github.com/msprotocols/protocol-contract-tests/listsws"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoListTests(t *ldtest.T) {
	c := suites.FromT(t)
	if c.Lists == nil {
		t.SkipWithReason(listsws.Protocol + " is not enabled")
	}

	t.Run("lists", doListLifecycleTests)
	t.Run("list items", doListItemTests)
	t.Run("change tracking", doChangeTrackingTests)
	t.Run("attachments", doAttachmentTests)
	t.Run("content types", doContentTypeTests)
	t.Run("check-out", doCheckOutTests)
	t.Run("errors", doErrorTests)
}

func doListLifecycleTests(t *ldtest.T) {
	t.Run("add and get by title", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		resp, err := c.Lists.GetList(t, &sharepoint.GetList{ListName: list.Title})
		require.NoError(t, err)
		assert.Equal(t, list.ID, resp.List.ID)
	})

	t.Run("get by ID", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		resp, err := c.Lists.GetList(t, &sharepoint.GetList{ListName: list.ID})
		require.NoError(t, err)
		assert.Equal(t, list.Title, resp.List.Title)
		assert.NotNil(t, resp.List.Fields)
	})

	t.Run("list collection", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		resp, err := c.Lists.GetListCollection(t)
		require.NoError(t, err)
		found, ok := resp.Find(list.Title)
		require.True(t, ok, "list %q is not in the collection", list.Title)
		assert.Equal(t, list.ID, found.ID)
	})

	t.Run("update properties and fields", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		description := "Updated " + uuid.NewString()

		resp, err := c.Lists.UpdateList(t, &sharepoint.UpdateList{
			ListName:       list.ID,
			ListProperties: &sharepoint.ListPropertiesDefinition{Description: description},
			NewFields: &sharepoint.FieldMethods{Methods: []sharepoint.FieldMethod{{
				ID:    "1",
				Field: &sharepoint.FieldDefinition{Type: "Text", DisplayName: "ContractField"},
			}}},
			ListVersion: list.Version,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Results.ListProperties)
		assert.Equal(t, description, resp.Results.ListProperties.Description)

		get, err := c.Lists.GetList(t, &sharepoint.GetList{ListName: list.ID})
		require.NoError(t, err)
		_, ok := get.List.Fields.Lookup("ContractField")
		assert.True(t, ok, "new field is not in the list schema")
	})

	t.Run("delete", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		_, err := c.Lists.DeleteList(t, &sharepoint.DeleteList{ListName: list.ID})
		require.NoError(t, err)

		resp, err := c.Lists.GetListCollection(t)
		require.NoError(t, err)
		_, ok := resp.Find(list.Title)
		assert.False(t, ok, "deleted list is still in the collection")
	})
}

func doListItemTests(t *ldtest.T) {
	t.Run("new, update and delete in one batch", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		ids := addItems(t, c, list, "first", "second")

		var batch sharepoint.Batch
		batch.OnError = "Continue"
		batch.Add(sharepoint.CmdNew, sharepoint.BatchField{Name: "Title", Value: "third"})
		batch.Add(sharepoint.CmdUpdate, sharepoint.BatchField{Name: "ID", Value: ids[0]},
			sharepoint.BatchField{Name: "Title", Value: "first, updated"})
		batch.Add(sharepoint.CmdDelete, sharepoint.BatchField{Name: "ID", Value: ids[1]})

		resp, err := c.Lists.UpdateListItems(t, &sharepoint.UpdateListItems{ListName: list.ID, Updates: batch})
		require.NoError(t, err)
		require.Len(t, resp.Results, 3)
		for _, r := range resp.Results {
			assert.True(t, r.Succeeded(), "result %s failed: %s", r.ID, r.ErrorText)
		}

		titles := itemTitles(t, c, list)
		assert.ElementsMatch(t, []string{"first, updated", "third"}, titles)
	})

	t.Run("query", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		addItems(t, c, list, "apple", "banana", "cherry")

		resp, err := c.Lists.GetListItems(t, &sharepoint.GetListItems{
			ListName:   list.ID,
			Query:      sharepoint.QueryEq("Title", "Text", "banana"),
			ViewFields: sharepoint.ViewFields("Title"),
		})
		require.NoError(t, err)
		rows := resp.Rows()
		require.Len(t, rows, 1)
		title, _ := rows[0].Get("Title")
		assert.Equal(t, "banana", title)
	})

	t.Run("row limit", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		addItems(t, c, list, "one", "two", "three")

		resp, err := c.Lists.GetListItems(t, &sharepoint.GetListItems{
			ListName: list.ID,
			RowLimit: "2",
		})
		require.NoError(t, err)
		assert.Len(t, resp.Rows(), 2)
		require.NotNil(t, resp.ListItems.Data)
		assert.NotEmpty(t, resp.ListItems.Data.ListItemCollectionPositionNext)
	})
}

func doChangeTrackingTests(t *ldtest.T) {
	t.Run("since token", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		first, err := c.Lists.GetListItemChangesSinceToken(t, &sharepoint.GetListItemChangesSinceToken{ListName: list.ID})
		require.NoError(t, err)
		token := first.ChangeToken()
		require.NotEmpty(t, token)

		ids := addItems(t, c, list, "added")
		second, err := c.Lists.GetListItemChangesSinceToken(t, &sharepoint.GetListItemChangesSinceToken{
			ListName:    list.ID,
			ChangeToken: token,
		})
		require.NoError(t, err)
		var changed []string
		for _, r := range second.Rows() {
			changed = append(changed, r.ID())
		}
		assert.Equal(t, ids, changed)
		assert.NotEqual(t, token, second.ChangeToken())

		deleteItems(t, c, list, ids...)
		third, err := c.Lists.GetListItemChangesSinceToken(t, &sharepoint.GetListItemChangesSinceToken{
			ListName:    list.ID,
			ChangeToken: second.ChangeToken(),
		})
		require.NoError(t, err)
		require.NotNil(t, third.ListItems.Changes)
		var deleted []string
		for _, id := range third.ListItems.Changes.IDs {
			if id.ChangeType == "Delete" {
				deleted = append(deleted, id.Value)
			}
		}
		assert.Equal(t, ids, deleted)
	})

	t.Run("since time", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		addItems(t, c, list, "added")

		resp, err := c.Lists.GetListItemChanges(t, &sharepoint.GetListItemChanges{
			ListName: list.ID,
			Since:    "2000-01-01T00:00:00Z",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.ListItems.Data)
		assert.Len(t, resp.ListItems.Data.Rows, 1)
	})
}

func doAttachmentTests(t *ldtest.T) {
	t.Run("add, list and delete", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)
		item := addItems(t, c, list, "with attachment")[0]
		fileName := "contract test " + uuid.NewString()[:8] + ".txt"

		add, err := c.Lists.AddAttachment(t, &sharepoint.AddAttachment{
			ListName:   list.ID,
			ListItemID: item,
			FileName:   fileName,
			Attachment: base64.StdEncoding.EncodeToString([]byte("attachment content")),
		})
		require.NoError(t, err)

		coll, err := c.Lists.GetAttachmentCollection(t, &sharepoint.GetAttachmentCollection{ListName: list.ID, ListItemID: item})
		require.NoError(t, err)
		assert.Equal(t, []string{add.URL}, coll.Attachments)

		_, err = c.Lists.DeleteAttachment(t, &sharepoint.DeleteAttachment{ListName: list.ID, ListItemID: item, URL: add.URL})
		require.NoError(t, err)

		coll, err = c.Lists.GetAttachmentCollection(t, &sharepoint.GetAttachmentCollection{ListName: list.ID, ListItemID: item})
		require.NoError(t, err)
		assert.Empty(t, coll.Attachments)
	})
}

func doContentTypeTests(t *ldtest.T) {
	t.Run("list content types", func(t *ldtest.T) {
		c := suites.FromT(t)
		list := addList(t, c)

		resp, err := c.Lists.GetListContentTypes(t, &sharepoint.GetListContentTypes{ListName: list.ID})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ContentTypes.ContentTypes)
	})
}

func doCheckOutTests(t *ldtest.T) {
	c := suites.FromT(t)
	document := c.Config.SharePoint.CheckoutDocument
	if document == "" {
		t.SkipWithReason("sharepoint.checkout_document is not configured")
	}

	t.Run("check out and undo", func(t *ldtest.T) {
		_, err := c.Lists.CheckOutFile(t, &sharepoint.CheckOutFile{PageURL: document, CheckoutToLocal: "false"})
		require.NoError(t, err)
		_, err = c.Lists.UndoCheckOut(t, &sharepoint.UndoCheckOut{PageURL: document})
		require.NoError(t, err)
	})

	t.Run("check out and check in", func(t *ldtest.T) {
		_, err := c.Lists.CheckOutFile(t, &sharepoint.CheckOutFile{PageURL: document, CheckoutToLocal: "false"})
		require.NoError(t, err)
		_, err = c.Lists.CheckInFile(t, &sharepoint.CheckInFile{
			PageURL:     document,
			Comment:     "checked in by the protocol contract tests",
			CheckinType: sharepoint.CheckinMinor,
		})
		require.NoError(t, err)
	})
}

func doErrorTests(t *ldtest.T) {
	t.Run("list that does not exist", func(t *ldtest.T) {
		c := suites.FromT(t)
		_, err := c.Lists.GetList(t, &sharepoint.GetList{ListName: "{" + uuid.NewString() + "}"})
		require.Error(t, err)
		_, isFault := adapters.IsFault(err)
		assert.True(t, isFault, "expected a SOAP fault, got %s", err)
	})

	t.Run("delete list that does not exist", func(t *ldtest.T) {
		c := suites.FromT(t)
		_, err := c.Lists.DeleteList(t, &sharepoint.DeleteList{ListName: suites.UniqueName("Missing")})
		require.Error(t, err)
		_, isFault := adapters.IsFault(err)
		assert.True(t, isFault, "expected a SOAP fault, got %s", err)
	})
}
