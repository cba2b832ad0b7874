// Package coretests contains the MS-OXWSCORE scenarios for the life cycle of mailbox items.
package coretests

import (
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwscore"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CapabilityMarkAllItemsAsRead means that the server supports the MarkAllItemsAsRead operation,
// which was added in Exchange 2013.
var CapabilityMarkAllItemsAsRead = framework.QualifiedCapability(oxwscore.Protocol, "MarkAllItemsAsRead")

func DoItemTests(t *ldtest.T) {
	c := suites.FromT(t)
	if c.Items == nil {
		t.SkipWithReason(oxwscore.Protocol + " is not enabled")
	}

	t.Run("CreateItem", doCreateItemTests)
	t.Run("GetItem", doGetItemTests)
	t.Run("UpdateItem", doUpdateItemTests)
	t.Run("CopyItem", doCopyItemTests)
	t.Run("MoveItem", doMoveItemTests)
	t.Run("DeleteItem", doDeleteItemTests)
	t.Run("SendItem", doSendItemTests)
	t.Run("MarkAllItemsAsRead", doMarkAllItemsAsReadTests)
}

func doCreateItemTests(t *ldtest.T) {
	t.Run("save only", func(t *ldtest.T) {
		c := suites.FromT(t)
		subject := suites.UniqueName("Message")
		id := createMessage(t, c, ews.FolderDrafts, subject)

		item := getItem(t, c, ews.ShapeDefault, id)
		assert.Equal(t, subject, item.Subject)
	})

	t.Run("several items", func(t *ldtest.T) {
		c := suites.FromT(t)
		subjects := []string{suites.UniqueName("Message"), suites.UniqueName("Message")}
		req := newCreateMessages(c, ews.FolderDrafts, subjects...)
		resp, err := c.Items.CreateItem(t, req)
		require.NoError(t, err)
		require.Len(t, resp.ResponseMessages.Messages, len(subjects))
		for i := range resp.ResponseMessages.Messages {
			deleteItemLater(t, c, singleItem(t, resp, i).ItemId)
		}
	})

	t.Run("send only", func(t *ldtest.T) {
		c := suites.FromT(t)
		recipient := requireMailbox(t, c)
		req := newCreateMessages(c, "", suites.UniqueName("Message"))
		req.MessageDisposition = ews.DispositionSendOnly
		req.Items.Messages[0].ToRecipients = &ews.ArrayOfRecipientsType{
			Mailboxes: []ews.EmailAddressType{{EmailAddress: recipient}},
		}

		resp, err := c.Items.CreateItem(t, req)
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())
	})
}

func doGetItemTests(t *ldtest.T) {
	t.Run("all properties", func(t *ldtest.T) {
		c := suites.FromT(t)
		subject := suites.UniqueName("Message")
		id := createMessage(t, c, ews.FolderDrafts, subject)

		item := getItem(t, c, ews.ShapeAllProperties, id)
		assert.Equal(t, subject, item.Subject)
		assert.NotEmpty(t, item.ItemClass)
		assert.NotEmpty(t, item.DateTimeCreated)
	})

	t.Run("several items", func(t *ldtest.T) {
		c := suites.FromT(t)
		first := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))
		second := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))

		resp, err := c.Items.GetItem(t, &ews.GetItemType{
			ItemShape: ews.ItemResponseShapeType{BaseShape: ews.ShapeIdOnly},
			ItemIds:   ews.ItemIds(first, second),
		})
		require.NoError(t, err)
		assert.Equal(t, first.Id, singleItem(t, resp, 0).ItemId.Id)
		assert.Equal(t, second.Id, singleItem(t, resp, 1).ItemId.Id)
	})
}

func doUpdateItemTests(t *ldtest.T) {
	t.Run("set subject", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))
		newSubject := suites.UniqueName("Updated")

		resp, err := c.Items.UpdateItem(t, &ews.UpdateItemType{
			ConflictResolution: "AutoResolve",
			MessageDisposition: ews.DispositionSaveOnly,
			ItemChanges: ews.NonEmptyArrayOfItemChangesType{ItemChanges: []ews.ItemChangeType{{
				ItemId: id,
				Updates: ews.NonEmptyArrayOfItemChangeDescriptionsType{
					SetItemFields: []ews.SetItemFieldType{{
						FieldURI: ews.PathToUnindexedFieldType{FieldURI: "item:Subject"},
						Message:  &ews.MessageType{ItemType: ews.ItemType{Subject: newSubject}},
					}},
				},
			}}},
		})
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		item := getItem(t, c, ews.ShapeDefault, id)
		assert.Equal(t, newSubject, item.Subject)
	})
}

func doCopyItemTests(t *ldtest.T) {
	t.Run("to inbox", func(t *ldtest.T) {
		c := suites.FromT(t)
		subject := suites.UniqueName("Message")
		id := createMessage(t, c, ews.FolderDrafts, subject)

		returnNew := true
		resp, err := c.Items.CopyItem(t, &ews.CopyItemType{
			ToFolderId:       c.TargetDistinguishedFolder(ews.FolderInbox),
			ItemIds:          ews.ItemIds(id),
			ReturnNewItemIds: &returnNew,
		})
		require.NoError(t, err)
		copied := singleItem(t, resp, 0)
		deleteItemLater(t, c, copied.ItemId)

		item := getItem(t, c, ews.ShapeDefault, *copied.ItemId)
		assert.Equal(t, subject, item.Subject)
		getItem(t, c, ews.ShapeIdOnly, id)
	})
}

func doMoveItemTests(t *ldtest.T) {
	t.Run("to inbox", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))

		resp, err := c.Items.MoveItem(t, &ews.MoveItemType{
			ToFolderId: c.TargetDistinguishedFolder(ews.FolderInbox),
			ItemIds:    ews.ItemIds(id),
		})
		require.NoError(t, err)
		moved := singleItem(t, resp, 0)
		deleteItemLater(t, c, moved.ItemId)
	})
}

func doDeleteItemTests(t *ldtest.T) {
	t.Run("hard delete", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))

		resp, err := c.Items.DeleteItem(t, newDeleteItem(id))
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		get, err := c.Items.GetItem(t, &ews.GetItemType{
			ItemShape: ews.ItemResponseShapeType{BaseShape: ews.ShapeIdOnly},
			ItemIds:   ews.ItemIds(id),
		})
		require.NoError(t, err)
		messages := get.StatusMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, ews.ResponseClassError, messages[0].ResponseClass)
		assert.Equal(t, ews.ResponseCodeErrorItemNotFound, messages[0].ResponseCode)
	})
}

func doSendItemTests(t *ldtest.T) {
	t.Run("saved draft", func(t *ldtest.T) {
		c := suites.FromT(t)
		recipient := requireMailbox(t, c)
		req := newCreateMessages(c, ews.FolderDrafts, suites.UniqueName("Message"))
		req.Items.Messages[0].ToRecipients = &ews.ArrayOfRecipientsType{
			Mailboxes: []ews.EmailAddressType{{EmailAddress: recipient}},
		}
		resp, err := c.Items.CreateItem(t, req)
		require.NoError(t, err)
		id := *singleItem(t, resp, 0).ItemId

		send, err := c.Items.SendItem(t, &ews.SendItemType{
			SaveItemToFolder: false,
			ItemIds:          ews.ItemIds(id),
		})
		require.NoError(t, err)
		requireSuccess(t, send.StatusMessages())
	})
}

func doMarkAllItemsAsReadTests(t *ldtest.T) {
	t.RequireCapability(CapabilityMarkAllItemsAsRead)

	t.Run("drafts", func(t *ldtest.T) {
		c := suites.FromT(t)
		id := createMessage(t, c, ews.FolderDrafts, suites.UniqueName("Message"))

		resp, err := c.Items.MarkAllItemsAsRead(t, &ews.MarkAllItemsAsReadType{
			ReadFlag:             true,
			SuppressReadReceipts: true,
			FolderIds:            c.DistinguishedFolderIds(ews.FolderDrafts),
		})
		require.NoError(t, err)
		requireSuccess(t, resp.StatusMessages())

		get, err := c.Items.GetItem(t, &ews.GetItemType{
			ItemShape: ews.ItemResponseShapeType{BaseShape: ews.ShapeAllProperties},
			ItemIds:   ews.ItemIds(id),
		})
		require.NoError(t, err)
		require.Len(t, get.ResponseMessages.Messages, 1)
		items := get.ResponseMessages.Messages[0].Items
		require.NotNil(t, items)
		require.Len(t, items.Messages, 1)
		require.NotNil(t, items.Messages[0].IsRead)
		assert.True(t, *items.Messages[0].IsRead)
	})
}
