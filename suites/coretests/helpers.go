package coretests

import (
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/suites"

	"github.com/stretchr/testify/require"
)

// newCreateMessages builds a request that saves plain text messages in a folder. With an empty
// folder name the messages are not saved.
func newCreateMessages(c *suites.Context, folder string, subjects ...string) *ews.CreateItemType {
	req := &ews.CreateItemType{MessageDisposition: ews.DispositionSaveOnly}
	if folder != "" {
		target := c.TargetDistinguishedFolder(folder)
		req.SavedItemFolderId = &target
	}
	for _, s := range subjects {
		req.Items.Messages = append(req.Items.Messages, ews.MessageType{ItemType: ews.ItemType{
			Subject: s,
			Body:    &ews.BodyType{BodyType: "Text", Value: "Created by the protocol contract tests."},
		}})
	}
	return req
}

func newDeleteItem(id ews.ItemIdType) *ews.DeleteItemType {
	return &ews.DeleteItemType{
		DeleteType: ews.DeleteTypeHardDelete,
		ItemIds:    ews.ItemIds(ews.ItemIdType{Id: id.Id}),
	}
}

// createMessage saves a message that is deleted again when the test ends.
func createMessage(t *ldtest.T, c *suites.Context, folder, subject string) ews.ItemIdType {
	resp, err := c.Items.CreateItem(t, newCreateMessages(c, folder, subject))
	require.NoError(t, err)
	item := singleItem(t, resp, 0)
	deleteItemLater(t, c, item.ItemId)
	return *item.ItemId
}

func deleteItemLater(t *ldtest.T, c *suites.Context, id *ews.ItemIdType) {
	if id == nil {
		return
	}
	idCopy := *id
	t.Defer(func() {
		_, _, err := c.Items.Binding().DeleteItem(c.Items.Context(), newDeleteItem(idCopy), t.DebugLogger())
		if err != nil {
			t.Debug("could not delete item %s: %s", idCopy.Id, err)
		}
	})
}

func getItem(t *ldtest.T, c *suites.Context, shape string, id ews.ItemIdType) *ews.ItemType {
	resp, err := c.Items.GetItem(t, &ews.GetItemType{
		ItemShape: ews.ItemResponseShapeType{BaseShape: shape},
		ItemIds:   ews.ItemIds(id),
	})
	require.NoError(t, err)
	require.Len(t, resp.ResponseMessages.Messages, 1)
	return singleItem(t, resp, 0)
}

// singleItem returns the only item of the i-th response message, which must be successful.
func singleItem(t *ldtest.T, resp *ews.ItemInfoResponseType, i int) *ews.ItemType {
	require.Greater(t, len(resp.ResponseMessages.Messages), i)
	m := &resp.ResponseMessages.Messages[i]
	require.True(t, m.IsSuccess(), "response message was %s", m.String())
	items := m.Items.All()
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ItemId)
	return items[0]
}

func requireSuccess(t *ldtest.T, messages []*ews.ResponseMessageType) {
	require.NotEmpty(t, messages)
	for _, m := range messages {
		require.True(t, m.IsSuccess(), "response message was %s", m.String())
	}
}

// requireMailbox returns the configured mailbox address, which the sending tests use as the
// recipient, or skips the test.
func requireMailbox(t *ldtest.T, c *suites.Context) string {
	if c.Config == nil || c.Config.Exchange.Mailbox == "" {
		t.SkipWithReason("exchange.mailbox is not configured")
	}
	return c.Config.Exchange.Mailbox
}
