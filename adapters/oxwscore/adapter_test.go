package oxwscore

import (
	"context"
	"testing"

	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/framework/soapmock"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nsDecl = `xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages" ` +
	`xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types"`

func withAdapter(t *testing.T, action func(*soapmock.Server, *Adapter, *requirements.Environment)) {
	s := soapmock.NewServer(soap.Version11, nil)
	defer s.Close()
	c, err := soap.NewClient(soap.ClientOptions{Endpoint: s.URL(), Version: soap.Version11})
	require.NoError(t, err)
	defer c.Close()
	env := requirements.NewEnvironment()
	env.Catalog.Register(Requirements()...)
	action(s, New(context.Background(), ews.NewExchangeServiceBinding(c, "Exchange2010_SP2"), env), env)
}

func runTest(action func(*ldtest.T)) ldtest.Results {
	return ldtest.Run(ldtest.TestConfiguration{}, func(t *ldtest.T) {
		t.Run("test", action)
	})
}

func entry(env *requirements.Environment, number int) (requirements.CoverageEntry, bool) {
	return env.Coverage.Entry(requirements.ID{Protocol: Protocol, Number: number})
}

func status(t *testing.T, env *requirements.Environment, number int) requirements.Verdict {
	e, ok := entry(env, number)
	require.True(t, ok, "requirement %d was never captured", number)
	return e.Status()
}

func response(operation, messages string) string {
	return `<m:` + operation + `Response ` + nsDecl + `><m:ResponseMessages>` + messages +
		`</m:ResponseMessages></m:` + operation + `Response>`
}

func itemMessage(operation, items string) string {
	return `<m:` + operation + `ResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>` +
		`<m:Items>` + items + `</m:Items></m:` + operation + `ResponseMessage>`
}

func newMessage(subject string) ews.ArrayOfRealItemsType {
	return ews.ArrayOfRealItemsType{Messages: []ews.MessageType{{
		ItemType: ews.ItemType{Subject: subject, Body: &ews.BodyType{BodyType: "Text", Value: "hello"}},
	}}}
}

func TestCreateItemVerifiesItemID(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/CreateItem", response("CreateItem",
			itemMessage("CreateItem", `<t:Message><t:ItemId Id="AAMkItem1" ChangeKey="CQAA1"/></t:Message>`)))

		results := runTest(func(lt *ldtest.T) {
			resp, err := a.CreateItem(lt, &ews.CreateItemType{
				MessageDisposition: ews.DispositionSaveOnly,
				SavedItemFolderId:  &ews.TargetFolderIdType{DistinguishedFolderId: &ews.DistinguishedFolderIdType{Id: ews.FolderDrafts}},
				Items:              newMessage("subject"),
			})
			require.NoError(lt, err)
			assert.Equal(lt, "AAMkItem1", resp.ResponseMessages.Messages[0].Items.All()[0].ItemId.Id)
		})
		assert.True(t, results.OK())
		for _, n := range []int{2001, 2020, 2021, 2022, 2030} {
			assert.Equal(t, requirements.Verified, status(t, env, n), "requirement %d", n)
		}
	})
}

func TestCreateItemWithSendOnlyReturnsNoItems(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/CreateItem", response("CreateItem",
			`<m:CreateItemResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>`+
				`<m:Items/></m:CreateItemResponseMessage>`))

		results := runTest(func(lt *ldtest.T) {
			_, err := a.CreateItem(lt, &ews.CreateItemType{
				MessageDisposition: ews.DispositionSendOnly,
				Items:              newMessage("sent"),
			})
			require.NoError(lt, err)
		})
		assert.True(t, results.OK())
		_, captured := entry(env, 2030)
		assert.False(t, captured)
	})
}

func TestGetItemReturnsDifferentItem(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/GetItem", response("GetItem",
			itemMessage("GetItem", `<t:Message><t:ItemId Id="other" ChangeKey="CQAA1"/></t:Message>`)))

		results := runTest(func(lt *ldtest.T) {
			_, _ = a.GetItem(lt, &ews.GetItemType{
				ItemShape: ews.ItemResponseShapeType{BaseShape: ews.ShapeDefault},
				ItemIds:   ews.ItemIds(ews.ItemIdType{Id: "AAMkItem1"}),
			})
		})
		require.Len(t, results.Failures, 1)
		assert.Contains(t, results.Failures[0].Errors[0].Error(), "MS-OXWSCORE_R2040")
		assert.Equal(t, requirements.Failed, status(t, env, 2040))
	})
}

func TestUpdateItem(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/UpdateItem", response("UpdateItem",
			`<m:UpdateItemResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>`+
				`<m:Items><t:Message><t:ItemId Id="AAMkItem1" ChangeKey="CQAA2"/></t:Message></m:Items>`+
				`</m:UpdateItemResponseMessage>`))

		results := runTest(func(lt *ldtest.T) {
			_, _ = a.UpdateItem(lt, &ews.UpdateItemType{
				ConflictResolution: "AutoResolve",
				MessageDisposition: ews.DispositionSaveOnly,
				ItemChanges: ews.NonEmptyArrayOfItemChangesType{ItemChanges: []ews.ItemChangeType{{
					ItemId: ews.ItemIdType{Id: "AAMkItem1", ChangeKey: "CQAA1"},
					Updates: ews.NonEmptyArrayOfItemChangeDescriptionsType{
						DeleteItemFields: []ews.DeleteItemFieldType{{FieldURI: ews.PathToUnindexedFieldType{FieldURI: "item:Categories"}}},
					},
				}}},
			})
		})
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Verified, status(t, env, 2051))
		assert.Equal(t, requirements.Failed, status(t, env, 2050))
	})
}

func TestMarkAllItemsAsReadCountsFolders(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/MarkAllItemsAsRead", response("MarkAllItemsAsRead",
			`<m:MarkAllItemsAsReadResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>`+
				`</m:MarkAllItemsAsReadResponseMessage>`))

		results := runTest(func(lt *ldtest.T) {
			_, _ = a.MarkAllItemsAsRead(lt, &ews.MarkAllItemsAsReadType{
				ReadFlag:  true,
				FolderIds: ews.DistinguishedFolderIds(ews.FolderInbox, ews.FolderDrafts),
			})
		})
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Verified, status(t, env, 2008))
		assert.Equal(t, requirements.Failed, status(t, env, 2080))
		_, captured := entry(env, 2022)
		assert.False(t, captured)
	})
}

func TestMoveItemWithoutNewIDs(t *testing.T) {
	withAdapter(t, func(s *soapmock.Server, a *Adapter, env *requirements.Environment) {
		s.Respond(ews.MessagesNamespace+"/MoveItem", response("MoveItem",
			`<m:MoveItemResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>`+
				`<m:Items/></m:MoveItemResponseMessage>`))

		noIDs := false
		results := runTest(func(lt *ldtest.T) {
			_, err := a.MoveItem(lt, &ews.MoveItemType{
				ToFolderId:       ews.TargetDistinguishedFolder(ews.FolderDeletedItems),
				ItemIds:          ews.ItemIds(ews.ItemIdType{Id: "AAMkItem1"}),
				ReturnNewItemIds: &noIDs,
			})
			require.NoError(lt, err)
		})
		assert.True(t, results.OK())
		assert.Equal(t, requirements.Verified, status(t, env, 2006))
		_, captured := entry(env, 2070)
		assert.False(t, captured)
	})
}

func TestNewExposesProtocolAndBinding(t *testing.T) {
	withAdapter(t, func(_ *soapmock.Server, a *Adapter, env *requirements.Environment) {
		assert.Equal(t, Protocol, a.Protocol())
		assert.NotNil(t, a.Binding())
		assert.Same(t, env, a.Environment())
		assert.Equal(t, len(Requirements()), env.Catalog.Len())
	})
}
