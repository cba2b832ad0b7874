package listsws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msprotocols/protocol-contract-tests/framework/soapmock"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listAttrs = `DocTemplateUrl="" DefaultViewUrl="/Lists/Tasks/AllItems.aspx" ID="{8E2B1C5B-7A3F-4C4D-9C2E-0123456789AB}"` +
	` Title="Tasks" Description="" ImageUrl="/_layouts/images/itgen.gif" Name="{8E2B1C5B-7A3F-4C4D-9C2E-0123456789AB}"` +
	` BaseType="0" ServerTemplate="100" Created="20240101 10:00:00" Modified="20240101 10:05:00" Version="2"` +
	` Flags="4096" ItemCount="1" EnableAttachments="True"`

func withBinding(t *testing.T, version soap.Version, action func(*soapmock.Server, *ListsBinding)) {
	s := soapmock.NewServer(version, nil)
	defer s.Close()
	c, err := soap.NewClient(soap.ClientOptions{Endpoint: s.URL(), Version: version})
	require.NoError(t, err)
	defer c.Close()
	action(s, NewListsBinding(c))
}

func TestGetList(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"GetList", `<GetListResponse xmlns="`+Namespace+`"><GetListResult>`+
			`<List `+listAttrs+`><Fields><Field ID="{fa564e0f-0c70-4ab9-b863-0177e6ddd247}" Name="Title" DisplayName="Title" Type="Text" Required="TRUE"/></Fields>`+
			`<RegionalSettings><Language>1033</Language><Locale>1033</Locale></RegionalSettings>`+
			`<ServerSettings><ServerVersion>15.0.4420.1017</ServerVersion><RecycleBinEnabled>True</RecycleBinEnabled></ServerSettings>`+
			`</List></GetListResult></GetListResponse>`)

		resp, ex, err := b.GetList(context.Background(), &GetList{ListName: "Tasks"}, nil)
		require.NoError(t, err)
		assert.Equal(t, soap.ValidationSuccess, ex.Validation.Status())
		assert.Equal(t, "Tasks", resp.List.Title)
		assert.True(t, IsGUID(resp.List.ID))
		title, ok := resp.List.Fields.Lookup("Title")
		require.True(t, ok)
		assert.Equal(t, "Text", title.Type)
		assert.Equal(t, "1033", resp.List.RegionalSettings.Language)
		assert.Equal(t, "True", resp.List.ServerSettings.RecycleBinEnabled)

		r, err := s.AwaitRequest(time.Second)
		require.NoError(t, err)
		assert.Equal(t, Namespace+"GetList", r.Action)
		assert.Contains(t, string(r.Body), `<GetList xmlns="`+Namespace+`"><listName>Tasks</listName></GetList>`)
	})
}

func TestListWithoutGUIDFailsValidation(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"GetListCollection", `<GetListCollectionResponse xmlns="`+Namespace+`">`+
			`<GetListCollectionResult><Lists><List ID="not-a-guid" Title="Broken" Name="x" BaseType="0"`+
			` ServerTemplate="100" Created="c" Modified="m" Version="0" Flags="0" ItemCount="0"/></Lists>`+
			`</GetListCollectionResult></GetListCollectionResponse>`)

		_, _, err := b.GetListCollection(context.Background(), nil)
		var verr *soap.SchemaValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Error(), `GetListCollectionResult/Lists/List[0]/@ID "not-a-guid" is not a GUID`)
	})
}

func TestUpdateListItemsBatch(t *testing.T) {
	withBinding(t, soap.Version12, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"UpdateListItems", `<UpdateListItemsResponse xmlns="`+Namespace+`"><UpdateListItemsResult>`+
			`<Results><Result ID="1,New"><ErrorCode>0x00000000</ErrorCode>`+
			`<z:row xmlns:z="#RowsetSchema" ows_ID="7" ows_Title="first"/></Result>`+
			`<Result ID="2,Delete"><ErrorCode>0x81020016</ErrorCode><ErrorText>Item does not exist.</ErrorText></Result>`+
			`</Results></UpdateListItemsResult></UpdateListItemsResponse>`)

		var batch Batch
		batch.OnError = "Continue"
		batch.Add(CmdNew, BatchField{Name: "Title", Value: "first"}).
			Add(CmdDelete, BatchField{Name: "ID", Value: "99"})
		resp, _, err := b.UpdateListItems(context.Background(), &UpdateListItems{ListName: "Tasks", Updates: batch}, nil)
		require.NoError(t, err)

		require.Len(t, resp.Results, 2)
		id, cmd := resp.Results[0].MethodID()
		assert.Equal(t, "1", id)
		assert.Equal(t, CmdNew, cmd)
		assert.True(t, resp.Results[0].Succeeded())
		assert.Equal(t, "7", resp.Results[0].Row.ID())
		title, _ := resp.Results[0].Row.Get("Title")
		assert.Equal(t, "first", title)
		assert.False(t, resp.Results[1].Succeeded())

		r, err := s.AwaitRequest(time.Second)
		require.NoError(t, err)
		assert.Equal(t, Namespace+"UpdateListItems", r.Action)
		assert.Contains(t, string(r.Body), `<updates><Batch OnError="Continue">`+
			`<Method ID="1" Cmd="New"><Field Name="Title">first</Field></Method>`+
			`<Method ID="2" Cmd="Delete"><Field Name="ID">99</Field></Method></Batch></updates>`)
	})
}

func TestGetListItemChangesSinceToken(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"GetListItemChangesSinceToken", `<GetListItemChangesSinceTokenResponse xmlns="`+Namespace+`">`+
			`<GetListItemChangesSinceTokenResult><listitems MinTimeBetweenSyncs="0" RecommendedTimeBetweenSyncs="180"`+
			` xmlns:rs="urn:schemas-microsoft-com:rowset" xmlns:z="#RowsetSchema">`+
			`<Changes LastChangeToken="1;3;8e2b1c5b-7a3f-4c4d-9c2e-0123456789ab;638400000000000000;1234">`+
			`<Id ChangeType="Delete" UniqueId="{11111111-2222-3333-4444-555555555555}">5</Id></Changes>`+
			`<rs:data ItemCount="1"><z:row ows_ID="6" ows_Title="changed"/></rs:data>`+
			`</listitems></GetListItemChangesSinceTokenResult></GetListItemChangesSinceTokenResponse>`)

		resp, _, err := b.GetListItemChangesSinceToken(context.Background(), &GetListItemChangesSinceToken{
			ListName:    "Tasks",
			ViewFields:  ViewFields("Title"),
			ChangeToken: "1;3;8e2b1c5b-7a3f-4c4d-9c2e-0123456789ab;638300000000000000;1200",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "1;3;8e2b1c5b-7a3f-4c4d-9c2e-0123456789ab;638400000000000000;1234", resp.ChangeToken())
		require.Len(t, resp.Rows(), 1)
		assert.Equal(t, "6", resp.Rows()[0].ID())
		require.Len(t, resp.ListItems.Changes.IDs, 1)
		assert.Equal(t, "Delete", resp.ListItems.Changes.IDs[0].ChangeType)
		assert.Equal(t, "5", resp.ListItems.Changes.IDs[0].Value)

		r, err := s.AwaitRequest(time.Second)
		require.NoError(t, err)
		assert.Contains(t, string(r.Body), `<viewFields><ViewFields><FieldRef Name="Title"/></ViewFields></viewFields>`)
	})
}

func TestRowCountMismatchFailsValidation(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"GetListItems", `<GetListItemsResponse xmlns="`+Namespace+`"><GetListItemsResult>`+
			`<listitems xmlns:rs="urn:schemas-microsoft-com:rowset" xmlns:z="#RowsetSchema">`+
			`<rs:data ItemCount="2"><z:row ows_ID="1"/></rs:data></listitems></GetListItemsResult></GetListItemsResponse>`)

		_, _, err := b.GetListItems(context.Background(), &GetListItems{ListName: "Tasks", Query: QueryEq("Title", "Text", "a<b")}, nil)
		var verr *soap.SchemaValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Error(), "@ItemCount is 2 but there are 1 rows")

		r, err := s.AwaitRequest(time.Second)
		require.NoError(t, err)
		assert.Contains(t, string(r.Body), `<query><Query><Where><Eq><FieldRef Name="Title"/><Value Type="Text">a&lt;b</Value></Eq></Where></Query></query>`)
	})
}

func TestFaultDetail(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Fault(Namespace+"DeleteList", "Server", "Exception of type 'Microsoft.SharePoint.SoapServer.SoapServerException' was thrown.",
			`<errorstring xmlns="`+Namespace+`">List does not exist.</errorstring><errorcode xmlns="`+Namespace+`">0x82000006</errorcode>`)

		_, _, err := b.DeleteList(context.Background(), &DeleteList{ListName: "missing"}, nil)
		var fault *soap.Fault
		require.True(t, errors.As(err, &fault))
		var detail SoapFaultDetail
		require.NoError(t, fault.DecodeDetail(&detail))
		assert.Equal(t, "List does not exist.", detail.ErrorString)
		assert.Equal(t, "0x82000006", detail.ErrorCode)
	})
}

func TestCheckOutFile(t *testing.T) {
	withBinding(t, soap.Version11, func(s *soapmock.Server, b *ListsBinding) {
		s.Respond(Namespace+"CheckOutFile", `<CheckOutFileResponse xmlns="`+Namespace+`"><CheckOutFileResult>true</CheckOutFileResult></CheckOutFileResponse>`)
		resp, _, err := b.CheckOutFile(context.Background(), &CheckOutFile{PageURL: "http://sp/Shared Documents/a.txt", CheckoutToLocal: "false"}, nil)
		require.NoError(t, err)
		assert.True(t, resp.Result)
	})
}

func TestIsGUID(t *testing.T) {
	assert.True(t, IsGUID("{8E2B1C5B-7A3F-4C4D-9C2E-0123456789AB}"))
	assert.True(t, IsGUID("8e2b1c5b-7a3f-4c4d-9c2e-0123456789ab"))
	assert.False(t, IsGUID(""))
	assert.False(t, IsGUID("Tasks"))
}
