package oxwsfold

import (
	"context"
	"testing"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/framework/soapmock"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nsDecl = `xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages" ` +
		`xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types"`
	serverVersionHeader = `<h:ServerVersionInfo MajorVersion="14" MinorVersion="3" MajorBuildNumber="123"` +
		` MinorBuildNumber="4" Version="Exchange2010_SP2" xmlns:h="http://schemas.microsoft.com/exchange/services/2006/types"/>`
)

type fixture struct {
	server  *soapmock.Server
	adapter *Adapter
	env     *requirements.Environment
}

func withAdapter(t *testing.T, action func(f fixture)) {
	s := soapmock.NewServer(soap.Version11, nil)
	defer s.Close()
	c, err := soap.NewClient(soap.ClientOptions{Endpoint: s.URL(), Version: soap.Version11})
	require.NoError(t, err)
	defer c.Close()
	env := requirements.NewEnvironment()
	env.Catalog.Register(Requirements()...)
	binding := ews.NewExchangeServiceBinding(c, "Exchange2010_SP2")
	action(fixture{server: s, adapter: New(context.Background(), binding, env), env: env})
}

func runTest(action func(*ldtest.T)) ldtest.Results {
	return ldtest.Run(ldtest.TestConfiguration{}, func(t *ldtest.T) {
		t.Run("test", action)
	})
}

func status(t *testing.T, env *requirements.Environment, number int) requirements.Verdict {
	e, ok := env.Coverage.Entry(requirements.ID{Protocol: Protocol, Number: number})
	require.True(t, ok, "requirement %d was never captured", number)
	return e.Status()
}

func folderResponse(operation, messages string) string {
	return `<m:` + operation + `Response ` + nsDecl + `><m:ResponseMessages>` + messages +
		`</m:ResponseMessages></m:` + operation + `Response>`
}

func folderMessage(operation, folders string) string {
	return `<m:` + operation + `ResponseMessage ResponseClass="Success"><m:ResponseCode>NoError</m:ResponseCode>` +
		`<m:Folders>` + folders + `</m:Folders></m:` + operation + `ResponseMessage>`
}

func TestRequirementsCanBeRegistered(t *testing.T) {
	c := requirements.NewCatalog()
	c.Register(Requirements()...)
	assert.Equal(t, len(Requirements()), c.Len())
}

func TestGetFolderVerifiesRequirements(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.server.RespondWithHeader(ews.MessagesNamespace+"/GetFolder", serverVersionHeader,
			folderResponse("GetFolder", folderMessage("GetFolder",
				`<t:Folder><t:FolderId Id="AAMk1" ChangeKey="AQAA1"/><t:DisplayName>Inbox</t:DisplayName>`+
					`<t:TotalCount>2</t:TotalCount><t:ChildFolderCount>0</t:ChildFolderCount></t:Folder>`)))

		results := runTest(func(lt *ldtest.T) {
			resp, err := f.adapter.GetFolder(lt, &ews.GetFolderType{
				FolderShape: ews.FolderResponseShapeType{BaseShape: ews.ShapeDefault},
				FolderIds:   ews.DistinguishedFolderIds(ews.FolderInbox),
			})
			require.NoError(lt, err)
			assert.Equal(lt, 1, resp.ResponseMessages.Messages[0].Folders.Len())
		})
		assert.True(t, results.OK())
		for _, n := range []int{1006, 1020, 1021, 1022, 1023, 1060, 1061} {
			assert.Equal(t, requirements.Verified, status(t, f.env, n), "requirement %d", n)
		}
	})
}

func TestMissingResponseMessageFailsRequirement(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.server.Respond(ews.MessagesNamespace+"/GetFolder",
			folderResponse("GetFolder", folderMessage("GetFolder", `<t:Folder><t:FolderId Id="AAMk1"/></t:Folder>`)))

		results := runTest(func(lt *ldtest.T) {
			_, err := f.adapter.GetFolder(lt, &ews.GetFolderType{
				FolderShape: ews.FolderResponseShapeType{BaseShape: ews.ShapeIdOnly},
				FolderIds:   ews.DistinguishedFolderIds(ews.FolderInbox, ews.FolderDrafts),
			})
			assert.NoError(lt, err)
		})
		require.Len(t, results.Failures, 1)
		assert.Contains(t, results.Failures[0].Errors[0].Error(), "MS-OXWSFOLD_R1022")
		assert.Equal(t, requirements.Failed, status(t, f.env, 1022))
		assert.Equal(t, requirements.Failed, status(t, f.env, 1023))
		assert.Equal(t, requirements.Verified, status(t, f.env, 1006))
	})
}

func TestUnchangedChangeKeyAfterUpdateFolder(t *testing.T) {
	req := &ews.UpdateFolderType{
		FolderChanges: ews.NonEmptyArrayOfFolderChangesType{
			FolderChanges: []ews.FolderChangeType{{
				FolderId: &ews.FolderIdType{Id: "AAMk1", ChangeKey: "AQAA1"},
				Updates: ews.NonEmptyArrayOfFolderChangeDescriptionsType{
					SetFolderFields: []ews.SetFolderFieldType{{
						FieldURI: ews.PathToUnindexedFieldType{FieldURI: "folder:DisplayName"},
						Folder:   &ews.FolderType{BaseFolderType: ews.BaseFolderType{DisplayName: "Renamed"}},
					}},
				},
			}},
		},
	}
	response := folderResponse("UpdateFolder", folderMessage("UpdateFolder",
		`<t:Folder><t:FolderId Id="AAMk1" ChangeKey="AQAA1"/></t:Folder>`))

	t.Run("enabled", func(t *testing.T) {
		withAdapter(t, func(f fixture) {
			f.server.RespondWithHeader(ews.MessagesNamespace+"/UpdateFolder", serverVersionHeader, response)
			results := runTest(func(lt *ldtest.T) {
				_, _ = f.adapter.UpdateFolder(lt, req)
			})
			assert.False(t, results.OK())
			assert.Equal(t, requirements.Verified, status(t, f.env, 1080))
			assert.Equal(t, requirements.Failed, status(t, f.env, 1081))
		})
	})

	t.Run("disabled", func(t *testing.T) {
		withAdapter(t, func(f fixture) {
			f.env.Toggles.Set(Protocol, 1081, false)
			f.server.RespondWithHeader(ews.MessagesNamespace+"/UpdateFolder", serverVersionHeader, response)
			results := runTest(func(lt *ldtest.T) {
				_, _ = f.adapter.UpdateFolder(lt, req)
			})
			assert.True(t, results.OK())
			_, captured := f.env.Coverage.Entry(requirements.ID{Protocol: Protocol, Number: 1081})
			assert.False(t, captured)
		})
	})
}

func TestCopyFolderRequiresNewID(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.server.RespondWithHeader(ews.MessagesNamespace+"/CopyFolder", serverVersionHeader,
			folderResponse("CopyFolder", folderMessage("CopyFolder", `<t:Folder><t:FolderId Id="AAMk1"/></t:Folder>`)))
		results := runTest(func(lt *ldtest.T) {
			_, _ = f.adapter.CopyFolder(lt, &ews.CopyFolderType{
				ToFolderId: ews.TargetDistinguishedFolder(ews.FolderDrafts),
				FolderIds:  ews.FolderIds(ews.FolderIdType{Id: "AAMk1"}),
			})
		})
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Failed, status(t, f.env, 1030))
	})
}

func TestFaultIsReturnedAndChecked(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.server.Fault(ews.MessagesNamespace+"/DeleteFolder", "Client", "The request failed schema validation.",
			`<e:ResponseCode xmlns:e="http://schemas.microsoft.com/exchange/services/2006/errors">`+
				`ErrorSchemaValidation</e:ResponseCode>`+
				`<e:Message xmlns:e="http://schemas.microsoft.com/exchange/services/2006/errors">bad</e:Message>`)

		var returned error
		results := runTest(func(lt *ldtest.T) {
			_, returned = f.adapter.DeleteFolder(lt, &ews.DeleteFolderType{
				DeleteType: ews.DeleteTypeHardDelete,
				FolderIds:  ews.FolderIds(ews.FolderIdType{Id: "bogus"}),
			})
		})
		assert.True(t, results.OK())
		fault, ok := adapters.IsFault(returned)
		require.True(t, ok)
		assert.Equal(t, "Client", fault.CodeLocalName())
		assert.Equal(t, requirements.Verified, status(t, f.env, 1010))
	})
}

func TestSchemaFailureStopsTest(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.server.Respond(ews.MessagesNamespace+"/EmptyFolder",
			folderResponse("EmptyFolder", `<m:DeleteFolderResponseMessage ResponseClass="Success">`+
				`<m:ResponseCode>NoError</m:ResponseCode></m:DeleteFolderResponseMessage>`))
		reachedEnd := false
		results := runTest(func(lt *ldtest.T) {
			_, _ = f.adapter.EmptyFolder(lt, &ews.EmptyFolderType{
				DeleteType: ews.DeleteTypeHardDelete,
				FolderIds:  ews.DistinguishedFolderIds(ews.FolderDeletedItems),
			})
			reachedEnd = true
		})
		assert.False(t, reachedEnd)
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Failed, status(t, f.env, 1005))
	})
}

func TestVerifyFolderNotFound(t *testing.T) {
	withAdapter(t, func(f fixture) {
		results := runTest(func(lt *ldtest.T) {
			f.adapter.VerifyFolderNotFound(lt, &ews.ResponseMessageType{
				ResponseClass: ews.ResponseClassError,
				ResponseCode:  ews.ResponseCodeErrorFolderNotFound,
			})
		})
		assert.True(t, results.OK())
		assert.Equal(t, requirements.Verified, status(t, f.env, 1090))
		assert.Equal(t, requirements.Verified, status(t, f.env, 1091))

		results = runTest(func(lt *ldtest.T) {
			f.adapter.VerifyFolderNotFound(lt, &ews.ResponseMessageType{
				ResponseClass: ews.ResponseClassSuccess,
				ResponseCode:  ews.ResponseCodeNoError,
			})
		})
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Failed, status(t, f.env, 1091))
	})
}

func TestDisabledResponseClassRequirementStillChecksResponseCode(t *testing.T) {
	withAdapter(t, func(f fixture) {
		f.env.Toggles.Set(Protocol, 1090, false)
		results := runTest(func(lt *ldtest.T) {
			f.adapter.VerifyFolderNotFound(lt, &ews.ResponseMessageType{
				ResponseClass: ews.ResponseClassSuccess,
				ResponseCode:  ews.ResponseCodeNoError,
			})
		})
		assert.False(t, results.OK())
		assert.Equal(t, requirements.Disabled, status(t, f.env, 1090))
		assert.Equal(t, requirements.Failed, status(t, f.env, 1091))
	})
}
