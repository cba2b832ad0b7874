// Package listsws is the adapter for the SharePoint Lists Web Service (MS-LISTSWS).
package listsws

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	sharepoint "github.com/msprotocols/protocol-contract-tests/listsws"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// Adapter calls Lists Web Service operations and verifies the MS-LISTSWS requirements on each
// response.
type Adapter struct {
	adapters.Base
	binding *sharepoint.ListsBinding
}

// New creates an Adapter. The requirements of the protocol must already be registered in the
// environment's catalog.
func New(ctx context.Context, binding *sharepoint.ListsBinding, env *requirements.Environment) *Adapter {
	return &Adapter{Base: adapters.NewBase(ctx, Protocol, env), binding: binding}
}

// Binding returns the binding that the adapter calls.
func (a *Adapter) Binding() *sharepoint.ListsBinding {
	return a.binding
}

func (a *Adapter) outcome(site *requirements.Site, operation string, schema int, ex *soap.Exchange, err error) error {
	return adapters.Outcome(site, operation, schema, ex, err, adapters.SharePointFaultChecker(faultRequirements))
}

func normalizeGUID(s string) string {
	return strings.ToLower(strings.Trim(s, "{}"))
}

func (a *Adapter) AddList(t *ldtest.T, req *sharepoint.AddList) (*sharepoint.AddListResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.AddList(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "AddList", 4001, ex, err); err != nil {
		return nil, err
	}
	list := resp.List
	site.CaptureIfEqual(req.ListName, list.Title, 4030, "Title of the new list")
	site.CaptureIfEqual(strconv.Itoa(req.TemplateID), list.ServerTemplate, 4031, "ServerTemplate of the new list")
	site.CaptureIfTrue(sharepoint.IsGUID(list.ID), 4032, "list ID %q is not a GUID", list.ID)
	return resp, nil
}

func (a *Adapter) DeleteList(t *ldtest.T, req *sharepoint.DeleteList) (*sharepoint.DeleteListResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.DeleteList(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "DeleteList", 4002, ex, err); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *Adapter) GetList(t *ldtest.T, req *sharepoint.GetList) (*sharepoint.GetListResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetList(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetList", 4003, ex, err); err != nil {
		return nil, err
	}
	if sharepoint.IsGUID(req.ListName) {
		site.CaptureIfEqual(normalizeGUID(req.ListName), normalizeGUID(resp.List.ID), 4040, "ID of the returned list")
	} else {
		site.CaptureIfTrue(strings.EqualFold(req.ListName, resp.List.Title), 4040,
			"requested list %q but got %q", req.ListName, resp.List.Title)
	}
	return resp, nil
}

func (a *Adapter) GetListCollection(t *ldtest.T) (*sharepoint.GetListCollectionResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetListCollection(a.Context(), t.DebugLogger())
	if err := a.outcome(site, "GetListCollection", 4004, ex, err); err != nil {
		return nil, err
	}
	for _, l := range resp.Lists {
		site.CaptureIfTrue(sharepoint.IsGUID(l.ID) && l.Title != "", 4050, "list %q has ID %q", l.Title, l.ID)
	}
	return resp, nil
}

func (a *Adapter) UpdateList(t *ldtest.T, req *sharepoint.UpdateList) (*sharepoint.UpdateListResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.UpdateList(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "UpdateList", 4005, ex, err); err != nil {
		return nil, err
	}
	results := resp.Results
	site.CaptureIfNotNil(results.ListProperties, 4060, "UpdateList returned no ListProperties")
	for _, group := range []struct {
		name               string
		requested, results *sharepoint.FieldMethods
	}{
		{"NewFields", req.NewFields, results.NewFields},
		{"UpdateFields", req.UpdateFields, results.UpdateFields},
		{"DeleteFields", req.DeleteFields, results.DeleteFields},
	} {
		if group.requested == nil || len(group.requested.Methods) == 0 {
			continue
		}
		got := 0
		if group.results != nil {
			got = len(group.results.Methods)
		}
		site.CaptureIfEqual(len(group.requested.Methods), got, 4061, "number of %s results", group.name)
	}
	return resp, nil
}

func (a *Adapter) GetListItems(t *ldtest.T, req *sharepoint.GetListItems) (*sharepoint.GetListItemsResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetListItems(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetListItems", 4006, ex, err); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *Adapter) UpdateListItems(t *ldtest.T, req *sharepoint.UpdateListItems) (*sharepoint.UpdateListItemsResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.UpdateListItems(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "UpdateListItems", 4007, ex, err); err != nil {
		return nil, err
	}
	methods := req.Updates.Methods
	site.CaptureIfEqual(len(methods), len(resp.Results), 4070, "number of Result elements")
	for i, result := range resp.Results {
		site.CaptureIfTrue(adapters.IsErrorCode(result.ErrorCode), 4072, "ErrorCode was %q", result.ErrorCode)
		if i >= len(methods) {
			continue
		}
		id, _ := result.MethodID()
		site.CaptureIfEqual(methods[i].ID, id, 4070, "ID of Result %d", i)
		if result.Succeeded() && (methods[i].Cmd == sharepoint.CmdNew || methods[i].Cmd == sharepoint.CmdUpdate) {
			site.CaptureIfNotNil(result.Row, 4071, "Result %s has no z:row", result.ID)
		}
	}
	return resp, nil
}

func (a *Adapter) GetListItemChanges(t *ldtest.T, req *sharepoint.GetListItemChanges) (
	*sharepoint.GetListItemChangesResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetListItemChanges(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetListItemChanges", 4008, ex, err); err != nil {
		return nil, err
	}
	site.CaptureIfNotEmpty(resp.ListItems.TimeStamp, 4080, "listitems has no TimeStamp")
	return resp, nil
}

func (a *Adapter) GetListItemChangesSinceToken(t *ldtest.T, req *sharepoint.GetListItemChangesSinceToken) (
	*sharepoint.GetListItemChangesSinceTokenResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetListItemChangesSinceToken(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetListItemChangesSinceToken", 4009, ex, err); err != nil {
		return nil, err
	}
	site.CaptureIfNotEmpty(resp.ChangeToken(), 4090, "Changes has no LastChangeToken")
	if req.ChangeToken == "" && site.IsRequirementEnabled(4091) {
		ok := resp.ListItems.Changes != nil && resp.ListItems.Changes.List != nil
		site.CaptureIfTrue(ok, 4091, "first synchronization did not return the list schema")
	}
	if site.IsRequirementEnabled(4092) {
		items := resp.ListItems
		site.CaptureIfTrue(items.MinTimeBetweenSyncs != "" && items.RecommendedTimeBetweenSyncs != "", 4092,
			"listitems has no synchronization hints")
	}
	return resp, nil
}

func (a *Adapter) AddAttachment(t *ldtest.T, req *sharepoint.AddAttachment) (*sharepoint.AddAttachmentResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.AddAttachment(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "AddAttachment", 4010, ex, err); err != nil {
		return nil, err
	}
	u := resp.URL
	if unescaped, err := url.PathUnescape(u); err == nil {
		u = unescaped
	}
	site.CaptureIfTrue(u != "" && strings.HasSuffix(u, "/"+req.FileName), 4100,
		"attachment URL %q does not end with %q", resp.URL, req.FileName)
	return resp, nil
}

func (a *Adapter) GetAttachmentCollection(t *ldtest.T, req *sharepoint.GetAttachmentCollection) (
	*sharepoint.GetAttachmentCollectionResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetAttachmentCollection(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetAttachmentCollection", 4011, ex, err); err != nil {
		return nil, err
	}
	for i, attachment := range resp.Attachments {
		site.CaptureIfNotEmpty(attachment, 4101, "Attachment %d is empty", i)
	}
	return resp, nil
}

func (a *Adapter) DeleteAttachment(t *ldtest.T, req *sharepoint.DeleteAttachment) (
	*sharepoint.DeleteAttachmentResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.DeleteAttachment(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "DeleteAttachment", 4012, ex, err); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *Adapter) GetListContentTypes(t *ldtest.T, req *sharepoint.GetListContentTypes) (
	*sharepoint.GetListContentTypesResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetListContentTypes(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetListContentTypes", 4013, ex, err); err != nil {
		return nil, err
	}
	for _, ct := range resp.ContentTypes.ContentTypes {
		site.CaptureIfTrue(ct.Name != "" && ct.ID != "", 4110, "content type %q has ID %q", ct.Name, ct.ID)
	}
	return resp, nil
}

func (a *Adapter) CheckOutFile(t *ldtest.T, req *sharepoint.CheckOutFile) (*sharepoint.CheckOutFileResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CheckOutFile(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CheckOutFile", 4014, ex, err); err != nil {
		return nil, err
	}
	site.CaptureIfTrue(resp.Result, 4120, "CheckOutFile returned false for %s", req.PageURL)
	return resp, nil
}

func (a *Adapter) UndoCheckOut(t *ldtest.T, req *sharepoint.UndoCheckOut) (*sharepoint.UndoCheckOutResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.UndoCheckOut(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "UndoCheckOut", 4015, ex, err); err != nil {
		return nil, err
	}
	site.CaptureIfTrue(resp.Result, 4121, "UndoCheckOut returned false for %s", req.PageURL)
	return resp, nil
}

func (a *Adapter) CheckInFile(t *ldtest.T, req *sharepoint.CheckInFile) (*sharepoint.CheckInFileResponse, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CheckInFile(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CheckInFile", 4016, ex, err); err != nil {
		return nil, err
	}
	site.CaptureIfTrue(resp.Result, 4122, "CheckInFile returned false for %s", req.PageURL)
	return resp, nil
}
