// Package oxwsfold is the adapter for the folder operations of Exchange Web Services
// (MS-OXWSFOLD).
package oxwsfold

import (
	"context"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// Adapter calls folder operations and verifies the MS-OXWSFOLD requirements on each response.
type Adapter struct {
	adapters.Base
	binding *ews.ExchangeServiceBinding
}

// New creates an Adapter. The requirements of the protocol must already be registered in the
// environment's catalog.
func New(ctx context.Context, binding *ews.ExchangeServiceBinding, env *requirements.Environment) *Adapter {
	return &Adapter{Base: adapters.NewBase(ctx, Protocol, env), binding: binding}
}

// Binding returns the binding that the adapter calls.
func (a *Adapter) Binding() *ews.ExchangeServiceBinding {
	return a.binding
}

func (a *Adapter) outcome(site *requirements.Site, operation string, schema int, ex *soap.Exchange, err error) error {
	return adapters.Outcome(site, operation, schema, ex, err,
		adapters.EWSFaultChecker(responseMessageRequirements.FaultStructure))
}

func (a *Adapter) checkMessages(site *requirements.Site, messages []*ews.ResponseMessageType, requested int) {
	adapters.CheckResponseMessages(site, responseMessageRequirements, messages, requested, a.binding.ServerVersionInfo())
}

// checkReturnedFolders verifies that every successful response message returns at least one
// folder with an ID.
func checkReturnedFolders(site *requirements.Site, messages []ews.FolderInfoResponseMessageType, number int) {
	for _, m := range messages {
		if !m.IsSuccess() {
			continue
		}
		folders := m.Folders.All()
		site.CaptureIfTrue(len(folders) > 0, number, "%s has no folders", m.XMLName.Local)
		for _, f := range folders {
			site.CaptureIfTrue(f.FolderId != nil && f.FolderId.Id != "", number, "folder %q has no FolderId", f.DisplayName)
		}
	}
}

func (a *Adapter) CopyFolder(t *ldtest.T, req *ews.CopyFolderType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CopyFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CopyFolder", 1001, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.FolderIds.Len())

	sources := req.FolderIds.FolderIds
	for i, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() {
			continue
		}
		folders := m.Folders.All()
		site.CaptureIfTrue(len(folders) == 1, 1030, "CopyFolderResponseMessage has %d folders", len(folders))
		for _, f := range folders {
			ok := f.FolderId != nil && f.FolderId.Id != ""
			if ok && i < len(sources) {
				ok = f.FolderId.Id != sources[i].Id
			}
			site.CaptureIfTrue(ok, 1030, "copied folder ID is missing or equal to the original")
		}
	}
	return resp, nil
}

func (a *Adapter) CreateFolder(t *ldtest.T, req *ews.CreateFolderType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CreateFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CreateFolder", 1002, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.Folders.Len())

	for _, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() {
			continue
		}
		folders := m.Folders.All()
		site.CaptureIfTrue(len(folders) > 0, 1040, "CreateFolderResponseMessage has no folders")
		for _, f := range folders {
			site.CaptureIfTrue(f.FolderId != nil && f.FolderId.Id != "" && f.FolderId.ChangeKey != "", 1040,
				"FolderId or its ChangeKey is missing")
		}
	}
	return resp, nil
}

func (a *Adapter) CreateManagedFolder(t *ldtest.T, req *ews.CreateManagedFolderRequestType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CreateManagedFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CreateManagedFolder", 1003, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), len(req.FolderNames.FolderNames))
	checkReturnedFolders(site, resp.ResponseMessages.Messages, 1041)
	return resp, nil
}

func (a *Adapter) DeleteFolder(t *ldtest.T, req *ews.DeleteFolderType) (*ews.BaseResponseMessageType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.DeleteFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "DeleteFolder", 1004, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.FolderIds.Len())
	return resp, nil
}

func (a *Adapter) EmptyFolder(t *ldtest.T, req *ews.EmptyFolderType) (*ews.BaseResponseMessageType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.EmptyFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "EmptyFolder", 1005, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.FolderIds.Len())
	return resp, nil
}

func (a *Adapter) GetFolder(t *ldtest.T, req *ews.GetFolderType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetFolder", 1006, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.FolderIds.Len())
	checkReturnedFolders(site, resp.ResponseMessages.Messages, 1060)

	for _, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() {
			continue
		}
		for _, f := range m.Folders.All() {
			switch req.FolderShape.BaseShape {
			case ews.ShapeDefault:
				site.CaptureIfTrue(f.DisplayName != "" && f.TotalCount != nil && f.ChildFolderCount != nil, 1061,
					"Default shape omitted DisplayName, TotalCount or ChildFolderCount")
			case ews.ShapeAllProperties:
				if site.IsRequirementEnabled(1062) {
					site.CaptureIfNotEmpty(f.FolderClass, 1062, "AllProperties shape omitted FolderClass")
				}
			}
		}
	}
	return resp, nil
}

func (a *Adapter) MoveFolder(t *ldtest.T, req *ews.MoveFolderType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.MoveFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "MoveFolder", 1007, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.FolderIds.Len())
	checkReturnedFolders(site, resp.ResponseMessages.Messages, 1070)
	return resp, nil
}

func (a *Adapter) UpdateFolder(t *ldtest.T, req *ews.UpdateFolderType) (*ews.FolderInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.UpdateFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "UpdateFolder", 1008, ex, err); err != nil {
		return nil, err
	}
	changes := req.FolderChanges.FolderChanges
	a.checkMessages(site, resp.StatusMessages(), len(changes))
	checkReturnedFolders(site, resp.ResponseMessages.Messages, 1080)

	if site.IsRequirementEnabled(1081) {
		for i, m := range resp.ResponseMessages.Messages {
			if !m.IsSuccess() || i >= len(changes) || changes[i].FolderId == nil || changes[i].FolderId.ChangeKey == "" {
				continue
			}
			for _, f := range m.Folders.All() {
				if f.FolderId != nil {
					site.CaptureIfTrue(f.FolderId.ChangeKey != changes[i].FolderId.ChangeKey, 1081,
						"ChangeKey %q did not change", f.FolderId.ChangeKey)
				}
			}
		}
	}
	return resp, nil
}

// VerifyFolderNotFound checks a response message for a folder that the caller knows does not
// exist.
func (a *Adapter) VerifyFolderNotFound(t *ldtest.T, m *ews.ResponseMessageType) {
	site := a.Site(t)
	site.CaptureIfNotNil(m, 1090, "no response message")
	if m == nil {
		return
	}
	site.CaptureIfEqual(ews.ResponseClassError, m.ResponseClass, 1090)
	site.CaptureIfTrue(m.ResponseCode == ews.ResponseCodeErrorItemNotFound || m.ResponseCode == ews.ResponseCodeErrorFolderNotFound,
		1091, "ResponseCode was %q", m.ResponseCode)
}
