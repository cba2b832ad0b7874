// Package oxwssrch is the adapter for the search operations of Exchange Web Services
// (MS-OXWSSRCH).
package oxwssrch

import (
	"context"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// Adapter calls search operations and verifies the MS-OXWSSRCH requirements on each response.
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

// rootFolder is what FindFolder and FindItem have in common in their RootFolder element.
type rootFolder struct {
	indexedPagingOffset     *int
	includesLastItemInRange *bool
	totalItemsInView        *int
	returned                int
}

func (a *Adapter) checkRootFolder(site *requirements.Site, root *rootFolder, view *ews.IndexedPageViewType) {
	site.CaptureIfNotNil(root.totalItemsInView, 3030, "RootFolder has no TotalItemsInView")
	site.CaptureIfNotNil(root.includesLastItemInRange, 3031, "RootFolder has no IncludesLastItemInRange")
	if root.totalItemsInView != nil {
		site.CaptureIfTrue(*root.totalItemsInView >= root.returned, 3042,
			"TotalItemsInView is %d but %d entries were returned", *root.totalItemsInView, root.returned)
	}
	if view == nil {
		return
	}
	// The offset is only meaningful when there is another page to read.
	if root.includesLastItemInRange != nil && !*root.includesLastItemInRange {
		ok := site.CaptureIfNotNil(root.indexedPagingOffset, 3040, "RootFolder has no IndexedPagingOffset")
		if ok {
			site.CaptureIfTrue(*root.indexedPagingOffset >= view.Offset+root.returned, 3040,
				"IndexedPagingOffset %d does not follow offset %d and %d returned entries",
				*root.indexedPagingOffset, view.Offset, root.returned)
		}
	}
	if view.MaxEntriesReturned != nil {
		site.CaptureIfTrue(root.returned <= *view.MaxEntriesReturned, 3041,
			"%d entries returned, MaxEntriesReturned is %d", root.returned, *view.MaxEntriesReturned)
	}
}

func (a *Adapter) FindFolder(t *ldtest.T, req *ews.FindFolderType) (*ews.FindFolderResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.FindFolder(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "FindFolder", 3001, ex, err); err != nil {
		return nil, err
	}
	adapters.CheckResponseMessages(site, responseMessageRequirements, resp.StatusMessages(), req.ParentFolderIds.Len(),
		a.binding.ServerVersionInfo())

	for _, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() || m.RootFolder == nil {
			continue
		}
		folders := m.RootFolder.Folders.All()
		for _, f := range folders {
			site.CaptureIfTrue(f.FolderId != nil && f.FolderId.Id != "", 3032, "folder %q has no FolderId", f.DisplayName)
		}
		a.checkRootFolder(site, &rootFolder{
			indexedPagingOffset:     m.RootFolder.IndexedPagingOffset,
			includesLastItemInRange: m.RootFolder.IncludesLastItemInRange,
			totalItemsInView:        m.RootFolder.TotalItemsInView,
			returned:                len(folders),
		}, req.IndexedPageFolderView)
	}
	return resp, nil
}

func (a *Adapter) FindItem(t *ldtest.T, req *ews.FindItemType) (*ews.FindItemResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.FindItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "FindItem", 3002, ex, err); err != nil {
		return nil, err
	}
	adapters.CheckResponseMessages(site, responseMessageRequirements, resp.StatusMessages(), req.ParentFolderIds.Len(),
		a.binding.ServerVersionInfo())

	for _, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() || m.RootFolder == nil {
			continue
		}
		a.checkRootFolder(site, &rootFolder{
			indexedPagingOffset:     m.RootFolder.IndexedPagingOffset,
			includesLastItemInRange: m.RootFolder.IncludesLastItemInRange,
			totalItemsInView:        m.RootFolder.TotalItemsInView,
			returned:                m.RootFolder.Items.Len(),
		}, req.IndexedPageItemView)
	}
	return resp, nil
}
