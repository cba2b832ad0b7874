// Package oxwscore is the adapter for the item operations of Exchange Web Services (MS-OXWSCORE).
package oxwscore

import (
	"context"

	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/ews"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// Adapter calls item operations and verifies the MS-OXWSCORE requirements on each response.
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

func returnsNewIDs(flag *bool) bool {
	return flag == nil || *flag
}

func (a *Adapter) CreateItem(t *ldtest.T, req *ews.CreateItemType) (*ews.ItemInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CreateItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CreateItem", 2001, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), req.Items.Len())

	// An item that is only sent is not saved, so there is no ID to return.
	if req.MessageDisposition == ews.DispositionSendOnly {
		return resp, nil
	}
	for _, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() {
			continue
		}
		items := m.Items.All()
		site.CaptureIfTrue(len(items) > 0, 2030, "CreateItemResponseMessage has no items")
		for _, item := range items {
			site.CaptureIfTrue(item.ItemId != nil && item.ItemId.Id != "" && item.ItemId.ChangeKey != "", 2030,
				"ItemId or its ChangeKey is missing")
		}
	}
	return resp, nil
}

func (a *Adapter) GetItem(t *ldtest.T, req *ews.GetItemType) (*ews.ItemInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.GetItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "GetItem", 2002, ex, err); err != nil {
		return nil, err
	}
	requested := req.ItemIds.ItemIds
	a.checkMessages(site, resp.StatusMessages(), len(requested))

	for i, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() || i >= len(requested) {
			continue
		}
		items := m.Items.All()
		if !site.CaptureIfTrue(len(items) == 1, 2040, "GetItemResponseMessage has %d items", len(items)) {
			continue
		}
		got := ""
		if items[0].ItemId != nil {
			got = items[0].ItemId.Id
		}
		site.CaptureIfEqual(requested[i].Id, got, 2040, "ItemId of returned item")
	}
	return resp, nil
}

func (a *Adapter) DeleteItem(t *ldtest.T, req *ews.DeleteItemType) (*ews.BaseResponseMessageType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.DeleteItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "DeleteItem", 2003, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), len(req.ItemIds.ItemIds))
	return resp, nil
}

func (a *Adapter) UpdateItem(t *ldtest.T, req *ews.UpdateItemType) (*ews.UpdateItemResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.UpdateItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "UpdateItem", 2004, ex, err); err != nil {
		return nil, err
	}
	changes := req.ItemChanges.ItemChanges
	a.checkMessages(site, resp.StatusMessages(), len(changes))

	for i, m := range resp.ResponseMessages.Messages {
		if !m.IsSuccess() {
			continue
		}
		if site.IsRequirementEnabled(2050) {
			site.CaptureIfNotNil(m.ConflictResults, 2050, "UpdateItemResponseMessage has no ConflictResults")
		}
		if i >= len(changes) || changes[i].ItemId.ChangeKey == "" {
			continue
		}
		for _, item := range m.Items.All() {
			if item.ItemId != nil {
				site.CaptureIfTrue(item.ItemId.ChangeKey != changes[i].ItemId.ChangeKey, 2051,
					"ChangeKey %q did not change", item.ItemId.ChangeKey)
			}
		}
	}
	return resp, nil
}

func (a *Adapter) CopyItem(t *ldtest.T, req *ews.CopyItemType) (*ews.ItemInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.CopyItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "CopyItem", 2005, ex, err); err != nil {
		return nil, err
	}
	sources := req.ItemIds.ItemIds
	a.checkMessages(site, resp.StatusMessages(), len(sources))

	if returnsNewIDs(req.ReturnNewItemIds) && site.IsRequirementEnabled(2060) {
		for i, m := range resp.ResponseMessages.Messages {
			if !m.IsSuccess() {
				continue
			}
			for _, item := range m.Items.All() {
				ok := item.ItemId != nil && item.ItemId.Id != ""
				if ok && i < len(sources) {
					ok = item.ItemId.Id != sources[i].Id
				}
				site.CaptureIfTrue(ok, 2060, "copied item ID is missing or equal to the original")
			}
		}
	}
	return resp, nil
}

func (a *Adapter) MoveItem(t *ldtest.T, req *ews.MoveItemType) (*ews.ItemInfoResponseType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.MoveItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "MoveItem", 2006, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), len(req.ItemIds.ItemIds))

	if returnsNewIDs(req.ReturnNewItemIds) {
		for _, m := range resp.ResponseMessages.Messages {
			if !m.IsSuccess() {
				continue
			}
			items := m.Items.All()
			site.CaptureIfTrue(len(items) > 0, 2070, "MoveItemResponseMessage has no items")
			for _, item := range items {
				site.CaptureIfTrue(item.ItemId != nil && item.ItemId.Id != "", 2070, "moved item has no ItemId")
			}
		}
	}
	return resp, nil
}

func (a *Adapter) SendItem(t *ldtest.T, req *ews.SendItemType) (*ews.BaseResponseMessageType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.SendItem(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "SendItem", 2007, ex, err); err != nil {
		return nil, err
	}
	a.checkMessages(site, resp.StatusMessages(), len(req.ItemIds.ItemIds))
	return resp, nil
}

func (a *Adapter) MarkAllItemsAsRead(t *ldtest.T, req *ews.MarkAllItemsAsReadType) (*ews.BaseResponseMessageType, error) {
	site := a.Site(t)
	resp, ex, err := a.binding.MarkAllItemsAsRead(a.Context(), req, t.DebugLogger())
	if err := a.outcome(site, "MarkAllItemsAsRead", 2008, ex, err); err != nil {
		return nil, err
	}
	messages := resp.StatusMessages()
	a.checkMessages(site, messages, 0)
	site.CaptureIfEqual(req.FolderIds.Len(), len(messages), 2080, "number of response messages")
	return resp, nil
}
