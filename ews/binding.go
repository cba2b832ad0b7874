package ews

import (
	"context"
	"encoding/xml"
	"sync"

	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// ExchangeServiceBinding sends EWS operations to one Exchange endpoint.
//
// Every operation returns the decoded response together with the raw exchange. If the server
// answers with a SOAP fault, the error is a *soap.Fault; if the response does not have the
// required shape, the error is a *soap.SchemaValidationError. In both cases the exchange is
// still returned so that callers can inspect or log it.
type ExchangeServiceBinding struct {
	client               *soap.Client
	requestServerVersion string
	serverVersion        *ServerVersionInfo
	lock                 sync.Mutex
}

// NewExchangeServiceBinding creates a binding. If requestServerVersion is not empty, it is sent
// in the RequestServerVersion header of every request.
func NewExchangeServiceBinding(client *soap.Client, requestServerVersion string) *ExchangeServiceBinding {
	return &ExchangeServiceBinding{client: client, requestServerVersion: requestServerVersion}
}

// Client returns the underlying SOAP client.
func (b *ExchangeServiceBinding) Client() *soap.Client {
	return b.client
}

// RequestServerVersion returns the schema version requested in each call.
func (b *ExchangeServiceBinding) RequestServerVersion() string {
	return b.requestServerVersion
}

// ServerVersionInfo returns the ServerVersionInfo header of the most recent response, or nil
// if that response did not have one.
func (b *ExchangeServiceBinding) ServerVersionInfo() *ServerVersionInfo {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.serverVersion == nil {
		return nil
	}
	info := *b.serverVersion
	return &info
}

func (b *ExchangeServiceBinding) invoke(
	ctx context.Context,
	operation string,
	request, response interface{},
	logger framework.Logger,
) (*soap.Exchange, error) {
	var info *ServerVersionInfo
	call := soap.Call{
		Action:          MessagesNamespace + "/" + operation,
		Request:         request,
		Response:        response,
		ResponseName:    xml.Name{Space: MessagesNamespace, Local: operation + "Response"},
		ResponseHeaders: map[string]interface{}{"ServerVersionInfo": &info},
	}
	if b.requestServerVersion != "" {
		call.Headers = []interface{}{RequestServerVersion{Version: b.requestServerVersion}}
	}
	ex, err := b.client.Do(ctx, call, logger)
	if ex != nil && ex.ResponseXML != nil {
		b.lock.Lock()
		b.serverVersion = info
		b.lock.Unlock()
	}
	return ex, err
}

func (b *ExchangeServiceBinding) CopyFolder(ctx context.Context, req *CopyFolderType, logger framework.Logger) (
	*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "CopyFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) CreateFolder(ctx context.Context, req *CreateFolderType, logger framework.Logger) (
	*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "CreateFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) CreateManagedFolder(ctx context.Context, req *CreateManagedFolderRequestType,
	logger framework.Logger) (*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "CreateManagedFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) DeleteFolder(ctx context.Context, req *DeleteFolderType, logger framework.Logger) (
	*BaseResponseMessageType, *soap.Exchange, error) {
	var resp BaseResponseMessageType
	ex, err := b.invoke(ctx, "DeleteFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) EmptyFolder(ctx context.Context, req *EmptyFolderType, logger framework.Logger) (
	*BaseResponseMessageType, *soap.Exchange, error) {
	var resp BaseResponseMessageType
	ex, err := b.invoke(ctx, "EmptyFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) GetFolder(ctx context.Context, req *GetFolderType, logger framework.Logger) (
	*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "GetFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) MoveFolder(ctx context.Context, req *MoveFolderType, logger framework.Logger) (
	*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "MoveFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) UpdateFolder(ctx context.Context, req *UpdateFolderType, logger framework.Logger) (
	*FolderInfoResponseType, *soap.Exchange, error) {
	var resp FolderInfoResponseType
	ex, err := b.invoke(ctx, "UpdateFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) CreateItem(ctx context.Context, req *CreateItemType, logger framework.Logger) (
	*ItemInfoResponseType, *soap.Exchange, error) {
	var resp ItemInfoResponseType
	ex, err := b.invoke(ctx, "CreateItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) GetItem(ctx context.Context, req *GetItemType, logger framework.Logger) (
	*ItemInfoResponseType, *soap.Exchange, error) {
	var resp ItemInfoResponseType
	ex, err := b.invoke(ctx, "GetItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) DeleteItem(ctx context.Context, req *DeleteItemType, logger framework.Logger) (
	*BaseResponseMessageType, *soap.Exchange, error) {
	var resp BaseResponseMessageType
	ex, err := b.invoke(ctx, "DeleteItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) UpdateItem(ctx context.Context, req *UpdateItemType, logger framework.Logger) (
	*UpdateItemResponseType, *soap.Exchange, error) {
	var resp UpdateItemResponseType
	ex, err := b.invoke(ctx, "UpdateItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) CopyItem(ctx context.Context, req *CopyItemType, logger framework.Logger) (
	*ItemInfoResponseType, *soap.Exchange, error) {
	var resp ItemInfoResponseType
	ex, err := b.invoke(ctx, "CopyItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) MoveItem(ctx context.Context, req *MoveItemType, logger framework.Logger) (
	*ItemInfoResponseType, *soap.Exchange, error) {
	var resp ItemInfoResponseType
	ex, err := b.invoke(ctx, "MoveItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) SendItem(ctx context.Context, req *SendItemType, logger framework.Logger) (
	*BaseResponseMessageType, *soap.Exchange, error) {
	var resp BaseResponseMessageType
	ex, err := b.invoke(ctx, "SendItem", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) MarkAllItemsAsRead(ctx context.Context, req *MarkAllItemsAsReadType,
	logger framework.Logger) (*BaseResponseMessageType, *soap.Exchange, error) {
	var resp BaseResponseMessageType
	ex, err := b.invoke(ctx, "MarkAllItemsAsRead", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) FindFolder(ctx context.Context, req *FindFolderType, logger framework.Logger) (
	*FindFolderResponseType, *soap.Exchange, error) {
	var resp FindFolderResponseType
	ex, err := b.invoke(ctx, "FindFolder", req, &resp, logger)
	return &resp, ex, err
}

func (b *ExchangeServiceBinding) FindItem(ctx context.Context, req *FindItemType, logger framework.Logger) (
	*FindItemResponseType, *soap.Exchange, error) {
	var resp FindItemResponseType
	ex, err := b.invoke(ctx, "FindItem", req, &resp, logger)
	return &resp, ex, err
}
