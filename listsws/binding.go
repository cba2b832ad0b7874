package listsws

import (
	"context"
	"encoding/xml"

	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/soap"
)

// ListsBinding sends MS-LISTSWS operations to the Lists service of one SharePoint site.
//
// As with the EWS binding, a SOAP fault is returned as a *soap.Fault error and a malformed
// response as a *soap.SchemaValidationError, and the raw exchange is returned in either case.
type ListsBinding struct {
	client *soap.Client
}

// NewListsBinding creates a binding.
func NewListsBinding(client *soap.Client) *ListsBinding {
	return &ListsBinding{client: client}
}

// Client returns the underlying SOAP client.
func (b *ListsBinding) Client() *soap.Client {
	return b.client
}

func (b *ListsBinding) invoke(
	ctx context.Context,
	operation string,
	request, response interface{},
	logger framework.Logger,
) (*soap.Exchange, error) {
	return b.client.Do(ctx, soap.Call{
		Action:       Namespace + operation,
		Request:      request,
		Response:     response,
		ResponseName: xml.Name{Space: Namespace, Local: operation + "Response"},
	}, logger)
}

func (b *ListsBinding) AddList(ctx context.Context, req *AddList, logger framework.Logger) (
	*AddListResponse, *soap.Exchange, error) {
	var resp AddListResponse
	ex, err := b.invoke(ctx, "AddList", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) DeleteList(ctx context.Context, req *DeleteList, logger framework.Logger) (
	*DeleteListResponse, *soap.Exchange, error) {
	var resp DeleteListResponse
	ex, err := b.invoke(ctx, "DeleteList", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetList(ctx context.Context, req *GetList, logger framework.Logger) (
	*GetListResponse, *soap.Exchange, error) {
	var resp GetListResponse
	ex, err := b.invoke(ctx, "GetList", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetListCollection(ctx context.Context, logger framework.Logger) (
	*GetListCollectionResponse, *soap.Exchange, error) {
	var resp GetListCollectionResponse
	ex, err := b.invoke(ctx, "GetListCollection", &GetListCollection{}, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) UpdateList(ctx context.Context, req *UpdateList, logger framework.Logger) (
	*UpdateListResponse, *soap.Exchange, error) {
	var resp UpdateListResponse
	ex, err := b.invoke(ctx, "UpdateList", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetListItems(ctx context.Context, req *GetListItems, logger framework.Logger) (
	*GetListItemsResponse, *soap.Exchange, error) {
	var resp GetListItemsResponse
	ex, err := b.invoke(ctx, "GetListItems", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) UpdateListItems(ctx context.Context, req *UpdateListItems, logger framework.Logger) (
	*UpdateListItemsResponse, *soap.Exchange, error) {
	var resp UpdateListItemsResponse
	ex, err := b.invoke(ctx, "UpdateListItems", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetListItemChanges(ctx context.Context, req *GetListItemChanges, logger framework.Logger) (
	*GetListItemChangesResponse, *soap.Exchange, error) {
	var resp GetListItemChangesResponse
	ex, err := b.invoke(ctx, "GetListItemChanges", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetListItemChangesSinceToken(ctx context.Context, req *GetListItemChangesSinceToken,
	logger framework.Logger) (*GetListItemChangesSinceTokenResponse, *soap.Exchange, error) {
	var resp GetListItemChangesSinceTokenResponse
	ex, err := b.invoke(ctx, "GetListItemChangesSinceToken", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) AddAttachment(ctx context.Context, req *AddAttachment, logger framework.Logger) (
	*AddAttachmentResponse, *soap.Exchange, error) {
	var resp AddAttachmentResponse
	ex, err := b.invoke(ctx, "AddAttachment", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetAttachmentCollection(ctx context.Context, req *GetAttachmentCollection,
	logger framework.Logger) (*GetAttachmentCollectionResponse, *soap.Exchange, error) {
	var resp GetAttachmentCollectionResponse
	ex, err := b.invoke(ctx, "GetAttachmentCollection", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) DeleteAttachment(ctx context.Context, req *DeleteAttachment, logger framework.Logger) (
	*DeleteAttachmentResponse, *soap.Exchange, error) {
	var resp DeleteAttachmentResponse
	ex, err := b.invoke(ctx, "DeleteAttachment", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) GetListContentTypes(ctx context.Context, req *GetListContentTypes, logger framework.Logger) (
	*GetListContentTypesResponse, *soap.Exchange, error) {
	var resp GetListContentTypesResponse
	ex, err := b.invoke(ctx, "GetListContentTypes", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) CheckOutFile(ctx context.Context, req *CheckOutFile, logger framework.Logger) (
	*CheckOutFileResponse, *soap.Exchange, error) {
	var resp CheckOutFileResponse
	ex, err := b.invoke(ctx, "CheckOutFile", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) UndoCheckOut(ctx context.Context, req *UndoCheckOut, logger framework.Logger) (
	*UndoCheckOutResponse, *soap.Exchange, error) {
	var resp UndoCheckOutResponse
	ex, err := b.invoke(ctx, "UndoCheckOut", req, &resp, logger)
	return &resp, ex, err
}

func (b *ListsBinding) CheckInFile(ctx context.Context, req *CheckInFile, logger framework.Logger) (
	*CheckInFileResponse, *soap.Exchange, error) {
	var resp CheckInFileResponse
	ex, err := b.invoke(ctx, "CheckInFile", req, &resp, logger)
	return &resp, ex, err
}
