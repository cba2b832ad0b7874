package listsws

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/soap"

	"github.com/google/uuid"
)

// IsGUID returns true if s is a GUID, with or without braces.
func IsGUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func validateList(v *soap.ValidationResult, path string, list *ListDefinitionCT) {
	if !IsGUID(list.ID) {
		v.Errorf("%s/@ID %q is not a GUID", path, list.ID)
	}
	v.Require(path+"/@Title", list.Title)
	v.Require(path+"/@Name", list.Name)
	v.Require(path+"/@ServerTemplate", list.ServerTemplate)
	v.Require(path+"/@Created", list.Created)
	v.Require(path+"/@Modified", list.Modified)
	v.Require(path+"/@Version", list.Version)
	v.Require(path+"/@Flags", list.Flags)
	v.Require(path+"/@ItemCount", list.ItemCount)
	v.RequireOneOf(path+"/@BaseType", list.BaseType, true, "0", "1", "3", "4", "5")
	for _, attr := range []struct{ name, value string }{
		{"ItemCount", list.ItemCount},
		{"Version", list.Version},
		{"ServerTemplate", list.ServerTemplate},
	} {
		if attr.value != "" {
			if _, err := strconv.Atoi(attr.value); err != nil {
				v.Errorf("%s/@%s %q is not an integer", path, attr.name, attr.value)
			}
		}
	}
}

func validateListSchema(v *soap.ValidationResult, path string, list *ListDefinitionSchema) {
	validateList(v, path, &list.ListDefinitionCT)
	if list.Fields == nil {
		v.Errorf("%s/Fields is required", path)
		return
	}
	for i, f := range list.Fields.Fields {
		v.Require(fmt.Sprintf("%s/Fields/Field[%d]/@Name", path, i), f.Name)
	}
}

func validateRowset(v *soap.ValidationResult, path string, data *RowsetData) {
	if data == nil {
		v.Errorf("%s/data is required", path)
		return
	}
	n, err := strconv.Atoi(data.ItemCount)
	if err != nil {
		v.Errorf("%s/data/@ItemCount %q is not an integer", path, data.ItemCount)
		return
	}
	if n != len(data.Rows) {
		v.Errorf("%s/data/@ItemCount is %d but there are %d rows", path, n, len(data.Rows))
	}
}

type AddListResponse struct {
	List ListDefinitionSchema `xml:"AddListResult>List"`
}

func (r *AddListResponse) ValidateSchema(v *soap.ValidationResult) {
	validateListSchema(v, "AddListResult/List", &r.List)
}

type DeleteListResponse struct{}

type GetListResponse struct {
	List ListDefinitionSchema `xml:"GetListResult>List"`
}

func (r *GetListResponse) ValidateSchema(v *soap.ValidationResult) {
	validateListSchema(v, "GetListResult/List", &r.List)
}

type GetListCollectionResponse struct {
	Lists []ListDefinitionCT `xml:"GetListCollectionResult>Lists>List"`
}

func (r *GetListCollectionResponse) ValidateSchema(v *soap.ValidationResult) {
	for i := range r.Lists {
		validateList(v, fmt.Sprintf("GetListCollectionResult/Lists/List[%d]", i), &r.Lists[i])
	}
}

// Find returns the list with a given title.
func (r *GetListCollectionResponse) Find(title string) (ListDefinitionCT, bool) {
	for _, l := range r.Lists {
		if l.Title == title {
			return l, true
		}
	}
	return ListDefinitionCT{}, false
}

// UpdateListResults is the Results element of UpdateList.
type UpdateListResults struct {
	NewFields      *FieldMethods         `xml:"NewFields"`
	UpdateFields   *FieldMethods         `xml:"UpdateFields"`
	DeleteFields   *FieldMethods         `xml:"DeleteFields"`
	ListProperties *ListDefinitionSchema `xml:"ListProperties"`
}

type UpdateListResponse struct {
	Results UpdateListResults `xml:"UpdateListResult>Results"`
}

func (r *UpdateListResponse) ValidateSchema(v *soap.ValidationResult) {
	if r.Results.ListProperties == nil {
		v.Errorf("UpdateListResult/Results/ListProperties is required")
		return
	}
	validateList(v, "UpdateListResult/Results/ListProperties", &r.Results.ListProperties.ListDefinitionCT)
	for _, group := range []struct {
		name    string
		methods *FieldMethods
	}{
		{"NewFields", r.Results.NewFields},
		{"UpdateFields", r.Results.UpdateFields},
		{"DeleteFields", r.Results.DeleteFields},
	} {
		if group.methods == nil {
			continue
		}
		for i, m := range group.methods.Methods {
			v.Require(fmt.Sprintf("UpdateListResult/Results/%s/Method[%d]/@ID", group.name, i), m.ID)
		}
	}
}

// ListItems is the listitems element that holds list item query results.
type ListItems struct {
	TimeStamp                   string      `xml:"TimeStamp,attr"`
	MinTimeBetweenSyncs         string      `xml:"MinTimeBetweenSyncs,attr"`
	RecommendedTimeBetweenSyncs string      `xml:"RecommendedTimeBetweenSyncs,attr"`
	MaxBulkDocumentSyncSize     string      `xml:"MaxBulkDocumentSyncSize,attr"`
	AlternateUrls               string      `xml:"AlternateUrls,attr"`
	EffectivePermMask           string      `xml:"EffectivePermMask,attr"`
	Changes                     *Changes    `xml:"Changes"`
	Data                        *RowsetData `xml:"data"`
}

type GetListItemsResponse struct {
	ListItems ListItems `xml:"GetListItemsResult>listitems"`
}

func (r *GetListItemsResponse) ValidateSchema(v *soap.ValidationResult) {
	validateRowset(v, "GetListItemsResult/listitems", r.ListItems.Data)
}

// Rows returns the returned items.
func (r *GetListItemsResponse) Rows() []Row {
	if r.ListItems.Data == nil {
		return nil
	}
	return r.ListItems.Data.Rows
}

// UpdateResult is the outcome of one Method of an UpdateListItems batch.
type UpdateResult struct {
	ID        string `xml:"ID,attr"`
	ErrorCode string `xml:"ErrorCode"`
	ErrorText string `xml:"ErrorText"`
	Row       *Row   `xml:"row"`
}

// MethodID returns the method number and command of the result, from an ID such as "1,New".
func (r UpdateResult) MethodID() (string, string) {
	if pos := strings.Index(r.ID, ","); pos >= 0 {
		return r.ID[:pos], r.ID[pos+1:]
	}
	return r.ID, ""
}

// Succeeded returns true if ErrorCode is zero.
func (r UpdateResult) Succeeded() bool {
	return r.ErrorCode == "0x00000000"
}

type UpdateListItemsResponse struct {
	Results []UpdateResult `xml:"UpdateListItemsResult>Results>Result"`
}

func (r *UpdateListItemsResponse) ValidateSchema(v *soap.ValidationResult) {
	for i, result := range r.Results {
		path := fmt.Sprintf("UpdateListItemsResult/Results/Result[%d]", i)
		v.Require(path+"/@ID", result.ID)
		v.Require(path+"/ErrorCode", result.ErrorCode)
	}
}

type GetListItemChangesResponse struct {
	ListItems ListItems `xml:"GetListItemChangesResult>listitems"`
}

func (r *GetListItemChangesResponse) ValidateSchema(v *soap.ValidationResult) {
	v.Require("GetListItemChangesResult/listitems/@TimeStamp", r.ListItems.TimeStamp)
	validateRowset(v, "GetListItemChangesResult/listitems", r.ListItems.Data)
}

type GetListItemChangesSinceTokenResponse struct {
	ListItems ListItems `xml:"GetListItemChangesSinceTokenResult>listitems"`
}

func (r *GetListItemChangesSinceTokenResponse) ValidateSchema(v *soap.ValidationResult) {
	path := "GetListItemChangesSinceTokenResult/listitems"
	if r.ListItems.Changes == nil {
		v.Errorf("%s/Changes is required", path)
	} else if r.ListItems.Changes.List != nil {
		validateListSchema(v, path+"/Changes/List", r.ListItems.Changes.List)
	}
	validateRowset(v, path, r.ListItems.Data)
}

// ChangeToken returns the LastChangeToken of the result.
func (r *GetListItemChangesSinceTokenResponse) ChangeToken() string {
	if r.ListItems.Changes == nil {
		return ""
	}
	return r.ListItems.Changes.LastChangeToken
}

// Rows returns the changed items.
func (r *GetListItemChangesSinceTokenResponse) Rows() []Row {
	if r.ListItems.Data == nil {
		return nil
	}
	return r.ListItems.Data.Rows
}

type AddAttachmentResponse struct {
	URL string `xml:"AddAttachmentResult"`
}

func (r *AddAttachmentResponse) ValidateSchema(v *soap.ValidationResult) {
	v.Require("AddAttachmentResult", r.URL)
}

type GetAttachmentCollectionResponse struct {
	Attachments []string `xml:"GetAttachmentCollectionResult>Attachments>Attachment"`
}

type DeleteAttachmentResponse struct{}

// ContentTypeCollection is the ContentTypes element of GetListContentTypes.
type ContentTypeCollection struct {
	ContentTypeOrder string        `xml:"ContentTypeOrder,attr"`
	ContentTypes     []ContentType `xml:"ContentType"`
}

type GetListContentTypesResponse struct {
	ContentTypes ContentTypeCollection `xml:"GetListContentTypesResult>ContentTypes"`
}

func (r *GetListContentTypesResponse) ValidateSchema(v *soap.ValidationResult) {
	for i, ct := range r.ContentTypes.ContentTypes {
		path := fmt.Sprintf("GetListContentTypesResult/ContentTypes/ContentType[%d]", i)
		v.Require(path+"/@Name", ct.Name)
		v.Require(path+"/@ID", ct.ID)
	}
}

type CheckOutFileResponse struct {
	Result bool `xml:"CheckOutFileResult"`
}

type UndoCheckOutResponse struct {
	Result bool `xml:"UndoCheckOutResult"`
}

type CheckInFileResponse struct {
	Result bool `xml:"CheckInFileResult"`
}
