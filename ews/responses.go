package ews

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/msprotocols/protocol-contract-tests/soap"
)

// ResponseMessageType is the part of a response message that every operation shares.
type ResponseMessageType struct {
	XMLName            xml.Name
	ResponseClass      string `xml:"ResponseClass,attr"`
	MessageText        string `xml:"MessageText"`
	ResponseCode       string `xml:"ResponseCode"`
	DescriptiveLinkKey *int   `xml:"DescriptiveLinkKey"`
}

// Message returns the shared part of a response message.
func (m *ResponseMessageType) Message() *ResponseMessageType {
	return m
}

// IsSuccess returns true if ResponseClass is Success.
func (m *ResponseMessageType) IsSuccess() bool {
	return m.ResponseClass == ResponseClassSuccess
}

func (m *ResponseMessageType) String() string {
	s := m.ResponseClass
	if m.ResponseCode != "" {
		s += "/" + m.ResponseCode
	}
	if m.MessageText != "" {
		s += ": " + m.MessageText
	}
	return s
}

func (m *ResponseMessageType) validate(v *soap.ValidationResult, path, elementName string) {
	if elementName != "" && m.XMLName.Local != elementName {
		v.Errorf("%s is a %s element, expected %s", path, m.XMLName.Local, elementName)
	}
	v.RequireOneOf(path+"/@ResponseClass", m.ResponseClass, true,
		ResponseClassSuccess, ResponseClassWarning, ResponseClassError)
	if m.ResponseClass != ResponseClassSuccess && m.ResponseCode == "" {
		v.Warnf("%s has ResponseClass %s but no ResponseCode", path, m.ResponseClass)
	}
}

// FolderInfoResponseMessageType is the response message of the folder operations that return
// folders.
type FolderInfoResponseMessageType struct {
	ResponseMessageType
	Folders *ArrayOfFoldersType `xml:"Folders"`
}

// ItemInfoResponseMessageType is the response message of the item operations that return items.
type ItemInfoResponseMessageType struct {
	ResponseMessageType
	Items *ArrayOfRealItemsType `xml:"Items"`
}

// ConflictResultsType counts the conflicts that UpdateItem found.
type ConflictResultsType struct {
	Count int `xml:"Count"`
}

type UpdateItemResponseMessageType struct {
	ItemInfoResponseMessageType
	ConflictResults *ConflictResultsType `xml:"ConflictResults"`
}

// FindFolderParentType is the RootFolder of a FindFolder response.
type FindFolderParentType struct {
	IndexedPagingOffset     *int                `xml:"IndexedPagingOffset,attr"`
	NumeratorOffset         *int                `xml:"NumeratorOffset,attr"`
	AbsoluteDenominator     *int                `xml:"AbsoluteDenominator,attr"`
	IncludesLastItemInRange *bool               `xml:"IncludesLastItemInRange,attr"`
	TotalItemsInView        *int                `xml:"TotalItemsInView,attr"`
	Folders                 *ArrayOfFoldersType `xml:"Folders"`
}

// FindItemParentType is the RootFolder of a FindItem response.
type FindItemParentType struct {
	IndexedPagingOffset     *int                  `xml:"IndexedPagingOffset,attr"`
	NumeratorOffset         *int                  `xml:"NumeratorOffset,attr"`
	AbsoluteDenominator     *int                  `xml:"AbsoluteDenominator,attr"`
	IncludesLastItemInRange *bool                 `xml:"IncludesLastItemInRange,attr"`
	TotalItemsInView        *int                  `xml:"TotalItemsInView,attr"`
	Items                   *ArrayOfRealItemsType `xml:"Items"`
}

type FindFolderResponseMessageType struct {
	ResponseMessageType
	RootFolder *FindFolderParentType `xml:"RootFolder"`
}

type FindItemResponseMessageType struct {
	ResponseMessageType
	RootFolder *FindItemParentType `xml:"RootFolder"`
}

// The ResponseMessages element holds one response message per requested object. The message
// element names depend on the operation, so they are matched with ",any" and checked by the
// validators instead. encoding/xml does not fill in the XMLName of an embedded struct, so each
// array records the element name of its messages itself.

func (m *ResponseMessageType) setElementName(name xml.Name) {
	m.XMLName = name
}

func decodeResponseMessages[M any, PM interface {
	*M
	setElementName(xml.Name)
}](d *xml.Decoder, messages *[]M) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var m M
			if err := d.DecodeElement(&m, &t); err != nil {
				return err
			}
			PM(&m).setElementName(t.Name)
			*messages = append(*messages, m)
		case xml.EndElement:
			return nil
		}
	}
}

type ArrayOfResponseMessagesType struct {
	Messages []ResponseMessageType `xml:",any"`
}

func (a *ArrayOfResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

type ArrayOfFolderInfoResponseMessagesType struct {
	Messages []FolderInfoResponseMessageType `xml:",any"`
}

func (a *ArrayOfFolderInfoResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

type ArrayOfItemInfoResponseMessagesType struct {
	Messages []ItemInfoResponseMessageType `xml:",any"`
}

func (a *ArrayOfItemInfoResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

type ArrayOfUpdateItemResponseMessagesType struct {
	Messages []UpdateItemResponseMessageType `xml:",any"`
}

func (a *ArrayOfUpdateItemResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

type ArrayOfFindFolderResponseMessagesType struct {
	Messages []FindFolderResponseMessageType `xml:",any"`
}

func (a *ArrayOfFindFolderResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

type ArrayOfFindItemResponseMessagesType struct {
	Messages []FindItemResponseMessageType `xml:",any"`
}

func (a *ArrayOfFindItemResponseMessagesType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeResponseMessages(d, &a.Messages)
}

// BaseResponseMessageType is the response of operations whose messages carry only a status:
// DeleteFolder, EmptyFolder, DeleteItem, SendItem and MarkAllItemsAsRead.
type BaseResponseMessageType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfResponseMessagesType `xml:"ResponseMessages"`
}

// FolderInfoResponseType is the response of CopyFolder, CreateFolder, CreateManagedFolder,
// GetFolder, MoveFolder and UpdateFolder.
type FolderInfoResponseType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfFolderInfoResponseMessagesType `xml:"ResponseMessages"`
}

// ItemInfoResponseType is the response of CreateItem, GetItem, CopyItem and MoveItem.
type ItemInfoResponseType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfItemInfoResponseMessagesType `xml:"ResponseMessages"`
}

type UpdateItemResponseType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfUpdateItemResponseMessagesType `xml:"ResponseMessages"`
}

type FindFolderResponseType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfFindFolderResponseMessagesType `xml:"ResponseMessages"`
}

type FindItemResponseType struct {
	XMLName          xml.Name
	ResponseMessages ArrayOfFindItemResponseMessagesType `xml:"ResponseMessages"`
}

func messageElementName(response xml.Name) string {
	if !strings.HasSuffix(response.Local, "Response") {
		return ""
	}
	return response.Local + "Message"
}

func validateMessageCount(v *soap.ValidationResult, count int) {
	if count == 0 {
		v.Errorf("ResponseMessages must contain at least one response message")
	}
}

func messagePath(i int) string {
	return fmt.Sprintf("ResponseMessages[%d]", i)
}

func validateFolders(v *soap.ValidationResult, path string, folders *ArrayOfFoldersType) {
	for i, f := range folders.All() {
		if f.FolderId != nil {
			v.Require(fmt.Sprintf("%s/Folders[%d]/FolderId/@Id", path, i), f.FolderId.Id)
		}
	}
}

func validateItems(v *soap.ValidationResult, path string, items *ArrayOfRealItemsType) {
	for i, item := range items.All() {
		if item.ItemId != nil {
			v.Require(fmt.Sprintf("%s/Items[%d]/ItemId/@Id", path, i), item.ItemId.Id)
		}
	}
}

func (r *BaseResponseMessageType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		r.ResponseMessages.Messages[i].validate(v, messagePath(i), messageElementName(r.XMLName))
	}
}

func (r *FolderInfoResponseType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i, m := range r.ResponseMessages.Messages {
		m.validate(v, messagePath(i), messageElementName(r.XMLName))
		validateFolders(v, messagePath(i), m.Folders)
	}
}

func (r *ItemInfoResponseType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i, m := range r.ResponseMessages.Messages {
		m.validate(v, messagePath(i), messageElementName(r.XMLName))
		validateItems(v, messagePath(i), m.Items)
	}
}

func (r *UpdateItemResponseType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i, m := range r.ResponseMessages.Messages {
		m.validate(v, messagePath(i), messageElementName(r.XMLName))
		validateItems(v, messagePath(i), m.Items)
	}
}

func (r *FindFolderResponseType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i, m := range r.ResponseMessages.Messages {
		m.validate(v, messagePath(i), messageElementName(r.XMLName))
		if m.RootFolder == nil {
			if m.IsSuccess() {
				v.Errorf("%s has no RootFolder", messagePath(i))
			}
			continue
		}
		validateFolders(v, messagePath(i)+"/RootFolder", m.RootFolder.Folders)
	}
}

func (r *FindItemResponseType) ValidateSchema(v *soap.ValidationResult) {
	validateMessageCount(v, len(r.ResponseMessages.Messages))
	for i, m := range r.ResponseMessages.Messages {
		m.validate(v, messagePath(i), messageElementName(r.XMLName))
		if m.RootFolder == nil {
			if m.IsSuccess() {
				v.Errorf("%s has no RootFolder", messagePath(i))
			}
			continue
		}
		validateItems(v, messagePath(i)+"/RootFolder", m.RootFolder.Items)
	}
}

// StatusMessages returns the shared part of every response message, so that checks that apply
// to all operations can be written once.
func (r *BaseResponseMessageType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i])
	}
	return ret
}

func (r *FolderInfoResponseType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i].ResponseMessageType)
	}
	return ret
}

func (r *ItemInfoResponseType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i].ResponseMessageType)
	}
	return ret
}

func (r *UpdateItemResponseType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i].ResponseMessageType)
	}
	return ret
}

func (r *FindFolderResponseType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i].ResponseMessageType)
	}
	return ret
}

func (r *FindItemResponseType) StatusMessages() []*ResponseMessageType {
	ret := make([]*ResponseMessageType, 0, len(r.ResponseMessages.Messages))
	for i := range r.ResponseMessages.Messages {
		ret = append(ret, &r.ResponseMessages.Messages[i].ResponseMessageType)
	}
	return ret
}

// FaultDetail is the detail of a SOAP fault returned by Exchange, for instance when a request
// fails schema validation on the server.
type FaultDetail struct {
	ResponseCode string `xml:"ResponseCode"`
	Message      string `xml:"Message"`
}
