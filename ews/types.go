// Package ews contains the Exchange Web Services message types used by the MS-OXWSFOLD,
// MS-OXWSCORE and MS-OXWSSRCH test suites, and an ExchangeServiceBinding that sends them.
//
// The types cover the parts of the EWS schema that the suites exercise. Requests are marshaled
// with the element namespaces that the schema requires: each struct tag names a namespace only
// where the element's namespace differs from its parent's, and the same types decode responses
// that use any prefixes for those namespaces.
package ews

const (
	// MessagesNamespace is the namespace of the operation request and response elements.
	MessagesNamespace = "http://schemas.microsoft.com/exchange/services/2006/messages"

	// TypesNamespace is the namespace of the data types used inside messages.
	TypesNamespace = "http://schemas.microsoft.com/exchange/services/2006/types"
)

// Response classes.
const (
	ResponseClassSuccess = "Success"
	ResponseClassWarning = "Warning"
	ResponseClassError   = "Error"
)

// A few of the response codes that the suites look for.
const (
	ResponseCodeNoError                 = "NoError"
	ResponseCodeErrorItemNotFound       = "ErrorItemNotFound"
	ResponseCodeErrorFolderNotFound     = "ErrorFolderNotFound"
	ResponseCodeErrorFolderExists       = "ErrorFolderExists"
	ResponseCodeErrorInvalidIdMalformed = "ErrorInvalidIdMalformed"
)

// Distinguished folder names.
const (
	FolderInbox        = "inbox"
	FolderDrafts       = "drafts"
	FolderSentItems    = "sentitems"
	FolderDeletedItems = "deleteditems"
	FolderCalendar     = "calendar"
	FolderContacts     = "contacts"
	FolderTasks        = "tasks"
	FolderRoot         = "msgfolderroot"
	FolderSearch       = "searchfolders"
)

// Values of the DeleteType attribute.
const (
	DeleteTypeHardDelete         = "HardDelete"
	DeleteTypeSoftDelete         = "SoftDelete"
	DeleteTypeMoveToDeletedItems = "MoveToDeletedItems"
)

// Values of the BaseShape element.
const (
	ShapeIdOnly        = "IdOnly"
	ShapeDefault       = "Default"
	ShapeAllProperties = "AllProperties"
)

// Values of the MessageDisposition attribute.
const (
	DispositionSaveOnly        = "SaveOnly"
	DispositionSendOnly        = "SendOnly"
	DispositionSendAndSaveCopy = "SendAndSaveCopy"
)

// Values of the Traversal attribute.
const (
	TraversalShallow     = "Shallow"
	TraversalDeep        = "Deep"
	TraversalSoftDeleted = "SoftDeleted"
	TraversalAssociated  = "Associated"
)

// FolderIdType identifies a folder by its store ID.
type FolderIdType struct {
	Id        string `xml:"Id,attr"`
	ChangeKey string `xml:"ChangeKey,attr,omitempty"`
}

// EmailAddressType identifies a mailbox, for instance in DistinguishedFolderIdType.
type EmailAddressType struct {
	Name         string `xml:"Name,omitempty"`
	EmailAddress string `xml:"EmailAddress,omitempty"`
	RoutingType  string `xml:"RoutingType,omitempty"`
	MailboxType  string `xml:"MailboxType,omitempty"`
}

// DistinguishedFolderIdType identifies a well-known folder such as the inbox.
type DistinguishedFolderIdType struct {
	Id        string            `xml:"Id,attr"`
	ChangeKey string            `xml:"ChangeKey,attr,omitempty"`
	Mailbox   *EmailAddressType `xml:"Mailbox,omitempty"`
}

// TargetFolderIdType is a choice of FolderId or DistinguishedFolderId.
type TargetFolderIdType struct {
	FolderId              *FolderIdType              `xml:"http://schemas.microsoft.com/exchange/services/2006/types FolderId,omitempty"`
	DistinguishedFolderId *DistinguishedFolderIdType `xml:"http://schemas.microsoft.com/exchange/services/2006/types DistinguishedFolderId,omitempty"`
}

// TargetFolder returns a TargetFolderIdType for a folder ID.
func TargetFolder(id FolderIdType) TargetFolderIdType {
	return TargetFolderIdType{FolderId: &id}
}

// TargetDistinguishedFolder returns a TargetFolderIdType for a distinguished folder.
func TargetDistinguishedFolder(name string) TargetFolderIdType {
	return TargetFolderIdType{DistinguishedFolderId: &DistinguishedFolderIdType{Id: name}}
}

// NonEmptyArrayOfBaseFolderIdsType is a list of folder IDs of either kind.
type NonEmptyArrayOfBaseFolderIdsType struct {
	FolderIds              []FolderIdType              `xml:"http://schemas.microsoft.com/exchange/services/2006/types FolderId"`
	DistinguishedFolderIds []DistinguishedFolderIdType `xml:"http://schemas.microsoft.com/exchange/services/2006/types DistinguishedFolderId"`
}

// FolderIds builds a NonEmptyArrayOfBaseFolderIdsType from folder IDs.
func FolderIds(ids ...FolderIdType) NonEmptyArrayOfBaseFolderIdsType {
	return NonEmptyArrayOfBaseFolderIdsType{FolderIds: ids}
}

// DistinguishedFolderIds builds a NonEmptyArrayOfBaseFolderIdsType from distinguished folder
// names.
func DistinguishedFolderIds(names ...string) NonEmptyArrayOfBaseFolderIdsType {
	var ret NonEmptyArrayOfBaseFolderIdsType
	for _, n := range names {
		ret.DistinguishedFolderIds = append(ret.DistinguishedFolderIds, DistinguishedFolderIdType{Id: n})
	}
	return ret
}

// Len returns the number of IDs of both kinds.
func (a NonEmptyArrayOfBaseFolderIdsType) Len() int {
	return len(a.FolderIds) + len(a.DistinguishedFolderIds)
}

// ItemIdType identifies an item.
type ItemIdType struct {
	Id        string `xml:"Id,attr"`
	ChangeKey string `xml:"ChangeKey,attr,omitempty"`
}

// NonEmptyArrayOfBaseItemIdsType is a list of item IDs.
type NonEmptyArrayOfBaseItemIdsType struct {
	ItemIds []ItemIdType `xml:"http://schemas.microsoft.com/exchange/services/2006/types ItemId"`
}

// ItemIds builds a NonEmptyArrayOfBaseItemIdsType.
func ItemIds(ids ...ItemIdType) NonEmptyArrayOfBaseItemIdsType {
	return NonEmptyArrayOfBaseItemIdsType{ItemIds: ids}
}

// PathToUnindexedFieldType names a property, such as "folder:DisplayName".
type PathToUnindexedFieldType struct {
	FieldURI string `xml:"FieldURI,attr"`
}

// NonEmptyArrayOfPathsToElementType lists additional properties to return.
type NonEmptyArrayOfPathsToElementType struct {
	FieldURIs []PathToUnindexedFieldType `xml:"FieldURI"`
}

// FolderResponseShapeType selects the folder properties that a response includes.
type FolderResponseShapeType struct {
	BaseShape            string                             `xml:"http://schemas.microsoft.com/exchange/services/2006/types BaseShape"`
	AdditionalProperties *NonEmptyArrayOfPathsToElementType `xml:"http://schemas.microsoft.com/exchange/services/2006/types AdditionalProperties,omitempty"`
}

// ItemResponseShapeType selects the item properties that a response includes.
type ItemResponseShapeType struct {
	BaseShape            string                             `xml:"http://schemas.microsoft.com/exchange/services/2006/types BaseShape"`
	IncludeMimeContent   *bool                              `xml:"http://schemas.microsoft.com/exchange/services/2006/types IncludeMimeContent,omitempty"`
	BodyType             string                             `xml:"http://schemas.microsoft.com/exchange/services/2006/types BodyType,omitempty"`
	AdditionalProperties *NonEmptyArrayOfPathsToElementType `xml:"http://schemas.microsoft.com/exchange/services/2006/types AdditionalProperties,omitempty"`
}

// ManagedFolderInformationType describes a managed custom folder.
type ManagedFolderInformationType struct {
	CanDelete            *bool  `xml:"CanDelete,omitempty"`
	CanRenameOrMove      *bool  `xml:"CanRenameOrMove,omitempty"`
	MustDisplayComment   *bool  `xml:"MustDisplayComment,omitempty"`
	HasQuota             *bool  `xml:"HasQuota,omitempty"`
	IsManagedFoldersRoot *bool  `xml:"IsManagedFoldersRoot,omitempty"`
	ManagedFolderId      string `xml:"ManagedFolderId,omitempty"`
	Comment              string `xml:"Comment,omitempty"`
	StorageQuota         *int   `xml:"StorageQuota,omitempty"`
	FolderSize           *int   `xml:"FolderSize,omitempty"`
	HomePage             string `xml:"HomePage,omitempty"`
}

// EffectiveRightsType lists what the caller may do with a folder or item.
type EffectiveRightsType struct {
	CreateAssociated bool `xml:"CreateAssociated"`
	CreateContents   bool `xml:"CreateContents"`
	CreateHierarchy  bool `xml:"CreateHierarchy"`
	Delete           bool `xml:"Delete"`
	Modify           bool `xml:"Modify"`
	Read             bool `xml:"Read"`
}

// BaseFolderType has the properties common to all kinds of folder.
type BaseFolderType struct {
	FolderId                 *FolderIdType                 `xml:"FolderId,omitempty"`
	ParentFolderId           *FolderIdType                 `xml:"ParentFolderId,omitempty"`
	FolderClass              string                        `xml:"FolderClass,omitempty"`
	DisplayName              string                        `xml:"DisplayName,omitempty"`
	TotalCount               *int                          `xml:"TotalCount,omitempty"`
	ChildFolderCount         *int                          `xml:"ChildFolderCount,omitempty"`
	ManagedFolderInformation *ManagedFolderInformationType `xml:"ManagedFolderInformation,omitempty"`
	EffectiveRights          *EffectiveRightsType          `xml:"EffectiveRights,omitempty"`
}

// Base returns the common properties. It lets code handle every kind of folder the same way.
func (f *BaseFolderType) Base() *BaseFolderType {
	return f
}

// FolderType is a generic mail folder.
type FolderType struct {
	BaseFolderType
	UnreadCount *int `xml:"UnreadCount,omitempty"`
}

// CalendarFolderType is a calendar folder.
type CalendarFolderType struct {
	BaseFolderType
}

// ContactsFolderType is a contacts folder.
type ContactsFolderType struct {
	BaseFolderType
}

// SearchParametersType defines the contents of a search folder.
type SearchParametersType struct {
	Traversal     string                            `xml:"Traversal,attr,omitempty"`
	Restriction   *SearchExpressionType             `xml:"Restriction,omitempty"`
	BaseFolderIds *NonEmptyArrayOfBaseFolderIdsType `xml:"BaseFolderIds,omitempty"`
}

// SearchFolderType is a search folder.
type SearchFolderType struct {
	BaseFolderType
	UnreadCount      *int                  `xml:"UnreadCount,omitempty"`
	SearchParameters *SearchParametersType `xml:"SearchParameters,omitempty"`
}

// TasksFolderType is a tasks folder.
type TasksFolderType struct {
	BaseFolderType
	UnreadCount *int `xml:"UnreadCount,omitempty"`
}

// ArrayOfFoldersType holds folders of every kind, each under its own element name.
type ArrayOfFoldersType struct {
	Folders         []FolderType         `xml:"http://schemas.microsoft.com/exchange/services/2006/types Folder"`
	CalendarFolders []CalendarFolderType `xml:"http://schemas.microsoft.com/exchange/services/2006/types CalendarFolder"`
	ContactsFolders []ContactsFolderType `xml:"http://schemas.microsoft.com/exchange/services/2006/types ContactsFolder"`
	SearchFolders   []SearchFolderType   `xml:"http://schemas.microsoft.com/exchange/services/2006/types SearchFolder"`
	TasksFolders    []TasksFolderType    `xml:"http://schemas.microsoft.com/exchange/services/2006/types TasksFolder"`
}

// All returns the common properties of every folder, in the order of the element kinds.
func (a *ArrayOfFoldersType) All() []*BaseFolderType {
	if a == nil {
		return nil
	}
	var ret []*BaseFolderType
	for i := range a.Folders {
		ret = append(ret, &a.Folders[i].BaseFolderType)
	}
	for i := range a.CalendarFolders {
		ret = append(ret, &a.CalendarFolders[i].BaseFolderType)
	}
	for i := range a.ContactsFolders {
		ret = append(ret, &a.ContactsFolders[i].BaseFolderType)
	}
	for i := range a.SearchFolders {
		ret = append(ret, &a.SearchFolders[i].BaseFolderType)
	}
	for i := range a.TasksFolders {
		ret = append(ret, &a.TasksFolders[i].BaseFolderType)
	}
	return ret
}

// Len returns the number of folders of all kinds.
func (a *ArrayOfFoldersType) Len() int {
	return len(a.All())
}

// BodyType is the body of an item.
type BodyType struct {
	BodyType string `xml:"BodyType,attr"`
	Value    string `xml:",chardata"`
}

// ArrayOfStringsType is a list of strings, such as item categories.
type ArrayOfStringsType struct {
	Strings []string `xml:"String"`
}

// SingleRecipientType wraps one mailbox.
type SingleRecipientType struct {
	Mailbox EmailAddressType `xml:"Mailbox"`
}

// ArrayOfRecipientsType is a list of mailboxes.
type ArrayOfRecipientsType struct {
	Mailboxes []EmailAddressType `xml:"Mailbox"`
}

// ItemType has the properties of a generic item. The fields are in schema order.
type ItemType struct {
	ItemId           *ItemIdType         `xml:"ItemId,omitempty"`
	ParentFolderId   *FolderIdType       `xml:"ParentFolderId,omitempty"`
	ItemClass        string              `xml:"ItemClass,omitempty"`
	Subject          string              `xml:"Subject,omitempty"`
	Sensitivity      string              `xml:"Sensitivity,omitempty"`
	Body             *BodyType           `xml:"Body,omitempty"`
	DateTimeReceived string              `xml:"DateTimeReceived,omitempty"`
	Size             *int                `xml:"Size,omitempty"`
	Categories       *ArrayOfStringsType `xml:"Categories,omitempty"`
	Importance       string              `xml:"Importance,omitempty"`
	IsSubmitted      *bool               `xml:"IsSubmitted,omitempty"`
	IsDraft          *bool               `xml:"IsDraft,omitempty"`
	DateTimeSent     string              `xml:"DateTimeSent,omitempty"`
	DateTimeCreated  string              `xml:"DateTimeCreated,omitempty"`
	HasAttachments   *bool               `xml:"HasAttachments,omitempty"`
	LastModifiedTime string              `xml:"LastModifiedTime,omitempty"`
}

// Base returns the generic item properties.
func (i *ItemType) Base() *ItemType {
	return i
}

// MessageType is an e-mail message.
type MessageType struct {
	ItemType
	Sender                 *SingleRecipientType   `xml:"Sender,omitempty"`
	ToRecipients           *ArrayOfRecipientsType `xml:"ToRecipients,omitempty"`
	CcRecipients           *ArrayOfRecipientsType `xml:"CcRecipients,omitempty"`
	IsReadReceiptRequested *bool                  `xml:"IsReadReceiptRequested,omitempty"`
	From                   *SingleRecipientType   `xml:"From,omitempty"`
	InternetMessageId      string                 `xml:"InternetMessageId,omitempty"`
	IsRead                 *bool                  `xml:"IsRead,omitempty"`
}

// ArrayOfRealItemsType holds items of the kinds that the suites create.
type ArrayOfRealItemsType struct {
	Items    []ItemType    `xml:"http://schemas.microsoft.com/exchange/services/2006/types Item"`
	Messages []MessageType `xml:"http://schemas.microsoft.com/exchange/services/2006/types Message"`
}

// All returns the generic properties of every item.
func (a *ArrayOfRealItemsType) All() []*ItemType {
	if a == nil {
		return nil
	}
	var ret []*ItemType
	for i := range a.Items {
		ret = append(ret, &a.Items[i])
	}
	for i := range a.Messages {
		ret = append(ret, &a.Messages[i].ItemType)
	}
	return ret
}

// Len returns the number of items of all kinds.
func (a *ArrayOfRealItemsType) Len() int {
	return len(a.All())
}

// ConstantValueType is a literal operand in a restriction.
type ConstantValueType struct {
	Value string `xml:"Value,attr"`
}

// FieldURIOrConstantType is the right-hand operand of a comparison.
type FieldURIOrConstantType struct {
	Constant *ConstantValueType        `xml:"Constant,omitempty"`
	FieldURI *PathToUnindexedFieldType `xml:"FieldURI,omitempty"`
}

// TwoOperandExpressionType is a comparison such as IsEqualTo.
type TwoOperandExpressionType struct {
	FieldURI           PathToUnindexedFieldType `xml:"FieldURI"`
	FieldURIOrConstant FieldURIOrConstantType   `xml:"FieldURIOrConstant"`
}

// ContainsExpressionType is a substring or prefix match.
type ContainsExpressionType struct {
	ContainmentMode       string                   `xml:"ContainmentMode,attr,omitempty"`
	ContainmentComparison string                   `xml:"ContainmentComparison,attr,omitempty"`
	FieldURI              PathToUnindexedFieldType `xml:"FieldURI"`
	Constant              ConstantValueType        `xml:"Constant"`
}

// ExistsType matches items that have a property.
type ExistsType struct {
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
}

// SearchExpressionType is one node of a restriction. Exactly one field is set.
type SearchExpressionType struct {
	IsEqualTo    *TwoOperandExpressionType `xml:"IsEqualTo,omitempty"`
	IsNotEqualTo *TwoOperandExpressionType `xml:"IsNotEqualTo,omitempty"`
	Contains     *ContainsExpressionType   `xml:"Contains,omitempty"`
	Exists       *ExistsType               `xml:"Exists,omitempty"`
	And          *AndType                  `xml:"And,omitempty"`
}

// AndType matches when all of its operands match.
type AndType struct {
	IsEqualTo []TwoOperandExpressionType `xml:"IsEqualTo"`
	Contains  []ContainsExpressionType   `xml:"Contains"`
	Exists    []ExistsType               `xml:"Exists"`
}

// RestrictionType is the Restriction element of FindFolder and FindItem. Its single child is in
// the types namespace while the element itself is in the messages namespace.
type RestrictionType struct {
	IsEqualTo    *TwoOperandExpressionType `xml:"http://schemas.microsoft.com/exchange/services/2006/types IsEqualTo,omitempty"`
	IsNotEqualTo *TwoOperandExpressionType `xml:"http://schemas.microsoft.com/exchange/services/2006/types IsNotEqualTo,omitempty"`
	Contains     *ContainsExpressionType   `xml:"http://schemas.microsoft.com/exchange/services/2006/types Contains,omitempty"`
	Exists       *ExistsType               `xml:"http://schemas.microsoft.com/exchange/services/2006/types Exists,omitempty"`
	And          *AndType                  `xml:"http://schemas.microsoft.com/exchange/services/2006/types And,omitempty"`
}

// IsEqualTo builds a restriction that compares a property with a constant.
func IsEqualTo(fieldURI, value string) *RestrictionType {
	return &RestrictionType{IsEqualTo: &TwoOperandExpressionType{
		FieldURI:           PathToUnindexedFieldType{FieldURI: fieldURI},
		FieldURIOrConstant: FieldURIOrConstantType{Constant: &ConstantValueType{Value: value}},
	}}
}

// ContainsSubstring builds a case-insensitive substring restriction.
func ContainsSubstring(fieldURI, value string) *RestrictionType {
	return &RestrictionType{Contains: &ContainsExpressionType{
		ContainmentMode:       "Substring",
		ContainmentComparison: "IgnoreCase",
		FieldURI:              PathToUnindexedFieldType{FieldURI: fieldURI},
		Constant:              ConstantValueType{Value: value},
	}}
}

// IndexedPageViewType requests one page of results.
type IndexedPageViewType struct {
	MaxEntriesReturned *int   `xml:"MaxEntriesReturned,attr,omitempty"`
	Offset             int    `xml:"Offset,attr"`
	BasePoint          string `xml:"BasePoint,attr"`
}

// IndexedPage builds a view that starts at offset from the beginning.
func IndexedPage(offset, max int) *IndexedPageViewType {
	return &IndexedPageViewType{MaxEntriesReturned: &max, Offset: offset, BasePoint: "Beginning"}
}

// FieldOrderType is one sort key.
type FieldOrderType struct {
	Order    string                   `xml:"Order,attr"`
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
}

// NonEmptyArrayOfFieldOrdersType is the SortOrder of FindItem.
type NonEmptyArrayOfFieldOrdersType struct {
	FieldOrders []FieldOrderType `xml:"http://schemas.microsoft.com/exchange/services/2006/types FieldOrder"`
}

// SetFolderFieldType sets one property of a folder.
type SetFolderFieldType struct {
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
	Folder   *FolderType              `xml:"Folder,omitempty"`
}

type DeleteFolderFieldType struct {
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
}

// NonEmptyArrayOfFolderChangeDescriptionsType lists the updates of one FolderChange.
type NonEmptyArrayOfFolderChangeDescriptionsType struct {
	SetFolderFields    []SetFolderFieldType    `xml:"SetFolderField"`
	DeleteFolderFields []DeleteFolderFieldType `xml:"DeleteFolderField"`
}

// FolderChangeType is the set of updates for one folder.
type FolderChangeType struct {
	FolderId              *FolderIdType                               `xml:"FolderId,omitempty"`
	DistinguishedFolderId *DistinguishedFolderIdType                  `xml:"DistinguishedFolderId,omitempty"`
	Updates               NonEmptyArrayOfFolderChangeDescriptionsType `xml:"Updates"`
}

// NonEmptyArrayOfFolderChangesType is the FolderChanges element of UpdateFolder.
type NonEmptyArrayOfFolderChangesType struct {
	FolderChanges []FolderChangeType `xml:"http://schemas.microsoft.com/exchange/services/2006/types FolderChange"`
}

// SetItemFieldType sets one property of an item.
type SetItemFieldType struct {
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
	Item     *ItemType                `xml:"Item,omitempty"`
	Message  *MessageType             `xml:"Message,omitempty"`
}

type DeleteItemFieldType struct {
	FieldURI PathToUnindexedFieldType `xml:"FieldURI"`
}

// NonEmptyArrayOfItemChangeDescriptionsType lists the updates of one ItemChange.
type NonEmptyArrayOfItemChangeDescriptionsType struct {
	SetItemFields    []SetItemFieldType    `xml:"SetItemField"`
	DeleteItemFields []DeleteItemFieldType `xml:"DeleteItemField"`
}

// ItemChangeType is the set of updates for one item.
type ItemChangeType struct {
	ItemId  ItemIdType                                `xml:"ItemId"`
	Updates NonEmptyArrayOfItemChangeDescriptionsType `xml:"Updates"`
}

// NonEmptyArrayOfItemChangesType is the ItemChanges element of UpdateItem.
type NonEmptyArrayOfItemChangesType struct {
	ItemChanges []ItemChangeType `xml:"http://schemas.microsoft.com/exchange/services/2006/types ItemChange"`
}

// RequestServerVersion is the SOAP header that selects the schema version the server uses.
type RequestServerVersion struct {
	XMLName struct{} `xml:"http://schemas.microsoft.com/exchange/services/2006/types RequestServerVersion"`
	Version string   `xml:"Version,attr"`
}

// ServerVersionInfo is the SOAP header in which the server describes its version.
type ServerVersionInfo struct {
	MajorVersion     int    `xml:"MajorVersion,attr"`
	MinorVersion     int    `xml:"MinorVersion,attr"`
	MajorBuildNumber int    `xml:"MajorBuildNumber,attr"`
	MinorBuildNumber int    `xml:"MinorBuildNumber,attr"`
	Version          string `xml:"Version,attr"`
}
