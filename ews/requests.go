package ews

// Folder operations.

type GetFolderType struct {
	XMLName     struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages GetFolder"`
	FolderShape FolderResponseShapeType          `xml:"FolderShape"`
	FolderIds   NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

type CreateFolderType struct {
	XMLName        struct{}           `xml:"http://schemas.microsoft.com/exchange/services/2006/messages CreateFolder"`
	ParentFolderId TargetFolderIdType `xml:"ParentFolderId"`
	Folders        ArrayOfFoldersType `xml:"Folders"`
}

// ArrayOfFolderNamesType lists the names of managed folders to add to a mailbox.
type ArrayOfFolderNamesType struct {
	FolderNames []string `xml:"http://schemas.microsoft.com/exchange/services/2006/types FolderName"`
}

type CreateManagedFolderRequestType struct {
	XMLName     struct{}               `xml:"http://schemas.microsoft.com/exchange/services/2006/messages CreateManagedFolder"`
	FolderNames ArrayOfFolderNamesType `xml:"FolderNames"`
}

type DeleteFolderType struct {
	XMLName    struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages DeleteFolder"`
	DeleteType string                           `xml:"DeleteType,attr"`
	FolderIds  NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

type EmptyFolderType struct {
	XMLName          struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages EmptyFolder"`
	DeleteType       string                           `xml:"DeleteType,attr"`
	DeleteSubFolders bool                             `xml:"DeleteSubFolders,attr"`
	FolderIds        NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

type CopyFolderType struct {
	XMLName    struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages CopyFolder"`
	ToFolderId TargetFolderIdType               `xml:"ToFolderId"`
	FolderIds  NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

type MoveFolderType struct {
	XMLName    struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages MoveFolder"`
	ToFolderId TargetFolderIdType               `xml:"ToFolderId"`
	FolderIds  NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

type UpdateFolderType struct {
	XMLName       struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages UpdateFolder"`
	FolderChanges NonEmptyArrayOfFolderChangesType `xml:"FolderChanges"`
}

// Item operations.

type CreateItemType struct {
	XMLName                struct{}             `xml:"http://schemas.microsoft.com/exchange/services/2006/messages CreateItem"`
	MessageDisposition     string               `xml:"MessageDisposition,attr,omitempty"`
	SendMeetingInvitations string               `xml:"SendMeetingInvitations,attr,omitempty"`
	SavedItemFolderId      *TargetFolderIdType  `xml:"SavedItemFolderId,omitempty"`
	Items                  ArrayOfRealItemsType `xml:"Items"`
}

type GetItemType struct {
	XMLName   struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages GetItem"`
	ItemShape ItemResponseShapeType          `xml:"ItemShape"`
	ItemIds   NonEmptyArrayOfBaseItemIdsType `xml:"ItemIds"`
}

type DeleteItemType struct {
	XMLName                  struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages DeleteItem"`
	DeleteType               string                         `xml:"DeleteType,attr"`
	SendMeetingCancellations string                         `xml:"SendMeetingCancellations,attr,omitempty"`
	AffectedTaskOccurrences  string                         `xml:"AffectedTaskOccurrences,attr,omitempty"`
	ItemIds                  NonEmptyArrayOfBaseItemIdsType `xml:"ItemIds"`
}

type UpdateItemType struct {
	XMLName            struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages UpdateItem"`
	ConflictResolution string                         `xml:"ConflictResolution,attr"`
	MessageDisposition string                         `xml:"MessageDisposition,attr,omitempty"`
	SavedItemFolderId  *TargetFolderIdType            `xml:"SavedItemFolderId,omitempty"`
	ItemChanges        NonEmptyArrayOfItemChangesType `xml:"ItemChanges"`
}

type CopyItemType struct {
	XMLName          struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages CopyItem"`
	ToFolderId       TargetFolderIdType             `xml:"ToFolderId"`
	ItemIds          NonEmptyArrayOfBaseItemIdsType `xml:"ItemIds"`
	ReturnNewItemIds *bool                          `xml:"ReturnNewItemIds,omitempty"`
}

type MoveItemType struct {
	XMLName          struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages MoveItem"`
	ToFolderId       TargetFolderIdType             `xml:"ToFolderId"`
	ItemIds          NonEmptyArrayOfBaseItemIdsType `xml:"ItemIds"`
	ReturnNewItemIds *bool                          `xml:"ReturnNewItemIds,omitempty"`
}

type SendItemType struct {
	XMLName           struct{}                       `xml:"http://schemas.microsoft.com/exchange/services/2006/messages SendItem"`
	SaveItemToFolder  bool                           `xml:"SaveItemToFolder,attr"`
	ItemIds           NonEmptyArrayOfBaseItemIdsType `xml:"ItemIds"`
	SavedItemFolderId *TargetFolderIdType            `xml:"SavedItemFolderId,omitempty"`
}

type MarkAllItemsAsReadType struct {
	XMLName              struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages MarkAllItemsAsRead"`
	ReadFlag             bool                             `xml:"ReadFlag"`
	SuppressReadReceipts bool                             `xml:"SuppressReadReceipts"`
	FolderIds            NonEmptyArrayOfBaseFolderIdsType `xml:"FolderIds"`
}

// Search operations.

type FindFolderType struct {
	XMLName               struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages FindFolder"`
	Traversal             string                           `xml:"Traversal,attr"`
	FolderShape           FolderResponseShapeType          `xml:"FolderShape"`
	IndexedPageFolderView *IndexedPageViewType             `xml:"IndexedPageFolderView,omitempty"`
	Restriction           *RestrictionType                 `xml:"Restriction,omitempty"`
	ParentFolderIds       NonEmptyArrayOfBaseFolderIdsType `xml:"ParentFolderIds"`
}

type FindItemType struct {
	XMLName             struct{}                         `xml:"http://schemas.microsoft.com/exchange/services/2006/messages FindItem"`
	Traversal           string                           `xml:"Traversal,attr"`
	ItemShape           ItemResponseShapeType            `xml:"ItemShape"`
	IndexedPageItemView *IndexedPageViewType             `xml:"IndexedPageItemView,omitempty"`
	Restriction         *RestrictionType                 `xml:"Restriction,omitempty"`
	SortOrder           *NonEmptyArrayOfFieldOrdersType  `xml:"SortOrder,omitempty"`
	ParentFolderIds     NonEmptyArrayOfBaseFolderIdsType `xml:"ParentFolderIds"`
}
