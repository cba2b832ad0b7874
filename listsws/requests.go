package listsws

type AddList struct {
	XMLName     struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ AddList"`
	ListName    string   `xml:"listName"`
	Description string   `xml:"description"`
	TemplateID  int      `xml:"templateID"`
}

type DeleteList struct {
	XMLName  struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ DeleteList"`
	ListName string   `xml:"listName"`
}

type GetList struct {
	XMLName  struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetList"`
	ListName string   `xml:"listName"`
}

type GetListCollection struct {
	XMLName struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListCollection"`
}

type UpdateList struct {
	XMLName        struct{}                  `xml:"http://schemas.microsoft.com/sharepoint/soap/ UpdateList"`
	ListName       string                    `xml:"listName"`
	ListProperties *ListPropertiesDefinition `xml:"listProperties>List,omitempty"`
	NewFields      *FieldMethods             `xml:"newFields>Fields,omitempty"`
	UpdateFields   *FieldMethods             `xml:"updateFields>Fields,omitempty"`
	DeleteFields   *FieldMethods             `xml:"deleteFields>Fields,omitempty"`
	ListVersion    string                    `xml:"listVersion,omitempty"`
}

type GetListItems struct {
	XMLName      struct{}     `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListItems"`
	ListName     string       `xml:"listName"`
	ViewName     string       `xml:"viewName,omitempty"`
	Query        *XMLFragment `xml:"query,omitempty"`
	ViewFields   *XMLFragment `xml:"viewFields,omitempty"`
	RowLimit     string       `xml:"rowLimit,omitempty"`
	QueryOptions *XMLFragment `xml:"queryOptions,omitempty"`
	WebID        string       `xml:"webID,omitempty"`
}

type UpdateListItems struct {
	XMLName  struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ UpdateListItems"`
	ListName string   `xml:"listName"`
	Updates  Batch    `xml:"updates>Batch"`
}

type GetListItemChanges struct {
	XMLName    struct{}     `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListItemChanges"`
	ListName   string       `xml:"listName"`
	ViewFields *XMLFragment `xml:"viewFields,omitempty"`
	Since      string       `xml:"since,omitempty"`
	Contains   *XMLFragment `xml:"contains,omitempty"`
}

type GetListItemChangesSinceToken struct {
	XMLName      struct{}     `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListItemChangesSinceToken"`
	ListName     string       `xml:"listName"`
	ViewName     string       `xml:"viewName,omitempty"`
	Query        *XMLFragment `xml:"query,omitempty"`
	ViewFields   *XMLFragment `xml:"viewFields,omitempty"`
	RowLimit     string       `xml:"rowLimit,omitempty"`
	QueryOptions *XMLFragment `xml:"queryOptions,omitempty"`
	ChangeToken  string       `xml:"changeToken,omitempty"`
	Contains     *XMLFragment `xml:"contains,omitempty"`
}

// AddAttachment adds a file to a list item. Attachment is the base64 encoding of the content.
type AddAttachment struct {
	XMLName    struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ AddAttachment"`
	ListName   string   `xml:"listName"`
	ListItemID string   `xml:"listItemID"`
	FileName   string   `xml:"fileName"`
	Attachment string   `xml:"attachment"`
}

type GetAttachmentCollection struct {
	XMLName    struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetAttachmentCollection"`
	ListName   string   `xml:"listName"`
	ListItemID string   `xml:"listItemID"`
}

type DeleteAttachment struct {
	XMLName    struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ DeleteAttachment"`
	ListName   string   `xml:"listName"`
	ListItemID string   `xml:"listItemID"`
	URL        string   `xml:"url"`
}

type GetListContentTypes struct {
	XMLName       struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ GetListContentTypes"`
	ListName      string   `xml:"listName"`
	ContentTypeID string   `xml:"contentTypeId,omitempty"`
}

type CheckOutFile struct {
	XMLName         struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ CheckOutFile"`
	PageURL         string   `xml:"pageUrl"`
	CheckoutToLocal string   `xml:"checkoutToLocal"`
	LastModified    string   `xml:"lastmodified,omitempty"`
}

type UndoCheckOut struct {
	XMLName struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ UndoCheckOut"`
	PageURL string   `xml:"pageUrl"`
}

type CheckInFile struct {
	XMLName     struct{} `xml:"http://schemas.microsoft.com/sharepoint/soap/ CheckInFile"`
	PageURL     string   `xml:"pageUrl"`
	Comment     string   `xml:"comment"`
	CheckinType string   `xml:"CheckinType"`
}
