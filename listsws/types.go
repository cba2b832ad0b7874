// Package listsws contains the message types of the SharePoint Lists Web Service (MS-LISTSWS)
// and a ListsBinding that sends them.
//
// Several parameters of the service, such as CAML queries and view field lists, are XML
// fragments with no fixed schema. They are carried as XMLFragment values and built with the
// CAML helpers in this package.
package listsws

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	// Namespace is the namespace of all request and response elements.
	Namespace = "http://schemas.microsoft.com/sharepoint/soap/"

	// RowsetNamespace and RowNamespace are used by the rs:data and z:row elements of list item
	// results.
	RowsetNamespace = "urn:schemas-microsoft-com:rowset"
	RowNamespace    = "#RowsetSchema"
)

// Common list template IDs.
const (
	TemplateGenericList     = 100
	TemplateDocumentLibrary = 101
	TemplateAnnouncements   = 104
	TemplateContacts        = 105
	TemplateTasks           = 107
)

// Batch commands for UpdateListItems.
const (
	CmdNew    = "New"
	CmdUpdate = "Update"
	CmdDelete = "Delete"
)

// Check-in types for CheckInFile.
const (
	CheckinMinor     = "0"
	CheckinMajor     = "1"
	CheckinOverwrite = "2"
)

// XMLFragment is a parameter or result whose content is free-form XML.
type XMLFragment struct {
	Inner string `xml:",innerxml"`
}

func (f *XMLFragment) String() string {
	if f == nil {
		return ""
	}
	return f.Inner
}

func escapeAttr(s string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// QueryEq builds a CAML query that selects items whose field equals a value.
func QueryEq(field, valueType, value string) *XMLFragment {
	return &XMLFragment{Inner: fmt.Sprintf(
		`<Query><Where><Eq><FieldRef Name="%s"/><Value Type="%s">%s</Value></Eq></Where></Query>`,
		escapeAttr(field), escapeAttr(valueType), escapeAttr(value))}
}

// ViewFields builds a ViewFields fragment that selects the named fields.
func ViewFields(names ...string) *XMLFragment {
	var buf strings.Builder
	buf.WriteString("<ViewFields>")
	for _, n := range names {
		fmt.Fprintf(&buf, `<FieldRef Name="%s"/>`, escapeAttr(n))
	}
	buf.WriteString("</ViewFields>")
	return &XMLFragment{Inner: buf.String()}
}

// QueryOptions builds a QueryOptions fragment. Each pair of arguments is an option name and
// value, such as "IncludeMandatoryColumns", "FALSE".
func QueryOptions(nameValuePairs ...string) *XMLFragment {
	var buf strings.Builder
	buf.WriteString("<QueryOptions>")
	for i := 0; i+1 < len(nameValuePairs); i += 2 {
		name := nameValuePairs[i]
		fmt.Fprintf(&buf, "<%s>%s</%s>", name, escapeAttr(nameValuePairs[i+1]), name)
	}
	buf.WriteString("</QueryOptions>")
	return &XMLFragment{Inner: buf.String()}
}

// FieldDefinition is a Field element of a list schema.
type FieldDefinition struct {
	ID           string `xml:"ID,attr,omitempty"`
	Name         string `xml:"Name,attr,omitempty"`
	StaticName   string `xml:"StaticName,attr,omitempty"`
	DisplayName  string `xml:"DisplayName,attr,omitempty"`
	Type         string `xml:"Type,attr,omitempty"`
	Required     string `xml:"Required,attr,omitempty"`
	Hidden       string `xml:"Hidden,attr,omitempty"`
	ReadOnly     string `xml:"ReadOnly,attr,omitempty"`
	ColName      string `xml:"ColName,attr,omitempty"`
	SourceID     string `xml:"SourceID,attr,omitempty"`
	FromBaseType string `xml:"FromBaseType,attr,omitempty"`
	Description  string `xml:"Description,attr,omitempty"`
}

// FieldsDefinition is the Fields element of a list schema.
type FieldsDefinition struct {
	Fields []FieldDefinition `xml:"Field"`
}

// Lookup returns the field with a given internal or display name.
func (f *FieldsDefinition) Lookup(name string) (FieldDefinition, bool) {
	if f == nil {
		return FieldDefinition{}, false
	}
	for _, field := range f.Fields {
		if field.Name == name || field.DisplayName == name || field.StaticName == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// ListDefinitionCT holds the properties of a list, as in the List elements of
// GetListCollection. All values are strings as the service sends them, such as "True" or "100".
type ListDefinitionCT struct {
	DocTemplateUrl       string `xml:"DocTemplateUrl,attr"`
	DefaultViewUrl       string `xml:"DefaultViewUrl,attr"`
	ID                   string `xml:"ID,attr"`
	Title                string `xml:"Title,attr"`
	Description          string `xml:"Description,attr"`
	ImageUrl             string `xml:"ImageUrl,attr"`
	Name                 string `xml:"Name,attr"`
	BaseType             string `xml:"BaseType,attr"`
	FeatureId            string `xml:"FeatureId,attr"`
	ServerTemplate       string `xml:"ServerTemplate,attr"`
	Created              string `xml:"Created,attr"`
	Modified             string `xml:"Modified,attr"`
	LastDeleted          string `xml:"LastDeleted,attr"`
	Version              string `xml:"Version,attr"`
	Direction            string `xml:"Direction,attr"`
	Flags                string `xml:"Flags,attr"`
	ItemCount            string `xml:"ItemCount,attr"`
	AnonymousPermMask    string `xml:"AnonymousPermMask,attr"`
	RootFolder           string `xml:"RootFolder,attr"`
	ReadSecurity         string `xml:"ReadSecurity,attr"`
	WriteSecurity        string `xml:"WriteSecurity,attr"`
	Author               string `xml:"Author,attr"`
	InheritedSecurity    string `xml:"InheritedSecurity,attr"`
	AllowDeletion        string `xml:"AllowDeletion,attr"`
	EnableAttachments    string `xml:"EnableAttachments,attr"`
	EnableModeration     string `xml:"EnableModeration,attr"`
	EnableVersioning     string `xml:"EnableVersioning,attr"`
	EnableMinorVersion   string `xml:"EnableMinorVersion,attr"`
	RequireCheckout      string `xml:"RequireCheckout,attr"`
	Hidden               string `xml:"Hidden,attr"`
	Ordered              string `xml:"Ordered,attr"`
	HasUniqueScopes      string `xml:"HasUniqueScopes,attr"`
	AllowMultiResponses  string `xml:"AllowMultiResponses,attr"`
	MultipleDataList     string `xml:"MultipleDataList,attr"`
	ShowUser             string `xml:"ShowUser,attr"`
	WebFullUrl           string `xml:"WebFullUrl,attr"`
	WebId                string `xml:"WebId,attr"`
	EmailAlias           string `xml:"EmailAlias,attr"`
	MaxItemsPerThrottled string `xml:"MaxItemsPerThrottledOperation,attr"`
}

// RegionalSettingsDefinition describes the locale settings of the site that holds a list.
type RegionalSettingsDefinition struct {
	Language     string `xml:"Language"`
	Locale       string `xml:"Locale"`
	AdvanceHijri string `xml:"AdvanceHijri"`
	CalendarType string `xml:"CalendarType"`
	Time24       string `xml:"Time24"`
	TimeZone     string `xml:"TimeZone"`
	SortOrder    string `xml:"SortOrder"`
	Presence     string `xml:"Presence"`
}

// ServerSettingsDefinition describes the server that holds a list.
type ServerSettingsDefinition struct {
	ServerVersion     string `xml:"ServerVersion"`
	RecycleBinEnabled string `xml:"RecycleBinEnabled"`
	ServerRelativeUrl string `xml:"ServerRelativeUrl"`
}

// ListDefinitionSchema is a list with its schema, as returned by GetList and AddList.
type ListDefinitionSchema struct {
	ListDefinitionCT
	Fields           *FieldsDefinition           `xml:"Fields"`
	RegionalSettings *RegionalSettingsDefinition `xml:"RegionalSettings"`
	ServerSettings   *ServerSettingsDefinition   `xml:"ServerSettings"`
}

// ListPropertiesDefinition is the List element of an UpdateList request.
type ListPropertiesDefinition struct {
	Title             string `xml:"Title,attr,omitempty"`
	Description       string `xml:"Description,attr,omitempty"`
	EnableAttachments string `xml:"EnableAttachments,attr,omitempty"`
	EnableVersioning  string `xml:"EnableVersioning,attr,omitempty"`
	Hidden            string `xml:"Hidden,attr,omitempty"`
}

// FieldMethod is one field change in an UpdateList request, or its result.
type FieldMethod struct {
	ID        string           `xml:"ID,attr"`
	ErrorCode string           `xml:"ErrorCode,omitempty"`
	ErrorText string           `xml:"ErrorText,omitempty"`
	Field     *FieldDefinition `xml:"Field,omitempty"`
}

// FieldMethods is the Fields element of the newFields, updateFields and deleteFields
// parameters of UpdateList.
type FieldMethods struct {
	Methods []FieldMethod `xml:"Method"`
}

// BatchField is one Field of a batch Method.
type BatchField struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

// BatchMethod is one command of an UpdateListItems batch.
type BatchMethod struct {
	ID     string       `xml:"ID,attr"`
	Cmd    string       `xml:"Cmd,attr"`
	Fields []BatchField `xml:"Field"`
}

// Batch is the updates parameter of UpdateListItems.
type Batch struct {
	OnError     string        `xml:"OnError,attr,omitempty"`
	ListVersion string        `xml:"ListVersion,attr,omitempty"`
	PreCalc     string        `xml:"PreCalc,attr,omitempty"`
	Methods     []BatchMethod `xml:"Method"`
}

// Add appends a method. Methods are numbered from 1 in the order they are added.
func (b *Batch) Add(cmd string, fields ...BatchField) *Batch {
	b.Methods = append(b.Methods, BatchMethod{
		ID:     fmt.Sprint(len(b.Methods) + 1),
		Cmd:    cmd,
		Fields: fields,
	})
	return b
}

// Row is a z:row element. Its attributes are the fields of a list item, with names prefixed
// by "ows_".
type Row struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Get returns the value of a field, given its name with or without the "ows_" prefix.
func (r Row) Get(name string) (string, bool) {
	if !strings.HasPrefix(name, "ows_") {
		name = "ows_" + name
	}
	for _, a := range r.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the ows_ID field.
func (r Row) ID() string {
	v, _ := r.Get("ID")
	return v
}

// RowsetData is an rs:data element.
type RowsetData struct {
	ItemCount                      string `xml:"ItemCount,attr"`
	ListItemCollectionPositionNext string `xml:"ListItemCollectionPositionNext,attr"`
	Rows                           []Row  `xml:"row"`
}

// ChangeID is an Id element of the Changes element, which reports a deleted or moved item.
type ChangeID struct {
	ChangeType string `xml:"ChangeType,attr"`
	UniqueId   string `xml:"UniqueId,attr"`
	Value      string `xml:",chardata"`
}

// Changes is the change-tracking part of a GetListItemChangesSinceToken result.
type Changes struct {
	LastChangeToken string                `xml:"LastChangeToken,attr"`
	MoreChanges     string                `xml:"MoreChanges,attr"`
	List            *ListDefinitionSchema `xml:"List"`
	IDs             []ChangeID            `xml:"Id"`
}

// ContentType is one ContentType element of GetListContentTypes.
type ContentType struct {
	Name        string `xml:"Name,attr"`
	ID          string `xml:"ID,attr"`
	Description string `xml:"Description,attr"`
	Scope       string `xml:"Scope,attr"`
	Version     string `xml:"Version,attr"`
	BestMatch   string `xml:"BestMatch,attr"`
}

// SoapFaultDetail is the detail of a SharePoint SOAP fault.
type SoapFaultDetail struct {
	ErrorString string `xml:"errorstring"`
	ErrorCode   string `xml:"errorcode"`
}
