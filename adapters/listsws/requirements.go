package listsws

import (
	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/requirements"
)

// Protocol is the name of the Lists Web Service protocol.
const Protocol = "MS-LISTSWS"

var faultRequirements = adapters.SharePointFaultRequirements{
	Detail:      4020,
	ErrorString: 4021,
	ErrorCode:   4022,
}

// Requirements returns the catalog entries for every requirement that the adapter verifies.
func Requirements() []requirements.Requirement {
	b := requirements.Builder{Protocol: Protocol}
	return []requirements.Requirement{
		b.Schema(4001, "The AddListResponse message conforms to the schema."),
		b.Schema(4002, "The DeleteListResponse message conforms to the schema."),
		b.Schema(4003, "The GetListResponse message conforms to the schema."),
		b.Schema(4004, "The GetListCollectionResponse message conforms to the schema."),
		b.Schema(4005, "The UpdateListResponse message conforms to the schema."),
		b.Schema(4006, "The GetListItemsResponse message conforms to the schema."),
		b.Schema(4007, "The UpdateListItemsResponse message conforms to the schema."),
		b.Schema(4008, "The GetListItemChangesResponse message conforms to the schema."),
		b.Schema(4009, "The GetListItemChangesSinceTokenResponse message conforms to the schema."),
		b.Schema(4010, "The AddAttachmentResponse message conforms to the schema."),
		b.Schema(4011, "The GetAttachmentCollectionResponse message conforms to the schema."),
		b.Schema(4012, "The DeleteAttachmentResponse message conforms to the schema."),
		b.Schema(4013, "The GetListContentTypesResponse message conforms to the schema."),
		b.Schema(4014, "The CheckOutFileResponse message conforms to the schema."),
		b.Schema(4015, "The UndoCheckOutResponse message conforms to the schema."),
		b.Schema(4016, "The CheckInFileResponse message conforms to the schema."),

		b.Must(4020, "A SOAP fault returned by the server has a detail element of type SoapFaultDetail."),
		b.Must(4021, "The detail of a SOAP fault contains a non-empty errorstring."),
		b.Must(4022, "The errorcode of a SOAP fault, when present, is formatted as 0x followed by eight hexadecimal digits."),

		b.Must(4030, "The list created by AddList has the requested title."),
		b.Must(4031, "The list created by AddList has the requested ServerTemplate."),
		b.Must(4032, "The ID of the list created by AddList is a GUID."),
		b.Must(4040, "GetList returns the list named in the request, by title or by GUID."),
		b.Must(4050, "Every list returned by GetListCollection has a GUID ID and a Title."),
		b.Must(4060, "UpdateList returns the properties of the list in ListProperties."),
		b.Must(4061, "UpdateList returns one Method result for each field method in the request."),
		b.Must(4070, "UpdateListItems returns one Result for each Method in the batch, with the same ID."),
		b.Must(4071, "A successful New or Update Method returns the resulting list item in a z:row element."),
		b.Must(4072, "The ErrorCode of each UpdateListItems Result is formatted as 0x followed by eight hexadecimal digits."),
		b.Must(4080, "GetListItemChanges returns the server time in the TimeStamp attribute."),
		b.Must(4090, "GetListItemChangesSinceToken returns a non-empty LastChangeToken."),
		b.Should(4091, "Without a change token, GetListItemChangesSinceToken returns the list schema in Changes/List."),
		b.May(4092, "GetListItemChangesSinceToken returns MinTimeBetweenSyncs and RecommendedTimeBetweenSyncs."),
		b.Must(4100, "AddAttachment returns the URL of the new attachment, which ends with the file name."),
		b.Must(4101, "GetAttachmentCollection returns the URL of every attachment of the item."),
		b.Must(4110, "Every content type returned by GetListContentTypes has a Name and an ID."),
		b.Must(4120, "CheckOutFile returns true when the file was checked out."),
		b.Must(4121, "UndoCheckOut returns true when the checkout was undone."),
		b.Must(4122, "CheckInFile returns true when the file was checked in."),
	}
}
