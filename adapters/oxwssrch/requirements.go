package oxwssrch

import (
	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/requirements"
)

// Protocol is the name of the search operations protocol.
const Protocol = "MS-OXWSSRCH"

var responseMessageRequirements = adapters.ResponseMessageRequirements{
	ResponseClass:    3020,
	NoErrorOnSuccess: 3021,
	MessagePerObject: 3022,
	FaultStructure:   3010,
}

// Requirements returns the catalog entries for every requirement that the adapter verifies.
func Requirements() []requirements.Requirement {
	b := requirements.Builder{Protocol: Protocol}
	return []requirements.Requirement{
		b.Schema(3001, "The FindFolderResponse message conforms to the schema."),
		b.Schema(3002, "The FindItemResponse message conforms to the schema."),
		b.Schema(3010, "A SOAP fault returned by the server has the SOAP fault structure and names a ResponseCode in its detail."),

		b.Must(3020, "The ResponseClass attribute of a response message is Success, Warning or Error."),
		b.Must(3021, "The ResponseCode of a response message whose ResponseClass is Success is NoError."),
		b.Must(3022, "The response contains one response message for each parent folder in the request."),

		b.Must(3030, "The RootFolder of a successful search has the TotalItemsInView attribute."),
		b.Must(3031, "The RootFolder of a successful search has the IncludesLastItemInRange attribute."),
		b.Must(3032, "Every folder returned by FindFolder has a FolderId."),
		b.Must(3040, "With an indexed page view, the RootFolder has the IndexedPagingOffset of the next page."),
		b.Must(3041, "With an indexed page view, the number of returned entries does not exceed MaxEntriesReturned."),
		b.Must(3042, "TotalItemsInView is not less than the number of returned entries."),
	}
}
