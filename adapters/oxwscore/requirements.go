package oxwscore

import (
	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/requirements"
)

// Protocol is the name of the item operations protocol.
const Protocol = "MS-OXWSCORE"

var responseMessageRequirements = adapters.ResponseMessageRequirements{
	ResponseClass:    2020,
	NoErrorOnSuccess: 2021,
	MessagePerObject: 2022,
	FaultStructure:   2010,
}

// Requirements returns the catalog entries for every requirement that the adapter verifies.
func Requirements() []requirements.Requirement {
	b := requirements.Builder{Protocol: Protocol}
	return []requirements.Requirement{
		b.Schema(2001, "The CreateItemResponse message conforms to the schema."),
		b.Schema(2002, "The GetItemResponse message conforms to the schema."),
		b.Schema(2003, "The DeleteItemResponse message conforms to the schema."),
		b.Schema(2004, "The UpdateItemResponse message conforms to the schema."),
		b.Schema(2005, "The CopyItemResponse message conforms to the schema."),
		b.Schema(2006, "The MoveItemResponse message conforms to the schema."),
		b.Schema(2007, "The SendItemResponse message conforms to the schema."),
		b.Schema(2008, "The MarkAllItemsAsReadResponse message conforms to the schema."),
		b.Schema(2010, "A SOAP fault returned by the server has the SOAP fault structure and names a ResponseCode in its detail."),

		b.Must(2020, "The ResponseClass attribute of a response message is Success, Warning or Error."),
		b.Must(2021, "The ResponseCode of a response message whose ResponseClass is Success is NoError."),
		b.Must(2022, "The response contains one response message for each item in the request."),

		b.Must(2030, "A successful CreateItem that saves the item returns its ItemId, including the ChangeKey."),
		b.Must(2040, "A successful GetItem returns the item whose ItemId was requested."),
		b.Should(2050, "A successful UpdateItem reports the number of conflicts in ConflictResults."),
		b.Must(2051, "After UpdateItem the ChangeKey of the item differs from the ChangeKey in the request."),
		b.May(2060, "A successful CopyItem returns the ItemId of each copy, which differs from the original ItemId."),
		b.Must(2070, "A successful MoveItem returns the ItemId of each moved item unless ReturnNewItemIds is false."),
		b.Must(2080, "MarkAllItemsAsRead returns one response message for each folder in the request."),
	}
}
