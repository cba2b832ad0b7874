package oxwsfold

import (
	"github.com/msprotocols/protocol-contract-tests/adapters"
	"github.com/msprotocols/protocol-contract-tests/requirements"
)

// Protocol is the name of the folder operations protocol.
const Protocol = "MS-OXWSFOLD"

var responseMessageRequirements = adapters.ResponseMessageRequirements{
	ResponseClass:     1020,
	NoErrorOnSuccess:  1021,
	MessagePerObject:  1022,
	ServerVersionInfo: 1023,
	FaultStructure:    1010,
}

// Requirements returns the catalog entries for every requirement that the adapter verifies.
func Requirements() []requirements.Requirement {
	b := requirements.Builder{Protocol: Protocol}
	return []requirements.Requirement{
		b.Schema(1001, "The CopyFolderResponse message conforms to the schema."),
		b.Schema(1002, "The CreateFolderResponse message conforms to the schema."),
		b.Schema(1003, "The CreateManagedFolderResponse message conforms to the schema."),
		b.Schema(1004, "The DeleteFolderResponse message conforms to the schema."),
		b.Schema(1005, "The EmptyFolderResponse message conforms to the schema."),
		b.Schema(1006, "The GetFolderResponse message conforms to the schema."),
		b.Schema(1007, "The MoveFolderResponse message conforms to the schema."),
		b.Schema(1008, "The UpdateFolderResponse message conforms to the schema."),
		b.Schema(1010, "A SOAP fault returned by the server has the SOAP fault structure and names a ResponseCode in its detail."),

		b.Must(1020, "The ResponseClass attribute of a response message is Success, Warning or Error."),
		b.Must(1021, "The ResponseCode of a response message whose ResponseClass is Success is NoError."),
		b.Must(1022, "The response contains one response message for each folder in the request."),
		b.Should(1023, "The response includes a ServerVersionInfo SOAP header."),

		b.Must(1030, "A successful CopyFolder returns the ID of the new folder, which differs from the ID of the original folder."),
		b.Must(1040, "A successful CreateFolder returns the FolderId of each new folder, including its ChangeKey."),
		b.Must(1041, "A successful CreateManagedFolder returns the FolderId of the managed folder."),
		b.Must(1060, "A successful GetFolder returns the FolderId of each requested folder."),
		b.Must(1061, "With the Default shape, GetFolder returns the DisplayName, TotalCount and ChildFolderCount of a folder."),
		b.May(1062, "With the AllProperties shape, GetFolder returns the FolderClass of a folder."),
		b.Must(1070, "A successful MoveFolder returns the FolderId of each moved folder."),
		b.Must(1080, "A successful UpdateFolder returns the FolderId of each updated folder."),
		b.Should(1081, "After UpdateFolder the ChangeKey of the folder differs from the ChangeKey in the request."),
		b.Must(1090, "A request for a folder that does not exist returns a response message with ResponseClass Error."),
		b.Must(1091, "A request for a folder that does not exist returns ResponseCode ErrorItemNotFound or ErrorFolderNotFound."),
	}
}
