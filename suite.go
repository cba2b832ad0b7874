package main

import (
	"github.com/msprotocols/protocol-contract-tests/adapters/listsws"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwscore"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwsfold"
	"github.com/msprotocols/protocol-contract-tests/adapters/oxwssrch"
	"github.com/msprotocols/protocol-contract-tests/framework"
	"github.com/msprotocols/protocol-contract-tests/framework/ldtest"
	"github.com/msprotocols/protocol-contract-tests/requirements"
	"github.com/msprotocols/protocol-contract-tests/suites"
	"github.com/msprotocols/protocol-contract-tests/suites/coretests"
	"github.com/msprotocols/protocol-contract-tests/suites/foldtests"
	"github.com/msprotocols/protocol-contract-tests/suites/liststests"
	"github.com/msprotocols/protocol-contract-tests/suites/srchtests"
)

// AllCapabilities lists the optional server features that some tests depend on.
var AllCapabilities = []string{
	foldtests.CapabilityCreateManagedFolder,
	coretests.CapabilityMarkAllItemsAsRead,
}

func registerRequirements(catalog *requirements.Catalog) {
	catalog.Register(oxwsfold.Requirements()...)
	catalog.Register(oxwscore.Requirements()...)
	catalog.Register(oxwssrch.Requirements()...)
	catalog.Register(listsws.Requirements()...)
}

func RunTestSuite(
	c *suites.Context,
	capabilities framework.Capabilities,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:       filter,
		TestLogger:   testLogger,
		Capabilities: capabilities,
		Context:      c,
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run(oxwsfold.Protocol, foldtests.DoFolderTests)
		t.Run(oxwscore.Protocol, coretests.DoItemTests)
		t.Run(oxwssrch.Protocol, srchtests.DoSearchTests)
		t.Run(listsws.Protocol, liststests.DoListTests)
	})
}
