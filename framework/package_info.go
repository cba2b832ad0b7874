// Package framework contains the low-level implementation of test harness infrastructure
// that is shared by all of the protocol test suites. The base package contains shared
// types such as Logger; other components are in the subpackages harness and ldtest.
//
// The general model is:
//
// 1. The test harness talks directly to a server-under-test (SUT) that exposes one or more
// SOAP endpoints. Before any tests run, the harness probes each configured endpoint.
//
// 2. Each protocol has a binding (a typed SOAP client) and an adapter on top of it. The
// adapter makes one call and then verifies the response against numbered protocol
// requirements.
//
// 3. There is a general notion of a test context which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// The protocol-specific code that knows what is being tested is responsible for building
// requests, inspecting responses and deciding which requirements a response satisfies.
package framework
