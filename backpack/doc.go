// The backpack package contains a client for the Backpack XML API. It shares no code with the highrise
// package on purpose: the two services have different envelopes, different error reporting and different
// data shapes, and the odd overlap is not worth a shared dependency.
//
// Every call is a blocking POST of a <request> envelope carrying the API token and an optional payload.
// Responses are flattened into Attrs values, plain ordered key/value lists where a key is present only
// if the service sent a non-empty value for it.
package backpack // import "github.com/gmarchetti/thirtyseven/backpack"
