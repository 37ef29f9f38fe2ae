// The highrise package contains a client for the Highrise XML API documented at
// https://github.com/basecamp/highrise-api. The client covers the read side of the API plus simple create,
// update and destroy calls; it will be extended to support more functionality as required by consumers. At the
// time of writing the consumers are the lookup package (directory search over contacts) and the command line and
// acme user interface in the cmd/thirtyseven subdirectory.
//
// Responses are not mapped to per-resource structs. The API exposes a couple dozen resource shapes that differ
// mostly in which boilerplate field groups (id, timestamps, ownership, visibility, subject links) they carry, so
// entities are parsed through a schema table into generic Record values instead. The schema for each type is a
// short field list plus a set of markers naming the implied field groups; see Registry and Define.
//
// Every exported call performs exactly one blocking HTTP round trip. There is no retrying, no caching and no
// request batching; inventories in a Highrise account are small enough that fetching a whole collection and
// filtering client side is fine for the intended use cases.
package highrise // import "github.com/gmarchetti/thirtyseven/highrise"
