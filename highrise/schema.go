package highrise

// Kind says how a field's XML element is turned into a Go value.
type Kind int

const (
	// String concatenates the element's text content.
	String Kind = iota
	// Integer parses the text content as a base-10 number. Empty or malformed text yields zero.
	Integer
	// DateTime parses the text content as an ISO 8601 timestamp. Empty text yields the zero time.
	DateTime
	// Nested applies the parser registered under Field.Child to the element.
	Nested
	// Array applies a parser to every child element, producing an ordered sequence. If Field.Child is
	// empty each child is dispatched by its own name instead.
	Array
)

// Field describes one element of an entity: the element name, how to parse it, and for Nested and Array
// kinds the registered type to parse it as.
type Field struct {
	Name  string
	Kind  Kind
	Child string
}

// Marker tags an entity definition with a group of implied fields. The API repeats the same field groups
// across most resources (everything has an id, most things have timestamps and an author/owner pair, and
// so on), so definitions name the groups instead of re-declaring the fields.
type Marker int

const (
	// Identified adds the numeric id field. Nearly every resource carries it.
	Identified Marker = iota
	// Timestamped adds the created-at and updated-at pair.
	Timestamped
	// Owned adds the author-id and owner-id pair.
	Owned
	// Restricted adds the visibility fields (visible-to and group-id).
	Restricted
	// Subjected adds the fields linking a recording to its subject (a person, company, case or deal).
	Subjected
	// Located adds the location field carried by contact detail elements ("Work", "Home", ...).
	Located
	// Textual marks notes and emails: a body plus the collection it was moved to, if any.
	Textual
	// Party marks people and companies: a free-form background and the nested contact-data element.
	Party
)

// impliedFields is the marker expansion table. The schema builder prepends these to an entity's own
// fields before registering its parser, in marker order, so implied fields keep a stable position in
// every Record.
var impliedFields = map[Marker][]Field{
	Identified:  {{Name: "id", Kind: Integer}},
	Timestamped: {{Name: "created-at", Kind: DateTime}, {Name: "updated-at", Kind: DateTime}},
	Owned:       {{Name: "author-id", Kind: Integer}, {Name: "owner-id", Kind: Integer}},
	Restricted:  {{Name: "visible-to", Kind: String}, {Name: "group-id", Kind: Integer}},
	Subjected: {
		{Name: "subject-id", Kind: Integer},
		{Name: "subject-type", Kind: String},
		{Name: "subject-name", Kind: String},
	},
	Located: {{Name: "location", Kind: String}},
	Textual: {
		{Name: "body", Kind: String},
		{Name: "collection-id", Kind: Integer},
		{Name: "collection-type", Kind: String},
	},
	Party: {
		{Name: "background", Kind: String},
		{Name: "contact-data", Kind: Nested, Child: "contact-data"},
	},
}

// Registry maps type names to the field lists their parsers work from. It is built once (NewClient builds
// its own) and only mutated by Define, so sharing one across tests is safe as long as they don't define
// conflicting types.
type Registry struct {
	schemas map[string][]Field
}

// NewRegistry returns a registry pre-populated with the entity types the Highrise API serves.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string][]Field)}
	r.defineBuiltins()
	return r
}

// Define registers the parser for a type: the marker-implied fields followed by the explicit ones.
// Defining a name twice replaces the earlier definition.
func (r *Registry) Define(name string, markers []Marker, fields ...Field) {
	var resolved []Field
	for _, m := range markers {
		resolved = append(resolved, impliedFields[m]...)
	}
	resolved = append(resolved, fields...)
	r.schemas[name] = resolved
}

func (r *Registry) defineBuiltins() {
	r.Define("person",
		[]Marker{Identified, Timestamped, Owned, Restricted, Party},
		Field{Name: "first-name", Kind: String},
		Field{Name: "last-name", Kind: String},
		Field{Name: "title", Kind: String},
		Field{Name: "company-id", Kind: Integer},
	)
	r.Define("company",
		[]Marker{Identified, Timestamped, Owned, Restricted, Party},
		Field{Name: "name", Kind: String},
	)
	r.Define("kase",
		[]Marker{Identified, Timestamped, Owned, Restricted},
		Field{Name: "name", Kind: String},
		Field{Name: "closed-at", Kind: DateTime},
	)
	r.Define("deal",
		[]Marker{Identified, Timestamped, Owned, Restricted},
		Field{Name: "name", Kind: String},
		Field{Name: "background", Kind: String},
		Field{Name: "account-id", Kind: Integer},
		Field{Name: "category-id", Kind: Integer},
		Field{Name: "currency", Kind: String},
		Field{Name: "price", Kind: Integer},
		Field{Name: "price-type", Kind: String},
		Field{Name: "status", Kind: String},
		Field{Name: "party-id", Kind: Integer},
	)
	r.Define("note", []Marker{Identified, Timestamped, Owned, Restricted, Subjected, Textual})
	r.Define("email",
		[]Marker{Identified, Timestamped, Owned, Restricted, Subjected, Textual},
		Field{Name: "title", Kind: String},
	)
	r.Define("comment",
		[]Marker{Identified},
		Field{Name: "parent-id", Kind: Integer},
		Field{Name: "author-id", Kind: Integer},
		Field{Name: "created-at", Kind: DateTime},
		Field{Name: "body", Kind: String},
	)
	r.Define("task",
		[]Marker{Identified, Timestamped, Owned, Subjected},
		Field{Name: "body", Kind: String},
		Field{Name: "frame", Kind: String},
		Field{Name: "due-at", Kind: DateTime},
		Field{Name: "alert-at", Kind: DateTime},
		Field{Name: "done-at", Kind: DateTime},
		Field{Name: "category-id", Kind: Integer},
		Field{Name: "recording-id", Kind: Integer},
	)
	r.Define("user",
		[]Marker{Identified, Timestamped},
		Field{Name: "name", Kind: String},
		Field{Name: "email-address", Kind: String},
	)
	r.Define("group",
		[]Marker{Identified},
		Field{Name: "name", Kind: String},
		Field{Name: "users", Kind: Array, Child: "user"},
	)
	r.Define("membership",
		[]Marker{Identified},
		Field{Name: "user-id", Kind: Integer},
		Field{Name: "group-id", Kind: Integer},
	)
	r.Define("tag",
		[]Marker{Identified},
		Field{Name: "name", Kind: String},
	)
	r.Define("subject-field",
		[]Marker{Identified},
		Field{Name: "subject-field-label", Kind: String},
		Field{Name: "value", Kind: String},
	)
	r.Define("contact-data", nil,
		Field{Name: "phone-numbers", Kind: Array, Child: "phone-number"},
		Field{Name: "email-addresses", Kind: Array, Child: "email-address"},
		Field{Name: "instant-messengers", Kind: Array, Child: "instant-messenger"},
		Field{Name: "web-addresses", Kind: Array, Child: "web-address"},
		Field{Name: "addresses", Kind: Array, Child: "address"},
	)
	r.Define("phone-number",
		[]Marker{Identified, Located},
		Field{Name: "number", Kind: String},
	)
	r.Define("email-address",
		[]Marker{Identified, Located},
		Field{Name: "address", Kind: String},
	)
	r.Define("instant-messenger",
		[]Marker{Identified, Located},
		Field{Name: "address", Kind: String},
		Field{Name: "protocol", Kind: String},
	)
	r.Define("web-address",
		[]Marker{Identified, Located},
		Field{Name: "url", Kind: String},
	)
	r.Define("address",
		[]Marker{Identified, Located},
		Field{Name: "street", Kind: String},
		Field{Name: "city", Kind: String},
		Field{Name: "state", Kind: String},
		Field{Name: "zip", Kind: String},
		Field{Name: "country", Kind: String},
	)
}
