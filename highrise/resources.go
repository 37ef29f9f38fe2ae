package highrise

// resource describes one entry of the call surface: the collection path segment, the singular name when
// a single-id fetch exists, and the nested collections reachable under an id. The exported wrappers
// below are expanded from this table; generic callers can use List/Get/SubList directly with the plural
// name.
type resource struct {
	plural   string
	singular string
	subs     []string
}

var resourceTable = []resource{
	{plural: "people", singular: "person", subs: []string{"notes", "emails", "tags", "tasks"}},
	{plural: "companies", singular: "company", subs: []string{"notes", "emails", "tags", "people"}},
	{plural: "kases", singular: "kase", subs: []string{"notes", "emails", "tags"}},
	{plural: "deals", singular: "deal", subs: []string{"notes", "emails"}},
	{plural: "notes", singular: "note", subs: []string{"comments"}},
	{plural: "emails", singular: "email", subs: []string{"comments"}},
	{plural: "comments", singular: "comment"},
	{plural: "tasks", singular: "task"},
	{plural: "users", singular: "user"},
	{plural: "groups", singular: "group"},
	{plural: "memberships", singular: "membership"},
	{plural: "tags"},
}

func resourcesByName() map[string]resource {
	m := make(map[string]resource, len(resourceTable))
	for _, res := range resourceTable {
		m[res.plural] = res
	}
	return m
}

func (c *Client) People(opts *ListOptions) ([]Record, error) { return c.List("people", opts) }

func (c *Client) Person(id int64) (Record, error) { return c.Get("people", id) }

func (c *Client) PersonNotes(id int64) ([]Record, error) { return c.SubList("people", id, "notes") }

func (c *Client) PersonEmails(id int64) ([]Record, error) { return c.SubList("people", id, "emails") }

func (c *Client) PersonTags(id int64) ([]Record, error) { return c.SubList("people", id, "tags") }

func (c *Client) PersonTasks(id int64) ([]Record, error) { return c.SubList("people", id, "tasks") }

func (c *Client) Companies(opts *ListOptions) ([]Record, error) { return c.List("companies", opts) }

func (c *Client) Company(id int64) (Record, error) { return c.Get("companies", id) }

func (c *Client) CompanyPeople(id int64) ([]Record, error) { return c.SubList("companies", id, "people") }

func (c *Client) CompanyNotes(id int64) ([]Record, error) { return c.SubList("companies", id, "notes") }

func (c *Client) Kases(opts *ListOptions) ([]Record, error) { return c.List("kases", opts) }

func (c *Client) Kase(id int64) (Record, error) { return c.Get("kases", id) }

func (c *Client) Deals(opts *ListOptions) ([]Record, error) { return c.List("deals", opts) }

func (c *Client) Deal(id int64) (Record, error) { return c.Get("deals", id) }

func (c *Client) Note(id int64) (Record, error) { return c.Get("notes", id) }

func (c *Client) NoteComments(id int64) ([]Record, error) { return c.SubList("notes", id, "comments") }

func (c *Client) Email(id int64) (Record, error) { return c.Get("emails", id) }

func (c *Client) EmailComments(id int64) ([]Record, error) { return c.SubList("emails", id, "comments") }

func (c *Client) Tasks(opts *ListOptions) ([]Record, error) { return c.List("tasks", opts) }

func (c *Client) Task(id int64) (Record, error) { return c.Get("tasks", id) }

func (c *Client) Users(opts *ListOptions) ([]Record, error) { return c.List("users", opts) }

func (c *Client) User(id int64) (Record, error) { return c.Get("users", id) }

func (c *Client) Groups(opts *ListOptions) ([]Record, error) { return c.List("groups", opts) }

func (c *Client) Group(id int64) (Record, error) { return c.Get("groups", id) }

func (c *Client) Memberships(opts *ListOptions) ([]Record, error) { return c.List("memberships", opts) }

func (c *Client) Tags(opts *ListOptions) ([]Record, error) { return c.List("tags", opts) }
