package backpack

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// endpoint is one entry of the call table: a path template under /ws/ and whether the vendor has
// deprecated it. Deprecated endpoints still work; callers get a warning per invocation so usages can be
// found and migrated before the vendor removes them.
type endpoint struct {
	path       string
	deprecated bool
}

// These constants are the endpoint names used by the call methods below.
const (
	pagesAll       = "pages/all"
	pageCreate     = "page/create"
	pageRename     = "page/rename"
	pageDuplicate  = "page/duplicate"
	pageDelete     = "page/delete"
	pageEmail      = "page/email"
	itemsList      = "items/list"
	itemAdd        = "item/add"
	itemUpdate     = "item/update"
	itemToggle     = "item/toggle"
	itemDelete     = "item/delete"
	noteAdd        = "note/add"
	noteUpdate     = "note/update"
	noteDelete     = "note/delete"
	remindersList  = "reminders/list"
	reminderCreate = "reminder/create"
	reminderUpdate = "reminder/update"
	reminderDelete = "reminder/delete"
	tagsSet        = "tags/set"
)

// The items endpoints predate the lists API and are deprecated by the vendor; they keep working but new
// code should move to lists once that surface is implemented here.
var endpoints = map[string]endpoint{
	pagesAll:       {path: "/ws/pages/all"},
	pageCreate:     {path: "/ws/pages/new"},
	pageRename:     {path: "/ws/page/%d/update_title"},
	pageDuplicate:  {path: "/ws/page/%d/duplicate"},
	pageDelete:     {path: "/ws/page/%d/destroy"},
	pageEmail:      {path: "/ws/page/%d/email"},
	itemsList:      {path: "/ws/page/%d/items/list", deprecated: true},
	itemAdd:        {path: "/ws/page/%d/items/add", deprecated: true},
	itemUpdate:     {path: "/ws/page/%d/items/update/%d", deprecated: true},
	itemToggle:     {path: "/ws/page/%d/items/toggle/%d", deprecated: true},
	itemDelete:     {path: "/ws/page/%d/items/destroy/%d", deprecated: true},
	noteAdd:        {path: "/ws/page/%d/notes/add"},
	noteUpdate:     {path: "/ws/page/%d/notes/update/%d"},
	noteDelete:     {path: "/ws/page/%d/notes/destroy/%d"},
	remindersList:  {path: "/ws/reminders"},
	reminderCreate: {path: "/ws/reminders/create"},
	reminderUpdate: {path: "/ws/reminders/update/%d"},
	reminderDelete: {path: "/ws/reminders/destroy/%d"},
	tagsSet:        {path: "/ws/page/%d/tags/tag"},
}

// post resolves an endpoint name through the table, emits the deprecation warning if due, and performs
// the call.
func (c *Client) post(name, payload string, args ...any) (*node, error) {
	ep, ok := endpoints[name]
	if !ok {
		return nil, fmt.Errorf("no such endpoint: %s", name)
	}
	if ep.deprecated {
		log.WithField("endpoint", name).Warning("Deprecated API call, migrate before the vendor removes it")
	}
	return c.call(fmt.Sprintf(ep.path, args...), payload)
}

// ListPages fetches all pages visible to the token's user.
func (c *Client) ListPages() ([]Attrs, error) {
	resp, err := c.post(pagesAll, "")
	if err != nil {
		return nil, err
	}
	return collect(resp, "pages"), nil
}

// CreatePage creates a page and returns its attributes (notably id and title).
func (c *Client) CreatePage(title string) (Attrs, error) {
	resp, err := c.post(pageCreate, fmt.Sprintf("<page><title>%s</title></page>", escape(title)))
	if err != nil {
		return nil, err
	}
	if p, ok := resp.child("page"); ok {
		return attrsOf(p), nil
	}
	return nil, nil
}

// RenamePage changes a page's title.
func (c *Client) RenamePage(id int64, title string) error {
	_, err := c.post(pageRename, fmt.Sprintf("<page><title>%s</title></page>", escape(title)), id)
	return err
}

// DuplicatePage copies a page and returns the copy's attributes.
func (c *Client) DuplicatePage(id int64) (Attrs, error) {
	resp, err := c.post(pageDuplicate, "", id)
	if err != nil {
		return nil, err
	}
	if p, ok := resp.child("page"); ok {
		return attrsOf(p), nil
	}
	return nil, nil
}

// DeletePage destroys a page.
func (c *Client) DeletePage(id int64) error {
	_, err := c.post(pageDelete, "", id)
	return err
}

// EmailPage emails a page to its owner.
func (c *Client) EmailPage(id int64) error {
	_, err := c.post(pageEmail, "", id)
	return err
}

// ListItems fetches a page's checklist items. Deprecated vendor surface, see the endpoint table.
func (c *Client) ListItems(pageID int64) ([]Attrs, error) {
	resp, err := c.post(itemsList, "", pageID)
	if err != nil {
		return nil, err
	}
	return collect(resp, "items"), nil
}

// AddItem appends a checklist item to a page. Deprecated vendor surface, see the endpoint table.
func (c *Client) AddItem(pageID int64, content string) (Attrs, error) {
	resp, err := c.post(itemAdd, fmt.Sprintf("<item><content>%s</content></item>", escape(content)), pageID)
	if err != nil {
		return nil, err
	}
	if it, ok := resp.child("item"); ok {
		return attrsOf(it), nil
	}
	return nil, nil
}

// UpdateItem rewrites an item's content.
func (c *Client) UpdateItem(pageID, itemID int64, content string) error {
	_, err := c.post(itemUpdate, fmt.Sprintf("<item><content>%s</content></item>", escape(content)), pageID, itemID)
	return err
}

// ToggleItem flips an item's completed state.
func (c *Client) ToggleItem(pageID, itemID int64) error {
	_, err := c.post(itemToggle, "", pageID, itemID)
	return err
}

// DeleteItem removes an item from a page.
func (c *Client) DeleteItem(pageID, itemID int64) error {
	_, err := c.post(itemDelete, "", pageID, itemID)
	return err
}

// AddNote adds a note to a page and returns its attributes.
func (c *Client) AddNote(pageID int64, title, body string) (Attrs, error) {
	payload := fmt.Sprintf("<note><title>%s</title><body>%s</body></note>", escape(title), escape(body))
	resp, err := c.post(noteAdd, payload, pageID)
	if err != nil {
		return nil, err
	}
	if n, ok := resp.child("note"); ok {
		return attrsOf(n), nil
	}
	return nil, nil
}

// UpdateNote rewrites a note's title and body.
func (c *Client) UpdateNote(pageID, noteID int64, title, body string) error {
	payload := fmt.Sprintf("<note><title>%s</title><body>%s</body></note>", escape(title), escape(body))
	_, err := c.post(noteUpdate, payload, pageID, noteID)
	return err
}

// DeleteNote removes a note from a page.
func (c *Client) DeleteNote(pageID, noteID int64) error {
	_, err := c.post(noteDelete, "", pageID, noteID)
	return err
}

// ListReminders fetches upcoming reminders.
func (c *Client) ListReminders() ([]Attrs, error) {
	resp, err := c.post(remindersList, "")
	if err != nil {
		return nil, err
	}
	return collect(resp, "reminders"), nil
}

// CreateReminder creates a reminder from free-form content. The service parses a leading relative time,
// e.g., "+30 Pick up the dry cleaning" fires in thirty minutes; without one it picks its default.
func (c *Client) CreateReminder(content string) (Attrs, error) {
	payload := fmt.Sprintf("<reminder><content>%s</content></reminder>", escape(content))
	resp, err := c.post(reminderCreate, payload)
	if err != nil {
		return nil, err
	}
	if rem, ok := resp.child("reminder"); ok {
		return attrsOf(rem), nil
	}
	return nil, nil
}

// UpdateReminder rewrites a reminder's content.
func (c *Client) UpdateReminder(id int64, content string) error {
	payload := fmt.Sprintf("<reminder><content>%s</content></reminder>", escape(content))
	_, err := c.post(reminderUpdate, payload, id)
	return err
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(id int64) error {
	_, err := c.post(reminderDelete, "", id)
	return err
}

// SetTags replaces a page's tags with the given space-separated list (quote multiword tags).
func (c *Client) SetTags(pageID int64, tags string) error {
	_, err := c.post(tagsSet, fmt.Sprintf("<tags>%s</tags>", escape(tags)), pageID)
	return err
}
