package backpack

import "strconv"

// Attr is one key/value pair of a response entity.
type Attr struct {
	Key   string
	Value string
}

// Attrs is the parsed form of one response entity, in the order the service sent the values. Unlike the
// typed records on the Highrise side there is no schema: a key is in the list only if the response
// carried a non-empty value for it, so absence means "not sent", never "sent empty".
type Attrs []Attr

// Get returns the value for a key and whether the key is present.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Int returns the value for a key parsed as a number, or 0 if the key is absent or not numeric.
func (a Attrs) Int(key string) int64 {
	v, ok := a.Get(key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// add appends a pair, skipping empty values to keep the absence invariant.
func (a *Attrs) add(key, value string) {
	if value == "" {
		return
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

// attrsOf flattens one entity element: XML attributes first, then simple (leaf) children as name/text
// pairs, then the element's own text under the "content" key. That covers the service's two habits of
// putting data in attributes (pages, items) and in character data (reminders, notes).
func attrsOf(n node) Attrs {
	var a Attrs
	for _, attr := range n.Attrs {
		a.add(attr.Name.Local, attr.Value)
	}
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			a.add(c.XMLName.Local, c.Text())
		}
	}
	a.add("content", n.Text())
	return a
}
