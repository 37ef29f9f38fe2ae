package highrise

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Node is a generic XML element: name, attributes, text content and child elements. API responses are
// decoded into a Node tree first and then shaped into Records by the registry, because the set of
// element names is open-ended (custom subject fields, future resources) and parsing must degrade rather
// than fail on shapes it does not know.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Attr returns the value of the named attribute, or "" if not present.
func (n Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Child returns the first child element with the given name.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return Node{}, false
}

// Text returns the element's text content with surrounding whitespace removed.
func (n Node) Text() string {
	return strings.TrimSpace(n.Content)
}

// ParseBytes decodes an XML document and resolves its root element. The returned value is a Record,
// []any, int64, time.Time or string depending on the root's shape; see Parse.
func (r *Registry) ParseBytes(b []byte) (any, error) {
	var n Node
	if err := xml.Unmarshal(b, &n); err != nil {
		return nil, err
	}
	return r.Parse(n), nil
}

// Parse resolves a node to a value. The type attribute overrides array, integer and datetime are checked
// before any name lookup; then the element name selects a registered schema. A bare "record" element is
// resolved to person or company by probing for a company-id child (only person records reference an
// employer that way). Elements with no schema degrade to a Record of TypeUnknown carrying the raw node;
// parsing never fails on shape alone.
func (r *Registry) Parse(n Node) any {
	switch n.Attr("type") {
	case "array":
		seq := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			seq = append(seq, r.Parse(c))
		}
		return seq
	case "integer":
		return parseInt(n.Text())
	case "datetime":
		return parseTime(n.Text())
	}
	name := n.XMLName.Local
	if name == "record" {
		if _, ok := n.Child("company-id"); ok {
			name = "person"
		} else {
			name = "company"
		}
	}
	fields, ok := r.schemas[name]
	if !ok {
		log.WithField("element", n.XMLName.Local).Warning("No schema for element, returning unknown record")
		raw := n
		return Record{Type: TypeUnknown, raw: &raw}
	}
	return r.parseRecord(name, fields, n)
}

func (r *Registry) parseRecord(name string, fields []Field, n Node) Record {
	rec := Record{Type: name}
	for _, f := range fields {
		var v any
		if c, ok := n.Child(f.Name); ok {
			switch f.Kind {
			case String:
				v = c.Text()
			case Integer:
				v = parseInt(c.Text())
			case DateTime:
				v = parseTime(c.Text())
			case Nested:
				v = r.parseNamed(f.Child, c)
			case Array:
				seq := make([]any, 0, len(c.Children))
				for _, el := range c.Children {
					if f.Child != "" {
						seq = append(seq, r.parseNamed(f.Child, el))
					} else {
						seq = append(seq, r.Parse(el))
					}
				}
				v = seq
			}
		}
		// An element in the schema but missing from the response stays in the record with a nil
		// value, so consumers see the same keys for every record of a type.
		rec.fields = append(rec.fields, FieldValue{Name: f.Name, Value: v})
	}
	if id, ok := rec.Get("id"); ok {
		if n, ok := id.(int64); ok {
			rec.ID = n
		}
	}
	return rec
}

func (r *Registry) parseNamed(name string, n Node) any {
	fields, ok := r.schemas[name]
	if !ok {
		return r.Parse(n)
	}
	return r.parseRecord(name, fields, n)
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	log.WithField("value", s).Warning("Could not parse time, has Highrise changed format?")
	return time.Time{}
}
