package highrise

import "time"

// TypeUnknown tags records produced from elements the registry has no schema for. Such records carry no
// fields but keep the raw node, so a caller that knows what to do with the shape can still get at it.
const TypeUnknown = "unknown"

// FieldValue is one parsed field of a Record. Value is nil when the field is in the record's schema but
// the element was absent from the response; otherwise it is a string, int64, time.Time, Record or []any
// depending on the field's Kind.
type FieldValue struct {
	Name  string
	Value any
}

// Record is the parsed form of one XML resource: the type tag, the numeric id (zero when the type carries
// none), and the ordered field list. Records are created fresh per API call and should be treated as
// read-only.
type Record struct {
	Type   string
	ID     int64
	fields []FieldValue
	raw    *Node
}

// Fields returns the record's fields in schema order.
func (rec Record) Fields() []FieldValue {
	return rec.fields
}

// Get returns a field's value and whether the field is part of the record's schema. An absent element
// reports (nil, true): presence refers to the schema, not to the response.
func (rec Record) Get(name string) (any, bool) {
	for _, f := range rec.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Str returns a string field, or "" if the field is absent or not a string.
func (rec Record) Str(name string) string {
	v, _ := rec.Get(name)
	s, _ := v.(string)
	return s
}

// Int returns an integer field, or 0 if the field is absent or not an integer.
func (rec Record) Int(name string) int64 {
	v, _ := rec.Get(name)
	n, _ := v.(int64)
	return n
}

// Time returns a datetime field, or the zero time if the field is absent or not a datetime.
func (rec Record) Time(name string) time.Time {
	v, _ := rec.Get(name)
	t, _ := v.(time.Time)
	return t
}

// Rec returns a nested record field. The second return value is false if the field is absent or not a
// record.
func (rec Record) Rec(name string) (Record, bool) {
	v, _ := rec.Get(name)
	nested, ok := v.(Record)
	return nested, ok
}

// Seq returns an array field, or nil if the field is absent or not an array.
func (rec Record) Seq(name string) []any {
	v, _ := rec.Get(name)
	seq, _ := v.([]any)
	return seq
}

// Raw returns the unparsed node for records of TypeUnknown, nil for all others.
func (rec Record) Raw() *Node {
	return rec.raw
}
