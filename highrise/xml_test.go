package highrise_test

import (
	"testing"
	"time"

	"github.com/gmarchetti/thirtyseven/highrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, r *highrise.Registry, doc string) any {
	t.Helper()
	v, err := r.ParseBytes([]byte(doc))
	require.Nil(t, err)
	return v
}

func parseRecord(t *testing.T, r *highrise.Registry, doc string) highrise.Record {
	t.Helper()
	rec, ok := parse(t, r, doc).(highrise.Record)
	require.True(t, ok, "expected a record")
	return rec
}

func TestEmptyPrimitivesParseToZeroValues(t *testing.T) {
	r := highrise.NewRegistry()
	r.Define("widget", []highrise.Marker{highrise.Identified},
		highrise.Field{Name: "name", Kind: highrise.String},
		highrise.Field{Name: "count", Kind: highrise.Integer},
		highrise.Field{Name: "seen-at", Kind: highrise.DateTime},
	)
	rec := parseRecord(t, r, `<widget><id type="integer"></id><name></name><count></count><seen-at type="datetime"></seen-at></widget>`)
	assert.Equal(t, "widget", rec.Type)
	assert.Equal(t, int64(0), rec.ID)
	assert.Equal(t, "", rec.Str("name"))
	assert.Equal(t, int64(0), rec.Int("count"))
	assert.True(t, rec.Time("seen-at").IsZero())
}

func TestMarkersImplyFields(t *testing.T) {
	r := highrise.NewRegistry()
	r.Define("gadget", []highrise.Marker{highrise.Identified, highrise.Timestamped, highrise.Owned})
	// None of the implied elements appear in the response; the fields must still be part of the
	// record, with nil values.
	rec := parseRecord(t, r, `<gadget></gadget>`)
	for _, name := range []string{"id", "created-at", "updated-at", "author-id", "owner-id"} {
		v, ok := rec.Get(name)
		assert.True(t, ok, "field %s should be in the schema", name)
		assert.Nil(t, v, "field %s should be nil", name)
	}
	_, ok := rec.Get("nonexistent")
	assert.False(t, ok)
}

func TestRecordSubtypeResolution(t *testing.T) {
	r := highrise.NewRegistry()
	person := parseRecord(t, r, `<record><company-id type="integer">4</company-id></record>`)
	assert.Equal(t, "person", person.Type)
	assert.Equal(t, int64(4), person.Int("company-id"))

	company := parseRecord(t, r, `<record><name>ACME</name></record>`)
	assert.Equal(t, "company", company.Type)
	assert.Equal(t, "ACME", company.Str("name"))
}

func TestTypeAttributeOverrides(t *testing.T) {
	r := highrise.NewRegistry()
	// The type attribute wins over name-based dispatch, even for names that have a schema.
	assert.Equal(t, int64(7), parse(t, r, `<person type="integer">7</person>`))
	assert.Equal(t,
		time.Date(2009, 7, 7, 12, 30, 0, 0, time.UTC),
		parse(t, r, `<person type="datetime">2009-07-07T12:30:00Z</person>`))

	seq, ok := parse(t, r, `<tags type="array"><tag><id type="integer">1</id><name>lead</name></tag></tags>`).([]any)
	require.True(t, ok)
	require.Len(t, seq, 1)
	tag, ok := seq[0].(highrise.Record)
	require.True(t, ok)
	assert.Equal(t, "tag", tag.Type)
	assert.Equal(t, "lead", tag.Str("name"))
}

func TestUnknownElementDegradesToSentinel(t *testing.T) {
	r := highrise.NewRegistry()
	rec := parseRecord(t, r, `<frobnicator><a>1</a></frobnicator>`)
	assert.Equal(t, highrise.TypeUnknown, rec.Type)
	require.NotNil(t, rec.Raw())
	assert.Equal(t, "frobnicator", rec.Raw().XMLName.Local)
}

func TestArrayParsingIsIdempotent(t *testing.T) {
	r := highrise.NewRegistry()
	doc := `<people type="array">
		<person><id type="integer">1</id><first-name>Alice</first-name></person>
		<person><id type="integer">2</id><first-name>Bob</first-name></person>
	</people>`
	first := parse(t, r, doc)
	second := parse(t, r, doc)
	assert.Equal(t, first, second)
}

func TestPersonWithContactData(t *testing.T) {
	r := highrise.NewRegistry()
	rec := parseRecord(t, r, `<person>
		<id type="integer">12</id>
		<first-name>Alice</first-name>
		<last-name>Smith</last-name>
		<company-id type="integer">3</company-id>
		<created-at type="datetime">2009-07-07T12:30:00Z</created-at>
		<contact-data>
			<email-addresses type="array">
				<email-address>
					<id type="integer">1</id>
					<address>alice@example.com</address>
					<location>Work</location>
				</email-address>
			</email-addresses>
			<phone-numbers type="array">
				<phone-number>
					<id type="integer">2</id>
					<number>555-1234</number>
					<location>Home</location>
				</phone-number>
			</phone-numbers>
		</contact-data>
	</person>`)
	assert.Equal(t, "person", rec.Type)
	assert.Equal(t, int64(12), rec.ID)
	assert.Equal(t, "Alice", rec.Str("first-name"))
	assert.Equal(t, time.Date(2009, 7, 7, 12, 30, 0, 0, time.UTC), rec.Time("created-at"))

	cd, ok := rec.Rec("contact-data")
	require.True(t, ok)
	emails := cd.Seq("email-addresses")
	require.Len(t, emails, 1)
	email, ok := emails[0].(highrise.Record)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email.Str("address"))
	assert.Equal(t, "Work", email.Str("location"))
	phones := cd.Seq("phone-numbers")
	require.Len(t, phones, 1)
	phone, ok := phones[0].(highrise.Record)
	require.True(t, ok)
	assert.Equal(t, "555-1234", phone.Str("number"))
}
