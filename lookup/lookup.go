// The lookup package adapts the Highrise contact inventory to a directory-search interface: a query is
// an ordered list of field constraints, the result a list of flat name/email/phone projections. It is
// the Go counterpart of an address-book backend; a host program maps its query syntax onto Constraint
// values and renders the Results however it likes.
//
// There is no server-side filtering. The whole people collection is fetched, page by page, every time,
// and constraints are applied client side; contact inventories are small enough that this is fine.
package lookup // import "github.com/gmarchetti/thirtyseven/lookup"

import (
	"fmt"
	"strings"

	"github.com/gmarchetti/thirtyseven/highrise"
)

// Field names one attribute of a directory entry. Name, Email and Phone may be used in constraints;
// all five may be requested in a result projection.
type Field int

const (
	Name Field = iota
	Email
	Phone
	FirstName
	LastName
)

func (f Field) String() string {
	switch f {
	case Name:
		return "name"
	case Email:
		return "email"
	case Phone:
		return "phone"
	case FirstName:
		return "firstname"
	case LastName:
		return "lastname"
	default:
		return fmt.Sprintf("%d", int(f))
	}
}

// Constraint restricts matches on one field. Name patterns match as case-insensitive substrings of the
// display name; Email and Phone patterns must equal one of the contact's addresses or numbers exactly.
type Constraint struct {
	Field   Field
	Pattern string
}

// Result is one matching contact, flattened. Email and Phone hold all of the contact's addresses and
// numbers joined by ", ".
type Result struct {
	FirstName string
	LastName  string
	Name      string
	Email     string
	Phone     string
}

// PeopleSource is the slice of the Highrise client the adapter needs. *highrise.Client satisfies it.
type PeopleSource interface {
	People(opts *highrise.ListOptions) ([]highrise.Record, error)
}

// contact keeps the individual addresses and numbers alongside the projection, because matching is
// per-address while the projection is joined.
type contact struct {
	result Result
	emails []string
	phones []string
}

type predicate func(*contact) bool

// Search fetches all contacts and returns those matching every constraint, projected into Results. If
// want is non-empty, only the wanted fields are kept in each result, and a matching contact with any
// wanted field empty is dropped entirely rather than returned partially blank.
func Search(src PeopleSource, constraints []Constraint, want []Field) ([]Result, error) {
	predicates := make([]predicate, 0, len(constraints))
	for _, cs := range constraints {
		p, err := compile(cs)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	people, err := fetchAll(src)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, rec := range people {
		c := project(rec)
		if !matches(&c, predicates) {
			continue
		}
		r, keep := restrict(c.result, want)
		if keep {
			results = append(results, r)
		}
	}
	return results, nil
}

func compile(cs Constraint) (predicate, error) {
	switch cs.Field {
	case Name:
		needle := strings.ToLower(cs.Pattern)
		return func(c *contact) bool {
			return strings.Contains(strings.ToLower(c.result.Name), needle)
		}, nil
	case Email:
		return func(c *contact) bool {
			for _, a := range c.emails {
				if a == cs.Pattern {
					return true
				}
			}
			return false
		}, nil
	case Phone:
		return func(c *contact) bool {
			for _, n := range c.phones {
				if n == cs.Pattern {
					return true
				}
			}
			return false
		}, nil
	default:
		return nil, fmt.Errorf("unsupported search field: %v", cs.Field)
	}
}

func matches(c *contact, predicates []predicate) bool {
	for _, match := range predicates {
		if !match(c) {
			return false
		}
	}
	return true
}

func fetchAll(src PeopleSource) ([]highrise.Record, error) {
	var all []highrise.Record
	for page := 0; ; page++ {
		recs, err := src.People(&highrise.ListOptions{Page: page})
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
		if len(recs) < highrise.PageSize {
			return all, nil
		}
	}
}

func project(rec highrise.Record) contact {
	var c contact
	c.result.FirstName = rec.Str("first-name")
	c.result.LastName = rec.Str("last-name")
	c.result.Name = strings.TrimSpace(c.result.FirstName + " " + c.result.LastName)
	if cd, ok := rec.Rec("contact-data"); ok {
		for _, v := range cd.Seq("email-addresses") {
			if e, ok := v.(highrise.Record); ok {
				if addr := e.Str("address"); addr != "" {
					c.emails = append(c.emails, addr)
				}
			}
		}
		for _, v := range cd.Seq("phone-numbers") {
			if p, ok := v.(highrise.Record); ok {
				if num := p.Str("number"); num != "" {
					c.phones = append(c.phones, num)
				}
			}
		}
	}
	c.result.Email = strings.Join(c.emails, ", ")
	c.result.Phone = strings.Join(c.phones, ", ")
	return c
}

// restrict applies the caller's field allow-list. The second return value is false when the result must
// be dropped because a wanted field is empty.
func restrict(r Result, want []Field) (Result, bool) {
	if len(want) == 0 {
		return r, true
	}
	var out Result
	for _, f := range want {
		var v string
		switch f {
		case FirstName:
			v = r.FirstName
		case LastName:
			v = r.LastName
		case Name:
			v = r.Name
		case Email:
			v = r.Email
		case Phone:
			v = r.Phone
		}
		if v == "" {
			return Result{}, false
		}
		switch f {
		case FirstName:
			out.FirstName = v
		case LastName:
			out.LastName = v
		case Name:
			out.Name = v
		case Email:
			out.Email = v
		case Phone:
			out.Phone = v
		}
	}
	return out, true
}
