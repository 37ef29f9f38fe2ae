package highrise

import (
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/gorilla/schema"
)

// PageSize is the fixed number of records Highrise returns per collection page.
const PageSize = 500

// ListOptions carries the optional query parameters of a collection fetch. The zero value (and a nil
// pointer) means no parameters. Page is zero-based; the service expresses paging as a record offset, so
// page p maps to n=p*PageSize.
type ListOptions struct {
	Page  int       `schema:"-"`
	Since time.Time `schema:"since"`
	Term  string    `schema:"term,omitempty"`
	Title string    `schema:"title,omitempty"`
	TagID int64     `schema:"tag_id,omitempty"`
}

var queryEncoder = newQueryEncoder()

func newQueryEncoder() *schema.Encoder {
	e := schema.NewEncoder()
	// Highrise wants timestamps as yyyymmddhhmmss in UTC.
	e.RegisterEncoder(time.Time{}, func(v reflect.Value) string {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("20060102150405")
	})
	return e
}

func (o *ListOptions) values() (url.Values, error) {
	q := make(url.Values)
	if o == nil {
		return q, nil
	}
	if err := queryEncoder.Encode(o, q); err != nil {
		return nil, err
	}
	for k, vs := range q {
		if len(vs) == 0 || vs[0] == "" {
			q.Del(k)
		}
	}
	if o.Page > 0 {
		q.Set("n", strconv.Itoa(o.Page*PageSize))
	}
	return q, nil
}
