package highrise_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gmarchetti/thirtyseven/highrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *highrise.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := highrise.NewClient("test", "secret", highrise.WithEndpoint(srv.URL))
	require.Nil(t, err)
	return c
}

func TestPeopleList(t *testing.T) {
	var gotPath, gotUser string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<people type="array">
			<person><id type="integer">1</id><first-name>Alice</first-name></person>
			<person><id type="integer">2</id><first-name>Bob</first-name></person>
		</people>`))
	}))
	people, err := c.People(nil)
	require.Nil(t, err)
	assert.Equal(t, "/people.xml", gotPath)
	assert.Equal(t, "secret", gotUser)
	require.Len(t, people, 2)
	assert.Equal(t, int64(1), people[0].ID)
	assert.Equal(t, "Alice", people[0].Str("first-name"))
}

func TestGetPerson(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/42.xml", r.URL.Path)
		_, _ = w.Write([]byte(`<person><id type="integer">42</id><first-name>Carol</first-name></person>`))
	}))
	person, err := c.Person(42)
	require.Nil(t, err)
	assert.Equal(t, int64(42), person.ID)
	assert.Equal(t, "Carol", person.Str("first-name"))
}

func TestSubResourceList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/42/notes.xml", r.URL.Path)
		_, _ = w.Write([]byte(`<notes type="array"><note><id type="integer">9</id><body>hi</body></note></notes>`))
	}))
	notes, err := c.PersonNotes(42)
	require.Nil(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "hi", notes[0].Str("body"))
}

func TestListOptionsEncoding(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "smith", q.Get("term"))
		assert.Equal(t, "1000", q.Get("n"))
		assert.Equal(t, "20090707123000", q.Get("since"))
		_, _ = w.Write([]byte(`<people type="array"></people>`))
	}))
	_, err := c.People(&highrise.ListOptions{
		Page:  2,
		Term:  "smith",
		Since: time.Date(2009, 7, 7, 12, 30, 0, 0, time.UTC),
	})
	require.Nil(t, err)
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "something broke", http.StatusInternalServerError)
	}))
	_, err := c.People(nil)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, highrise.ErrStatusCode))
	var remote *highrise.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Contains(t, remote.Error(), "500")
}

func TestUnknownResource(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	_, err := c.List("gadgets", nil)
	assert.NotNil(t, err)
	_, err = c.SubList("people", 1, "gadgets")
	assert.NotNil(t, err)
}

func TestDestroy(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/people/7.xml", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	require.Nil(t, c.Destroy("people", 7))
}
