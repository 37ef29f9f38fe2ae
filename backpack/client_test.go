package backpack_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gmarchetti/thirtyseven/backpack"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *backpack.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := backpack.NewClient("test", "tok123", backpack.WithEndpoint(srv.URL))
	require.Nil(t, err)
	return c
}

func TestRequestEnvelope(t *testing.T) {
	var gotPath, gotBody string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`<response success="true"><reminder id="7">Pick up laundry</reminder></response>`))
	}))
	rem, err := c.CreateReminder("Pick up laundry")
	require.Nil(t, err)
	assert.Equal(t, "/ws/reminders/create", gotPath)
	assert.Equal(t, "<request><token>tok123</token><reminder><content>Pick up laundry</content></reminder></request>", gotBody)
	assert.Equal(t, int64(7), rem.Int("id"))
	content, ok := rem.Get("content")
	assert.True(t, ok)
	assert.Equal(t, "Pick up laundry", content)
}

func TestApplicationErrorDecoding(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response success="false"><error code="100">Bad token</error></response>`))
	}))
	_, err := c.ListPages()
	require.NotNil(t, err)
	var remote *backpack.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "100", remote.Code)
	assert.Equal(t, "Bad token", remote.Message)
}

func TestTransportErrorReportsStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	_, err := c.ListPages()
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, backpack.ErrStatusCode))
	var remote *backpack.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Contains(t, remote.Error(), "500")
}

func TestUnsuccessfulWithoutErrorChild(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response></response>`))
	}))
	_, err := c.ListPages()
	require.NotNil(t, err)
	var remote *backpack.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "", remote.Code)
}

func TestListPages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response success="true"><pages>
			<page id="39" title="Ideas" scope="all"/>
			<page id="40" title="Groceries" scope="all"/>
		</pages></response>`))
	}))
	pages, err := c.ListPages()
	require.Nil(t, err)
	require.Len(t, pages, 2)
	title, ok := pages[0].Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Ideas", title)
	assert.Equal(t, int64(40), pages[1].Int("id"))
}

func TestEmptyAttributesAreAbsent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response success="true"><pages><page id="1" title="" scope="all"/></pages></response>`))
	}))
	pages, err := c.ListPages()
	require.Nil(t, err)
	require.Len(t, pages, 1)
	_, ok := pages[0].Get("title")
	assert.False(t, ok, "empty attribute should not be in the set")
}

func TestDeprecatedCallWarnsAndExecutes(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`<response success="true"><item id="3">Milk</item></response>`))
	}))
	item, err := c.AddItem(1, "Milk")
	require.Nil(t, err)
	assert.True(t, called, "deprecated call must still execute")
	assert.Equal(t, int64(3), item.Int("id"))
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestPageCache(t *testing.T) {
	fetches := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(`<response success="true"><pages><page id="39" title="Ideas"/></pages></response>`))
	}))

	id, err := c.PageID("Ideas")
	require.Nil(t, err)
	assert.Equal(t, int64(39), id)
	_, err = c.PageID("Ideas")
	require.Nil(t, err)
	assert.Equal(t, 1, fetches, "second lookup should hit the cache")

	_, err = c.PageID("Missing")
	assert.True(t, errors.Is(err, backpack.ErrNoSuchPage))

	c.InvalidatePages()
	_, err = c.PageID("Ideas")
	require.Nil(t, err)
	assert.Equal(t, 2, fetches, "invalidation should force a refetch")
}
