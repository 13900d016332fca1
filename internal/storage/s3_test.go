package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of path-style S3 calls the store makes.
type fakeS3 struct {
	mu          sync.Mutex
	listPrefix  string
	deletedBody string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := r.URL.Query()
	switch {
	case r.Method == http.MethodGet && q.Get("list-type") == "2":
		f.listPrefix = q.Get("prefix")
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>bucket</Name><KeyCount>2</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated><Contents><Key>root/meshes/p1/b.glb</Key></Contents><Contents><Key>root/meshes/p1/a.glb</Key></Contents></ListBucketResult>`)
	case r.Method == http.MethodPost && q.Has("delete"):
		body, _ := io.ReadAll(r.Body)
		f.deletedBody = string(body)
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></DeleteResult>`)
	case r.URL.Path == "/bucket/root/sources/p/house.ifc" && r.Method == http.MethodGet:
		w.Header().Set("Content-Length", "3")
		fmt.Fprint(w, "ISO")
	case r.URL.Path == "/bucket/root/sources/p/house.ifc" && r.Method == http.MethodHead:
		w.Header().Set("Content-Length", "3")
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		w.WriteHeader(http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
	}
}

func newFakeS3Store(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), S3Options{
		Bucket:          "bucket",
		Prefix:          "/root/",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return store, fake
}

func TestS3Store_Open(t *testing.T) {
	store, _ := newFakeS3Store(t)

	rc, err := store.Open(context.Background(), "sources/p/house.ifc")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "ISO", string(data))

	_, err = store.Open(context.Background(), "sources/p/missing.ifc")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3Store_Exists(t *testing.T) {
	store, _ := newFakeS3Store(t)

	ok, err := store.Exists(context.Background(), "sources/p/house.ifc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(context.Background(), "sources/p/missing.ifc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3Store_ListStripsPrefix(t *testing.T) {
	store, fake := newFakeS3Store(t)

	keys, err := store.List(context.Background(), "meshes/p1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"meshes/p1/a.glb", "meshes/p1/b.glb"}, keys)
	assert.Equal(t, "root/meshes/p1/", fake.listPrefix)
}

func TestS3Store_DeletePrefix(t *testing.T) {
	store, fake := newFakeS3Store(t)

	require.NoError(t, store.DeletePrefix(context.Background(), "meshes/p1/"))
	assert.True(t, strings.Contains(fake.deletedBody, "root/meshes/p1/a.glb"))
	assert.True(t, strings.Contains(fake.deletedBody, "root/meshes/p1/b.glb"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{})
	assert.Error(t, err)
}
