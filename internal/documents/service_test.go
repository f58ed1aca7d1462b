package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saveErr error
	saved   []string
	deleted []string
	blobs   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string]string)}
}

func (f *fakeStore) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, string, error) {
	if f.saveErr != nil {
		return "", 0, "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := "1000-" + fileName
	f.saved = append(f.saved, key)
	f.blobs[key] = string(data)
	return key, int64(len(data)), "text/plain", nil
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := f.blobs[storageKey]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (f *fakeStore) Delete(ctx context.Context, storageKey string) error {
	f.deleted = append(f.deleted, storageKey)
	delete(f.blobs, storageKey)
	return nil
}

func TestUpload(t *testing.T) {
	store := newFakeStore()
	svc := &Service{Store: store, Repo: NewMemoryRepo()}

	doc, err := svc.Upload(context.Background(), "report.pdf", strings.NewReader("content"), Metadata{
		Title:       "Q3 Report",
		Description: "quarterly numbers",
		Author:      "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "1000-report.pdf", doc.FilePath)

	stored, err := svc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Report", stored.Title)
}

func TestUploadRejectsMissingMetadata(t *testing.T) {
	svc := &Service{Store: newFakeStore(), Repo: NewMemoryRepo()}

	_, err := svc.Upload(context.Background(), "report.pdf", strings.NewReader("content"), Metadata{
		Title: "Q3 Report",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadWrapsStorageError(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("bucket unavailable")
	svc := &Service{Store: store, Repo: NewMemoryRepo()}

	_, err := svc.Upload(context.Background(), "report.pdf", strings.NewReader("content"), Metadata{
		Title:       "Q3 Report",
		Description: "quarterly numbers",
		Author:      "alice",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error uploading file")
	assert.ErrorIs(t, err, store.saveErr)
}

func TestUploadDeletesBlobWhenPersistFails(t *testing.T) {
	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}
	ctx := context.Background()

	_, err := svc.Upload(ctx, "first.pdf", strings.NewReader("a"), Metadata{
		Title:       "Same Title",
		Description: "first",
		Author:      "alice",
	})
	require.NoError(t, err)

	_, err = svc.Upload(ctx, "second.pdf", strings.NewReader("b"), Metadata{
		Title:       "Same Title",
		Description: "second",
		Author:      "bob",
	})
	assert.ErrorIs(t, err, ErrConflict)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, "1000-second.pdf", store.deleted[0])
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	store := newFakeStore()
	svc := &Service{Store: store, Repo: NewMemoryRepo()}
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "report.pdf", strings.NewReader("content"), Metadata{
		Title:       "Q3 Report",
		Description: "quarterly numbers",
		Author:      "alice",
	})
	require.NoError(t, err)

	newTitle := "Q3 Report (final)"
	updated, err := svc.Update(ctx, doc.ID, Partial{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "quarterly numbers", updated.Description)
	assert.Equal(t, "alice", updated.Author)
}

func TestFindAllFiltersBySearch(t *testing.T) {
	store := newFakeStore()
	svc := &Service{Store: store, Repo: NewMemoryRepo()}
	ctx := context.Background()

	for _, meta := range []Metadata{
		{Title: "Q3 Report", Description: "quarterly numbers", Author: "alice"},
		{Title: "Handbook", Description: "onboarding guide", Author: "bob"},
	} {
		_, err := svc.Upload(ctx, meta.Title+".pdf", strings.NewReader("x"), meta)
		require.NoError(t, err)
	}

	docs, err := svc.FindAll(ctx, "report")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Q3 Report", docs[0].Title)

	all, err := svc.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOpenStreamsStoredBlob(t *testing.T) {
	store := newFakeStore()
	svc := &Service{Store: store, Repo: NewMemoryRepo()}
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "report.pdf", strings.NewReader("content"), Metadata{
		Title:       "Q3 Report",
		Description: "quarterly numbers",
		Author:      "alice",
	})
	require.NoError(t, err)

	rc, got, err := svc.Open(ctx, doc.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Equal(t, doc.ID, got.ID)
}
