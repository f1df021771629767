package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajadmin/ajadmin/internal/config"
)

func TestFileName(t *testing.T) {
	testCases := []struct {
		original string
		suffix   string
	}{
		{original: "photo.png", suffix: "-photo.png"},
		{original: "../../etc/passwd", suffix: "-passwd"},
		{original: `C:\Users\me\avatar.jpg`, suffix: "-avatar.jpg"},
		{original: "", suffix: "-image"},
	}

	for _, tc := range testCases {
		t.Run(tc.original, func(t *testing.T) {
			name := FileName(tc.original)
			assert.True(t, strings.HasSuffix(name, tc.suffix), name)
			assert.NotContains(t, name, "/")
		})
	}
}

func TestFileSystem(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewFileSystem(root)

	require.NoError(t, store.Save(ctx, DirBlog, "a.png", strings.NewReader("png")))

	raw, err := os.ReadFile(filepath.Join(root, DirBlog, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(raw))

	require.NoError(t, store.Remove(ctx, DirBlog, "a.png"))
	require.ErrorIs(t, store.Remove(ctx, DirBlog, "a.png"), ErrNotExist)

	require.ErrorIs(t, store.Save(ctx, DirBlog, "../escape.png", strings.NewReader("x")), ErrInvalidName)
	require.ErrorIs(t, store.Remove(ctx, DirBlog, ".."), ErrInvalidName)
}

type recordingStore struct {
	removed []string
	err     error
}

func (r *recordingStore) Save(context.Context, string, string, io.Reader) error { return nil }

func (r *recordingStore) Remove(_ context.Context, dir, name string) error {
	r.removed = append(r.removed, dir+"/"+name)

	return r.err
}

func TestUnlink(t *testing.T) {
	store := &recordingStore{}

	Unlink(context.Background(), store, DirProduct, "", "a.png", "nested/../b.png", "  ")
	assert.Equal(t, []string{DirProduct + "/a.png", DirProduct + "/b.png"}, store.removed)

	// failures are swallowed
	failing := &recordingStore{err: errors.New("disk on fire")}
	Unlink(context.Background(), failing, DirProduct, "c.png")
	assert.Len(t, failing.removed, 1)

	root := t.TempDir()
	Unlink(context.Background(), NewFileSystem(root), DirApplication, "missing.png")
}

type fakeS3 struct {
	puts    []s3.PutObjectInput
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, *in)

	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))

	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{}
	store := &S3{client: client, bucket: "images", prefix: "shop"}

	require.NoError(t, store.Save(ctx, DirProduct, "1-shoe.jpg", strings.NewReader("jpg")))
	require.Len(t, client.puts, 1)
	assert.Equal(t, "images", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "shop/productImages/1-shoe.jpg", aws.ToString(client.puts[0].Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.puts[0].ContentType))

	require.NoError(t, store.Remove(ctx, DirProduct, "1-shoe.jpg"))
	assert.Equal(t, []string{"shop/productImages/1-shoe.jpg"}, client.deletes)

	client.err = errors.New("access denied")
	require.Error(t, store.Save(ctx, DirProduct, "2.jpg", strings.NewReader("jpg")))
	require.Error(t, store.Remove(ctx, DirProduct, "2.jpg"))
}

func TestNew(t *testing.T) {
	store, err := New(context.Background(), config.Storage{Backend: "filesystem", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileSystem{}, store)

	_, err = New(context.Background(), config.Storage{Backend: "ftp"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}
