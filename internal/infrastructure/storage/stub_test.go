package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadURL(t *testing.T) {
	s := NewStubObjectStorage()

	url, expiresAt, err := s.GenerateUploadURL(context.Background(), "alumni-photo/abc.jpg", "image/jpeg", 15*time.Minute)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/upload/alumni-photo/abc.jpg"))
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
}

func TestStubObjectStorage_DownloadURL(t *testing.T) {
	s := NewStubObjectStorage()

	url, _, err := s.GenerateDownloadURL(context.Background(), "post-cover/abc.jpg", time.Hour)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/download/post-cover/abc.jpg"))
}

func TestStubObjectStorage_EmptyKeyRejected(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	_, _, err := s.GenerateUploadURL(ctx, "", "image/jpeg", time.Minute)
	assert.Error(t, err)

	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.Error(t, err)

	assert.Error(t, s.DeleteObject(ctx, ""))

	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
}

func TestStubObjectStorage_ObjectExists(t *testing.T) {
	s := NewStubObjectStorage()

	exists, err := s.ObjectExists(context.Background(), "anything")

	require.NoError(t, err)
	assert.True(t, exists)
}
