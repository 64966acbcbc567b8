package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{uri: "gs://reports/q3/summary.pdf", wantBucket: "reports", wantObject: "q3/summary.pdf"},
		{uri: " gs://b/o.pdf ", wantBucket: "b", wantObject: "o.pdf"},
		{uri: "https://storage.googleapis.com/b/o.pdf", wantErr: true},
		{uri: "gs://bucket-only", wantErr: true},
		{uri: "gs://bucket/", wantErr: true},
		{uri: "gs:///object.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := ParseGCSURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantObject, object)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("PDFINSIGHT_INT", "7")
	t.Setenv("PDFINSIGHT_BAD_INT", "seven")
	t.Setenv("PDFINSIGHT_BOOL", "true")
	t.Setenv("PDFINSIGHT_EMPTY", "")

	n, err := GetEnvInt("PDFINSIGHT_INT", 5)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = GetEnvInt("PDFINSIGHT_EMPTY", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = GetEnvInt("PDFINSIGHT_BAD_INT", 5)
	assert.Error(t, err)

	b, err := GetEnvBool("PDFINSIGHT_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = GetEnvBool("PDFINSIGHT_UNSET_BOOL", true)
	require.NoError(t, err)
	assert.True(t, b)

	assert.Equal(t, "", GetEnv("PDFINSIGHT_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PDFINSIGHT_UNSET", "fallback"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(storage.ErrObjectNotExist))
	assert.True(t, isNotFound(fmt.Errorf("reader: %w", storage.ErrBucketNotExist)))
	assert.True(t, isNotFound(&googleapi.Error{Code: http.StatusNotFound}))
	assert.False(t, isNotFound(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, isNotFound(errors.New("connection reset")))
}
