package profileio_test

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/profileio"
)

func TestLoad_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.pb")
	require.NoError(t, os.WriteFile(path, []byte("raw-profile-bytes"), 0o644))

	data, err := profileio.Load(path)
	require.NoError(t, err)
	require.Equal(t, []byte("raw-profile-bytes"), data)
}

func TestLoad_GzippedFileIsTransparentlyDecompressed(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("compressed-profile"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "profile.pb.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	data, err := profileio.Load(path)
	require.NoError(t, err)
	require.Equal(t, []byte("compressed-profile"), data)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := profileio.Load(filepath.Join(t.TempDir(), "missing.pb"))
	require.Error(t, err)
}

func TestLoad_HTTPEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("served-profile"))
	}))
	defer srv.Close()

	data, err := profileio.Load(srv.URL)
	require.NoError(t, err)
	require.Equal(t, []byte("served-profile"), data)
}

func TestLoad_HTTPNonOKStatusReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := profileio.Load(srv.URL)
	require.Error(t, err)
}
