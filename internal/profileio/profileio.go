// Package profileio loads pprof bytes from a file path or an HTTP(S) URL,
// transparently unwrapping gzip the way pprof profiles are conventionally
// stored, so the caller never has to guess whether its input is compressed.
package profileio

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// gzipMagic is the two-byte gzip header (RFC 1952 §2.3.1).
var gzipMagic = []byte{0x1f, 0x8b}

// Load reads the profile at arg, which may be an http:// or https:// URL or
// a local file path, and returns its decompressed bytes.
func Load(arg string) ([]byte, error) {
	raw, err := read(arg)
	if err != nil {
		return nil, err
	}
	return maybeGunzip(raw)
}

func read(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return fetch(arg)
	}
	return readFile(arg)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profileio: open %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("profileio: read %s: %w", path, err)
	}
	return data, nil
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func fetch(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("profileio: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("profileio: %s returned %s: %s", url, resp.Status, string(body))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("profileio: read body from %s: %w", url, err)
	}
	return data, nil
}

func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || !bytes.Equal(data[:2], gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("profileio: gzip header present but invalid: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("profileio: gzip decompress: %w", err)
	}
	return out, nil
}
