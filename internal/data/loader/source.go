// Package loader reads survey datasets and their dictionaries from local
// files or http(s) URLs, unpacking gzip and zip archives on the way.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/penwyp/go-survey-explorer/internal/core/cache"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyArchive      = errors.New("archive contains no files")
	ErrMissingColumn     = errors.New("missing column")
)

// Format is the decoded payload kind.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

var gzipMagic = []byte{0x1f, 0x8b}
var zipMagic = []byte("PK\x03\x04")

// Payload is a fully read, decompressed source.
type Payload struct {
	// Name is the innermost file name, e.g. the zip entry.
	Name   string
	Format Format
	Data   []byte
}

// HTTPClient fetches remote sources. Tests may replace it.
var HTTPClient = http.DefaultClient

// Downloads holds remote bodies between reloads.
var Downloads = cache.NewMemoryCache(512 << 20)

// Read fetches src once and unpacks it. Remote sources honour ctx.
func Read(ctx context.Context, src string) (*Payload, error) {
	raw, err := fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	name := sourceName(src)
	util.LogDebug(fmt.Sprintf("Read %d bytes from %s", len(raw), src))
	return unpack(name, raw)
}

func fetch(ctx context.Context, src string) ([]byte, error) {
	if isRemote(src) {
		return fetchRemote(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

// fetchRemote revalidates a cached body when one exists and serves the cached
// body when the remote cannot be reached.
func fetchRemote(ctx context.Context, src string) ([]byte, error) {
	cached, hit := Downloads.Get(src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src, err)
	}
	if hit {
		if cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}
		if cached.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.LastModified)
		}
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		if hit && ctx.Err() == nil {
			util.LogWarnf("Fetch %s failed, using cached copy: %v", src, err)
			return cached.Data, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && hit:
		Downloads.Touch(src)
		util.LogDebug(fmt.Sprintf("Remote %s not modified", src))
		return cached.Data, nil
	case resp.StatusCode != http.StatusOK:
		if hit && resp.StatusCode >= 500 {
			util.LogWarnf("Fetch %s returned %s, using cached copy", src, resp.Status)
			return cached.Data, nil
		}
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	Downloads.Set(src, &cache.MemoryCacheEntry{
		Data:         data,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	})
	return data, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func sourceName(src string) string {
	if isRemote(src) {
		u := src
		if i := strings.IndexAny(u, "?#"); i >= 0 {
			u = u[:i]
		}
		return path.Base(u)
	}
	return filepath.Base(src)
}

// unpack peels compression layers until a known format is left.
func unpack(name string, data []byte) (*Payload, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", name, err)
		}
		defer zr.Close()
		inner, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", name, err)
		}
		innerName := strings.TrimSuffix(name, filepath.Ext(name))
		if zr.Name != "" {
			innerName = zr.Name
		}
		return unpack(innerName, inner)

	case bytes.HasPrefix(data, zipMagic) && !isWorkbook(name, data):
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("open zip %s: %w", name, err)
		}
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || strings.HasPrefix(path.Base(f.Name), ".") {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s in %s: %w", f.Name, name, err)
			}
			inner, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, fmt.Errorf("decompress %s in %s: %w", f.Name, name, err)
			}
			return unpack(path.Base(f.Name), inner)
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptyArchive, name)
	}

	format, err := detectFormat(name, data)
	if err != nil {
		return nil, err
	}
	return &Payload{Name: name, Format: format, Data: data}, nil
}

// isWorkbook tells an xlsx file apart from a plain zip archive.
func isWorkbook(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return true
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == "[Content_Types].xml" {
			return true
		}
	}
	return false
}

func detectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX, nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}
