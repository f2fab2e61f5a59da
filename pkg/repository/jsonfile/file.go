package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// encodeDocument renders v with 4-space indentation, keeping non-ASCII
// characters and HTML-sensitive characters as they are
func encodeDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeDocument replaces path with the encoded document. The data goes to a
// temporary file in the same directory first and is renamed into place.
func writeDocument(ctx context.Context, path string, v any) error {
	data, err := encodeDocument(v)
	if err != nil {
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to encode document",
			goerr.V(model.PathKey, path))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to create data directory",
			goerr.V(model.PathKey, dir))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to create temporary file",
			goerr.V(model.PathKey, path))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		safe.Close(ctx, tmp)
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to write temporary file",
			goerr.V(model.PathKey, tmpPath))
	}
	if err := tmp.Sync(); err != nil {
		safe.Close(ctx, tmp)
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to sync temporary file",
			goerr.V(model.PathKey, tmpPath))
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to close temporary file",
			goerr.V(model.PathKey, tmpPath))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to replace document",
			goerr.V(model.PathKey, path))
	}

	return nil
}

// flexString decodes strings as they are and numbers or booleans as their
// JSON text. Objects, lists and null decode to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case '{', '[', 'n':
		*s = ""
	default:
		*s = flexString(trimmed)
	}
	return nil
}

// flexInt decodes integers, floats and numeric strings. Anything else,
// including null, decodes to 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if v, err := strconv.Atoi(s); err == nil {
		*n = flexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = flexInt(math.Round(f))
	return nil
}
