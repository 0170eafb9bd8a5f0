package typelib

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/binsight/typelib/errors"
)

// AddJSONFile decodes a serialized library shard and merges every
// bucket into lib. Plain and gzip-compressed files are both accepted;
// compression is detected from the file content.
func (lib *TypeLib) AddJSONFile(path string) error {
	data, err := readMaybeGzip(path)
	if err != nil {
		return err
	}
	other, err := Codec{}.DecodeLibrary(data)
	if err != nil {
		return err
	}
	lib.AddAll(other)
	Logger().Debug("merged shard",
		zap.String("path", path),
		zap.Int("buckets", other.NumBuckets()),
		zap.Int("entries", other.NumEntries()))
	return nil
}

// LoadDir loads every shard file in a directory: the first (in
// file-name order) becomes the base library and the rest are merged
// into it one by one.
func LoadDir(dir string) (*TypeLib, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, dir, err)
	}
	var files []string
	for _, e := range dirEntries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.NotFound(errors.PhaseLoad, dir)
	}

	data, err := readMaybeGzip(files[0])
	if err != nil {
		return nil, err
	}
	lib, err := Codec{}.DecodeLibrary(data)
	if err != nil {
		return nil, err
	}
	for _, f := range files[1:] {
		if err := lib.AddJSONFile(f); err != nil {
			return nil, err
		}
	}
	Logger().Info("loaded type library",
		zap.String("dir", dir),
		zap.Int("shards", len(files)),
		zap.Int("buckets", lib.NumBuckets()),
		zap.Int("entries", lib.NumEntries()))
	return lib, nil
}

// SaveFile writes the corpus as a library document, gzip-compressed
// when compressed is true.
func (lib *TypeLib) SaveFile(path string, compressed bool) error {
	data, err := Codec{}.Encode(lib)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.IO(errors.PhaseEncode, path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if compressed {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if _, err := w.Write(data); err != nil {
		return errors.IO(errors.PhaseEncode, path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return errors.IO(errors.PhaseEncode, path, err)
		}
	}
	return nil
}

// readMaybeGzip slurps a file, transparently decompressing when the
// gzip magic bytes lead.
func readMaybeGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.IO(errors.PhaseLoad, path, err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.IO(errors.PhaseLoad, path, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, path, err)
	}
	return data, nil
}
