package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipExtractor decompresses submission ZIP archives.
type ZipExtractor struct{}

// NewZipExtractor returns a zip extractor instance.
func NewZipExtractor() ZipExtractor {
	return ZipExtractor{}
}

// Extract unpacks archive into dir and returns the relative paths of
// the extracted files. Entries that would escape dir are rejected, an
// archive without any regular file is an error.
func (ZipExtractor) Extract(archive []byte, dir string) (files []string, err error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	root := filepath.Clean(dir)
	for _, entry := range reader.File {
		name := filepath.Clean(filepath.FromSlash(entry.Name))
		if name == "." || strings.HasPrefix(name, ".."+string(os.PathSeparator)) || name == ".." || filepath.IsAbs(name) {
			return nil, fmt.Errorf("illegal archive entry path: %s", entry.Name)
		}

		destination := filepath.Join(root, name)
		if entry.FileInfo().IsDir() {
			if err = os.MkdirAll(destination, 0755); err != nil {
				return nil, err
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return nil, err
		}
		if err = writeEntry(entry, destination); err != nil {
			return nil, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		files = append(files, filepath.ToSlash(name))
	}

	if len(files) == 0 {
		return nil, errors.New("archive contains no files")
	}

	return files, nil
}

func writeEntry(entry *zip.File, destination string) error {
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}
