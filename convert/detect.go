package convert

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"reflow/archive"
)

// sniffLen is how much of the file filetype needs to recognize any of its
// matchers.
const sniffLen = 262

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile reports zip archives, file extension must agree with content.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.IsArchive(head) && filetype.Is(head, "zip"), nil
}

// isPageDocument accepts yaml and json files which are text. Extracted page
// images, pdf files and other binaries lying around are rejected even when
// somebody gave them a wrong extension.
func isPageDocument(name string, r io.Reader) (bool, error) {
	if !archive.PageDocuments(filepath.ToSlash(name)) {
		return false, nil
	}
	head, err := readHead(r)
	if err != nil {
		return false, err
	}
	if len(head) == 0 {
		return false, nil
	}
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return false, nil
	}
	return true, nil
}

func isPageFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return isPageDocument(filepath.Base(path), f)
}

func isPageInArchive(f *zip.File) (bool, error) {
	if !archive.PageDocuments(f.Name) {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()
	return isPageDocument(f.Name, r)
}
