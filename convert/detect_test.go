package convert

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()
	real := createArchive(t, map[string]string{"page-1.yaml": samplePage})

	fake := filepath.Join(dir, "fake.zip")
	writeFile(t, fake, "not really an archive")
	misnamed := filepath.Join(dir, "pages.txt")
	data, err := os.ReadFile(real)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, misnamed, string(data))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"zip", real, true},
		{"zip content with wrong extension", misnamed, false},
		{"zip extension with wrong content", fake, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if err != nil {
				t.Fatalf("isArchiveFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("isArchiveFile() expected error for missing file")
	}
}

func TestIsPageFile(t *testing.T) {
	dir := t.TempDir()
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01"

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"yaml", "page-1.yaml", samplePage, true},
		{"yml", "page-1.yml", samplePage, true},
		{"json", "page-1.json", `{"page": 1, "blocks": []}`, true},
		{"image with yaml extension", "page-1.yaml", png, false},
		{"text", "notes.txt", "text", false},
		{"empty", "empty.yaml", "", false},
		{"hidden", ".page-1.yaml", samplePage, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name, tt.file)
			writeFile(t, path, tt.content)
			got, err := isPageFile(path)
			if err != nil {
				t.Fatalf("isPageFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isPageFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPageInArchive(t *testing.T) {
	arc := createArchive(t, map[string]string{
		"book/page-1.yaml":      samplePage,
		"book/cover.png":        "\x89PNG\r\n\x1a\n",
		"__MACOSX/page-1.yaml":  samplePage,
		"book/scan/page-2.json": `{"page": 2}`,
	})
	r, err := zip.OpenReader(arc)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	want := map[string]bool{
		"book/page-1.yaml":      true,
		"book/cover.png":        false,
		"__MACOSX/page-1.yaml":  false,
		"book/scan/page-2.json": true,
	}
	for _, f := range r.File {
		got, err := isPageInArchive(f)
		if err != nil {
			t.Fatalf("isPageInArchive(%s) error = %v", f.Name, err)
		}
		if got != want[f.Name] {
			t.Errorf("isPageInArchive(%s) = %v, want %v", f.Name, got, want[f.Name])
		}
	}
}

func TestIsPageDocumentReader(t *testing.T) {
	// shorter than sniffing buffer
	ok, err := isPageDocument("p.yaml", strings.NewReader("page: 1"))
	if err != nil || !ok {
		t.Errorf("isPageDocument() = %v, %v", ok, err)
	}
	ok, err = isPageDocument("p.yaml", bytes.NewReader([]byte("%PDF-1.7\n")))
	if err != nil || ok {
		t.Errorf("pdf accepted as page document: %v, %v", ok, err)
	}
}
