package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type entry struct {
	name    string
	content string
}

func createZip(t *testing.T, entries []entry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "pages.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func visit(t *testing.T, zipPath string, match MatchFunc) []string {
	t.Helper()
	var visited []string
	err := Walk(zipPath, match, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, []entry{
		{"book/page-10.yaml", "page: 10"},
		{"book/page-2.yaml", "page: 2"},
		{"book/page-1.json", `{"page": 1}`},
		{"book/cover.png", "png"},
		{"book/.page-3.yaml", "hidden"},
		{"__MACOSX/book/page-4.yaml", "fork"},
		{"readme.txt", "readme"},
	})

	t.Run("page documents in natural order", func(t *testing.T) {
		got := visit(t, zipPath, PageDocuments)
		want := []string{"book/page-1.json", "book/page-2.yaml", "book/page-10.yaml"}
		if !slices.Equal(got, want) {
			t.Errorf("visited %q, want %q", got, want)
		}
	})

	t.Run("everything", func(t *testing.T) {
		if got := visit(t, zipPath, nil); len(got) != 7 {
			t.Errorf("visited %d files, want 7", len(got))
		}
	})

	t.Run("walkFn returns error", func(t *testing.T) {
		stop := errors.New("stop")
		var n int
		err := Walk(zipPath, PageDocuments, func(string, *zip.File) error {
			n++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Walk() error = %v, want %v", err, stop)
		}
		if n != 1 {
			t.Errorf("walkFn called %d times after error", n)
		}
	})

	t.Run("content", func(t *testing.T) {
		err := Walk(zipPath, func(name string) bool { return name == "book/page-2.yaml" }, func(_ string, file *zip.File) error {
			rc, err := file.Open()
			if err != nil {
				return err
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return err
			}
			if string(data) != "page: 2" {
				t.Errorf("content = %q", data)
			}
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk(filepath.Join(t.TempDir(), "missing.zip"), nil, func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("Walk() expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(p, []byte("not a zip file"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(p, nil, func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Walk() expected error for invalid zip")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := createZip(t, []entry{
			{"page-1.yaml", "page: 1"},
			{"../evil.yaml", "page: 2"},
		})
		called := false
		err := Walk(zipPath, nil, func(string, *zip.File) error {
			called = true
			return nil
		})
		if err == nil {
			t.Error("Walk() expected error for unsafe entry")
		}
		if called {
			t.Error("entries visited from unsafe archive")
		}
	})
}

func TestPageDocuments(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"page-1.yaml", true},
		{"pages/page-1.YML", true},
		{"a/b/page.json", true},
		{"page.txt", false},
		{".page.yaml", false},
		{".hidden/page.yaml", false},
		{"__MACOSX/page.yaml", false},
		{"page.yaml.bak", false},
	}
	for _, tt := range tests {
		if got := PageDocuments(tt.name); got != tt.want {
			t.Errorf("PageDocuments(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"page.yaml", true},
		{"a/b/page.yaml", true},
		{"a/..b/page.yaml", true},
		{"/etc/passwd", false},
		{`\windows\file`, false},
		{"a/../../page.yaml", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
