package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Finalize(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	logPath := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logPath, []byte("log line\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("final.log", logPath)
	r.Store("final.log", logPath) // same path is fine
	r.Store("missing.log", filepath.Join(dir, "absent.log"))
	r.StoreData("page-10.yaml", []byte("page: 10"))
	r.StoreData("page-2.yaml", []byte("page: 2"))
	r.StoreData("page-2.yaml", []byte("page: 2 again"))

	input := filepath.Join(dir, "input.yaml")
	if err := os.WriteFile(input, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("input.yaml", input); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// copy is taken at the time of the call
	if err := os.WriteFile(input, []byte("overwritten"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line\n" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["input.yaml"] != "original" {
		t.Errorf("input.yaml = %q", files["input.yaml"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Errorf("absent file must be skipped")
	}
	if files["page-2.yaml"] != "page: 2" {
		t.Errorf("page-2.yaml = %q", files["page-2.yaml"])
	}

	manifest := files["MANIFEST"]
	if strings.Index(manifest, "page-2.yaml") > strings.Index(manifest, "page-10.yaml") {
		t.Errorf("manifest is not in natural order:\n%s", manifest)
	}
	if len(files) != 6 {
		t.Errorf("archive has %d files, want 6: %v", len(files), files)
	}
}

func TestReport_StorePanicsOnConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "/tmp/a.log")
	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "/nonexistent"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() of nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
