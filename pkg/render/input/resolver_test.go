package input

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/molviz/molrender/pkg/errors"
)

const samplePDB = "HEADER    TEST STRUCTURE\nATOM      1  CA  ALA A   1       0.000   0.000   0.000\nEND\n"

func TestResolveLocalPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.pdb")
	if err := os.WriteFile(path, []byte(samplePDB), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewResolver().Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != path {
		t.Errorf("Path = %q, want %q", got.Path, path)
	}
	if got.Temporary {
		t.Error("local path marked temporary")
	}
}

func TestResolveLocalPathEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.pdb")
	if err := os.WriteFile(path, []byte(samplePDB), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOLRENDER_TEST_DIR", dir)

	got, err := NewResolver().Resolve(context.Background(), "$MOLRENDER_TEST_DIR/sample.pdb")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != path {
		t.Errorf("Path = %q, want %q", got.Path, path)
	}
}

func TestResolveLocalPathMissing(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.pdb"))
	if !errors.Is(err, errors.ErrCodeInputNotFound) {
		t.Fatalf("err = %v, want INPUT_NOT_FOUND", err)
	}
}

func TestResolveLocalPathIsDirectory(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), t.TempDir())
	if !errors.Is(err, errors.ErrCodeInputNotFound) {
		t.Fatalf("err = %v, want INPUT_NOT_FOUND", err)
	}
}

func TestResolveInlinePayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(samplePDB))
	got, err := NewResolver().Resolve(context.Background(), "base64file://upload.pdb/"+encoded)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	t.Cleanup(func() { os.Remove(got.Path) })

	if !got.Temporary {
		t.Error("inline payload not marked temporary")
	}
	if !strings.HasSuffix(got.Path, ".pdb") {
		t.Errorf("temp file %q missing structure suffix", got.Path)
	}
	data, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != samplePDB {
		t.Errorf("decoded content mismatch: %q", data)
	}
}

func TestResolveInlineMalformed(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"no separator", "base64file://just-a-filename"},
		{"empty filename", "base64file:///Zm9v"},
		{"bad base64", "base64file://x.pdb/!!!not-base64!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver().Resolve(context.Background(), tt.ref)
			if !errors.Is(err, errors.ErrCodeInputMalformed) {
				t.Fatalf("err = %v, want INPUT_MALFORMED", err)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(samplePDB))
	}))
	defer srv.Close()

	got, err := NewResolver().Resolve(context.Background(), srv.URL+"/structures/1abc.pdb")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	t.Cleanup(func() { os.Remove(got.Path) })

	if !got.Temporary {
		t.Error("downloaded file not marked temporary")
	}
	if !strings.HasPrefix(gotUA, "molrender/") {
		t.Errorf("User-Agent = %q, want molrender/*", gotUA)
	}
	data, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != samplePDB {
		t.Errorf("downloaded content mismatch: %q", data)
	}
}

func TestResolveURLHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewResolver().Resolve(context.Background(), srv.URL+"/missing.pdb")
	if !errors.Is(err, errors.ErrCodeInputNetwork) {
		t.Fatalf("err = %v, want INPUT_NETWORK", err)
	}
}

func TestResolveURLConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed: connection will be refused

	_, err := NewResolver().Resolve(context.Background(), srv.URL+"/x.pdb")
	if !errors.Is(err, errors.ErrCodeInputNetwork) {
		t.Fatalf("err = %v, want INPUT_NETWORK", err)
	}
}

func TestSuffixFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"1abc.pdb", ".pdb"},
		{"1abc.cif", ".cif"},
		{"1ABC.MMCIF", ".mmcif"},
		{"pdb1abc.ent", ".ent"},
		{"1abc", ".pdb"},
		{"download", ".pdb"},
	}
	for _, tt := range tests {
		if got := suffixFor(tt.filename); got != tt.want {
			t.Errorf("suffixFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
