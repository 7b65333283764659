package profile

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const validRDF = `<?xml version="1.0"?>
<RDF xmlns="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:em="http://www.mozilla.org/2004/em-rdf#">
  <Description about="urn:mozilla:install-manifest">
    <em:id>legacy@example.com</em:id>
    <em:version>1.0</em:version>
  </Description>
</RDF>`

const twoIDsRDF = `<?xml version="1.0"?>
<RDF xmlns="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:em="http://www.mozilla.org/2004/em-rdf#">
  <Description><em:id>a@example.com</em:id></Description>
  <Description><em:id>b@example.com</em:id></Description>
</RDF>`

const wrongRootRDF = `<?xml version="1.0"?>
<Manifest xmlns:em="http://www.mozilla.org/2004/em-rdf#">
  <em:id>a@example.com</em:id>
</Manifest>`

func TestExtensionID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files   map[string]string
		want    string
		wantErr bool
	}{
		"manifest applications id": {
			files: map[string]string{manifestFile: `{"applications": {"gecko": {"id": "fuzz@example.com"}}}`},
			want:  "fuzz@example.com",
		},
		"manifest browser_specific_settings id": {
			files: map[string]string{manifestFile: `{"browser_specific_settings": {"gecko": {"id": "bss@example.com"}}}`},
			want:  "bss@example.com",
		},
		"applications preferred": {
			files: map[string]string{manifestFile: `{
				"browser_specific_settings": {"gecko": {"id": "bss@example.com"}},
				"applications": {"gecko": {"id": "app@example.com"}}
			}`},
			want: "app@example.com",
		},
		"manifest with comments": {
			files: map[string]string{manifestFile: `{
				// installed by the harness
				"applications": {"gecko": {"id": "commented@example.com"}}, /* trailing */
			}`},
			want: "commented@example.com",
		},
		"install.rdf": {
			files: map[string]string{installRDF: validRDF},
			want:  "legacy@example.com",
		},
		"manifest takes precedence over install.rdf": {
			files: map[string]string{
				manifestFile: `{"applications": {"gecko": {"id": "new@example.com"}}}`,
				installRDF:   validRDF,
			},
			want: "new@example.com",
		},
		"manifest without id does not fall back": {
			files: map[string]string{
				manifestFile: `{"name": "no id"}`,
				installRDF:   validRDF,
			},
			wantErr: true,
		},
		"manifest id not a string": {
			files:   map[string]string{manifestFile: `{"applications": {"gecko": {"id": 7}}}`},
			wantErr: true,
		},
		"invalid manifest": {
			files:   map[string]string{manifestFile: `{"applications": `},
			wantErr: true,
		},
		"install.rdf with two ids": {
			files:   map[string]string{installRDF: twoIDsRDF},
			wantErr: true,
		},
		"install.rdf with wrong root": {
			files:   map[string]string{installRDF: wrongRootRDF},
			wantErr: true,
		},
		"install.rdf not xml": {
			files:   map[string]string{installRDF: "not xml"},
			wantErr: true,
		},
		"id escapes extensions directory": {
			files:   map[string]string{manifestFile: `{"applications": {"gecko": {"id": "../evil"}}}`},
			wantErr: true,
		},
		"no metadata": {
			files:   map[string]string{"background.js": ""},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			for rel, content := range tc.files {
				writeFile(t, filepath.Join(dir, rel), content)
			}

			got, err := extensionID(dir, slog.New(slog.DiscardHandler))
			if tc.wantErr {
				if !errors.Is(err, ErrExtensionID) {
					t.Fatalf("extensionID() error = %v, want %v", err, ErrExtensionID)
				}
				return
			}
			if err != nil {
				t.Fatalf("extensionID() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("extensionID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCreate_Extensions(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	xpi := writeFile(t, filepath.Join(src, "fuzzpriv.xpi"), "zip bytes")
	unpacked := filepath.Join(src, "unpacked")
	writeFile(t, filepath.Join(unpacked, manifestFile), `{"applications": {"gecko": {"id": "domfuzz@example.com"}}}`)
	writeFile(t, filepath.Join(unpacked, "content", "main.js"), "main")
	legacy := filepath.Join(src, "legacy")
	writeFile(t, filepath.Join(legacy, installRDF), validRDF)

	p := mustCreate(t, Config{BaseDir: t.TempDir(), Extensions: []string{xpi, unpacked, legacy}})

	ext := filepath.Join(p.Path(), extensionsDir)
	if got := readFile(t, filepath.Join(ext, "fuzzpriv.xpi")); got != "zip bytes" {
		t.Errorf("xpi content = %q", got)
	}
	if got := readFile(t, filepath.Join(ext, "domfuzz@example.com", "content", "main.js")); got != "main" {
		t.Errorf("unpacked content = %q", got)
	}
	if !isFile(filepath.Join(ext, "legacy@example.com", installRDF)) {
		t.Error("legacy extension not installed under its id")
	}
}

func TestCreate_ExtensionErrors(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	notXPI := writeFile(t, filepath.Join(src, "addon.zip"), "zip")
	noID := filepath.Join(src, "noid")
	writeFile(t, filepath.Join(noID, "background.js"), "")
	dupA := writeFile(t, filepath.Join(src, "a", "same.xpi"), "a")
	dupB := writeFile(t, filepath.Join(src, "b", "same.xpi"), "b")

	tests := map[string]struct {
		exts []string
		want error
	}{
		"file without xpi suffix": {exts: []string{notXPI}, want: ErrUnknownExtension},
		"missing path":            {exts: []string{filepath.Join(src, "missing.xpi")}, want: ErrUnknownExtension},
		"directory without id":    {exts: []string{noID}, want: ErrExtensionID},
		"duplicate names":         {exts: []string{dupA, dupB}, want: ErrDuplicateExtension},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			base := t.TempDir()

			_, err := Create(context.Background(), Config{BaseDir: base, Extensions: tc.exts})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Create() error = %v, want %v", err, tc.want)
			}
			entries, rerr := os.ReadDir(base)
			if rerr != nil {
				t.Fatalf("read base: %v", rerr)
			}
			if len(entries) != 0 {
				t.Errorf("base not cleaned up, %d entries left", len(entries))
			}
		})
	}
}
