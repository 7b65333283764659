package profile

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/ffharness/internal/fileutil"
	"github.com/giantswarm/ffharness/internal/sentinel"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// ErrExtensionID is returned when the id of an unpacked extension cannot
	// be determined from its manifest.json or install.rdf.
	ErrExtensionID = sentinel.Error("failed to find extension id")

	// ErrUnknownExtension is returned for an extension path that is neither
	// an .xpi file nor a directory.
	ErrUnknownExtension = sentinel.Error("unknown extension")

	// ErrDuplicateExtension is returned when two extensions would be
	// installed under the same name.
	ErrDuplicateExtension = sentinel.Error("duplicate extension")
)

const (
	manifestFile = "manifest.json"
	installRDF   = "install.rdf"
)

// manifestIDPaths lists the gjson paths of the gecko id, in lookup order.
var manifestIDPaths = []string{
	"applications.gecko.id",
	"browser_specific_settings.gecko.id",
}

// extension is an install source resolved to its name under extensions/.
type extension struct {
	src   string
	name  string
	isDir bool
}

// installExtensions copies every extension into dst. Names are resolved up
// front so that a bad extension fails before anything is copied.
func installExtensions(ctx context.Context, dst string, srcs []string, log *slog.Logger) error {
	exts := make([]extension, 0, len(srcs))
	names := sets.New[string]()
	for _, src := range srcs {
		ext, err := resolveExtension(src, log)
		if err != nil {
			return err
		}
		if names.Has(ext.name) {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, ext.name)
		}
		names.Insert(ext.name)
		exts = append(exts, ext)
	}

	if err := fileutil.EnsureDir(dst); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ext := range exts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(dst, ext.name)
			log.Debug("installing extension", "src", ext.src, "dst", target)
			if ext.isDir {
				if err := fileutil.CopyDir(ext.src, target); err != nil {
					return fmt.Errorf("install extension %s: %w", ext.src, err)
				}
				return nil
			}
			if err := fileutil.CopyFile(ext.src, target, 0); err != nil {
				return fmt.Errorf("install extension %s: %w", ext.src, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func resolveExtension(src string, log *slog.Logger) (extension, error) {
	info, err := os.Stat(src)
	switch {
	case err == nil && info.Mode().IsRegular() && strings.HasSuffix(src, ".xpi"):
		return extension{src: src, name: filepath.Base(src)}, nil
	case err == nil && info.IsDir():
		id, err := extensionID(src, log)
		if err != nil {
			return extension{}, err
		}
		abs, err := filepath.Abs(src)
		if err != nil {
			return extension{}, fmt.Errorf("resolve extension %s: %w", src, err)
		}
		return extension{src: abs, name: id, isDir: true}, nil
	default:
		return extension{}, fmt.Errorf("%w: %s", ErrUnknownExtension, src)
	}
}

// extensionID reads the id of an unpacked extension. manifest.json takes
// precedence; install.rdf is consulted only when there is no manifest.
func extensionID(dir string, log *slog.Logger) (string, error) {
	var (
		id  string
		err error
	)
	switch {
	case isFile(filepath.Join(dir, manifestFile)):
		id, err = manifestID(filepath.Join(dir, manifestFile))
	case isFile(filepath.Join(dir, installRDF)):
		id, err = rdfID(filepath.Join(dir, installRDF))
	default:
		err = errors.New("no manifest.json or install.rdf")
	}
	if err == nil {
		err = validateID(id)
	}
	if err != nil {
		log.Debug("failed to read extension id", "path", dir, "error", err)
		return "", fmt.Errorf("%w: %s", ErrExtensionID, dir)
	}
	return id, nil
}

// manifestID extracts the gecko id from a WebExtension manifest. Manifests
// may contain comments, which are stripped before parsing.
func manifestID(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: extension paths come from harness configuration
	if err != nil {
		return "", err
	}
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("invalid JSON in %s", path)
	}
	for _, p := range manifestIDPaths {
		if r := gjson.GetBytes(data, p); r.Type == gjson.String {
			return r.Str, nil
		}
	}
	return "", fmt.Errorf("no gecko id in %s", path)
}

// rdfManifest is the subset of a legacy install manifest that carries the id.
type rdfManifest struct {
	XMLName      xml.Name `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# RDF"`
	Descriptions []struct {
		IDs []string `xml:"http://www.mozilla.org/2004/em-rdf# id"`
	} `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description"`
}

// rdfID extracts the id from install.rdf. The document must have exactly one
// em:id element directly below a top-level Description.
func rdfID(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: see manifestID
	if err != nil {
		return "", err
	}
	var m rdfManifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	var ids []string
	for _, d := range m.Descriptions {
		ids = append(ids, d.IDs...)
	}
	if len(ids) != 1 {
		return "", fmt.Errorf("%s: expected one em:id, found %d", path, len(ids))
	}
	return strings.TrimSpace(ids[0]), nil
}

// validateID rejects ids that cannot be used as a single directory name.
func validateID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("unusable extension id %q", id)
	}
	return nil
}
