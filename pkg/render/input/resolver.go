// Package input normalizes a structure reference into a local file path.
//
// A reference may be a filesystem path (with ~ and environment-variable
// expansion), an http(s) URL, or an inline base64-encoded payload tagged
// with a filename. Resolution guarantees the returned path names an
// existing regular file before rendering begins.
package input

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/molviz/molrender/pkg/buildinfo"
	"github.com/molviz/molrender/pkg/errors"
)

// InlineScheme marks an inline payload reference:
// base64file://<filename>/<base64-body>.
const InlineScheme = "base64file://"

// FetchTimeout bounds the remote download. There is no retry; the timeout is
// the only network bound.
const FetchTimeout = 30 * time.Second

// structureSuffixes are the recognized structure-file extensions. URLs whose
// tail has none of these get a .pdb suffix appended.
var structureSuffixes = []string{".pdb", ".cif", ".mmcif", ".ent"}

// Resolved is the outcome of reference resolution. Temporary marks paths the
// resolver created (decoded or downloaded copies) that the caller should
// remove after the render completes.
type Resolved struct {
	Path      string
	Temporary bool
}

// Resolver normalizes structure references. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	client    *http.Client
	userAgent string
}

// NewResolver creates a Resolver with a bounded-timeout HTTP client and the
// application's identifying User-Agent.
func NewResolver() *Resolver {
	return &Resolver{
		client:    &http.Client{Timeout: FetchTimeout},
		userAgent: buildinfo.UserAgent(),
	}
}

// Resolve turns a structure reference into a local path to an existing
// regular file. The context bounds the download of remote references.
// Failure kinds: INPUT_MALFORMED for a bad inline payload, INPUT_NETWORK
// for transport or HTTP errors, INPUT_NOT_FOUND when the resolved path is
// absent.
func (r *Resolver) Resolve(ctx context.Context, reference string) (Resolved, error) {
	reference = strings.TrimSpace(reference)

	var (
		resolved Resolved
		err      error
	)
	switch {
	case strings.HasPrefix(reference, InlineScheme):
		resolved, err = r.resolveInline(reference)
	case strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://"):
		resolved, err = r.resolveURL(ctx, reference)
	default:
		resolved, err = resolveLocal(reference)
	}
	if err != nil {
		return Resolved{}, err
	}

	info, statErr := os.Stat(resolved.Path)
	if statErr != nil || !info.Mode().IsRegular() {
		return Resolved{}, errors.New(errors.ErrCodeInputNotFound, "structure file not found: %s", resolved.Path)
	}
	return resolved, nil
}

// resolveInline decodes a base64file:// payload into a temporary structure
// file. The reference must split into exactly a filename and a body on the
// first separator.
func (r *Resolver) resolveInline(reference string) (Resolved, error) {
	filename, body, ok := strings.Cut(strings.TrimPrefix(reference, InlineScheme), "/")
	if !ok || filename == "" {
		return Resolved{}, errors.New(errors.ErrCodeInputMalformed,
			"invalid inline reference: expected %s<filename>/<base64-body>", InlineScheme)
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputMalformed, err,
			"invalid base64 payload for %s", filename)
	}

	path, err := writeTemp(data, suffixFor(filename))
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInternal, err, "write decoded structure")
	}
	return Resolved{Path: path, Temporary: true}, nil
}

// resolveURL downloads the reference to a temporary structure file.
func (r *Resolver) resolveURL(ctx context.Context, url string) (Resolved, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputNetwork, err, "invalid URL %s", url)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputNetwork, err, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Resolved{}, errors.New(errors.ErrCodeInputNetwork,
			"failed to download %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputNetwork, err, "failed to read %s", url)
	}

	path, err := writeTemp(data, suffixFor(urlFilename(url)))
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInternal, err, "write downloaded structure")
	}
	return Resolved{Path: path, Temporary: true}, nil
}

// resolveLocal expands ~ and $VAR tokens and makes the path absolute.
func resolveLocal(reference string) (Resolved, error) {
	expanded, err := homedir.Expand(os.ExpandEnv(reference))
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputNotFound, err, "cannot expand path %s", reference)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Resolved{}, errors.Wrap(errors.ErrCodeInputNotFound, err, "cannot resolve path %s", reference)
	}
	return Resolved{Path: abs}, nil
}

// urlFilename derives a filename from the URL tail, defaulting when the tail
// is empty.
func urlFilename(url string) string {
	tail := url[strings.LastIndex(url, "/")+1:]
	if tail == "" {
		return "downloaded.pdb"
	}
	return tail
}

// suffixFor returns the structure-file suffix to use for a temp copy of the
// given filename, defaulting to .pdb when the name has no recognized suffix.
func suffixFor(filename string) string {
	lower := strings.ToLower(filename)
	for _, suffix := range structureSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return suffix
		}
	}
	return ".pdb"
}

// writeTemp persists data to a fresh temporary file with the given suffix.
func writeTemp(data []byte, suffix string) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("molrender-*%s", suffix))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
