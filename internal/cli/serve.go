package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/molviz/molrender/pkg/errors"
	"github.com/molviz/molrender/pkg/pipeline"
	"github.com/molviz/molrender/pkg/queue"
	"github.com/molviz/molrender/pkg/registry"
)

// defaultListen is the serve address when neither the flag nor the config
// file sets one.
const defaultListen = ":8080"

// serveCommand creates the serve command, which exposes the operation
// registry over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render operations over HTTP",
		Long: `Serve the operation registry over HTTP.

Endpoints:
  GET  /v1/operations         list available operations
  POST /v1/operations/{name}  invoke an operation with a JSON body`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.Config.Listen
			}
			if listen == "" {
				listen = defaultListen
			}
			return c.runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string) error {
	reg, err := c.newRegistry()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           newRouter(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	c.Logger.Info("serving operations", "addr", listen, "operations", reg.Names())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// newRegistry builds the immutable operation table served over HTTP.
func (c *CLI) newRegistry() (*registry.Registry, error) {
	return registry.New(
		registry.Operation{
			Name:        "render",
			Description: "Render a structure reference to a PNG image",
			Handler:     c.renderOperation,
		},
		registry.Operation{
			Name:        "queue",
			Description: "Scan a folder of structure files and select one",
			Handler:     queueOperation,
		},
	)
}

// renderResponse is the JSON body returned by the render operation.
type renderResponse struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Engine      string `json:"engine"`
	DurationMS  int64  `json:"duration_ms"`
	ImageBase64 string `json:"image_base64"`
}

func (c *CLI) renderOperation(ctx context.Context, body json.RawMessage) (any, error) {
	var opts pipeline.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputMalformed, err, "invalid render request")
	}
	if opts.Engine == "" {
		opts.Engine = c.Config.Engine
	}
	opts.Logger = c.Logger

	result, err := pipeline.NewRunner(c.Logger).Execute(ctx, opts)
	if err != nil {
		return nil, err
	}

	img := result.Batch.Images[0]
	return renderResponse{
		Width:       img.Width,
		Height:      img.Height,
		Engine:      result.EnginePath,
		DurationMS:  result.Stats.Total().Milliseconds(),
		ImageBase64: base64.StdEncoding.EncodeToString(result.Raster),
	}, nil
}

// queueRequest is the JSON body accepted by the queue operation.
type queueRequest struct {
	Dir     string `json:"dir"`
	Pattern string `json:"pattern,omitempty"`
	Sort    string `json:"sort,omitempty"`
	Order   string `json:"order,omitempty"`
	Index   int    `json:"index,omitempty"`
}

// queueResponse is the JSON body returned by the queue operation.
type queueResponse struct {
	Files    []string `json:"files"`
	Selected string   `json:"selected"`
}

func queueOperation(_ context.Context, body json.RawMessage) (any, error) {
	var req queueRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputMalformed, err, "invalid queue request")
	}

	files, err := queue.Scan(req.Dir, req.Pattern, req.Sort, req.Order)
	if err != nil {
		return nil, err
	}
	selected, err := queue.Pick(files, req.Index)
	if err != nil {
		return nil, err
	}
	return queueResponse{Files: files, Selected: selected}, nil
}

// operationInfo describes one registry entry in the listing endpoint.
type operationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// newRouter builds the HTTP routing tree over the registry.
func newRouter(reg *registry.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/v1/operations", func(w http.ResponseWriter, _ *http.Request) {
		infos := make([]operationInfo, 0, reg.Len())
		for _, name := range reg.Names() {
			op, _ := reg.Get(name)
			infos = append(infos, operationInfo{Name: op.Name, Description: op.Description})
		}
		writeJSON(w, http.StatusOK, infos)
	})

	r.Post("/v1/operations/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		op, ok := reg.Get(name)
		if !ok {
			writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeInternal, "unknown operation %q", name))
			return
		}

		var body json.RawMessage
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInputMalformed, err, "invalid JSON body"))
			return
		}

		result, err := op.Handler(req.Context(), body)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	return r
}

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInputMalformed, errors.ErrCodeUnknownPreset, errors.ErrCodeInvalidValue:
		return http.StatusBadRequest
	case errors.ErrCodeInputNotFound, errors.ErrCodeQueueDirNotFound, errors.ErrCodeQueueEmpty:
		return http.StatusNotFound
	case errors.ErrCodeInputNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeEngineNotFound:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
