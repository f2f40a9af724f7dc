package slides

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	slidesapi "google.golang.org/api/slides/v1"

	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
)

const (
	// PresentationMimeType is the Drive MIME type of Google Slides files
	PresentationMimeType = "application/vnd.google-apps.presentation"

	thumbnailCacheSize = 64
	thumbnailCacheTTL  = 5 * time.Minute
)

// Authorizer provides authenticated HTTP clients for Google APIs
type Authorizer interface {
	Ready() bool
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// Client wraps the Google Slides and Drive API services
type Client struct {
	auth       Authorizer
	metrics    *instrumentation.Metrics
	logger     *slog.Logger
	thumbnails *expirable.LRU[string, []SlideThumbnail]

	// options are appended to every service constructor
	options []option.ClientOption
}

// NewClient creates a client that authorizes requests through auth.
// metrics may be nil.
func NewClient(auth Authorizer, metrics *instrumentation.Metrics, opts ...option.ClientOption) *Client {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &Client{
		auth:       auth,
		metrics:    metrics,
		logger:     logging.WithComponent(slog.Default(), "slides"),
		thumbnails: expirable.NewLRU[string, []SlideThumbnail](thumbnailCacheSize, nil, thumbnailCacheTTL),
		options:    opts,
	}
}

// Ready reports whether Google authorization has completed
func (c *Client) Ready() bool {
	return c.auth.Ready()
}

func (c *Client) clientOptions(ctx context.Context) ([]option.ClientOption, error) {
	if !c.auth.Ready() {
		return nil, ErrNotAuthenticated
	}
	hc, err := c.auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return append([]option.ClientOption{option.WithHTTPClient(hc)}, c.options...), nil
}

func (c *Client) slidesService(ctx context.Context) (*slidesapi.Service, error) {
	opts, err := c.clientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := slidesapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}
	return svc, nil
}

func (c *Client) driveService(ctx context.Context) (*drive.Service, error) {
	opts, err := c.clientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return svc, nil
}

// fetch retrieves a presentation with tracing and metrics
func (c *Client) fetch(ctx context.Context, operation, id string) (*slidesapi.Presentation, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceSlides, operation,
		instrumentation.NewSpanAttributeBuilder().WithPresentation(id).Build()...)
	defer span.End()

	start := time.Now()
	status := instrumentation.StatusSuccess
	defer func() {
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceSlides, operation, status, time.Since(start))
	}()

	svc, err := c.slidesService(ctx)
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	p, err := svc.Presentations.Get(id).Context(ctx).Do()
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
		return nil, translateError("load presentation", err)
	}

	instrumentation.SetSpanSuccess(span)
	return p, nil
}

// LoadPresentation fetches the presentation and summarizes its slides
func (c *Client) LoadPresentation(ctx context.Context, id string) (*Presentation, error) {
	if id == "" {
		return nil, fmt.Errorf("presentation ID is required")
	}

	p, err := c.fetch(ctx, instrumentation.OperationGet, id)
	if err != nil {
		c.logger.Warn("failed to load presentation", logging.Presentation(id), logging.Err(err))
		return nil, err
	}

	out, err := parsePresentation(id, p)
	if err != nil {
		return nil, err
	}

	c.logger.Info("loaded presentation",
		logging.Presentation(id),
		slog.String("title", out.Title),
		slog.Int("slide_count", out.SlideCount))

	return out, nil
}

// PresentationSlides returns a thumbnail link for every slide of the presentation.
// Results are cached per presentation for a few minutes.
func (c *Client) PresentationSlides(ctx context.Context, id string) ([]SlideThumbnail, error) {
	if id == "" {
		return nil, fmt.Errorf("presentation ID is required")
	}

	if cached, ok := c.thumbnails.Get(id); ok {
		return cached, nil
	}

	p, err := c.fetch(ctx, instrumentation.OperationThumbnails, id)
	if err != nil {
		return nil, err
	}

	thumbs, err := parseThumbnails(id, p)
	if err != nil {
		return nil, err
	}

	c.thumbnails.Add(id, thumbs)
	return thumbs, nil
}

// ListPresentations returns the presentations in the user's Drive
func (c *Client) ListPresentations(ctx context.Context) ([]PresentationFile, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceDrive, instrumentation.OperationList)
	defer span.End()

	start := time.Now()
	status := instrumentation.StatusSuccess
	defer func() {
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceDrive, instrumentation.OperationList, status, time.Since(start))
	}()

	svc, err := c.driveService(ctx)
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	resp, err := svc.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("mimeType='%s'", PresentationMimeType)).
		Fields("files(id,name,thumbnailLink,modifiedTime)").
		OrderBy("modifiedTime desc").
		Do()
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
		return nil, translateError("list presentations", err)
	}

	files := make([]PresentationFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		if f == nil {
			continue
		}
		files = append(files, PresentationFile{
			ID:            f.Id,
			Name:          f.Name,
			ThumbnailLink: f.ThumbnailLink,
			ModifiedTime:  f.ModifiedTime,
		})
	}

	instrumentation.SetSpanSuccess(span)
	return files, nil
}
