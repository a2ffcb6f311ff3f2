package sanity

import (
	"fmt"
	"regexp"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	DefaultImageHost = "https://cdn.sanity.io"

	groupImages = "sanity-images"
	routeImage  = "image"
)

// image-<id>-<width>x<height>-<format>
var imageRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// ImageAssetID is the decoded form of an image asset reference.
type ImageAssetID struct {
	ID     string
	Width  string
	Height string
	Format string
}

// Filename returns the CDN file name of the asset.
func (a ImageAssetID) Filename() string {
	return fmt.Sprintf("%s-%sx%s.%s", a.ID, a.Width, a.Height, a.Format)
}

// ParseImageRef decodes an asset reference such as
// image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg.
func ParseImageRef(ref string) (ImageAssetID, error) {
	match := imageRefPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if match == nil {
		return ImageAssetID{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	return ImageAssetID{ID: match[1], Width: match[2], Height: match[3], Format: match[4]}, nil
}

// ImageResolver builds CDN URLs for image references.
type ImageResolver struct {
	projectID string
	dataset   string
	routes    *urlkit.RouteManager
}

var _ interfaces.ImageURLResolver = (*ImageResolver)(nil)

// NewImageResolver returns a resolver for projectID and dataset. An empty
// host uses the public CDN.
func NewImageResolver(projectID, dataset, host string) *ImageResolver {
	return &ImageResolver{
		projectID: strings.TrimSpace(projectID),
		dataset:   strings.TrimSpace(dataset),
		routes: urlkit.NewRouteManager(&urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    groupImages,
					BaseURL: hostOrDefault(host, DefaultImageHost),
					Paths: map[string]string{
						routeImage: "/images/:project/:dataset/:file",
					},
				},
			},
		}),
	}
}

// ResolveImageURL implements interfaces.ImageURLResolver.
func (r *ImageResolver) ResolveImageURL(ref interfaces.ImageRef) (url string, err error) {
	asset, err := ParseImageRef(ref.Asset.Ref)
	if err != nil {
		return "", err
	}
	if r.projectID == "" {
		return "", ErrProjectIDRequired
	}
	if r.dataset == "" {
		return "", ErrDatasetRequired
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("sanity: image route unavailable: %v", rec)
		}
	}()
	return r.routes.Group(groupImages).Builder(routeImage).
		WithParam("project", r.projectID).
		WithParam("dataset", r.dataset).
		WithParam("file", asset.Filename()).
		Build()
}
