package catalog

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ImageResolver turns a catalog image reference into the absolute URL stored on the record.
type ImageResolver interface {
	Resolve(ref string) (string, error)
}

// BaseURLResolver serves images from the application origin.
type BaseURLResolver struct {
	base *url.URL
}

// NewBaseURLResolver parses baseURL, which must be absolute.
func NewBaseURLResolver(baseURL string) (*BaseURLResolver, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	return &BaseURLResolver{base: u}, nil
}

func (r *BaseURLResolver) Resolve(ref string) (string, error) {
	if abs, ok := absolute(ref); ok {
		return abs, nil
	}
	return r.base.JoinPath(strings.TrimPrefix(ref, "/")).String(), nil
}

// CloudinaryResolver serves images from a Cloudinary cloud; the reference minus its extension is the public ID.
type CloudinaryResolver struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryResolver builds delivery URLs for cloudName. Delivery URLs need no API credentials.
func NewCloudinaryResolver(cloudName string) (*CloudinaryResolver, error) {
	cld, err := cloudinary.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	// Stored URLs must not carry the SDK analytics query parameter.
	cld.Config.URL.Analytics = false
	return &CloudinaryResolver{cld: cld}, nil
}

func (r *CloudinaryResolver) Resolve(ref string) (string, error) {
	if abs, ok := absolute(ref); ok {
		return abs, nil
	}
	publicID := strings.TrimSuffix(strings.TrimPrefix(ref, "/"), path.Ext(ref))
	img, err := r.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build image asset %q: %w", publicID, err)
	}
	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build image URL %q: %w", publicID, err)
	}
	return u, nil
}

func absolute(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return ref, true
}
