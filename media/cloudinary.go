package media

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores images on Cloudinary. Uploads are folderless so the
// public id is exactly the last URL path segment, which keeps AssetID a
// valid deletion token.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a store from a cloudinary:// URL.
func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, image string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, image, uploader.UploadParams{})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, assetID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: assetID})
	return err
}
