// Package storage wraps the Cloudinary media service used for product,
// promotion and banner images.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// imageFormats mirrors the extensions the admin panel accepts.
var imageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Object is one stored image.
type Object struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UploadResult carries the public URL and the storage path of an upload.
type UploadResult struct {
	URL  string
	Path string
}

type Client struct {
	cld *cloudinary.Cloudinary
}

func NewClient(cloudName, apiKey, apiSecret string) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Client{cld: cld}, nil
}

// Upload stores a file under the given public ID and returns its secure URL.
func (c *Client) Upload(ctx context.Context, file interface{}, publicID string) (UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
	})
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URL: resp.SecureURL, Path: resp.PublicID}, nil
}

// Delete removes a stored image by its path.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: path,
	})
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("destroy %s: %s", path, resp.Result)
	}
	return nil
}

// ListFolder returns the images stored under a folder, name-sorted.
func (c *Client) ListFolder(ctx context.Context, folder string) ([]Object, error) {
	resp, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:  api.Image,
		Prefix:     folder + "/",
		MaxResults: 100,
	})
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(resp.Assets))
	for _, asset := range resp.Assets {
		if !imageFormats[strings.ToLower(asset.Format)] {
			continue
		}
		name := strings.TrimPrefix(asset.PublicID, folder+"/")
		objects = append(objects, Object{
			Name: name + "." + asset.Format,
			URL:  asset.SecureURL,
		})
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Name < objects[j].Name
	})
	return objects, nil
}
