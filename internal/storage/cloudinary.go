package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// CloudinaryStore uploads objects to a Cloudinary bucket partitioned by a
// folder prefix.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(url, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "storage: cloudinary init")
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// publicID strips the extension; Cloudinary derives the delivery format from
// the uploaded bytes.
func (s *CloudinaryStore) publicID(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

func (s *CloudinaryStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: s.publicID(name),
		Folder:   s.folder,
	})
	if err != nil {
		return "", errors.Wrap(err, "storage: cloudinary upload")
	}
	if res.Error.Message != "" {
		return "", errors.Errorf("storage: cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStore) Remove(ctx context.Context, name string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: path.Join(s.folder, s.publicID(name)),
	})
	return errors.Wrap(err, "storage: cloudinary destroy")
}
