package headerscan

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"google.golang.org/api/option"
)

func (o *Options) newStorageClient(ctx context.Context) (*storage.Client, error) {
	opts := append([]option.ClientOption{option.WithoutAuthentication()}, o.StorageOptions...)
	return storage.NewClient(ctx, opts...)
}

// OpenObject opens an object in opts.Bucket. Names ending in .gz are decompressed.
// When opts.StorageClient is nil a client is created from opts.StorageOptions and closed
// along with the returned reader.
func OpenObject(ctx context.Context, name string, opts *Options) (io.ReadCloser, error) {
	opts = opts.withDefaults()
	if opts.Bucket == "" {
		return nil, errors.New("headerscan: no bucket")
	}
	obj := &objectReader{client: opts.StorageClient}
	if obj.client == nil {
		var err error
		obj.client, err = opts.newStorageClient(ctx)
		if err != nil {
			return nil, err
		}
		obj.owned = true
	}
	rdr, err := obj.client.Bucket(opts.Bucket).Object(name).NewReader(ctx)
	if err != nil {
		_ = obj.closeClient() //nolint:errcheck // already failing
		return nil, err
	}
	obj.ReadCloser, err = newObjReader(rdr, name)
	if err != nil {
		_ = obj.closeClient() //nolint:errcheck // already failing
		return nil, err
	}
	return obj, nil
}

// objectReader closes the storage client it created.
type objectReader struct {
	io.ReadCloser
	client *storage.Client
	owned  bool
}

func (o *objectReader) closeClient() error {
	if !o.owned || o.client == nil {
		return nil
	}
	err := o.client.Close()
	o.client = nil
	return err
}

func (o *objectReader) Close() error {
	err := o.ReadCloser.Close()
	clientErr := o.closeClient()
	if err == nil {
		err = clientErr
	}
	return err
}

// OpenFile opens a local file. Names ending in .gz are decompressed.
func OpenFile(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return newObjReader(file, name)
}

func newObjReader(rdr io.ReadCloser, name string) (io.ReadCloser, error) {
	if !strings.HasSuffix(name, ".gz") {
		return rdr, nil
	}
	gzRdr, err := gzip.NewReader(rdr)
	if err != nil {
		_ = rdr.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return &gzipReader{rdr: rdr, gzRdr: gzRdr}, nil
}

type gzipReader struct {
	rdr   io.ReadCloser
	gzRdr *gzip.Reader
}

func (z *gzipReader) Read(p []byte) (n int, err error) {
	return z.gzRdr.Read(p)
}

func (z *gzipReader) Close() error {
	err := z.gzRdr.Close()
	rdrErr := z.rdr.Close()
	if rdrErr != nil {
		return rdrErr
	}
	return err
}
