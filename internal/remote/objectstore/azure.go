package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureAPI is the subset of *azblob.Client used by AzureStore.
type AzureAPI interface {
	UploadStream(ctx context.Context, containerName, blobName string, body io.Reader, o *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error)
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
	URL() string
}

// NewAzureClient creates a blob client from a storage connection string.
func NewAzureClient(connectionString string) (*azblob.Client, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}

type AzureStore struct {
	client    AzureAPI
	container string
}

func NewAzureStore(client AzureAPI, container string) *AzureStore {
	return &AzureStore{client: client, container: container}
}

func (a *AzureStore) Put(ctx context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := a.client.UploadStream(ctx, a.container, key, body, opts); err != nil {
		return classifyBlob("upload", key, err)
	}
	return nil
}

func (a *AzureStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		return nil, classifyBlob("download", key, err)
	}
	return resp.Body, nil
}

func (a *AzureStore) URL(key string) string {
	return JoinURL(a.client.URL(), a.container, key)
}

func (a *AzureStore) KeyFromURL(url string) string {
	return KeyFromURL(url, a.container)
}

func classifyBlob(op, key string, err error) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		return fmt.Errorf("%s blob %s: %w", op, key, ErrNotFound)
	case bloberror.HasCode(err, bloberror.AuthorizationFailure, bloberror.AuthorizationPermissionMismatch,
		bloberror.InsufficientAccountPermissions, bloberror.AuthenticationFailed):
		return fmt.Errorf("%s blob %s: %w", op, key, ErrPermissionDenied)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s blob %s: %w: %v", op, key, ErrUnavailable, err)
	}
	return fmt.Errorf("%s blob %s: %w", op, key, err)
}
