// Package cloudwriter uploads simulation artifacts to object storage.
package cloudwriter

import "context"

// CloudWriter buffers writes and uploads the object on Close. The upload
// runs under the context the writer was created with.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}
