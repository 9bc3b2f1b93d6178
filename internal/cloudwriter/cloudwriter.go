// Package cloudwriter streams result exports to object storage.
package cloudwriter

// Writer buffers bytes for one remote object and uploads on Close.
type Writer interface {
	Write(data []byte) (int, error)
	Close() error
}

// Factory creates writers bound to a bucket and object path.
type Factory interface {
	NewWriter(bucket, objectPath string) (Writer, error)
}
