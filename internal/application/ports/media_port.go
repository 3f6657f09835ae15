package ports

// MediaStore stores item photo binaries. Implementations exist for the local
// filesystem and for S3-compatible object storage.
type MediaStore interface {
	// Put stores data under key and returns the public URL of the object.
	Put(key, contentType string, data []byte) (string, error)
	Delete(key string) error
}
