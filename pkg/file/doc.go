// Package file stores uploaded assets, such as email images, behind a small
// key/value Storage interface with public URLs.
//
// Two implementations are provided:
//   - LocalStorage: a directory on disk, served by the HTTP API under a URL prefix
//   - S3Storage: AWS S3 and S3-compatible services (MinIO, R2, Wasabi)
//
// Keys are slash-separated and confined to the storage root; keys containing
// ".." are rejected with ErrInvalidPath.
//
//	store, err := file.NewLocalStorage("./uploads", "/uploads/")
//	obj, err := store.Put(ctx, "images/logo.png", r, "image/png")
//	url := store.URL(obj.Key) // "/uploads/images/logo.png"
//
// Helpers cover content sniffing (DetectContentType), image checks (IsImage)
// and limits (ValidateSize, ValidateMIMEType). S3 failures are classified
// into package errors such as ErrFileNotFound, ErrAccessDenied and
// ErrBucketNotFound.
package file
