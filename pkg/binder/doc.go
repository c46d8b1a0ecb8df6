// Package binder turns HTTP request parts into typed request structs for
// handler.Wrap. Each binder owns one struct tag:
//
//	type imageRequest struct {
//		SessionID   string            `path:"id"`
//		ComponentID string            `path:"cid"`
//		Image       binder.FileUpload `file:"image"`
//	}
//
// Binders return ErrBinderNotApplicable when the request carries nothing for
// them, which Wrap treats as a skip.
package binder
