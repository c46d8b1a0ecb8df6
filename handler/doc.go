// Package handler adapts typed endpoint functions to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// and returns a Response:
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/sessions/{id}", handler.Wrap(
//		func(ctx handler.Context, req getRequest) handler.Response {
//			sess, err := mgr.Get(req.ID)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(sess.State())
//		},
//		handler.WithBinders[handler.Context, getRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, getRequest](errorHandler),
//	))
//
// Responses include JSON envelopes, plain text, empty bodies and templ
// components, which Datastar clients receive as SSE element patches.
package handler
