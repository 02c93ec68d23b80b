// Package server provides HTTP routing and middleware for the moodmix web service.
//
// # Router
//
// The [Router] interface defines HTTP routing with middleware support.
// [BasicRouter] uses [http.ServeMux] internally. Each path keeps a table of method handlers,
// so a form page and its POST target can share one path; any other method gets 405.
//
// [Middleware] wraps handlers in reverse order so the first one passed to [Chain] runs first.
// Router-wide middleware registered with Use also sees 404 and 405 responses. The chain is
// built when Use is called, so register middleware before serving.
//
// # Middleware
//
//   - [Logging] assigns a request id and logs method, path, status and duration.
//   - [Recover] turns handler panics into 500 responses.
//   - [RateLimiter] keeps a token bucket per client address and answers 429 when it is empty.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
