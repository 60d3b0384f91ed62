// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming
//     request, injecting it into the context and response headers for
//     tracing paste-UI submissions through the logs.
//
// These middleware components are designed to be registered globally in the
// serve command's application setup.
package middleware
