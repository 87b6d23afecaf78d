// Package backend provides the Flicknest recommendation API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/engine: The hybrid recommendation scoring pipeline
// - internal/normalize: Title and rating normalization for the catalog join
// - internal/textsim: TF-IDF plot similarity
// - internal/models: Raw and prepared data models
// - internal/store: MongoDB catalog and rating log access
// - internal/tracking: Impression/click tracking and CTR reporting
// - internal/movies: Upstream movies API client
// - internal/cache: Redis search cache
// - internal/middleware: HTTP middleware (request IDs, metrics)
// - internal/metrics: Prometheus metric definitions
// - internal/config: Environment configuration

// See the individual package documentation for detailed API reference.
package backend
