/*
Package ports defines the driven ports (interfaces) used by the builder and the
front ends.

These interfaces decouple deck assembly from the places bytes come from, so the
builder can be exercised with in-memory fakes and the server can swap caches
without touching rendering code.

# Key Interfaces

  - ImageSource: resolves an image reference (data URI, URL or path) to bytes.
  - ImageCache: stores fetched image bytes for a bounded time.
  - DeckLibrary: lists and loads stored deck documents.
*/
package ports
