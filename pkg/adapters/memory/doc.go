// Package memory provides in-process implementations of the image cache and
// deck library ports, for tests and single-node deployments.
package memory
