// Package builder assembles normalized requests into PPTX artifacts using the
// GoPPT presentation model.
package builder
