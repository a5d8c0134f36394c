// Package meshflow provides a minimal public façade for building meshes and
// deriving their flow links without importing internal packages. It
// re-exports the core mesh types and exposes a Runtime that stores meshes and
// generates their flow links.
package meshflow
