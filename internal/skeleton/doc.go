// Package skeleton renders static "app shell" loading skeletons from captured layout documents.
//
// Build is a pure function from a layout.Node to an HTML document. The surrounding
// Generator handles directory scanning, atomic output writes, console reporting and
// optional watch mode; per-file failures are reported and never abort a batch.
package skeleton
