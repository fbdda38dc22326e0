// Package editor provides a Bubble Tea source view component backed by the
// buffer package.
//
// The component owns key and mouse handling, viewport scrolling,
// grapheme-aware rendering with tab expansion, a line-number gutter, syntax
// highlighting hooks and change events. A read-only configuration keeps every
// navigation and selection feature while rejecting edits.
package editor
