// Package export turns journal entries into printable documents.
//
// Entries are selected by a Filter before they reach a Renderer, so a
// renderer only lays out what it is given. PDFRenderer is the one renderer
// shipped today.
package export
