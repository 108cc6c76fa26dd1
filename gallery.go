// Package gallery provides a browsable catalog over a fixed museum
// collection. Search criteria live in a central store and are mirrored to
// an address bar so that every search is bookmarkable and reachable with
// back/forward navigation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, bubbletea/).
package gallery
