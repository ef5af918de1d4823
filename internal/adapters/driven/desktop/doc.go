// Package desktop implements the platform ports of the launcher: the
// application catalog query, subprocess runner, opener, clipboard, icon
// resolver and path probe.
//
// Applications are read from XDG .desktop entries and from .app bundles, so
// the same query serves Linux and macOS directory layouts.
package desktop
