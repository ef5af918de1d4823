// Package fswatch keeps the file index in step with the filesystem.
//
// Crawler walks the configured roots into index entries. Watcher follows
// fsnotify events below the same roots and reports one coalesced change per
// path once it has been quiet for the settle delay.
package fswatch
