// Package ui contains the Fyne desktop interface: the download form, the
// progress area fed by worker events, the recent-downloads list and the
// settings dialog. All UI strings are localized via Localization.
package ui
