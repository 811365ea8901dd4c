// Package ui renders command lifecycle events as human-readable console log lines.
package ui
