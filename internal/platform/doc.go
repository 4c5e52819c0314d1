// Package platform contains OS level helpers for directories, file sizes,
// and opening files with system applications.
package platform
