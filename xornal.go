// Package xornal retrieves articles published by Galician news outlets and
// normalizes their source markup (NewsML-style XML feeds and scraped HTML
// pages) into a single canonical article document stored as JSON.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, goquery/, resty/).
package xornal
