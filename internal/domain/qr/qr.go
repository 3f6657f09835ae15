// Package qr builds the lookup URLs encoded into item QR codes.
//
// The payload is derived solely from the item name and the configured base
// URL, so relabeling an item only requires reprinting its sticker, and two
// items with the same name intentionally share a payload.
package qr

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is the public lookup page the club runs.
const DefaultBaseURL = "https://vtcwoerden.nl/materiaal/?object="

// BuildURL returns baseURL with the percent-encoded item name appended.
// Pure and total: an empty name yields baseURL unchanged.
func BuildURL(baseURL, name string) string {
	return baseURL + url.QueryEscape(name)
}

// FallbackImageURL returns the URL of an externally rendered QR image for the
// given payload, used when the primary renderer is unavailable.
func FallbackImageURL(payload string, sizePx int) string {
	return fmt.Sprintf("https://chart.googleapis.com/chart?cht=qr&chs=%dx%d&chl=%s&choe=UTF-8",
		sizePx, sizePx, url.QueryEscape(payload))
}
