package offertype

import "strings"

// Scheme is the presentation color set for one offer type.
type Scheme struct {
	Background string    `json:"background"`
	Border     string    `json:"border"`
	Text       string    `json:"text"`
	Gradient   [2]string `json:"gradient"`
}

// offer_type is an open vocabulary; these tables cover the types the
// extraction backend is known to emit, everything else gets the fallback.
var schemes = map[string]Scheme{
	"discount": {
		Background: "#dcfce7",
		Border:     "#16a34a",
		Text:       "#15803d",
		Gradient:   [2]string{"#22c55e", "#16a34a"},
	},
	"coupon": {
		Background: "#dbeafe",
		Border:     "#2563eb",
		Text:       "#1d4ed8",
		Gradient:   [2]string{"#3b82f6", "#1d4ed8"},
	},
	"free_shipping": {
		Background: "#fed7aa",
		Border:     "#ea580c",
		Text:       "#c2410c",
		Gradient:   [2]string{"#f59e0b", "#d97706"},
	},
	"bogo": {
		Background: "#fce7f3",
		Border:     "#db2777",
		Text:       "#be185d",
		Gradient:   [2]string{"#ec4899", "#dc2626"},
	},
	"free_gift": {
		Background: "#cffafe",
		Border:     "#0891b2",
		Text:       "#0e7490",
		Gradient:   [2]string{"#06b6d4", "#0891b2"},
	},
	"loyalty_points": {
		Background: "#fef2f2",
		Border:     "#dc2626",
		Text:       "#b91c1c",
		Gradient:   [2]string{"#ef4444", "#dc2626"},
	},
}

var defaultScheme = Scheme{
	Background: "#f3f4f6",
	Border:     "#6b7280",
	Text:       "#4b5563",
	Gradient:   [2]string{"#10b981", "#059669"},
}

var labels = map[string]string{
	"discount":       "Discount",
	"coupon":         "Coupon",
	"free_shipping":  "Free Ship",
	"bogo":           "BOGO",
	"free_gift":      "Free Gift",
	"loyalty_points": "Points",
}

var icons = map[string]string{
	"discount":       "pricetag",
	"coupon":         "ticket",
	"free_shipping":  "car",
	"bogo":           "copy",
	"free_gift":      "gift",
	"loyalty_points": "star",
}

// Colors returns the color scheme for an offer type.
func Colors(offerType string) Scheme {
	if s, ok := schemes[offerType]; ok {
		return s
	}
	return defaultScheme
}

// Label returns the short display label for an offer type. Unknown types are
// derived from the tag itself; empty types fall back to "OFFER".
func Label(offerType string) string {
	if l, ok := labels[offerType]; ok {
		return l
	}
	if offerType == "" {
		return "OFFER"
	}
	return strings.ToUpper(strings.ReplaceAll(offerType, "_", " "))
}

// Icon returns the icon name for an offer type.
func Icon(offerType string) string {
	if i, ok := icons[offerType]; ok {
		return i
	}
	return "pricetag"
}
