// Package sample bundles a static coupon dataset shaped exactly like the
// backend's /api/coupons response. It backs the app when no session or
// Gmail connection is available and flows through the same aggregation
// pipeline as live data.
package sample

import (
	_ "embed"
	"encoding/json"
	"sync"

	offerdomain "couponbox/internal/offer/domain"
)

//go:embed sample_api_output.json
var rawSample []byte

type payload struct {
	AllCoupons []offerdomain.EmailOfferGroup `json:"all_coupons"`
}

var (
	once   sync.Once
	groups []offerdomain.EmailOfferGroup
	err    error
)

// Groups returns the bundled email offer groups. The dataset is parsed once;
// a decode error would be a build defect and is returned on every call.
func Groups() ([]offerdomain.EmailOfferGroup, error) {
	once.Do(func() {
		var p payload
		if err = json.Unmarshal(rawSample, &p); err != nil {
			return
		}
		groups = p.AllCoupons
	})
	return groups, err
}
