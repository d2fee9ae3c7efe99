package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"couponbox/internal/offer/sample"
	"couponbox/pkg/fuzzy"

	log "github.com/sirupsen/logrus"
)

// ErrNotAuthenticated is returned when an operation needs a backend session
// and none is present.
var ErrNotAuthenticated = errors.New("offer: not authenticated")

// offerUsecase implements OfferUsecase
type offerUsecase struct {
	api     CouponAPI
	session SessionInfo

	mu          sync.RWMutex
	result      AggregateResult
	source      string
	lastUpdated time.Time
}

// NewOfferUsecase creates the offer usecase. Call LoadCoupons before serving
// views; an unloaded usecase serves empty ones.
func NewOfferUsecase(api CouponAPI, session SessionInfo) OfferUsecase {
	return &offerUsecase{api: api, session: session}
}

// LoadCoupons decides between the backend and the bundled sample dataset the
// way the app does: live data needs an authenticated session with Gmail
// connected, everything else falls back to the sample. Errors leave the
// previously loaded dataset untouched.
func (u *offerUsecase) LoadCoupons(ctx context.Context, opts LoadOptions) error {
	if opts.ForceSample || !u.session.IsAuthenticated() || !u.session.GmailConnected() {
		return u.loadSample()
	}

	token := u.session.Token()
	if err := u.api.TestAuth(ctx, token); err != nil {
		log.WithError(err).Warn("Authentication check failed, keeping current dataset")
		return err
	}

	resp, err := u.api.GetCoupons(ctx, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch coupons")
		return err
	}

	result := Aggregate(resp.AllCoupons)
	u.install(result, SourceGmail)
	log.WithFields(log.Fields{
		"offers":    len(result.Offers),
		"companies": len(result.Companies),
	}).Info("Loaded coupon data from backend")
	return nil
}

func (u *offerUsecase) loadSample() error {
	groups, err := sample.Groups()
	if err != nil {
		return fmt.Errorf("failed to load sample dataset: %w", err)
	}
	result := Aggregate(groups)
	u.install(result, SourceSample)
	log.WithFields(log.Fields{
		"offers":    len(result.Offers),
		"companies": len(result.Companies),
	}).Info("Loaded sample coupon data")
	return nil
}

func (u *offerUsecase) install(result AggregateResult, source string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.result = result
	u.source = source
	u.lastUpdated = time.Now()
}

// View filters and sorts the loaded dataset. The pipeline is pure, so
// concurrent views are fine.
func (u *offerUsecase) View(params FilterParams) AggregateResult {
	u.mu.RLock()
	offers := u.result.Offers
	u.mu.RUnlock()
	return FilterAndSort(offers, params)
}

// Suggestions ranks company names, brands and offer titles against a partial
// query.
func (u *offerUsecase) Suggestions(query string, limit int) []string {
	if query == "" {
		return nil
	}
	u.mu.RLock()
	offers := u.result.Offers
	u.mu.RUnlock()

	candidates := make([]string, 0, len(offers)*3)
	for i := range offers {
		o := &offers[i]
		if name := o.RawCompanyName(); name != "" {
			candidates = append(candidates, name)
		}
		if o.OfferBrand != "" {
			candidates = append(candidates, o.OfferBrand)
		}
		if o.OfferTitle != "" {
			candidates = append(candidates, o.OfferTitle)
		}
	}
	return fuzzy.Rank(query, candidates, limit)
}

// EmailHTML fetches the raw HTML of the email behind a coupon group.
func (u *offerUsecase) EmailHTML(ctx context.Context, messageID string) (string, error) {
	token := u.session.Token()
	if token == "" {
		return "", ErrNotAuthenticated
	}
	resp, err := u.api.GetEmailHTML(ctx, token, messageID)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		detail := resp.Error
		if detail == "" {
			detail = "email not available"
		}
		return "", fmt.Errorf("failed to get email HTML: %s", detail)
	}
	return resp.HTMLContent, nil
}

func (u *offerUsecase) Status() DatasetStatus {
	u.mu.RLock()
	defer u.mu.RUnlock()
	status := DatasetStatus{
		Source:       u.source,
		TotalOffers:  len(u.result.Offers),
		CompanyCount: len(u.result.Companies),
	}
	if !u.lastUpdated.IsZero() {
		t := u.lastUpdated
		status.LastUpdated = &t
	}
	return status
}
