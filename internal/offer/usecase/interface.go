package usecase

import (
	"context"
	"time"

	"couponbox/pkg/upstream"
)

// CouponAPI is the slice of the backend client the offer usecase needs.
type CouponAPI interface {
	GetCoupons(ctx context.Context, token string) (*upstream.CouponsResponse, error)
	GetEmailHTML(ctx context.Context, token, messageID string) (*upstream.EmailHTMLResponse, error)
	TestAuth(ctx context.Context, token string) error
}

// SessionInfo exposes the session state the offer usecase consults when
// deciding between live and sample data.
type SessionInfo interface {
	Token() string
	IsAuthenticated() bool
	GmailConnected() bool
}

// Dataset sources.
const (
	SourceGmail  = "gmail"
	SourceSample = "sample"
)

// LoadOptions control a dataset load.
type LoadOptions struct {
	// ForceSample skips the backend and loads the bundled dataset.
	ForceSample bool
}

// DatasetStatus describes the currently loaded dataset.
type DatasetStatus struct {
	Source       string     `json:"source"`
	TotalOffers  int        `json:"total_offers"`
	CompanyCount int        `json:"company_count"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

// OfferUsecase loads coupon data (backend or bundled sample), keeps the
// aggregated result, and serves filtered/sorted views of it.
type OfferUsecase interface {
	// LoadCoupons fetches and aggregates a dataset. On error the previously
	// loaded dataset is kept.
	LoadCoupons(ctx context.Context, opts LoadOptions) error
	// View applies the filter parameters to the loaded dataset.
	View(params FilterParams) AggregateResult
	Suggestions(query string, limit int) []string
	EmailHTML(ctx context.Context, messageID string) (string, error)
	Status() DatasetStatus
}
