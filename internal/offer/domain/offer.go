package domain

// UnknownCompany is the bucket for offers whose source email carries no
// resolvable company name.
const UnknownCompany = "Unknown Company"

// Offer is a single deal extracted from a marketing email. All fields except
// the title are optional; offer_type is an open string tag, not a closed enum.
type Offer struct {
	OfferTitle         string   `json:"offer_title"`
	OfferDescription   string   `json:"offer_description,omitempty"`
	OfferType          string   `json:"offer_type,omitempty"`
	DiscountType       string   `json:"discount_type,omitempty"`
	DiscountAmount     string   `json:"discount_amount,omitempty"`
	CouponCode         string   `json:"coupon_code,omitempty"`
	ExpiryDate         string   `json:"expiry_date,omitempty"`
	WebsiteURL         string   `json:"website_url,omitempty"`
	OfferURL           string   `json:"offer_url,omitempty"`
	TermsAndConditions string   `json:"terms_and_conditions,omitempty"`
	MinimumPurchase    string   `json:"minimum_purchase,omitempty"`
	OfferBrand         string   `json:"offer_brand,omitempty"`
	UrgencyIndicators  []string `json:"urgency_indicators,omitempty"`
	AdditionalBenefits []string `json:"additional_benefits,omitempty"`
}

// EmailOfferGroup is the backend's unit of extraction: one source email and
// the offers found in it, plus resolved company metadata for the sender.
type EmailOfferGroup struct {
	MessageID          string  `json:"message_id"`
	Sender             string  `json:"sender,omitempty"`
	Subject            string  `json:"subject,omitempty"`
	Timestamp          string  `json:"timestamp,omitempty"`
	EmailSenderCompany string  `json:"email_sender_company,omitempty"`
	Company            string  `json:"company,omitempty"`
	CompanyDomain      string  `json:"company_domain,omitempty"`
	CompanyLogoURL     string  `json:"company_logo_url,omitempty"`
	CompanyCategory    string  `json:"company_category,omitempty"`
	Offers             []Offer `json:"offers"`
}

// EnrichedOffer is an Offer with the group-level email and company metadata
// copied in at aggregation time. ID is "<message_id>_<index>" and is the
// identity used by the favorites store.
//
// IsFavorite is informational only; membership in the favorites store is
// authoritative.
type EnrichedOffer struct {
	Offer
	ID                 string `json:"id"`
	MessageID          string `json:"message_id,omitempty"`
	EmailSender        string `json:"email_sender,omitempty"`
	EmailSubject       string `json:"email_subject,omitempty"`
	EmailTimestamp     string `json:"email_timestamp,omitempty"`
	EmailSenderCompany string `json:"email_sender_company,omitempty"`
	Company            string `json:"company,omitempty"`
	CompanyDomain      string `json:"company_domain,omitempty"`
	CompanyLogoURL     string `json:"company_logo_url,omitempty"`
	CompanyCategory    string `json:"company_category,omitempty"`
	IsFavorite         bool   `json:"isFavorite"`
}

// RawCompanyName is the resolved company name without the unknown-company
// fallback; empty when the source email carried no company metadata.
func (o *EnrichedOffer) RawCompanyName() string {
	if o.EmailSenderCompany != "" {
		return o.EmailSenderCompany
	}
	return o.Company
}

// CompanyName is the grouping key: the resolved company name, falling back
// to UnknownCompany.
func (o *EnrichedOffer) CompanyName() string {
	if name := o.RawCompanyName(); name != "" {
		return name
	}
	return UnknownCompany
}

// Company is a derived, non-persisted aggregate of the offers sharing one
// resolved company name. Logo, domain and category come from the first offer
// seen for that name; Offers preserves encounter order.
type Company struct {
	Name            string          `json:"name"`
	CompanyLogoURL  string          `json:"company_logo_url,omitempty"`
	CompanyDomain   string          `json:"company_domain,omitempty"`
	CompanyCategory string          `json:"company_category,omitempty"`
	Offers          []EnrichedOffer `json:"offers"`
}
