package dto

import (
	offerdomain "couponbox/internal/offer/domain"
	"couponbox/internal/offer/usecase"
	"couponbox/pkg/offertype"
)

// ListQuery are the view parameters shared by the offers and companies
// endpoints.
type ListQuery struct {
	Type  string `form:"type,default=all"`
	Query string `form:"q"`
	Sort  string `form:"sort,default=company"`
}

// OfferView is an enriched offer plus its presentation metadata.
type OfferView struct {
	offerdomain.EnrichedOffer
	TypeLabel  string           `json:"type_label"`
	TypeIcon   string           `json:"type_icon"`
	TypeColors offertype.Scheme `json:"type_colors"`
}

// NewOfferView attaches type metadata and the live favorite status.
func NewOfferView(offer offerdomain.EnrichedOffer, isFavorite bool) OfferView {
	offer.IsFavorite = isFavorite
	return OfferView{
		EnrichedOffer: offer,
		TypeLabel:     offertype.Label(offer.OfferType),
		TypeIcon:      offertype.Icon(offer.OfferType),
		TypeColors:    offertype.Colors(offer.OfferType),
	}
}

type CompanyView struct {
	Name            string      `json:"name"`
	CompanyLogoURL  string      `json:"company_logo_url,omitempty"`
	CompanyDomain   string      `json:"company_domain,omitempty"`
	CompanyCategory string      `json:"company_category,omitempty"`
	Offers          []OfferView `json:"offers"`
}

type OffersResponse struct {
	Offers  []OfferView           `json:"offers"`
	Total   int                   `json:"total"`
	Dataset usecase.DatasetStatus `json:"dataset"`
}

type CompaniesResponse struct {
	Companies []CompanyView         `json:"companies"`
	Total     int                   `json:"total"`
	Dataset   usecase.DatasetStatus `json:"dataset"`
}

type RefreshQuery struct {
	// Sample forces the bundled dataset, the API's rendition of the app's
	// "Use Sample Data" choice.
	Sample bool `form:"sample"`
}

type SuggestionsQuery struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=5"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type EmailHTMLResponse struct {
	Success     bool   `json:"success"`
	HTMLContent string `json:"html_content"`
}
