package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	offerdomain "couponbox/internal/offer/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by FilterAndSort.
const (
	SortByCompany  = "company"
	SortByDiscount = "discount"
	SortByExpiry   = "expiry"
	SortByType     = "type"
)

// TypeFilterAll disables the offer-type filter.
const TypeFilterAll = "all"

// FilterParams are the live view parameters: an offer-type filter, a
// free-text search query and a sort key.
type FilterParams struct {
	TypeFilter string
	Query      string
	SortBy     string
}

// AggregateResult holds the two views over one dataset: the flat enriched
// offer list and the company-grouped list.
type AggregateResult struct {
	Offers    []offerdomain.EnrichedOffer
	Companies []offerdomain.Company
}

// Aggregate flattens email offer groups into enriched offers, preserving
// group order then within-group offer order, and derives the company
// grouping. Pure function; missing fields on any group or offer are fine.
func Aggregate(groups []offerdomain.EmailOfferGroup) AggregateResult {
	var offers []offerdomain.EnrichedOffer
	for _, group := range groups {
		idBase := group.MessageID
		if idBase == "" {
			idBase = "coupon"
		}
		for i, offer := range group.Offers {
			offers = append(offers, offerdomain.EnrichedOffer{
				Offer:              offer,
				ID:                 fmt.Sprintf("%s_%d", idBase, i),
				MessageID:          group.MessageID,
				EmailSender:        group.Sender,
				EmailSubject:       group.Subject,
				EmailTimestamp:     group.Timestamp,
				EmailSenderCompany: group.EmailSenderCompany,
				Company:            group.Company,
				CompanyDomain:      group.CompanyDomain,
				CompanyLogoURL:     group.CompanyLogoURL,
				CompanyCategory:    group.CompanyCategory,
			})
		}
	}
	return AggregateResult{Offers: offers, Companies: groupByCompany(offers)}
}

// CountOffers is the total offer count across groups, used for dataset
// metadata without running the full aggregation.
func CountOffers(groups []offerdomain.EmailOfferGroup) int {
	total := 0
	for _, group := range groups {
		total += len(group.Offers)
	}
	return total
}

// FilterAndSort applies the type filter, search query and sort key to the
// flat offer list and re-derives the company view from the survivors. A
// company survives iff at least one of its offers does, restricted to its
// matching offers. Both sorts are stable; ties keep pre-sort order.
func FilterAndSort(offers []offerdomain.EnrichedOffer, params FilterParams) AggregateResult {
	filtered := make([]offerdomain.EnrichedOffer, 0, len(offers))
	for _, o := range offers {
		if params.TypeFilter != "" && params.TypeFilter != TypeFilterAll && o.OfferType != params.TypeFilter {
			continue
		}
		filtered = append(filtered, o)
	}

	if query := strings.ToLower(strings.TrimSpace(params.Query)); query != "" {
		matched := filtered[:0]
		for _, o := range filtered {
			if matchesQuery(&o, query) {
				matched = append(matched, o)
			}
		}
		filtered = matched
	}

	sortOffers(filtered, params.SortBy)

	companies := groupByCompany(filtered)
	sortCompanies(companies, params.SortBy)

	return AggregateResult{Offers: filtered, Companies: companies}
}

func groupByCompany(offers []offerdomain.EnrichedOffer) []offerdomain.Company {
	var companies []offerdomain.Company
	index := make(map[string]int)
	for _, offer := range offers {
		name := offer.CompanyName()
		i, ok := index[name]
		if !ok {
			i = len(companies)
			index[name] = i
			companies = append(companies, offerdomain.Company{
				Name:            name,
				CompanyLogoURL:  offer.CompanyLogoURL,
				CompanyDomain:   offer.CompanyDomain,
				CompanyCategory: offer.CompanyCategory,
			})
		}
		companies[i].Offers = append(companies[i].Offers, offer)
	}
	return companies
}

// matchesQuery reports whether the lowercased query is a substring of any
// searchable field. Absent fields never match and never error.
func matchesQuery(o *offerdomain.EnrichedOffer, query string) bool {
	fields := []string{
		o.RawCompanyName(),
		o.OfferBrand,
		o.OfferTitle,
		o.OfferDescription,
		o.DiscountAmount,
		o.OfferType,
		o.TermsAndConditions,
		o.CouponCode,
		o.CompanyCategory,
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, benefit := range o.AdditionalBenefits {
		if strings.Contains(strings.ToLower(benefit), query) {
			return true
		}
	}
	return false
}

var digitRun = regexp.MustCompile(`\d+`)

// DiscountValue extracts the first integer substring of a free-text discount
// amount, defaulting to 0: "20% off" -> 20, "$10" -> 10, "Free" -> 0. The
// heuristic is a behavioral contract with the extraction backend; do not
// tighten it to a strict numeric parse.
func DiscountValue(amount string) int {
	m := digitRun.FindString(amount)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// farFuture stands in for a missing or unparseable expiry date so that such
// offers sort last under the ascending expiry order.
var farFuture = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

var expiryLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// ExpiryTime parses an ISO-ish expiry date, treating empty or malformed
// values as far future.
func ExpiryTime(date string) time.Time {
	date = strings.TrimSpace(date)
	if date == "" {
		return farFuture
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return farFuture
}

func sortOffers(offers []offerdomain.EnrichedOffer, sortBy string) {
	// Collators keep internal buffers, so build one per call instead of
	// sharing across goroutines.
	col := collate.New(language.English, collate.Loose)
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := &offers[i], &offers[j]
		switch sortBy {
		case SortByCompany:
			return col.CompareString(a.RawCompanyName(), b.RawCompanyName()) < 0
		case SortByDiscount:
			return DiscountValue(a.DiscountAmount) > DiscountValue(b.DiscountAmount)
		case SortByExpiry:
			return ExpiryTime(a.ExpiryDate).Before(ExpiryTime(b.ExpiryDate))
		case SortByType:
			return a.OfferType < b.OfferType
		default:
			return false
		}
	})
}

func sortCompanies(companies []offerdomain.Company, sortBy string) {
	col := collate.New(language.English, collate.Loose)
	sort.SliceStable(companies, func(i, j int) bool {
		a, b := &companies[i], &companies[j]
		switch sortBy {
		case SortByDiscount:
			return maxDiscount(a) > maxDiscount(b)
		case SortByExpiry:
			return earliestExpiry(a).Before(earliestExpiry(b))
		default:
			// company, type and anything else fall back to the name order
			return col.CompareString(a.Name, b.Name) < 0
		}
	})
}

// maxDiscount is the company's best matching offer under the discount rule.
func maxDiscount(c *offerdomain.Company) int {
	best := 0
	for i := range c.Offers {
		if v := DiscountValue(c.Offers[i].DiscountAmount); v > best {
			best = v
		}
	}
	return best
}

// earliestExpiry is the soonest parseable expiry among the company's offers,
// far future when none parse.
func earliestExpiry(c *offerdomain.Company) time.Time {
	earliest := farFuture
	for i := range c.Offers {
		if c.Offers[i].ExpiryDate == "" {
			continue
		}
		if t := ExpiryTime(c.Offers[i].ExpiryDate); t.Before(earliest) {
			earliest = t
		}
	}
	return earliest
}
