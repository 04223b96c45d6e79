package normalize

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gotools/internal/models"
)

var (
	priceFromPrefix = regexp.MustCompile(`(?i)^(Free \+ )?from \$`)
	pricePerMonth   = regexp.MustCompile(`/mo$`)
)

// ClassifyPricing maps free-text pricing (and, as a fallback signal, the
// description) onto the pricing enum. Absence of any signal maps to
// no-pricing, never to an empty value.
func ClassifyPricing(pricingText, description string) (pricingType string, hasFreeTrial bool) {
	text := strings.ToLower(pricingText)
	if text == "" {
		text = strings.ToLower(description)
	}
	if text == "" {
		return models.PricingNone, false
	}

	hasFreeTrial = strings.Contains(text, "trial")

	switch {
	case strings.Contains(text, "100% free") || text == "free":
		return models.PricingFree, hasFreeTrial

	case strings.Contains(text, "free +") || strings.Contains(text, "free trial") ||
		strings.Contains(text, "freemium"):
		return models.PricingFreemium, true

	case strings.Contains(text, "one-time") || strings.Contains(text, "one time") ||
		strings.Contains(text, "buy once") || strings.Contains(text, "lifetime"):
		return models.PricingOneTime, hasFreeTrial

	case strings.Contains(text, "free") &&
		(strings.Contains(text, "paid") || strings.Contains(text, "$")):
		return models.PricingFreemium, hasFreeTrial

	case strings.Contains(text, "free"):
		return models.PricingFree, hasFreeTrial

	case strings.Contains(text, "from $") || strings.Contains(text, "/mo") ||
		strings.Contains(text, "paid") || strings.Contains(text, "$") ||
		strings.Contains(text, "subscription") || strings.Contains(text, "monthly") ||
		strings.Contains(text, "premium"):
		return models.PricingPaid, hasFreeTrial
	}

	return models.PricingNone, hasFreeTrial
}

// PriceRange cleans pricing free-text for display ("Free + from $20/mo"
// becomes "$20/month"). Empty input returns "".
func PriceRange(pricingText string) string {
	pricingText = strings.TrimSpace(pricingText)
	if pricingText == "" {
		return ""
	}
	cleaned := priceFromPrefix.ReplaceAllString(pricingText, "$$")
	cleaned = pricePerMonth.ReplaceAllString(cleaned, "/month")
	return cleaned
}
