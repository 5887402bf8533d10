package comparison

import (
	"context"
)

// OfferSet is the result of one catalog lookup: the requested product ids
// that resolved to known products, and every valid offer for them.
type OfferSet struct {
	// Products maps product id to resolved metadata for the basket.
	Products map[string]Product

	// Offers holds all valid offers for the resolved products, each with the
	// owning market denormalized. Row order carries no meaning.
	Offers []Offer
}

// CatalogSource is the single collaborator capability the comparison core
// depends on. Implementations must only return offers marked valid; pending
// offers are never visible here.
type CatalogSource interface {
	// LookupOffers resolves the given product ids and returns all valid
	// offers for them in one read. The returned set is treated as immutable
	// input for the duration of one comparison call.
	LookupOffers(ctx context.Context, productIDs []string) (*OfferSet, error)
}
