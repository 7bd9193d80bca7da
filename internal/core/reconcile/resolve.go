package reconcile

import (
	"strings"
	"unicode"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dotlessI treats the Turkish dotted/dotless i pair as one letter so that "YILMAZ",
// "Yılmaz" and "yilmaz" fold to the same key.
var dotlessI = strings.NewReplacer("ı", "i", "i\u0307", "i")

// FoldName returns the case-insensitive comparison key for a display name.
func FoldName(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = cases.Fold().String(s)
	return dotlessI.Replace(s)
}

// foldASCII additionally strips diacritics ("Çek" -> "cek"). Used for synonym matching only.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, FoldName(s))
	if err != nil {
		return FoldName(s)
	}
	return out
}

// SalesRepIndex looks up company users by display name.
type SalesRepIndex struct {
	byName map[string]domain.User
}

// NewSalesRepIndex indexes the active users of companyID. On duplicate names the first user wins.
func NewSalesRepIndex(companyID string, users []domain.User) *SalesRepIndex {
	ix := &SalesRepIndex{byName: make(map[string]domain.User, len(users))}
	for _, u := range users {
		if u.CompanyID != companyID || u.DeletedAt != nil {
			continue
		}
		key := FoldName(u.Name)
		if key == "" {
			continue
		}
		if _, exists := ix.byName[key]; !exists {
			ix.byName[key] = u
		}
	}
	return ix
}

// Resolve finds the user whose display name matches name, ignoring case and surrounding space.
func (ix *SalesRepIndex) Resolve(name string) (domain.User, bool) {
	key := FoldName(name)
	if key == "" {
		return domain.User{}, false
	}
	u, ok := ix.byName[key]
	return u, ok
}

// CustomerResolver maps customer names to existing customers or to pending placeholders.
// Pending placeholders are cached per resolver, so one batch never creates the same
// customer twice.
type CustomerResolver struct {
	existing map[string]domain.Customer
	pending  map[string]domain.CustomerRef
}

// NewCustomerResolver indexes the customers of companyID. On duplicate names the first customer wins.
func NewCustomerResolver(companyID string, customers []domain.Customer) *CustomerResolver {
	r := &CustomerResolver{
		existing: make(map[string]domain.Customer, len(customers)),
		pending:  make(map[string]domain.CustomerRef),
	}
	for _, c := range customers {
		if c.CompanyID != companyID {
			continue
		}
		key := FoldName(c.Name)
		if _, exists := r.existing[key]; !exists {
			r.existing[key] = c
		}
	}
	return r
}

// Resolve returns the customer reference for name.
func (r *CustomerResolver) Resolve(name string) domain.CustomerRef {
	key := FoldName(name)
	if c, ok := r.existing[key]; ok {
		return domain.ExistingCustomer(c.CustomerID, c.Name)
	}
	if ref, ok := r.pending[key]; ok {
		return ref
	}
	ref := domain.PendingCustomer(strings.TrimSpace(name))
	r.pending[key] = ref
	return ref
}
