package chapa

// Currency is an ISO 4217 currency code accepted by the API.
type Currency string

// Currencies commonly used with the API.
const (
	CurrencyETB Currency = "ETB"
	CurrencyUSD Currency = "USD"
)

// ==================== Shared Types ====================

// Customization controls the branding of the hosted checkout page.
type Customization struct {
	Title       string `json:"title,omitempty" url:"title,omitempty"`
	Description string `json:"description,omitempty" url:"description,omitempty"`
	Logo        string `json:"logo,omitempty" url:"logo,omitempty"`
}

// Customer identifies the payer attached to a transaction.
type Customer struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

// Pagination describes the page window of a transaction listing.
type Pagination struct {
	PerPage      int    `json:"per_page"`
	CurrentPage  int    `json:"current_page"`
	FirstPageURL string `json:"first_page_url"`
	NextPageURL  string `json:"next_page_url"`
	PrevPageURL  string `json:"prev_page_url"`
}

// ListMeta is the sibling meta object returned beside data on transfer
// and virtual account listings.
type ListMeta struct {
	CurrentPage  int    `json:"current_page"`
	FirstPageURL string `json:"first_page_url"`
	LastPage     int    `json:"last_page"`
	LastPageURL  string `json:"last_page_url"`
	NextPageURL  string `json:"next_page_url"`
	Path         string `json:"path"`
	PerPage      int    `json:"per_page"`
	PrevPageURL  string `json:"prev_page_url"`
	To           int    `json:"to"`
	Total        int    `json:"total"`
}
