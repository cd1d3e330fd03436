package eventbrite

// The types below mirror the Eventbrite API v3 resource shapes. Optional
// fields are pointers or omitempty so that absent upstream fields stay absent
// when the objects are serialized back out to callers.

// MultipartText is Eventbrite's plain+rich text pair.
type MultipartText struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// DatetimeTZ is Eventbrite's timezone-qualified timestamp triple.
type DatetimeTZ struct {
	Timezone string `json:"timezone"`
	Local    string `json:"local"`
	UTC      string `json:"utc"`
}

// Logo holds the event image reference.
type Logo struct {
	URL string `json:"url,omitempty"`
}

// Event is a single Eventbrite event.
type Event struct {
	ID          string         `json:"id"`
	Name        MultipartText  `json:"name"`
	Description *MultipartText `json:"description,omitempty"`
	URL         string         `json:"url"`
	Start       DatetimeTZ     `json:"start"`
	End         DatetimeTZ     `json:"end"`
	VenueID     string         `json:"venue_id,omitempty"`
	Venue       *Venue         `json:"venue,omitempty"`
	Capacity    *int           `json:"capacity,omitempty"`
	CategoryID  string         `json:"category_id,omitempty"`
	IsFree      bool           `json:"is_free"`
	Logo        *Logo          `json:"logo,omitempty"`
}

// Address is a venue street address.
type Address struct {
	Address1   string `json:"address_1"`
	Address2   string `json:"address_2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Venue is a physical event location.
type Venue struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  Address `json:"address"`
	Capacity *int    `json:"capacity,omitempty"`
}

// Category is an entry of Eventbrite's category taxonomy.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
}

// Organization is an Eventbrite organization the token's user belongs to.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Pagination is Eventbrite's standard paging envelope.
type Pagination struct {
	ObjectCount  int  `json:"object_count"`
	PageNumber   int  `json:"page_number"`
	PageSize     int  `json:"page_size"`
	PageCount    int  `json:"page_count"`
	HasMoreItems bool `json:"has_more_items"`
}

// Location is a geographic search filter.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Within    string  `json:"within,omitempty"`
}

// SearchParams collects the search_events tool arguments. Only Query,
// StartDate, EndDate, Page and PageSize reach the wire; Location, Categories
// and Price are accepted for schema compatibility but the organization-events
// endpoint that substitutes for the retired search endpoint cannot apply
// them.
type SearchParams struct {
	Query      string
	Location   *Location
	Categories []string
	StartDate  string
	EndDate    string
	Price      string
	Page       int
	PageSize   int
}

// SearchResult is the search_events response body.
type SearchResult struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}
