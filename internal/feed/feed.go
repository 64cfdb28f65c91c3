package feed

// Owner is the contact listed in the itunes owner element of a channel.
type Owner struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Item is one episode entry of a parsed podcast feed. The itunes-namespace
// fields are kept as raw strings; interpretation (season parsing, category
// trimming) happens downstream in the embed package.
type Item struct {
	GUID         string
	Link         string
	Title        string
	EnclosureURL string
	Categories   []string

	// itunes-namespace item fields
	Subtitle         string
	ImageURL         string
	Duration         string
	Season           string
	ITunesCategories []string
}

// Feed is a parsed podcast channel with its episodes in document order.
type Feed struct {
	Title    string
	Link     string
	ImageURL string

	// itunes-namespace channel fields
	ITunesImageURL   string
	Owner            *Owner
	ITunesCategories []string

	Items []Item
}
