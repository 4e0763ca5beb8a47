package entity

// Visibility decides which drafts a query may return.
type Visibility int

const (
	// VisiblePublished hides every draft.
	VisiblePublished Visibility = iota
	// VisibleToViewer adds the viewer's own drafts.
	VisibleToViewer
	// VisibleAll returns drafts of every author.
	VisibleAll
)

type SortOrder int

const (
	SortPublishDateDesc SortOrder = iota
	// SortNatural is insertion order.
	SortNatural
)

// RelatedTo matches posts sharing the category or at least one tag.
type RelatedTo struct {
	Category string
	Tags     []string
}

func (r *RelatedTo) Empty() bool {
	return r.Category == "" && len(r.Tags) == 0
}

// PostQuery is the store-level predicate. All set conditions are ANDed.
type PostQuery struct {
	Tag       string
	Type      PostType
	Category  string
	AuthorID  string
	ExcludeID string
	Related   *RelatedTo
	// Text is a case-insensitive substring matched against title, excerpt,
	// body, author name, category and tags.
	Text string

	Visibility Visibility
	ViewerID   string

	Sort  SortOrder
	Limit int
	Skip  int
}

// ForViewer picks the draft visibility for viewer.
func ForViewer(viewer Viewer) (Visibility, string) {
	switch {
	case viewer.IsSuperAdmin():
		return VisibleAll, viewer.ID
	case !viewer.Anonymous():
		return VisibleToViewer, viewer.ID
	default:
		return VisiblePublished, ""
	}
}

// PostFilters are the caller-facing filters of a listing.
type PostFilters struct {
	Tag      string
	Type     PostType
	Category string
	Limit    int
	Skip     int
}

type PostPage struct {
	Posts []*Post `json:"posts"`
	Total int64   `json:"total"`
	Limit int     `json:"limit"`
	Skip  int     `json:"skip"`
}
