package models

// Metadata is the open field mapping a metadata provider supplies for one
// notification. Beyond the keys individual conditions reference there is
// no required shape; values may be scalars, lists or nested records as
// decoded from the provider's JSON.
type Metadata map[string]any

// Metadata keys the filter engine treats specially.
const (
	MetadataKeywords       = "keywords"
	MetadataContentRatings = "contentRatings"
)
