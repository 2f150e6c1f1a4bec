package check

// Tag categorizes registered checks so that subsets can be run.
type Tag string

const (
	TagAdmin         Tag = "admin"
	TagCaches        Tag = "caches"
	TagCompatibility Tag = "compatibility"
	TagDatabase      Tag = "database"
	TagModels        Tag = "models"
	TagSecurity      Tag = "security"
	TagSignals       Tag = "signals"
	TagTemplates     Tag = "templates"
	TagURLs          Tag = "urls"
)

// String returns the string representation of the tag.
func (t Tag) String() string {
	return string(t)
}
