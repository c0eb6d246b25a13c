package submissions

// Internal status values stored on a submission.
const (
	StatusNew         = "new"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)

// FilterAll is the sentinel listing filter that matches every status.
const FilterAll = "all"

// externalToInternal maps the API-facing status vocabulary to stored values.
// "pending" is the only renaming; everything else is identity.
var externalToInternal = map[string]string{
	"pending":         StatusNew,
	StatusReviewed:    StatusReviewed,
	StatusShortlisted: StatusShortlisted,
	StatusRejected:    StatusRejected,
}

// InternalStatus resolves an external status to its stored value. ok is false
// for anything outside the external vocabulary.
func InternalStatus(external string) (string, bool) {
	internal, ok := externalToInternal[external]
	return internal, ok
}

// ExternalStatus converts a stored status back to the API-facing vocabulary.
func ExternalStatus(internal string) string {
	if internal == StatusNew {
		return "pending"
	}
	return internal
}
