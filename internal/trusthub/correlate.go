package trusthub

// Link is how strongly a brand, campaign or service appears to relate to a
// profile. Account-wide listings carry no authoritative back-reference, so
// nothing is ever reported as confirmed.
type Link int

const (
	// LinkUnknown means the record has no profile reference to compare.
	LinkUnknown Link = iota
	// LinkPossible means the record's profile reference equals the profile SID.
	LinkPossible
	// LinkUnrelated means the record references a different profile.
	LinkUnrelated
)

func (l Link) String() string {
	switch l {
	case LinkPossible:
		return "possibly related"
	case LinkUnrelated:
		return "unrelated"
	default:
		return "unconfirmed"
	}
}

// Correlate compares an optional profile reference against profileSID.
func Correlate(ref string, ok bool, profileSID string) Link {
	switch {
	case !ok || ref == "":
		return LinkUnknown
	case ref == profileSID:
		return LinkPossible
	default:
		return LinkUnrelated
	}
}
