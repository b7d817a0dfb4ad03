package release

// Phase determines which failure-handling strategy is active
type Phase int

const (
	// PrePush failures are recovered with a local rollback
	PrePush Phase = iota
	// PostPush failures are escalated; remote state may already be mutated
	PostPush
)

func (p Phase) String() string {
	if p == PostPush {
		return "post-push"
	}
	return "pre-push"
}
