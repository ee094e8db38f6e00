package application

// Identity is the resolved caller for a request: a nil *Identity means the
// request is anonymous. It is threaded explicitly through every service
// call; nothing reads the current user from ambient state.
type Identity struct {
	UserID   int64
	Username string
}

// Operation is the kind of content access being attempted.
type Operation int

const (
	OpListPosts Operation = iota
	OpGetPost
	OpCreatePost
)

func (op Operation) String() string {
	switch op {
	case OpListPosts:
		return "list_posts"
	case OpGetPost:
		return "get_post"
	case OpCreatePost:
		return "create_post"
	default:
		return "unknown"
	}
}

// Allowed is the whole permission policy: reads are public, writes need
// any authenticated identity. There are no per-resource or ownership
// checks; this is intentional and complete.
func Allowed(op Operation, caller *Identity) bool {
	switch op {
	case OpListPosts, OpGetPost:
		return true
	case OpCreatePost:
		return caller != nil
	default:
		return false
	}
}
