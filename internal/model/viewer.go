package model

// ViewerContext identifies who is requesting to see a user's data.
// The zero value is the anonymous viewer, distinct from every real identity.
type ViewerContext struct {
	userID    UserID
	anonymous bool
}

// AnonymousViewer returns the viewer context for an unauthenticated request
func AnonymousViewer() ViewerContext {
	return ViewerContext{anonymous: true}
}

// ViewerFor returns the viewer context for an authenticated user
func ViewerFor(id UserID) ViewerContext {
	return ViewerContext{userID: id}
}

// IsAnonymous reports whether the viewer has no identity
func (v ViewerContext) IsAnonymous() bool {
	return v.anonymous || v.userID == ""
}

// Is reports whether the viewer is the given user
func (v ViewerContext) Is(id UserID) bool {
	return !v.IsAnonymous() && v.userID == id
}

// UserID returns the viewer's identity, or "" for anonymous viewers
func (v ViewerContext) UserID() UserID {
	if v.anonymous {
		return ""
	}
	return v.userID
}
