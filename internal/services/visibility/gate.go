// Package visibility decides which sections of a user's profile data a
// viewer may see. Every decision is a pure computation over the owner's
// privacy flags and the viewer identity; nothing here touches storage.
package visibility

import "github.com/eytgaming/eytgaming/internal/model"

// Gate evaluates visibility rules for (viewer, owner) pairs
type Gate struct{}

// New creates a new visibility Gate
func New() *Gate {
	return &Gate{}
}

// CanViewProfile reports whether the viewer may access the owner's full
// profile. A private profile is visible to its owner only. Anonymous
// viewers are never granted full-profile access, regardless of flags.
func (g *Gate) CanViewProfile(viewer model.ViewerContext, owner *model.User) bool {
	if owner == nil {
		return false
	}
	if viewer.Is(owner.ID) {
		return true
	}
	if viewer.IsAnonymous() {
		return false
	}
	return !owner.PrivateProfile
}

// CanViewStatistics reports whether the viewer may see the owner's match
// statistics: the owner always may, anyone else only when the owner's
// statistics flag is on.
func (g *Gate) CanViewStatistics(viewer model.ViewerContext, owner *model.User) bool {
	return g.allowSection(viewer, owner, func(f model.VisibilityFlags) bool {
		return f.Statistics
	})
}

// CanViewActivity reports whether the viewer may see the owner's activity
// feed
func (g *Gate) CanViewActivity(viewer model.ViewerContext, owner *model.User) bool {
	return g.allowSection(viewer, owner, func(f model.VisibilityFlags) bool {
		return f.Activity
	})
}

// CanViewOnlineStatus reports whether the viewer may see whether the owner
// is online
func (g *Gate) CanViewOnlineStatus(viewer model.ViewerContext, owner *model.User) bool {
	return g.allowSection(viewer, owner, func(f model.VisibilityFlags) bool {
		return f.OnlineStatus
	})
}

// allowSection applies the self-or-flag rule shared by the conditional
// sections. A nil owner denies everything: absent flag data defaults to
// most-restrictive rather than erroring.
func (g *Gate) allowSection(viewer model.ViewerContext, owner *model.User, flag func(model.VisibilityFlags) bool) bool {
	if owner == nil {
		return false
	}
	if viewer.Is(owner.ID) {
		return true
	}
	return flag(owner.Visibility)
}

// FilterBundle returns a copy of the bundle with the sections the viewer
// may not see removed. Identity fields and the public collections are
// always carried over; a removed section is absent from the result (and
// its JSON encoding), never null.
func (g *Gate) FilterBundle(viewer model.ViewerContext, owner *model.User, bundle *model.ProfileBundle) *model.ProfileBundle {
	filtered := &model.ProfileBundle{
		UserID:       bundle.UserID,
		Username:     bundle.Username,
		DisplayName:  bundle.DisplayName,
		Achievements: bundle.Achievements,
		Teams:        bundle.Teams,
	}

	if g.CanViewStatistics(viewer, owner) {
		filtered.Statistics = bundle.Statistics
	}
	if g.CanViewActivity(viewer, owner) {
		filtered.ActivityFeed = bundle.ActivityFeed
	}
	if g.CanViewOnlineStatus(viewer, owner) {
		filtered.IsOnline = bundle.IsOnline
	}

	return filtered
}
