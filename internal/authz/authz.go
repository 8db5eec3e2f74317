// Package authz is the central policy decision point.
// Decisions are pure functions over the actor, the action, and the
// resource; enforcement stays with the caller.
package authz

import "bloghub/pkg/models"

// Action names a mutating operation subject to a policy decision
type Action string

const (
	ActionDeleteComment Action = "comment:delete"
	ActionEditProfile   Action = "profile:edit"
)

// Actor is the authenticated identity attempting an action
type Actor struct {
	ID    string
	Roles models.RoleSet
}

// Resource is the subject of a decision. Exactly one of the concrete
// resource types below implements it; the engine dispatches on the type
// rather than on runtime reflection.
type Resource interface {
	resource()
}

// CommentResource carries the ownership data the comment policy needs.
// OwnerID is nil for guest (nickname/email) comments.
type CommentResource struct {
	OwnerID *string
}

func (CommentResource) resource() {}

// ProfileResource carries the identity and role set of the profile
// being edited.
type ProfileResource struct {
	ID    string
	Roles models.RoleSet
}

func (ProfileResource) resource() {}

// Decide returns whether actor may perform action on resource.
// A nil actor (unauthenticated caller) is always denied.
func Decide(actor *Actor, action Action, resource Resource) bool {
	if actor == nil || len(actor.Roles) == 0 {
		return false
	}

	switch res := resource.(type) {
	case CommentResource:
		if action != ActionDeleteComment {
			return false
		}
		return canDeleteComment(actor, res)
	case ProfileResource:
		if action != ActionEditProfile {
			return false
		}
		return canEditProfile(actor, res)
	default:
		return false
	}
}

// canDeleteComment allows the comment's author, or any admin.
// Guest comments have no owner, so deletion falls to admins alone.
func canDeleteComment(actor *Actor, res CommentResource) bool {
	if res.OwnerID != nil && *res.OwnerID == actor.ID {
		return true
	}
	return actor.Roles.Has(models.RoleAdmin)
}

// canEditProfile allows self-edit unconditionally. Admins may edit
// plain users only; an admin editing another admin is denied, which
// keeps admins from laddering each other's privileges.
func canEditProfile(actor *Actor, res ProfileResource) bool {
	if res.ID == actor.ID {
		return true
	}
	return actor.Roles.Has(models.RoleAdmin) && res.Roles.IsBaseOnly()
}
