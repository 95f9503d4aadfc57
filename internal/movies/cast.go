package movies

import "strings"

// CastMember is keyed by (MovieID, ActorName). RoleName is also reachable
// through the role index.
type CastMember struct {
	MovieID         int    `json:"movieId" dynamodbav:"movieId" yaml:"movieId" validate:"gt=0"`
	ActorName       string `json:"actorName" dynamodbav:"actorName" yaml:"actorName" validate:"required"`
	RoleName        string `json:"roleName" dynamodbav:"roleName" yaml:"roleName" validate:"required"`
	RoleDescription string `json:"roleDescription,omitempty" dynamodbav:"roleDescription,omitempty" yaml:"roleDescription"`
}

// FilterKind selects which prefix condition, if any, narrows a cast query.
type FilterKind int

const (
	NoFilter FilterKind = iota
	ByRole
	ByActor
)

func (k FilterKind) String() string {
	switch k {
	case ByRole:
		return "role"
	case ByActor:
		return "actor"
	default:
		return "none"
	}
}

// CastFilter is a prefix condition on either the role or the actor name.
// Prefix is ignored for NoFilter.
type CastFilter struct {
	Kind   FilterKind
	Prefix string
}

func RoleFilter(prefix string) CastFilter {
	return CastFilter{Kind: ByRole, Prefix: prefix}
}

func ActorFilter(prefix string) CastFilter {
	return CastFilter{Kind: ByActor, Prefix: prefix}
}

// Matches reports whether c satisfies the filter. It does not look at MovieID.
func (f CastFilter) Matches(c CastMember) bool {
	return f.match(c.RoleName, c.ActorName)
}

// MatchesRecord is Matches for a stored cast item.
func (f CastFilter) MatchesRecord(r Record) bool {
	return f.match(r.Str("roleName"), r.Str("actorName"))
}

func (f CastFilter) match(role, actor string) bool {
	switch f.Kind {
	case ByRole:
		return strings.HasPrefix(role, f.Prefix)
	case ByActor:
		return strings.HasPrefix(actor, f.Prefix)
	default:
		return true
	}
}
