package statement

import (
	"research_portal/pkg/models"
)

// Role classifies a line item for presentation. Every item maps to exactly
// one role.
type Role int

const (
	RoleNormal Role = iota
	RoleTotal
	RoleSectionHeading
)

func (r Role) String() string {
	switch r {
	case RoleTotal:
		return "Total"
	case RoleSectionHeading:
		return "SectionHeading"
	default:
		return "Normal"
	}
}

// DeriveRole classifies a single line item. Precedence: is_total wins over
// everything, so a total row with all-null values is still a Total, never a
// SectionHeading.
func DeriveRole(item *models.LineItem, periods []string) Role {
	if item.IsTotal {
		return RoleTotal
	}
	if !item.HasAnyValue(periods) {
		if item.Notes != nil && *item.Notes == models.SectionHeadingNote {
			return RoleSectionHeading
		}
		if item.Depth == 0 {
			return RoleSectionHeading
		}
	}
	return RoleNormal
}

// DeriveRoles computes the role of every line item against the metadata's
// reporting periods. Pure function: the result is a parallel slice and the
// input is never mutated or reordered.
func DeriveRoles(result *models.ExtractionResult) []Role {
	roles := make([]Role, len(result.LineItems))
	for i := range result.LineItems {
		roles[i] = DeriveRole(&result.LineItems[i], result.Metadata.ReportingPeriods)
	}
	return roles
}
