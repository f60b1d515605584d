package auth

import (
	"fmt"
	"strconv"
	"strings"
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleHR             Role = "hr"
	RoleProjectManager Role = "project_manager"
	RoleTechnicalLead  Role = "technical_lead"
	RoleEmployee       Role = "employee"
)

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleHR, RoleProjectManager, RoleTechnicalLead, RoleEmployee:
		return Role(value), nil
	}
	return "", fmt.Errorf("unrecognized role %q", value)
}

// Level is the L1-L13 hierarchy ordinal; a lower number is more senior.
// L6 (principal architect) and L7 (team lead) are the escalation anchors
// for the leave workflow.
type Level int

const (
	LevelNone Level = 0
	LevelMin  Level = 1
	LevelMax  Level = 13
)

func ParseLevel(value string) (Level, error) {
	raw := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), "L")
	n, err := strconv.Atoi(raw)
	if err != nil || n < int(LevelMin) || n > int(LevelMax) {
		return LevelNone, fmt.Errorf("unrecognized hierarchy level %q", value)
	}
	return Level(n), nil
}

func (l Level) String() string {
	if l == LevelNone {
		return ""
	}
	return fmt.Sprintf("L%d", int(l))
}

// SeniorOrEqual reports whether l is at least as senior as other.
func (l Level) SeniorOrEqual(other Level) bool {
	return l != LevelNone && l <= other
}

// Actor identifies the user performing an operation.
type Actor struct {
	ID    string
	Role  Role
	Level Level
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Capabilities is the set of actions a role may perform. It is computed per
// request from the role and hierarchy level; there is no mutable permission
// table.
type Capabilities struct {
	LeaveSubmit     bool
	LeaveHRReview   bool
	LeaveTLDecide   bool
	LeavePMDecide   bool
	LeaveReviewAll  bool
	IncidentResolve bool
	DirectoryRead   bool
	SystemAdmin     bool
}

func CapabilitiesFor(role Role, level Level) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			LeaveSubmit:     true,
			LeaveHRReview:   true,
			LeaveTLDecide:   true,
			LeavePMDecide:   true,
			LeaveReviewAll:  true,
			IncidentResolve: true,
			DirectoryRead:   true,
			SystemAdmin:     true,
		}
	case RoleHR:
		return Capabilities{
			LeaveSubmit:    true,
			LeaveHRReview:  true,
			LeaveReviewAll: true,
			DirectoryRead:  true,
		}
	case RoleTechnicalLead:
		return Capabilities{
			LeaveSubmit:     true,
			LeaveTLDecide:   true,
			LeaveReviewAll:  true,
			IncidentResolve: true,
			DirectoryRead:   true,
		}
	case RoleProjectManager:
		return Capabilities{
			LeaveSubmit:     true,
			LeavePMDecide:   true,
			LeaveReviewAll:  true,
			IncidentResolve: true,
			DirectoryRead:   true,
		}
	case RoleEmployee:
		return Capabilities{
			LeaveSubmit:   true,
			DirectoryRead: true,
		}
	}
	return Capabilities{}
}

func (a Actor) Capabilities() Capabilities {
	return CapabilitiesFor(a.Role, a.Level)
}
