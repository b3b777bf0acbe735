package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin                Role = "administrator"
	RoleManagerHR            Role = "manager(hr)"
	RoleSupervisorHR         Role = "supervisor(hr)"
	RoleSupervisorProduction Role = "supervisor(production)"
	RoleManagerProduction    Role = "manager(production)"
)

var Roles = []Role{
	RoleAdmin,
	RoleManagerHR,
	RoleSupervisorHR,
	RoleSupervisorProduction,
	RoleManagerProduction,
}

func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Capability is something a role may see or do in the console.
type Capability string

const (
	CapDashboard         Capability = "dashboard"
	CapManageUsers       Capability = "users.manage"
	CapManageEmployees   Capability = "employees.manage"
	CapEnterOvertime     Capability = "overtime.enter"
	CapViewOvertime      Capability = "overtime.view"
	CapViewReports       Capability = "reports.view"
	CapConvertScans      Capability = "scanner.convert"
	CapManageTripleOT    Capability = "tripleot.manage"
	CapApproveProduction Capability = "approve.production"
	CapApproveHR         Capability = "approve.hr"
)

var (
	allRoles     = Roles
	hrOffice     = []Role{RoleAdmin, RoleManagerHR, RoleSupervisorHR}
	hrManagers   = []Role{RoleAdmin, RoleManagerHR}
	production   = []Role{RoleAdmin, RoleSupervisorProduction, RoleManagerProduction}
	capabilities = map[Capability][]Role{
		CapDashboard:         allRoles,
		CapViewOvertime:      allRoles,
		CapManageUsers:       hrManagers,
		CapManageEmployees:   hrOffice,
		CapEnterOvertime:     hrOffice,
		CapViewReports:       hrOffice,
		CapConvertScans:      hrOffice,
		CapManageTripleOT:    hrOffice,
		CapApproveProduction: production,
		CapApproveHR:         hrOffice,
	}
)

// CanAccess reports whether role holds capability. Unknown roles and
// capabilities hold nothing.
func CanAccess(role Role, capability Capability) bool {
	for _, r := range capabilities[capability] {
		if r == role {
			return true
		}
	}
	return false
}

// CapabilitiesOf lists what role may do, in a stable order.
func CapabilitiesOf(role Role) []Capability {
	order := []Capability{
		CapDashboard, CapManageUsers, CapManageEmployees, CapEnterOvertime,
		CapViewOvertime, CapViewReports, CapConvertScans, CapManageTripleOT,
		CapApproveProduction, CapApproveHR,
	}
	var out []Capability
	for _, c := range order {
		if CanAccess(role, c) {
			out = append(out, c)
		}
	}
	return out
}

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Name               string         `gorm:"not null;size:200" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Role               Role           `gorm:"not null;size:32" json:"role"`
	MustChangePassword bool           `gorm:"default:false" json:"must_change_password"`
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Can(capability Capability) bool {
	return u != nil && CanAccess(u.Role, capability)
}

// CanManageUser reports whether u may edit or delete target. Administrator
// accounts are only touched by administrators.
func (u *User) CanManageUser(target *User) bool {
	if !u.Can(CapManageUsers) {
		return false
	}
	if target.IsAdmin() {
		return u.IsAdmin()
	}
	return true
}

// CanGrantRole reports whether u may create accounts or invites with role.
func (u *User) CanGrantRole(role Role) bool {
	if !u.Can(CapManageUsers) {
		return false
	}
	if role == RoleAdmin {
		return u.IsAdmin()
	}
	_, ok := ParseRole(string(role))
	return ok
}
