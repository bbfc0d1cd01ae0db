package auth

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the closed set of caller identities the external authentication
// layer can attest to. No open-ended string matching happens anywhere else.
type Role string

const (
	RoleVehicleOwner    Role = "vehicle_owner"
	RoleStationOperator Role = "station_operator"
	RoleAdmin           Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleVehicleOwner, RoleStationOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

type Capability string

const (
	CapViewQuota    Capability = "view_quota"
	CapDispense     Capability = "dispense"
	CapViewReports  Capability = "view_reports"
	CapManageQuotas Capability = "manage_quotas"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleVehicleOwner: {
		CapViewQuota: {},
	},
	RoleStationOperator: {
		CapViewQuota: {},
		CapDispense:  {},
	},
	RoleAdmin: {
		CapViewQuota:    {},
		CapDispense:     {},
		CapViewReports:  {},
		CapManageQuotas: {},
	},
}

// Can is the single capability-lookup point for authorization decisions.
func (r Role) Can(cap Capability) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	_, ok = caps[cap]
	return ok
}
