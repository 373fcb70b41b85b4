package domain

// RoleCode identifies a worker's function on a shift.
type RoleCode string

const (
	RoleCrewChief         RoleCode = "CC"
	RoleStageHand         RoleCode = "SH"
	RoleForkOperator      RoleCode = "FO"
	RoleReachForkOperator RoleCode = "RFO"
	RoleRigger            RoleCode = "RG"
	RoleGeneralLabor      RoleCode = "GL"
)

type RoleInfo struct {
	Code       RoleCode `json:"code"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	FixedCount int32    `json:"fixedCount,omitempty"` // 0 means the count comes from data
}

var roleCatalog = map[RoleCode]RoleInfo{
	RoleCrewChief:         {Code: RoleCrewChief, Name: "Crew Chief", Color: "#7C3AED", FixedCount: 1},
	RoleStageHand:         {Code: RoleStageHand, Name: "Stage Hand", Color: "#2563EB"},
	RoleForkOperator:      {Code: RoleForkOperator, Name: "Fork Operator", Color: "#D97706"},
	RoleReachForkOperator: {Code: RoleReachForkOperator, Name: "Reach Fork Operator", Color: "#B45309"},
	RoleRigger:            {Code: RoleRigger, Name: "Rigger", Color: "#DC2626"},
	RoleGeneralLabor:      {Code: RoleGeneralLabor, Name: "General Labor", Color: "#059669"},
}

// allRoleCodes keeps a stable order so recomputed requirement sets and API
// output are deterministic.
var allRoleCodes = []RoleCode{
	RoleCrewChief,
	RoleStageHand,
	RoleForkOperator,
	RoleReachForkOperator,
	RoleRigger,
	RoleGeneralLabor,
}

func AllRoleCodes() []RoleCode {
	codes := make([]RoleCode, len(allRoleCodes))
	copy(codes, allRoleCodes)
	return codes
}

func DescribeRole(code RoleCode) (RoleInfo, error) {
	info, ok := roleCatalog[code]
	if !ok {
		return RoleInfo{}, ErrUnknownRole
	}
	return info, nil
}

func ValidRoleCode(code RoleCode) bool {
	_, ok := roleCatalog[code]
	return ok
}
