package domain

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusOffer       ApplicationStatus = "offer"
	StatusRejected    ApplicationStatus = "rejected"
)

// ValidApplicationStatuses is the canonical set of accepted status strings.
var ValidApplicationStatuses = map[string]bool{
	"applied": true, "shortlisted": true, "interview": true,
	"offer": true, "rejected": true,
}

type SprintStatus string

const (
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
	SprintExpired   SprintStatus = "expired"
)

type RoleType string

const (
	RoleBackend       RoleType = "backend"
	RoleFrontend      RoleType = "frontend"
	RoleFullstack     RoleType = "fullstack"
	RoleMobile        RoleType = "mobile"
	RoleDevOps        RoleType = "devops"
	RoleDataEngineer  RoleType = "data_engineer"
	RoleDataScientist RoleType = "data_scientist"
	RoleMLEngineer    RoleType = "ml_engineer"
	RoleSRE           RoleType = "sre"
	RoleQA            RoleType = "qa"
)

// ValidRoleTypes is the canonical set of accepted role type strings.
var ValidRoleTypes = map[string]bool{
	"backend": true, "frontend": true, "fullstack": true, "mobile": true,
	"devops": true, "data_engineer": true, "data_scientist": true,
	"ml_engineer": true, "sre": true, "qa": true,
}

// RoundType is an open string: the constants below are the known stages,
// but values outside this set are valid runtime state and must round-trip
// through storage unchanged.
type RoundType string

const (
	RoundHR           RoundType = "hr"
	RoundTechnical1   RoundType = "technical_1"
	RoundTechnical2   RoundType = "technical_2"
	RoundSystemDesign RoundType = "system_design"
	RoundManagerial   RoundType = "managerial"
	RoundAssignment   RoundType = "assignment"
	RoundFinal        RoundType = "final"
)

var knownRoundTypeLabels = map[RoundType]string{
	RoundHR:           "HR",
	RoundTechnical1:   "Technical Round 1",
	RoundTechnical2:   "Technical Round 2",
	RoundSystemDesign: "System Design",
	RoundManagerial:   "Managerial",
	RoundAssignment:   "Assignment",
	RoundFinal:        "Final",
}

// Known reports whether r is one of the fixed interview stages.
func (r RoundType) Known() bool {
	_, ok := knownRoundTypeLabels[r]
	return ok
}

// Label returns the display label for a round type. Unknown values are
// rendered as "Unknown: X" rather than rejected.
func (r RoundType) Label() string {
	if label, ok := knownRoundTypeLabels[r]; ok {
		return label
	}
	return "Unknown: " + string(r)
}

type FocusArea string

const (
	FocusDSA          FocusArea = "dsa"
	FocusSystemDesign FocusArea = "system_design"
	FocusCoreCS       FocusArea = "core_cs"
	FocusBehavioral   FocusArea = "behavioral"
	FocusReview       FocusArea = "review"
	FocusMock         FocusArea = "mock"
)

type BlockType string

const (
	BlockMorning BlockType = "morning"
	BlockEvening BlockType = "evening"
	BlockQuick   BlockType = "quick"
)

type TopicTier string

const (
	TierHigh   TopicTier = "high"
	TierMedium TopicTier = "medium"
	TierLow    TopicTier = "low"
)
