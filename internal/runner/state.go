package runner

// State is a stage of the per-project run state machine. States advance
// strictly forward; Error is terminal and reachable from any stage.
type State int

const (
	StateInit State = iota
	StatePermissionsChecked
	StateArtifactsCleaned
	StateBuildDispatched
	StateArtifactVerified
	StateReportVerified
	StateDone
	StateError
)

var stateNames = map[State]string{
	StateInit:               "Init",
	StatePermissionsChecked: "PermissionsChecked",
	StateArtifactsCleaned:   "ArtifactsCleaned",
	StateBuildDispatched:    "BuildDispatched",
	StateArtifactVerified:   "ArtifactVerified",
	StateReportVerified:     "ReportVerified",
	StateDone:               "Done",
	StateError:              "Error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Status is the terminal status of a project run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)
