package models

import "time"

// Voting status constants
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Identification mode constants
const (
	ModeNameAndID = "name_and_id"
	ModeIDOnly    = "id_only"
)

// Gender constants
const (
	GenderBoy  = "boy"
	GenderGirl = "girl"
)

// Settings types

type CollegeInfo struct {
	CollegeName    string `json:"college_name"`
	CollegeLogoURL string `json:"college_logo_url,omitempty"`
}

type Position struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// GenderRequirement restricts who may run: "boy", "girl", or "" for none.
	GenderRequirement string `json:"gender_requirement,omitempty"`
}

type StreamConfig struct {
	StreamName string   `json:"stream_name"`
	Divisions  []string `json:"divisions"`
}

type ElectionSettings struct {
	CollegeInfo        CollegeInfo    `json:"college_info"`
	Positions          []Position     `json:"positions"`
	AcademicStructure  []StreamConfig `json:"academic_structure"`
	IdentificationMode string         `json:"identification_mode"`
	VotingStatus       string         `json:"voting_status"`
}

// DefaultSettings returns the settings written on first read when no
// configuration exists yet. Voting starts closed.
func DefaultSettings() ElectionSettings {
	return ElectionSettings{
		CollegeInfo: CollegeInfo{
			CollegeName: "Demo College of Technology",
		},
		Positions: []Position{
			{ID: "cr_boy", Title: "Class Representative (Boy)", GenderRequirement: GenderBoy},
			{ID: "cr_girl", Title: "Class Representative (Girl)", GenderRequirement: GenderGirl},
		},
		AcademicStructure: []StreamConfig{
			{StreamName: "Science", Divisions: []string{"A", "B", "C", "D", "E"}},
			{StreamName: "Commerce", Divisions: []string{"A", "B", "C", "D", "E", "F"}},
			{StreamName: "Arts", Divisions: []string{}},
		},
		IdentificationMode: ModeNameAndID,
		VotingStatus:       StatusClosed,
	}
}

// Domain types

type Candidate struct {
	ID         string    `json:"-"`
	Name       string    `json:"name"`
	PositionID string    `json:"position_id"`
	Gender     string    `json:"gender"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"-"`
}

type Student struct {
	Name       string `json:"name"`
	RollNumber int    `json:"roll_number"`
	Stream     string `json:"stream"`
	// Division is empty for streams configured without divisions.
	Division string `json:"division,omitempty"`
}

type Ballot struct {
	ID string `json:"id"`
	// VoterID is the canonical identity key; never expose it alongside
	// selections outside the admin surface.
	VoterID     string            `json:"-"`
	Selections  map[string]string `json:"selections"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

type AuditEntry struct {
	ID        string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}

// Request types

type IdentifyRequest struct {
	Name       string `json:"name,omitempty"`
	RollNumber int    `json:"roll_number"`
	Stream     string `json:"stream"`
	Division   string `json:"division,omitempty"`
}

type VoteRequest struct {
	VoterID    string            `json:"voter_id"`
	Selections map[string]string `json:"selections"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AddCandidateRequest struct {
	Name       string `json:"name"`
	PositionID string `json:"position_id"`
	Gender     string `json:"gender"`
}

type DeleteCandidateRequest struct {
	Name       string `json:"name"`
	PositionID string `json:"position_id"`
}

// Response types

type IdentifyResponse struct {
	VoterID     string `json:"voter_id"`
	StudentName string `json:"student_name"`
	Message     string `json:"message"`
}

type VoteResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type BulkUploadResponse struct {
	StudentsAdded   int      `json:"students_added"`
	DuplicatesFound int      `json:"duplicates_found"`
	Errors          []string `json:"errors"`
}

type AuditLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Age       string    `json:"age"`
}

// Result types

type PositionResult struct {
	PositionID    string         `json:"position_id"`
	PositionTitle string         `json:"position_title"`
	VoteCounts    map[string]int `json:"vote_counts"`
	// Winner is "N/A" with zero votes, a single name, or tied names
	// joined with " & " plus a tie marker.
	Winner string `json:"winner"`
	Tie    bool   `json:"tie"`
}

type Turnout struct {
	TotalStudents  int     `json:"total_students"`
	TotalVotesCast int     `json:"total_votes_cast"`
	Ratio          float64 `json:"ratio"`
}

type Results struct {
	Turnout Turnout `json:"voter_turnout"`
	// Positions follow settings order so repeated calls with identical
	// data render identically.
	Positions []PositionResult `json:"results"`
	// LedgerConsistent is false when ballot and marker counts diverge;
	// a data-integrity signal, not an error.
	LedgerConsistent bool `json:"ledger_consistent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
