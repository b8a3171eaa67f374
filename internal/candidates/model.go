package candidates

// Program is one competition item a candidate is enrolled in.
type Program struct {
	ProgramCode string `json:"programCode"`
	ProgramName string `json:"programName"`
}

// Candidate is a single record from candidates.json or data.json.
// Photo is a remote reference and may be absent (the poster tool takes a
// live upload instead).
type Candidate struct {
	ChestNo     string    `json:"chestNo"`
	Name        string    `json:"name"`
	StudyCentre string    `json:"studyCentre"`
	Section     string    `json:"section"`
	Programs    []Program `json:"programs"`
	Photo       *string   `json:"photo"`
	Date        string    `json:"date,omitempty"`
}
