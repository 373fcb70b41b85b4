package domain

// ImportRecord is the raw shape of one row in an import batch, before
// validation. Timestamps are RFC 3339 strings as supplied by the importer.
type ImportRecord struct {
	UserID      int64  `json:"userID"`
	RoleCode    string `json:"roleCode"`
	ClockIn     string `json:"clockIn,omitempty"`
	ClockOut    string `json:"clockOut,omitempty"`
	EntryNumber int32  `json:"entryNumber,omitempty"`
}

// SyncSummary reports what a sync wrote. MissingCrewChief flags a batch with
// no CC record; the system never fabricates a crew chief on its own.
type SyncSummary struct {
	RequirementsWritten int32 `json:"requirementsWritten"`
	PersonnelWritten    int32 `json:"personnelWritten"`
	TimeEntriesCreated  int32 `json:"timeEntriesCreated"`
	MissingCrewChief    bool  `json:"missingCrewChief"`
}
