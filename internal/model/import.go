package model

// ImportRow is a single raw row from an uploaded spreadsheet.
// Name, Number, Email and Location are required; BirthDate and Gender
// are free-text and normalized best-effort.
type ImportRow struct {
	Name      string
	Number    string
	Email     string
	Location  string
	BirthDate string
	Gender    string
}

// ImportBatch is one uploaded spreadsheet plus the campaign goal label
// the operator entered with it. It is consumed row by row and never
// persisted as such.
type ImportBatch struct {
	Rows []ImportRow
	Goal string
}

// ImportResult reports what an import did. Goal is echoed back so the
// caller can thread it through instead of stashing it in session state.
type ImportResult struct {
	Created int
	Skipped int
	Goal    string
}
