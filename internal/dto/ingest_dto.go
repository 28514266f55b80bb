package dto

// IngestReport summarizes one ingestion run. Failures are reported per
// document; successes are never rolled back.
type IngestReport struct {
	Found    int             `json:"found"`
	Uploaded int             `json:"uploaded"`
	Failed   []IngestFailure `json:"failed,omitempty"`
}

type IngestFailure struct {
	Id      string `json:"id"`
	Message string `json:"message"`
}
