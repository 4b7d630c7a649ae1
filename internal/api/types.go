package api

// VerifyRequest carries a revealed protocol round for independent
// verification. Counterpart is optional; when present the round result is
// recomputed as well.
type VerifyRequest struct {
	Max         int    `json:"max"`
	Key         string `json:"key"`
	Secret      int    `json:"secret"`
	Commitment  string `json:"commitment"`
	Counterpart *int   `json:"counterpart,omitempty"`
}

// VerifyResponse reports whether the revealed key and secret reproduce
// the originally disclosed commitment.
type VerifyResponse struct {
	VerificationID     string `json:"verification_id"`
	Valid              bool   `json:"valid"`
	ExpectedCommitment string `json:"expected_commitment"`
	Result             *int   `json:"result,omitempty"`
}

// ProbabilitiesRequest carries the die set to tabulate, one face list per
// die.
type ProbabilitiesRequest struct {
	Dice [][]int `json:"dice"`
}

// ProbabilitiesResponse is the pairwise win-probability matrix. Matrix
// values are decimal strings; diagonal cells are null.
type ProbabilitiesResponse struct {
	Dice   []string    `json:"dice"`
	Matrix [][]*string `json:"matrix"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
