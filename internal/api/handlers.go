package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mwetzel/fairdice/internal/engine"
	"github.com/mwetzel/fairdice/internal/games"
)

// handleHealth reports liveness and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleVerify recomputes a round's commitment from the revealed key and
// secret and reports whether it matches the one originally disclosed.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := ValidateVerifyRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := engine.VerifyReveal(req.Key, req.Secret, req.Commitment)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := VerifyResponse{
		VerificationID:     uuid.NewString(),
		Valid:              valid,
		ExpectedCommitment: engine.Commit(mustHex(req.Key), req.Secret),
	}
	if req.Counterpart != nil {
		result := (req.Secret + *req.Counterpart) % (req.Max + 1)
		resp.Result = &result
	}

	s.logger.Printf("verify id=%s max=%d valid=%t", resp.VerificationID, req.Max, valid)
	s.writeJSON(w, http.StatusOK, resp)
}

// handleProbabilities computes the pairwise win-probability matrix for
// the posted die set.
func (s *Server) handleProbabilities(w http.ResponseWriter, r *http.Request) {
	var req ProbabilitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := ValidateProbabilitiesRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dice := make([]games.Die, 0, len(req.Dice))
	labels := make([]string, 0, len(req.Dice))
	for _, faces := range req.Dice {
		die, err := games.NewDie(faces)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		dice = append(dice, die)
		labels = append(labels, die.String())
	}

	matrix := games.ProbabilityMatrix(dice)
	out := make([][]*string, len(matrix))
	for i, row := range matrix {
		out[i] = make([]*string, len(row))
		for j, p := range row {
			if p == nil {
				continue
			}
			v := p.StringFixed(4)
			out[i][j] = &v
		}
	}

	s.writeJSON(w, http.StatusOK, ProbabilitiesResponse{Dice: labels, Matrix: out})
}

// mustHex decodes a hex string that validation has already accepted.
func mustHex(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}
