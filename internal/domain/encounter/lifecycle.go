package encounter

import (
	"encoding/json"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

// Status is the encounter workflow state. The order Draft, Review, Final,
// Billed is conceptual only: providers and admins may set any status
// directly, including backwards. The single hard rule is the biller
// restriction enforced in ApplyPatch.
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusReview Status = "Review"
	StatusFinal  Status = "Final"
	StatusBilled Status = "Billed"
)

// Statuses lists every valid encounter status.
var Statuses = []Status{StatusDraft, StatusReview, StatusFinal, StatusBilled}

// ValidStatus reports whether s is one of the four enumerated values.
func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Patch carries a partial encounter update. Nil fields are absent and leave
// the stored value unchanged.
type Patch struct {
	ChiefComplaint *string          `json:"chief_complaint"`
	Vitals         *json.RawMessage `json:"vitals"`
	Status         *Status          `json:"status"`
}

// ApplyPatch merges the patch into enc under the role's update rules. It
// mutates enc only on success and returns the patch fields it ignored.
//
// Billers may do exactly one thing: set status to Billed. Any other status
// (or no status at all) is a denial, and any clinical fields in the same
// request are dropped, not merged, and reported in rejected. All other
// updating roles merge each present field independently; any of the four
// statuses is accepted.
func ApplyPatch(role auth.Role, enc *Encounter, patch Patch) (rejected []string, err error) {
	if role == auth.RoleBiller {
		if patch.Status == nil || *patch.Status != StatusBilled {
			return nil, apperror.Forbidden(auth.ReasonBillerStatusBilled)
		}
		if patch.ChiefComplaint != nil {
			rejected = append(rejected, "chief_complaint")
		}
		if patch.Vitals != nil {
			rejected = append(rejected, "vitals")
		}
		enc.Status = StatusBilled
		return rejected, nil
	}

	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return nil, apperror.Validation("status must be one of Draft, Review, Final, Billed", "status")
	}
	if patch.ChiefComplaint != nil && *patch.ChiefComplaint == "" {
		return nil, apperror.Validation("chief_complaint cannot be empty", "chief_complaint")
	}

	if patch.ChiefComplaint != nil {
		enc.ChiefComplaint = *patch.ChiefComplaint
	}
	if patch.Vitals != nil {
		enc.Vitals = *patch.Vitals
	}
	if patch.Status != nil {
		enc.Status = *patch.Status
	}
	return nil, nil
}
