package encounter

import (
	"context"
	"encoding/json"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields accepted on encounter creation.
type CreateInput struct {
	PatientID      int64           `json:"patient_id"`
	ProviderID     int64           `json:"provider_id"`
	ChiefComplaint string          `json:"chief_complaint"`
	Vitals         json.RawMessage `json:"vitals"`
	Status         Status          `json:"status"`
}

// Validate checks the mandatory creation fields. Exported because handlers
// run it before authorization: a malformed create request fails fast with
// 400 no matter who sent it.
func (in CreateInput) Validate() error {
	var missing []string
	if in.PatientID <= 0 {
		missing = append(missing, "patient_id")
	}
	if in.ProviderID <= 0 {
		missing = append(missing, "provider_id")
	}
	if in.ChiefComplaint == "" {
		missing = append(missing, "chief_complaint")
	}
	if len(missing) > 0 {
		return apperror.Validation("patient_id, provider_id, and chief_complaint are required", missing...)
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		return apperror.Validation("status must be one of Draft, Review, Final, Billed", "status")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Encounter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}

	enc := &Encounter{
		PatientID:      in.PatientID,
		ProviderID:     in.ProviderID,
		ChiefComplaint: in.ChiefComplaint,
		Vitals:         in.Vitals,
		Status:         status,
	}
	if err := s.repo.Create(ctx, enc); err != nil {
		return nil, err
	}
	return enc, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Encounter, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Encounter, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// UpdateResult reports the outcome of an update, including any patch fields
// that were ignored under the biller restriction.
type UpdateResult struct {
	Encounter *Encounter `json:"encounter"`
	Rejected  []string   `json:"rejected_fields,omitempty"`
}

// Update loads the encounter and applies the patch under the actor role's
// lifecycle rules. A patch that fails validation or the biller rule leaves
// the stored record untouched.
func (s *Service) Update(ctx context.Context, role auth.Role, id int64, patch Patch) (*UpdateResult, error) {
	enc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rejected, err := ApplyPatch(role, enc, patch)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, enc); err != nil {
		return nil, err
	}
	return &UpdateResult{Encounter: enc, Rejected: rejected}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
