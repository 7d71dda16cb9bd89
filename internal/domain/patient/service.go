package patient

import (
	"context"
	"regexp"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
)

// emailPattern is a minimal shape check, not RFC validation.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields accepted on patient creation.
type CreateInput struct {
	MRN   string  `json:"mrn"`
	Name  string  `json:"name"`
	DOB   *Date   `json:"dob"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

func (in CreateInput) validate() error {
	var missing []string
	if in.MRN == "" {
		missing = append(missing, "mrn")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.DOB == nil || in.DOB.IsZero() {
		missing = append(missing, "dob")
	}
	if len(missing) > 0 {
		return apperror.Validation("mrn, name, and dob are required", missing...)
	}
	if in.Email != nil && *in.Email != "" && !emailPattern.MatchString(*in.Email) {
		return apperror.Validation("email must be a valid email address", "email")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &Patient{MRN: in.MRN, Name: in.Name, DOB: *in.DOB, Phone: in.Phone, Email: in.Email}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update merges present patch fields into the stored record.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.MRN != nil {
		if *patch.MRN == "" {
			return nil, apperror.Validation("mrn cannot be empty", "mrn")
		}
		p.MRN = *patch.MRN
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperror.Validation("name cannot be empty", "name")
		}
		p.Name = *patch.Name
	}
	if patch.DOB != nil {
		p.DOB = *patch.DOB
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Email != nil {
		if *patch.Email != "" && !emailPattern.MatchString(*patch.Email) {
			return nil, apperror.Validation("email must be a valid email address", "email")
		}
		p.Email = patch.Email
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
