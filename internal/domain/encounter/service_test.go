package encounter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

type mockRepo struct {
	encounters map[int64]*Encounter
	nextID     int64
	// ids the repo treats as existing patients/providers
	patientIDs  map[int64]bool
	providerIDs map[int64]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		encounters:  make(map[int64]*Encounter),
		nextID:      1,
		patientIDs:  map[int64]bool{10: true},
		providerIDs: map[int64]bool{20: true},
	}
}

func (m *mockRepo) Create(_ context.Context, enc *Encounter) error {
	if !m.patientIDs[enc.PatientID] || !m.providerIDs[enc.ProviderID] {
		return apperror.Validation("patient_id and provider_id must reference existing records", "patient_id", "provider_id")
	}
	enc.ID = m.nextID
	m.nextID++
	cp := *enc
	m.encounters[enc.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Encounter, error) {
	enc, ok := m.encounters[id]
	if !ok {
		return nil, apperror.NotFound("encounter")
	}
	cp := *enc
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Encounter, int, error) {
	var out []*Encounter
	for _, enc := range m.encounters {
		if f.PatientID > 0 && enc.PatientID != f.PatientID {
			continue
		}
		if f.ProviderID > 0 && enc.ProviderID != f.ProviderID {
			continue
		}
		cp := *enc
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(_ context.Context, enc *Encounter) error {
	if _, ok := m.encounters[enc.ID]; !ok {
		return apperror.NotFound("encounter")
	}
	cp := *enc
	m.encounters[enc.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.encounters[id]; !ok {
		return apperror.NotFound("encounter")
	}
	delete(m.encounters, id)
	return nil
}

func validCreate() CreateInput {
	return CreateInput{
		PatientID:      10,
		ProviderID:     20,
		ChiefComplaint: "Cough and fever",
		Vitals:         json.RawMessage(`{"bp":"120/80","hr":78,"temp":100.4}`),
	}
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := NewService(newMockRepo())

	enc, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if enc.Status != StatusDraft {
		t.Errorf("status = %q, want Draft", enc.Status)
	}
	if enc.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestCreateExplicitStatus(t *testing.T) {
	svc := NewService(newMockRepo())

	in := validCreate()
	in.Status = StatusFinal
	enc, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if enc.Status != StatusFinal {
		t.Errorf("status = %q, want Final", enc.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing patient", func(in *CreateInput) { in.PatientID = 0 }},
		{"missing provider", func(in *CreateInput) { in.ProviderID = 0 }},
		{"missing chief complaint", func(in *CreateInput) { in.ChiefComplaint = "" }},
		{"invalid status", func(in *CreateInput) { in.Status = "Archived" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreate()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestCreateDanglingReferences(t *testing.T) {
	svc := NewService(newMockRepo())

	in := validCreate()
	in.PatientID = 999
	_, err := svc.Create(context.Background(), in)
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestUpdateBillerFlow(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	enc, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Denied patch leaves the stored record untouched.
	_, err = svc.Update(context.Background(), auth.RoleBiller, enc.ID, Patch{Status: statusPtr(StatusFinal)})
	if apperror.KindOf(err) != apperror.KindForbidden {
		t.Fatalf("err = %v, want forbidden", err)
	}
	stored, _ := repo.GetByID(context.Background(), enc.ID)
	if stored.Status != StatusDraft {
		t.Errorf("stored status = %q, want Draft after denial", stored.Status)
	}

	// Billed with clinical fields: status applies, fields are reported rejected.
	res, err := svc.Update(context.Background(), auth.RoleBiller, enc.ID, Patch{
		Status:         statusPtr(StatusBilled),
		ChiefComplaint: strPtr("rewritten"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Encounter.Status != StatusBilled {
		t.Errorf("status = %q, want Billed", res.Encounter.Status)
	}
	if len(res.Rejected) != 1 || res.Rejected[0] != "chief_complaint" {
		t.Errorf("rejected = %v", res.Rejected)
	}
	stored, _ = repo.GetByID(context.Background(), enc.ID)
	if stored.ChiefComplaint != "Cough and fever" {
		t.Errorf("stored chief complaint = %q", stored.ChiefComplaint)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Update(context.Background(), auth.RoleProvider, 404, Patch{ChiefComplaint: strPtr("x")})
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestListFilters(t *testing.T) {
	repo := newMockRepo()
	repo.patientIDs[11] = true
	svc := NewService(repo)

	first := validCreate()
	if _, err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := validCreate()
	second.PatientID = 11
	if _, err := svc.Create(context.Background(), second); err != nil {
		t.Fatalf("create: %v", err)
	}

	encs, total, err := svc.List(context.Background(), Filter{PatientID: 11}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(encs) != 1 || encs[0].PatientID != 11 {
		t.Errorf("filtered list = %d/%d", len(encs), total)
	}

	_, total, err = svc.List(context.Background(), Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("unfiltered total = %d, want 2", total)
	}
}
