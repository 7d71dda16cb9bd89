package encounter

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

func baseEncounter() *Encounter {
	return &Encounter{
		ID:             1,
		PatientID:      10,
		ProviderID:     20,
		ChiefComplaint: "Cough and fever",
		Vitals:         json.RawMessage(`{"bp":"120/80","hr":78}`),
		Status:         StatusDraft,
	}
}

func statusPtr(s Status) *Status { return &s }

func strPtr(s string) *string { return &s }

func rawPtr(s string) *json.RawMessage {
	r := json.RawMessage(s)
	return &r
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []Status{"", "draft", "Open", "BILLED"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestApplyPatchBillerSetsBilled(t *testing.T) {
	enc := baseEncounter()
	rejected, err := ApplyPatch(auth.RoleBiller, enc, Patch{Status: statusPtr(StatusBilled)})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if len(rejected) != 0 {
		t.Errorf("rejected = %v, want none", rejected)
	}
	if enc.Status != StatusBilled {
		t.Errorf("status = %q, want Billed", enc.Status)
	}
}

func TestApplyPatchBillerOtherStatusDenied(t *testing.T) {
	for _, s := range []*Status{statusPtr(StatusDraft), statusPtr(StatusReview), statusPtr(StatusFinal), nil} {
		enc := baseEncounter()
		before := *enc
		_, err := ApplyPatch(auth.RoleBiller, enc, Patch{Status: s})
		if apperror.KindOf(err) != apperror.KindForbidden {
			t.Errorf("status %v: err = %v, want forbidden", s, err)
		}
		if err != nil && err.Error() != "biller can only set status to Billed" {
			t.Errorf("reason = %q", err.Error())
		}
		if !reflect.DeepEqual(*enc, before) {
			t.Error("encounter mutated on denial")
		}
	}
}

func TestApplyPatchBillerIgnoresClinicalFields(t *testing.T) {
	enc := baseEncounter()
	patch := Patch{
		Status:         statusPtr(StatusBilled),
		ChiefComplaint: strPtr("rewritten by biller"),
		Vitals:         rawPtr(`{"hr":999}`),
	}

	rejected, err := ApplyPatch(auth.RoleBiller, enc, patch)
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if enc.ChiefComplaint != "Cough and fever" {
		t.Errorf("chief complaint merged: %q", enc.ChiefComplaint)
	}
	if string(enc.Vitals) != `{"bp":"120/80","hr":78}` {
		t.Errorf("vitals merged: %s", enc.Vitals)
	}
	if enc.Status != StatusBilled {
		t.Errorf("status = %q, want Billed", enc.Status)
	}

	want := []string{"chief_complaint", "vitals"}
	if !reflect.DeepEqual(rejected, want) {
		t.Errorf("rejected = %v, want %v", rejected, want)
	}
}

func TestApplyPatchProviderPartialMerge(t *testing.T) {
	enc := baseEncounter()
	_, err := ApplyPatch(auth.RoleProvider, enc, Patch{ChiefComplaint: strPtr("Follow up visit")})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if enc.ChiefComplaint != "Follow up visit" {
		t.Errorf("chief complaint = %q", enc.ChiefComplaint)
	}
	if enc.Status != StatusDraft {
		t.Error("absent status must stay unchanged")
	}
	if string(enc.Vitals) != `{"bp":"120/80","hr":78}` {
		t.Error("absent vitals must stay unchanged")
	}
}

// Providers and admins may move status in any direction, including backwards.
func TestApplyPatchBackwardTransitions(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleProvider, auth.RoleAdmin} {
		enc := baseEncounter()
		enc.Status = StatusBilled

		_, err := ApplyPatch(role, enc, Patch{Status: statusPtr(StatusDraft)})
		if err != nil {
			t.Fatalf("%s backward transition: %v", role, err)
		}
		if enc.Status != StatusDraft {
			t.Errorf("%s: status = %q, want Draft", role, enc.Status)
		}
	}
}

func TestApplyPatchInvalidStatus(t *testing.T) {
	enc := baseEncounter()
	before := *enc
	_, err := ApplyPatch(auth.RoleProvider, enc, Patch{Status: statusPtr("Archived")})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("err = %v, want validation", err)
	}
	if !reflect.DeepEqual(*enc, before) {
		t.Error("encounter mutated on invalid status")
	}
}

func TestApplyPatchEmptyChiefComplaint(t *testing.T) {
	enc := baseEncounter()
	_, err := ApplyPatch(auth.RoleProvider, enc, Patch{ChiefComplaint: strPtr("")})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("err = %v, want validation", err)
	}
}
