package encounter

import (
	"encoding/json"
	"time"
)

// Encounter maps to the encounters table. Vitals is a free-form JSON blob
// (blood pressure, heart rate, temperature and whatever else the clinic
// records); the API stores and returns it untouched.
type Encounter struct {
	ID             int64           `db:"id" json:"id"`
	PatientID      int64           `db:"patient_id" json:"patient_id"`
	ProviderID     int64           `db:"provider_id" json:"provider_id"`
	ChiefComplaint string          `db:"chief_complaint" json:"chief_complaint"`
	Vitals         json.RawMessage `db:"vitals" json:"vitals,omitempty"`
	Status         Status          `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}
