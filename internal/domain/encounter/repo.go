package encounter

import "context"

// Filter narrows List results. Zero values mean no filtering.
type Filter struct {
	PatientID  int64
	ProviderID int64
}

type Repository interface {
	Create(ctx context.Context, enc *Encounter) error
	GetByID(ctx context.Context, id int64) (*Encounter, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*Encounter, int, error)
	Update(ctx context.Context, enc *Encounter) error
	Delete(ctx context.Context, id int64) error
}
