package documents

import (
	"context"
	"strings"

	"petcare/internal/domain/illness"
	"petcare/internal/ports/docstore"
)

type IllnessRepo struct {
	store docstore.Store
	paths Paths
}

func NewIllnessRepo(store docstore.Store, paths Paths) *IllnessRepo {
	return &IllnessRepo{store: store, paths: paths}
}

var _ illness.Repository = (*IllnessRepo)(nil)

// Create guarda el registro. Los vitales vacíos y la imagen ausente van en null.
func (r *IllnessRepo) Create(ctx context.Context, rec illness.Record) (illness.Record, error) {
	doc, err := r.store.Add(ctx, r.paths.IllnessRecords(rec.OwnerID, rec.PetID), map[string]any{
		"symptoms":         rec.Symptoms,
		"temperature":      rec.Temperature,
		"heartRate":        orNil(rec.HeartRate),
		"respiratoryRate":  orNil(rec.RespiratoryRate),
		"bloodPressure":    orNil(rec.BloodPressure),
		"oxygenSaturation": orNil(rec.OxygenSaturation),
		"diagnosis":        rec.Diagnosis,
		"treatment":        rec.Treatment,
		"image":            orNil(rec.Image),
		"timestamp":        rec.Timestamp,
	})
	if err != nil {
		return illness.Record{}, mapErr(err, nil, illness.ErrStoreUnavailable)
	}
	rec.ID = doc.ID
	return rec, nil
}

func (r *IllnessRepo) Get(ctx context.Context, ownerID, petID, recordID string) (illness.Record, error) {
	doc, err := r.store.Get(ctx, r.paths.IllnessRecord(ownerID, petID, recordID))
	if err != nil {
		return illness.Record{}, mapErr(err, illness.ErrNotFound, illness.ErrStoreUnavailable)
	}
	return toRecord(ownerID, petID, doc), nil
}

func (r *IllnessRepo) List(ctx context.Context, ownerID, petID string) ([]illness.Record, error) {
	docs, err := r.store.List(ctx, r.paths.IllnessRecords(ownerID, petID), recordsQuery())
	if err != nil {
		return nil, mapErr(err, nil, illness.ErrStoreUnavailable)
	}
	return toRecords(ownerID, petID, docs), nil
}

func (r *IllnessRepo) Watch(ctx context.Context, ownerID, petID string) (illness.Subscription, error) {
	sub, err := r.store.Watch(ctx, r.paths.IllnessRecords(ownerID, petID), recordsQuery())
	if err != nil {
		return nil, mapErr(err, nil, illness.ErrStoreUnavailable)
	}
	return newSubscription(sub,
		func(docs []docstore.Document) []illness.Record { return toRecords(ownerID, petID, docs) },
		func(err error) error { return mapErr(err, nil, illness.ErrStoreUnavailable) },
	), nil
}

func recordsQuery() docstore.Query {
	return docstore.Query{OrderBy: "timestamp", Direction: docstore.Desc}
}

func toRecords(ownerID, petID string, docs []docstore.Document) []illness.Record {
	out := make([]illness.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, toRecord(ownerID, petID, d))
	}
	return out
}

func toRecord(ownerID, petID string, d docstore.Document) illness.Record {
	return illness.Record{
		ID:      d.ID,
		OwnerID: ownerID,
		PetID:   petID,
		Observation: illness.Observation{
			Symptoms:         docstore.String(d.Data, "symptoms"),
			Temperature:      docstore.String(d.Data, "temperature"),
			HeartRate:        docstore.String(d.Data, "heartRate"),
			RespiratoryRate:  docstore.String(d.Data, "respiratoryRate"),
			BloodPressure:    docstore.String(d.Data, "bloodPressure"),
			OxygenSaturation: docstore.String(d.Data, "oxygenSaturation"),
			Image:            docstore.String(d.Data, "image"),
		},
		Diagnosis: docstore.String(d.Data, "diagnosis"),
		Treatment: docstore.String(d.Data, "treatment"),
		Timestamp: docstore.Time(d.Data, "timestamp"),
	}
}

func orNil(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
