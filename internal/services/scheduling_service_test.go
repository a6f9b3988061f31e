package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/curalife/intake-backend/internal/beluga"
	"github.com/curalife/intake-backend/internal/domain"
)

// ----- Fake partner client -----

type fakePartner struct {
	gotPayload  map[string]string
	booking     *beluga.Booking
	err         error
	hadDeadline bool
}

func (f *fakePartner) CreateVisit(ctx context.Context, payload map[string]string) (*beluga.Booking, error) {
	f.gotPayload = payload
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func schedRecord() *domain.IntakeRecord {
	return &domain.IntakeRecord{
		FirstName:     "Jane",
		LastName:      "Doe",
		CustomerEmail: "jane.doe@example.com",
		PhoneNumber:   "(555) 123-4567",
		DateOfBirth:   "19850102",
		Address:       "1 Main St",
		City:          "Austin",
		State:         "tx",
		Zip:           "78701",
		Sex:           "Female",
	}
}

func newSchedulingService(prod, staging PartnerCaller) *SchedulingService {
	return &SchedulingService{
		Production:  prod,
		Staging:     staging,
		CallTimeout: time.Second,
		Now:         func() time.Time { return time.UnixMilli(1715000000000) },
		Log:         zerolog.Nop(),
	}
}

func TestSchedulingService_Schedule(t *testing.T) {
	prod := &fakePartner{booking: &beluga.Booking{
		ScheduleLink:  "https://book.example/xyz",
		MasterID:      "partner-master-1",
		PartnerStatus: 200,
	}}
	svc := newSchedulingService(prod, nil)

	data, err := svc.Schedule(context.Background(), schedRecord())
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if data.ScheduleLink != "https://book.example/xyz" {
		t.Fatalf("schedule link = %q", data.ScheduleLink)
	}
	if data.MasterID != "partner-master-1" {
		t.Fatalf("partner master id must win, got %q", data.MasterID)
	}
	if data.CustomerName != "Jane Doe" {
		t.Fatalf("customer name = %q", data.CustomerName)
	}
	if !prod.hadDeadline {
		t.Fatal("partner call must run under a deadline")
	}
	if prod.gotPayload["masterId"] != "1715000000000-jane." {
		t.Fatalf("payload master id = %q", prod.gotPayload["masterId"])
	}
	if prod.gotPayload["dob"] != "01/02/1985" {
		t.Fatalf("payload dob = %q", prod.gotPayload["dob"])
	}
}

func TestSchedulingService_Schedule_MissingFields(t *testing.T) {
	rec := schedRecord()
	rec.PhoneNumber = ""
	rec.Zip = "  "
	svc := newSchedulingService(&fakePartner{}, nil)

	_, err := svc.Schedule(context.Background(), rec)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !reflect.DeepEqual(ve.Missing, []string{"phoneNumber", "zip"}) {
		t.Fatalf("missing = %v, want every absent field", ve.Missing)
	}
}

func TestSchedulingService_Schedule_EnvSelection(t *testing.T) {
	prod := &fakePartner{booking: &beluga.Booking{PartnerStatus: 200}}
	staging := &fakePartner{booking: &beluga.Booking{PartnerStatus: 200}}
	svc := newSchedulingService(prod, staging)

	rec := schedRecord()
	rec.TestMode = true
	if _, err := svc.Schedule(context.Background(), rec); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if staging.gotPayload == nil {
		t.Fatal("testMode must route to the staging client")
	}
	if prod.gotPayload != nil {
		t.Fatal("production client must not be called in testMode")
	}
}

func TestSchedulingService_Schedule_MissingCredential(t *testing.T) {
	svc := newSchedulingService(&fakePartner{}, nil) // no staging client wired

	rec := schedRecord()
	rec.TestMode = true
	_, err := svc.Schedule(context.Background(), rec)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestSchedulingService_Schedule_PartnerErrorPassthrough(t *testing.T) {
	pe := &beluga.PartnerError{Kind: beluga.KindRejected, Message: "dup", StatusCode: 400}
	svc := newSchedulingService(&fakePartner{err: pe}, nil)

	_, err := svc.Schedule(context.Background(), schedRecord())
	var got *beluga.PartnerError
	if !errors.As(err, &got) || got.Message != "dup" {
		t.Fatalf("err = %v, want the partner error unchanged", err)
	}
}
