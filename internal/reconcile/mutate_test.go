package reconcile

import (
	"errors"
	"testing"

	"github.com/iliyamo/tax-portal/internal/model"
)

func sampleDocs() []model.Document {
	return []model.Document{
		{ID: 1, ClientID: 1, Name: "T4 Slip.pdf", Status: model.DocPending},
		{ID: 2, ClientID: 1, Name: "Donation Receipt.pdf", Status: model.DocApproved},
	}
}

func TestApprove(t *testing.T) {
	docs := sampleDocs()
	out, err := Approve(docs, 1)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out[0].Status != model.DocApproved {
		t.Fatalf("status = %q, want approved", out[0].Status)
	}
	// The input set is untouched.
	if docs[0].Status != model.DocPending {
		t.Fatal("expected input set to be unmodified")
	}
}

func TestApproveNotFound(t *testing.T) {
	docs := sampleDocs()
	out, err := Approve(docs, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(out) != len(docs) || out[0].Status != model.DocPending {
		t.Fatal("expected document set unchanged")
	}
}

func TestApproveAlreadyApproved(t *testing.T) {
	_, err := Approve(sampleDocs(), 2)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRequestReupload(t *testing.T) {
	out, err := RequestReupload(sampleDocs(), 1, "page two is cut off")
	if err != nil {
		t.Fatalf("request reupload: %v", err)
	}
	if out[0].Status != model.DocReuploadRequested {
		t.Fatalf("status = %q, want reupload_requested", out[0].Status)
	}
	if out[0].Notes != "page two is cut off" {
		t.Fatalf("notes = %q, want the reason", out[0].Notes)
	}
}

func TestRequestReuploadBlankReason(t *testing.T) {
	docs := sampleDocs()
	for _, reason := range []string{"", "   ", "\t\n"} {
		out, err := RequestReupload(docs, 1, reason)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("reason %q: err = %v, want ErrValidation", reason, err)
		}
		if out[0].Status != model.DocPending {
			t.Fatalf("reason %q: expected status untouched", reason)
		}
	}
}

func TestRequestReuploadNotFound(t *testing.T) {
	_, err := RequestReupload(sampleDocs(), 404, "missing page")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRequestMissing(t *testing.T) {
	intent, err := RequestMissing(7, "  T5 Slip ", "not received with the intake package")
	if err != nil {
		t.Fatalf("request missing: %v", err)
	}
	if intent.ClientID != 7 {
		t.Fatalf("client id = %d, want 7", intent.ClientID)
	}
	if intent.RequiredDocument != "T5 Slip" {
		t.Fatalf("required = %q, want trimmed name", intent.RequiredDocument)
	}
	if intent.RequestedAt.IsZero() {
		t.Fatal("expected a request timestamp")
	}
}

func TestRequestMissingValidation(t *testing.T) {
	if _, err := RequestMissing(7, "", "reason"); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: err = %v, want ErrValidation", err)
	}
	if _, err := RequestMissing(7, "T5 Slip", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank reason: err = %v, want ErrValidation", err)
	}
}
