package crm

import (
	"LeadReceptionist/internal/entity"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func testFields() entity.FieldSet {
	fields := entity.NewFieldSet()
	fields.Set(entity.SlotFullName, "Jane Doe")
	fields.Set(entity.SlotVehicle, "2019 Honda Civic")
	fields.Set(entity.SlotServiceInterest, "brakes")
	fields.Set(entity.SlotPreferredTimeframe, "Tuesday")
	return fields
}

func TestHTTPCreateLead(t *testing.T) {
	var got Lead
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leads" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := jsoniter.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewHTTPWith(srv.URL+"/", "secret", srv.Client())
	if err := client.CreateLead(context.Background(), "+15550001111", testFields()); err != nil {
		t.Fatalf("CreateLead() error = %v", err)
	}

	want := Lead{
		Phone:              "+15550001111",
		FullName:           "Jane Doe",
		Vehicle:            "2019 Honda Civic",
		ServiceInterest:    "brakes",
		PreferredTimeframe: "Tuesday",
		BestContactMethod:  "text",
		Source:             "sms",
	}
	if got != want {
		t.Errorf("lead = %+v, want %+v", got, want)
	}
}

func TestHTTPCreateLeadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate lead", http.StatusConflict)
	}))
	defer srv.Close()

	err := NewHTTPWith(srv.URL, "secret", srv.Client()).CreateLead(context.Background(), "+15550001111", testFields())
	if err == nil || !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "duplicate lead") {
		t.Errorf("error = %v, want status and detail", err)
	}
}

func TestHTTPCreateLeadNotConfigured(t *testing.T) {
	err := NewHTTPWith("", "", http.DefaultClient).CreateLead(context.Background(), "+15550001111", testFields())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}
