package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestValidate_CollectsAllFailingFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{
		Name:     "A",
		Email:    "not-an-email",
		Password: "123",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Details) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(ve.Details), ve.Details)
	}

	got := map[string]string{}
	for _, d := range ve.Details {
		got[d.Field] = d.Message
	}
	want := map[string]string{
		"name":     "name must be at least 2 characters",
		"email":    "email must be a valid email",
		"password": "password must be at least 6 characters",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Fatalf("field %q: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&loginRequest{Email: "alice@example.com"})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Details) != 1 {
		t.Fatalf("expected exactly 1 field error, got %v", ve.Details)
	}
	if ve.Details[0].Field != "password" {
		t.Fatalf("expected field path %q, got %q", "password", ve.Details[0].Field)
	}
	if ve.Details[0].Message != "password is required" {
		t.Fatalf("unexpected message: %q", ve.Details[0].Message)
	}
}

func TestValidate_OptionalAgeBound(t *testing.T) {
	v := NewValidator()

	young := 15
	err := v.Validate(&registerRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
		Age:      &young,
	})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Details) != 1 || ve.Details[0].Field != "age" {
		t.Fatalf("expected a single age error, got %v", ve.Details)
	}

	// Absent age is fine.
	if err := v.Validate(&registerRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("nil age should pass: %v", err)
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()

	newCtx := func(raw string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c
	}

	id, err := pathID(newCtx("42"), "id")
	if err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	for _, raw := range []string{"abc", "12x", "-1", "1.5", ""} {
		_, err := pathID(newCtx(raw), "id")
		ve, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("%q: expected *ValidationError, got %v", raw, err)
		}
		if ve.Details[0].Message != "id must be a number" {
			t.Fatalf("%q: unexpected message %q", raw, ve.Details[0].Message)
		}
	}
}
