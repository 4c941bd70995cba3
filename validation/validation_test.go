package validation

import (
	"testing"
)

type registerPayload struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
}

func TestCheckValidPayload(t *testing.T) {
	errs := Check(registerPayload{
		FullName: "Ana Mora",
		Email:    "ana@example.com",
		Phone:    "8888-0000",
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCheckReportsEachViolation(t *testing.T) {
	errs := Check(registerPayload{Email: "not-an-email"})
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}

	rules := map[string]string{}
	for _, fe := range errs {
		rules[fe.Field] = fe.Rule
	}
	if rules["full_name"] != "required" {
		t.Fatalf("full_name rule = %q, want required", rules["full_name"])
	}
	if rules["email"] != "email" {
		t.Fatalf("email rule = %q, want email", rules["email"])
	}
	if rules["phone"] != "required" {
		t.Fatalf("phone rule = %q, want required", rules["phone"])
	}
}
