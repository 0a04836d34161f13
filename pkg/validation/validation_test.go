package validation

import "testing"

type signupInput struct {
	ID       string `json:"id" validate:"required,barid"`
	Email    string `json:"email" validate:"required,email"`
	PhoneNo  string `json:"phoneno" validate:"required,phone10"`
	Password string `json:"password" validate:"required,min=6"`
}

func Test_Validate_CleanInput(t *testing.T) {
	errs, err := Validate(signupInput{
		ID: "BAR/123", Email: "a@example.com", PhoneNo: "9876543210", Password: "pass123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if errs != nil {
		t.Fatalf("want no field errors, got %#v", errs)
	}
}

func Test_Validate_FieldErrorsUseJSONNames(t *testing.T) {
	errs, err := Validate(signupInput{
		ID: "x", Email: "not-an-email", PhoneNo: "12345", Password: "abc",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := errs["id"]; len(got) != 1 || got[0] != "Invalid bar ID format" {
		t.Errorf("id: %#v", got)
	}
	if got := errs["email"]; len(got) != 1 || got[0] != "Invalid email format" {
		t.Errorf("email: %#v", got)
	}
	if got := errs["phoneno"]; len(got) != 1 || got[0] != "Phone number must be a 10-digit number" {
		t.Errorf("phoneno: %#v", got)
	}
	if got := errs["password"]; len(got) != 1 || got[0] != "Must be at least 6 characters" {
		t.Errorf("password: %#v", got)
	}
}

func Test_Validate_RequiredBeforeFormat(t *testing.T) {
	errs, err := Validate(signupInput{})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"id", "email", "phoneno", "password"} {
		got := errs[field]
		if len(got) == 0 || got[0] != "This field is required" {
			t.Errorf("%s: %#v", field, got)
		}
	}
}

func Test_Validate_PhoneEdgeCases(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"98765432101", false}, // 11 digits
		{"987654321", false},   // 9 digits
		{"98765abcde", false},
		{"+919876543", false},
	}
	for _, tc := range cases {
		errs, err := Validate(signupInput{
			ID: "BAR1", Email: "a@example.com", PhoneNo: tc.phone, Password: "pass123",
		})
		if err != nil {
			t.Fatal(err)
		}
		if tc.ok && errs["phoneno"] != nil {
			t.Errorf("phone %q should pass: %#v", tc.phone, errs["phoneno"])
		}
		if !tc.ok && errs["phoneno"] == nil {
			t.Errorf("phone %q should fail", tc.phone)
		}
	}
}
