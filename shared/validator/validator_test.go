package validator_test

import (
	"strings"
	"testing"

	"guesthouse/shared/failure"
	"guesthouse/shared/validator"
)

type bookingRequest struct {
	GuestName  string `validate:"required" json:"guest_name"`
	GuestEmail string `validate:"required,email" json:"guest_email"`
	Guests     int    `validate:"gte=1,lte=10" json:"guests"`
	Status     string `validate:"omitempty,oneof=pending confirmed cancelled" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingRequest{
				GuestName:  "Yamada Taro",
				GuestEmail: "yamada@example.com",
				Guests:     2,
				Status:     "pending",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &bookingRequest{
				GuestEmail: "yamada@example.com",
				Guests:     2,
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingRequest{
				GuestName:  "Yamada Taro",
				GuestEmail: "invalid-email",
				Guests:     2,
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &bookingRequest{
				GuestName:  "Yamada Taro",
				GuestEmail: "yamada@example.com",
				Guests:     50,
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &bookingRequest{
				GuestName:  "Yamada Taro",
				GuestEmail: "yamada@example.com",
				Guests:     2,
				Status:     "done",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		jsonBody     string
		expectedKind failure.Kind
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"guest_name":"Yamada Taro","guest_email":"yamada@example.com","guests":2}`,
		},
		{
			name:         "rule violation",
			jsonBody:     `{"guest_name":"Yamada Taro","guest_email":"invalid-email","guests":2}`,
			expectedKind: failure.KindConstraintViolation,
		},
		{
			name:         "malformed JSON",
			jsonBody:     `{"guest_name":"Yamada Taro","guest_email":}`,
			expectedKind: failure.KindBadRequest,
		},
		{
			name:         "empty JSON",
			jsonBody:     `{}`,
			expectedKind: failure.KindConstraintViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectedKind == "" {
				if err != nil {
					t.Errorf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !failure.IsKind(err, tt.expectedKind) {
				t.Errorf("expected kind %s, got %s", tt.expectedKind, failure.GetKind(err))
			}
		})
	}
}

func TestValidationFieldMessages(t *testing.T) {
	err := validator.ValidateStruct(&bookingRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	fields := failure.GetFields(err)
	if len(fields) == 0 {
		t.Fatal("expected per-field validation messages")
	}

	if msg := fields["guestname"]; !strings.Contains(msg, "required") {
		t.Errorf("expected guestname message to mention 'required', got: %s", msg)
	}
}
