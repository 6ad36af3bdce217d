package shared_test

import (
	"reflect"
	"testing"
	"time"

	"guesthouse/shared"
	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "valid T string",
			input:    "T",
			expected: boolPtr(true),
		},
		{
			name:     "valid FALSE string",
			input:    "FALSE",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int
		expectError bool
	}{
		{
			name:     "valid number",
			input:    "42",
			expected: 42,
		},
		{
			name:     "negative number",
			input:    "-7",
			expected: -7,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "not a number",
			input:       "abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := shared.ConvertStringToInt(tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if result != tt.expected {
					t.Errorf("expected %d, got %d", tt.expected, result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type TestStruct struct {
		ID         string `db:"id"`
		Name       string `db:"name"`
		EmptyField string `db:"empty_field"`
		NoDBTag    string
	}

	data := TestStruct{
		ID:   "room-1",
		Name: "Sea View",
	}

	result := shared.TransformFields(data, "testuser")

	if result["id"] != "room-1" {
		t.Errorf("expected id to be 'room-1', got %v", result["id"])
	}
	if result["name"] != "Sea View" {
		t.Errorf("expected name to be 'Sea View', got %v", result["name"])
	}
	if _, exists := result["empty_field"]; exists {
		t.Error("expected zero-value field to be omitted")
	}

	if result[constant.FieldModifiedBy] != "testuser" {
		t.Errorf("expected modified_by to be 'testuser', got %v", result[constant.FieldModifiedBy])
	}
	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "room_id", "bookings")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "room_id",
				Value:    "123",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("room", "abc-123")
	if key != "room:abc-123" {
		t.Errorf("expected 'room:abc-123', got %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	paramsA := dto.QueryParams{Page: 1, Limit: 20}
	paramsB := dto.QueryParams{Page: 2, Limit: 20}

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("booking", paramsA, filter)
	keyA2 := shared.BuildCacheKeyWithQuery("booking", paramsA, filter)
	keyB := shared.BuildCacheKeyWithQuery("booking", paramsB, filter)

	if keyA != keyA2 {
		t.Errorf("expected identical queries to share a key, got %s and %s", keyA, keyA2)
	}
	if keyA == keyB {
		t.Error("expected different pages to produce different keys")
	}
}

func TestValidateTexts(t *testing.T) {
	tests := []struct {
		name        string
		texts       map[string]language.Text
		expectError bool
	}{
		{
			name: "supported codes only",
			texts: map[string]language.Text{
				"name": {"ja": "海の間", "en": "Sea Room"},
			},
			expectError: false,
		},
		{
			name:        "empty input",
			texts:       map[string]language.Text{},
			expectError: false,
		},
		{
			name: "unsupported code",
			texts: map[string]language.Text{
				"name": {"fr": "Chambre"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := shared.ValidateTexts(tt.texts)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !failure.IsKind(err, failure.KindConstraintViolation) {
					t.Errorf("expected constraint violation kind, got %s", failure.GetKind(err))
				}
				if fields := failure.GetFields(err); fields["name"] == "" {
					t.Error("expected field-level message for 'name'")
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}
