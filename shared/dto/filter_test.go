package dto_test

import (
	"strings"
	"testing"

	"guesthouse/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name: "equality with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorEq,
				Value:    "pending",
				Table:    "bookings",
			},
			expectedWhere: "bookings.status = :status",
			expectedArgs:  map[string]any{"status": "pending"},
		},
		{
			name: "arg name overrides the field",
			filter: dto.Filter{
				ArgName:  "check_in_from",
				Field:    "check_in",
				Operator: dto.FilterOperatorGreaterEq,
				Value:    "2026-10-01",
				Table:    "bookings",
			},
			expectedWhere: "bookings.check_in >= :check_in_from",
			expectedArgs:  map[string]any{"check_in_from": "2026-10-01"},
		},
		{
			name: "is null has no args",
			filter: dto.Filter{
				Field:    "published_at",
				Operator: dto.FilterIsNull,
				Table:    "news",
			},
			expectedWhere: "news.published_at IS NULL",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()
			if where != tt.expectedWhere {
				t.Errorf("expected where %q, got %q", tt.expectedWhere, where)
			}
			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("expected %d args, got %d: %v", len(tt.expectedArgs), len(args), args)
			}
			for name, value := range tt.expectedArgs {
				if args[name] != value {
					t.Errorf("expected arg %s to be %v, got %v", name, value, args[name])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause_DateRange(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				ArgName:  "check_in_from",
				Field:    "check_in",
				Operator: dto.FilterOperatorGreaterEq,
				Value:    "2026-10-01",
				Table:    "bookings",
			},
			dto.Filter{
				ArgName:  "check_in_to",
				Field:    "check_in",
				Operator: dto.FilterOperatorLessEq,
				Value:    "2026-10-31",
				Table:    "bookings",
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(bookings.check_in >= :check_in_from AND bookings.check_in <= :check_in_to)"
	if where != expected {
		t.Errorf("expected where %q, got %q", expected, where)
	}

	// Both bounds must survive as separate named args or the range
	// collapses to the later bound.
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
	if args["check_in_from"] != "2026-10-01" {
		t.Errorf("expected check_in_from arg, got %v", args["check_in_from"])
	}
	if args["check_in_to"] != "2026-10-31" {
		t.Errorf("expected check_in_to arg, got %v", args["check_in_to"])
	}
}

func TestFilterGroup_GetWhereClause_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "room_id",
				Operator: dto.FilterOperatorEq,
				Value:    "room-1",
				Table:    "bookings",
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{
						ArgName:  "status_pending",
						Field:    "status",
						Operator: dto.FilterOperatorEq,
						Value:    "pending",
						Table:    "bookings",
					},
					dto.Filter{
						ArgName:  "status_confirmed",
						Field:    "status",
						Operator: dto.FilterOperatorEq,
						Value:    "confirmed",
						Table:    "bookings",
					},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	if !strings.Contains(where, "OR") || !strings.Contains(where, "AND") {
		t.Errorf("expected nested group operators in %q", where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d: %v", len(args), args)
	}
}

func TestFilterGroup_GetWhereClause_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()
	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
