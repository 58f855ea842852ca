package response

import (
	"net/http"
	"testing"
)

func TestSuccess(t *testing.T) {
	resp := Success(map[string]string{"id": "123"})

	if !resp.Success {
		t.Error("Expected success to be true")
	}
	if resp.Data == nil {
		t.Error("Expected data to be set")
	}
	if resp.Error != nil {
		t.Error("Expected error to be nil")
	}
}

func TestError(t *testing.T) {
	resp := Error(ErrCodeNotFound, "package not found")

	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected error to be set")
	}
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected code %s, got %s", ErrCodeNotFound, resp.Error.Code)
	}
	if resp.Error.Message != "package not found" {
		t.Errorf("Unexpected message: %s", resp.Error.Message)
	}
}

func TestErrorWithDetails(t *testing.T) {
	details := map[string]string{"amount": "must be at least 1"}
	resp := ErrorWithDetails(ErrCodeValidationFailed, "Validation failed", details)

	if resp.Error == nil {
		t.Fatal("Expected error to be set")
	}
	if resp.Error.Details["amount"] != "must be at least 1" {
		t.Errorf("Expected detail for 'amount', got %v", resp.Error.Details)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeScopeNotSet, http.StatusForbidden},
		{ErrCodeSoldOut, http.StatusConflict},
		{ErrCodePaymentFailed, http.StatusPaymentRequired},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetHTTPStatus(tt.code); got != tt.expected {
				t.Errorf("GetHTTPStatus(%s) = %d, expected %d", tt.code, got, tt.expected)
			}
		})
	}
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		perPage       int
		total         int64
		expectedPages int
	}{
		{"exact division", 1, 10, 100, 10},
		{"with remainder", 1, 10, 101, 11},
		{"single page", 1, 20, 5, 1},
		{"empty", 1, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Paginated([]string{}, tt.page, tt.perPage, tt.total)

			if resp.Meta == nil {
				t.Fatal("Expected meta to be set")
			}
			if resp.Meta.TotalPages != tt.expectedPages {
				t.Errorf("Expected %d total pages, got %d", tt.expectedPages, resp.Meta.TotalPages)
			}
			if resp.Meta.Total != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, resp.Meta.Total)
			}
		})
	}
}

func TestDefaultPagination(t *testing.T) {
	p := DefaultPagination()
	if p.Page != 1 || p.PerPage != 20 {
		t.Errorf("Unexpected defaults: page=%d per_page=%d", p.Page, p.PerPage)
	}
}
