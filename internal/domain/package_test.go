package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestTicketPackage_AvailableAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name string
		pkg  TicketPackage
		want bool
	}{
		{
			name: "active unbounded package",
			pkg:  TicketPackage{IsActive: true},
			want: true,
		},
		{
			name: "inactive package",
			pkg:  TicketPackage{IsActive: false},
			want: false,
		},
		{
			name: "soft deleted package",
			pkg:  TicketPackage{IsActive: true, DeletedAt: &before},
			want: false,
		},
		{
			name: "window not yet open",
			pkg:  TicketPackage{IsActive: true, AvailableFrom: &after},
			want: false,
		},
		{
			name: "window already closed",
			pkg:  TicketPackage{IsActive: true, AvailableUntil: &before},
			want: false,
		},
		{
			name: "window open at boundary start",
			pkg:  TicketPackage{IsActive: true, AvailableFrom: &now},
			want: true,
		},
		{
			name: "window open at boundary end",
			pkg:  TicketPackage{IsActive: true, AvailableUntil: &now},
			want: true,
		},
		{
			name: "stock exhausted",
			pkg:  TicketPackage{IsActive: true, StockLimit: intPtr(10), CurrentStock: 10},
			want: false,
		},
		{
			name: "stock remaining",
			pkg:  TicketPackage{IsActive: true, StockLimit: intPtr(10), CurrentStock: 9},
			want: true,
		},
		{
			name: "no stock limit ignores current stock",
			pkg:  TicketPackage{IsActive: true, CurrentStock: 9999},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.AvailableAt(now); got != tt.want {
				t.Errorf("AvailableAt() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestTicketPackage_RemainingStock(t *testing.T) {
	unlimited := TicketPackage{}
	if got := unlimited.RemainingStock(); got != -1 {
		t.Errorf("Expected -1 for unlimited stock, got %d", got)
	}

	limited := TicketPackage{StockLimit: intPtr(10), CurrentStock: 3}
	if got := limited.RemainingStock(); got != 7 {
		t.Errorf("Expected 7 remaining, got %d", got)
	}

	oversold := TicketPackage{StockLimit: intPtr(10), CurrentStock: 12}
	if got := oversold.RemainingStock(); got != 0 {
		t.Errorf("Expected 0 remaining when oversold, got %d", got)
	}
}

func TestTimeLimitedOffer_ActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	offer := TimeLimitedOffer{
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"inside window", start.AddDate(0, 0, 15), true},
		{"exactly at start", start, true},
		{"exactly at end", end, true},
		{"one second before start", start.Add(-time.Second), false},
		{"one second after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offer.ActiveAt(tt.now); got != tt.want {
				t.Errorf("ActiveAt(%v) = %v, expected %v", tt.now, got, tt.want)
			}
		})
	}

	disabled := offer
	disabled.IsActive = false
	if disabled.ActiveAt(start.AddDate(0, 0, 15)) {
		t.Error("Expected disabled offer to be inactive inside its window")
	}
}
