package training_test

import (
	"testing"

	"gymportal/internal/domain/training"
)

func sampleContent() training.Content {
	return training.Content{
		Headline: "One to one",
		Trainers: []training.Trainer{{Name: "Luca"}},
		Packages: []training.Package{
			{Name: "Starter", Sessions: 3, PriceCents: 10000, Currency: "EUR"},
			{Name: "Ten Pack", Sessions: 10, PriceCents: 40000, Currency: "EUR"},
		},
	}
}

// TestContent_Validate tests validation of the content document.
func TestContent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *training.Content)
		wantErr error
	}{
		{"valid", func(c *training.Content) {}, nil},
		{"no trainers", func(c *training.Content) { c.Trainers = nil }, training.ErrNoTrainers},
		{"blank trainer", func(c *training.Content) { c.Trainers[0].Name = " " }, training.ErrEmptyTrainerName},
		{"duplicate package", func(c *training.Content) { c.Packages[1].Name = "Starter" }, training.ErrDuplicatePackage},
		{"zero sessions", func(c *training.Content) { c.Packages[0].Sessions = 0 }, training.ErrInvalidSessions},
		{"negative price", func(c *training.Content) { c.Packages[0].PriceCents = -1 }, training.ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleContent()
			tt.mutate(&c)
			if err := c.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestFormatPrice tests price rendering.
func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents    int
		currency string
		want     string
	}{
		{4500, "EUR", "€ 45.00"},
		{4505, "eur", "€ 45.05"},
		{99, "USD", "$ 0.99"},
		{100000, "CHF", "CHF 1000.00"},
		{-250, "GBP", "-£ 2.50"},
	}
	for _, tt := range tests {
		if got := training.FormatPrice(tt.cents, tt.currency); got != tt.want {
			t.Errorf("FormatPrice(%d, %s) = %q, want %q", tt.cents, tt.currency, got, tt.want)
		}
	}
}

// TestPackage_PerSessionCents tests per-session rounding.
func TestPackage_PerSessionCents(t *testing.T) {
	c := sampleContent()
	if got := c.Packages[0].PerSessionCents(); got != 3333 {
		t.Errorf("PerSessionCents() = %d, want 3333", got)
	}
	if got := c.Packages[1].PerSessionCents(); got != 4000 {
		t.Errorf("PerSessionCents() = %d, want 4000", got)
	}
}

// TestEnquiry_Validate tests enquiry validation.
func TestEnquiry_Validate(t *testing.T) {
	c := sampleContent()
	good := training.Enquiry{Name: "Anna", Email: "anna@example.com", Package: "Starter", Message: "I'd like to get stronger for skiing."}
	if err := good.Validate(&c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(e *training.Enquiry)
		wantErr error
	}{
		{"no name", func(e *training.Enquiry) { e.Name = "" }, training.ErrEnquiryName},
		{"bad email", func(e *training.Enquiry) { e.Email = "anna" }, training.ErrEnquiryEmail},
		{"display-name email", func(e *training.Enquiry) { e.Email = "Anna <anna@example.com>" }, training.ErrEnquiryEmail},
		{"short message", func(e *training.Enquiry) { e.Message = "hi" }, training.ErrEnquiryMessage},
		{"unknown package", func(e *training.Enquiry) { e.Package = "Gold" }, training.ErrUnknownPackage},
		{"no package is fine", func(e *training.Enquiry) { e.Package = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := good
			tt.mutate(&e)
			if err := e.Validate(&c); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
