package training

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Domain errors
var (
	ErrNoTrainers       = errors.New("content must list at least one trainer")
	ErrDuplicatePackage = errors.New("package names must be unique")
	ErrInvalidSessions  = errors.New("package sessions must be positive")
	ErrNegativePrice    = errors.New("package price cannot be negative")
	ErrEmptyTrainerName = errors.New("trainer name cannot be empty")
	ErrEnquiryName      = errors.New("please tell us your name")
	ErrEnquiryEmail     = errors.New("please enter a valid email address")
	ErrEnquiryMessage   = errors.New("message must be between 10 and 2000 characters")
	ErrUnknownPackage   = errors.New("unknown package")
)

// Trainer is a personal trainer featured on the page.
type Trainer struct {
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Photo       string   `yaml:"photo"`
	Specialties []string `yaml:"specialties"`
	Bio         string   `yaml:"bio"` // markdown
}

// Package is a bundle of personal-training sessions.
type Package struct {
	Name        string `yaml:"name"`
	Sessions    int    `yaml:"sessions"`
	PriceCents  int    `yaml:"price_cents"`
	Currency    string `yaml:"currency"`
	Description string `yaml:"description"`
	Featured    bool   `yaml:"featured"`
}

// PerSessionCents returns the per-session price, rounded to the nearest cent.
// PRE: Sessions > 0
func (p Package) PerSessionCents() int {
	if p.Sessions <= 0 {
		return 0
	}
	return (p.PriceCents + p.Sessions/2) / p.Sessions
}

// FAQ is a question and its markdown answer.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Content is the personal-training marketing page.
type Content struct {
	Headline string    `yaml:"headline"`
	Intro    string    `yaml:"intro"` // markdown
	Trainers []Trainer `yaml:"trainers"`
	Packages []Package `yaml:"packages"`
	FAQ      []FAQ     `yaml:"faq"`
}

// Validate checks the content document.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Content) Validate() error {
	if len(c.Trainers) == 0 {
		return ErrNoTrainers
	}
	for _, t := range c.Trainers {
		if strings.TrimSpace(t.Name) == "" {
			return ErrEmptyTrainerName
		}
	}
	seen := make(map[string]bool, len(c.Packages))
	for _, p := range c.Packages {
		if seen[p.Name] {
			return ErrDuplicatePackage
		}
		seen[p.Name] = true
		if p.Sessions <= 0 {
			return ErrInvalidSessions
		}
		if p.PriceCents < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}

// FindPackage returns the package with the given name.
func (c *Content) FindPackage(name string) (Package, bool) {
	for _, p := range c.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// currencySymbols maps ISO codes to display symbols.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// FormatPrice renders an amount in cents as "€ 45.00".
// Unknown currencies fall back to the ISO code.
func FormatPrice(cents int, currency string) string {
	sym, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		sym = strings.ToUpper(currency)
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s %d.%02d", sign, sym, cents/100, cents%100)
}

// Enquiry is a prospective client's request for personal training.
type Enquiry struct {
	Name    string
	Email   string
	Package string // optional
	Message string
}

// Validate checks an enquiry against the content's packages.
func (e *Enquiry) Validate(c *Content) error {
	if strings.TrimSpace(e.Name) == "" || len(e.Name) > 100 {
		return ErrEnquiryName
	}
	addr, err := mail.ParseAddress(e.Email)
	if err != nil || addr.Address != strings.TrimSpace(e.Email) {
		return ErrEnquiryEmail
	}
	msg := strings.TrimSpace(e.Message)
	if len(msg) < 10 || len(msg) > 2000 {
		return ErrEnquiryMessage
	}
	if e.Package != "" {
		if _, ok := c.FindPackage(e.Package); !ok {
			return ErrUnknownPackage
		}
	}
	return nil
}
