package supplier

import (
	"context"
	"strings"
	"testing"

	"larder/internal/core/apperror"
)

func strPtr(s string) *string { return &s }

func TestSupplier_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(s *Supplier)
		wantErr bool
	}{
		{"valid minimal", func(s *Supplier) {}, false},
		{"valid full", func(s *Supplier) {
			s.ContactPerson = strPtr("Ana Perez")
			s.Phone = strPtr("+34 600 000 000")
			s.Email = strPtr("ana@example.com")
		}, false},
		{"empty name", func(s *Supplier) { s.Name = "" }, true},
		{"name too long", func(s *Supplier) { s.Name = strings.Repeat("x", 151) }, true},
		{"contact too long", func(s *Supplier) { s.ContactPerson = strPtr(strings.Repeat("x", 101)) }, true},
		{"phone too long", func(s *Supplier) { s.Phone = strPtr(strings.Repeat("9", 21)) }, true},
		{"bad email", func(s *Supplier) { s.Email = strPtr("not-an-email") }, true},
		{"email without tld", func(s *Supplier) { s.Email = strPtr("a@b") }, true},
		{"empty email is allowed", func(s *Supplier) { s.Email = strPtr("") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("Fresh Foods SL")
			tt.mutate(s)
			err := s.Validate(ctx)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !apperror.HasCode(err, apperror.CodeValidation) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
