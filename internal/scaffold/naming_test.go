package scaffold

import (
	"testing"
	"unicode/utf8"
)

func TestCasing(t *testing.T) {
	tests := []struct {
		input                       string
		pascal, camel, snake, kebab string
	}{
		{"user-card", "UserCard", "userCard", "user_card", "user-card"},
		{"UserCard", "UserCard", "userCard", "user_card", "user-card"},
		{"order_item", "OrderItem", "orderItem", "order_item", "order-item"},
		{"product", "Product", "product", "product", "product"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Pascal(tt.input); got != tt.pascal {
				t.Errorf("Pascal(%q) = %q, want %q", tt.input, got, tt.pascal)
			}
			if got := Camel(tt.input); got != tt.camel {
				t.Errorf("Camel(%q) = %q, want %q", tt.input, got, tt.camel)
			}
			if got := Snake(tt.input); got != tt.snake {
				t.Errorf("Snake(%q) = %q, want %q", tt.input, got, tt.snake)
			}
			if got := Kebab(tt.input); got != tt.kebab {
				t.Errorf("Kebab(%q) = %q, want %q", tt.input, got, tt.kebab)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"user-card":  "User Card",
		"UserCard":   "User Card",
		"order_item": "Order Item",
		"dashboard":  "Dashboard",
		"émile-card": "Émile Card",
		"":           "",
	}
	for input, want := range tests {
		got := Title(input)
		if got != want {
			t.Errorf("Title(%q) = %q, want %q", input, got, want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Title(%q) = %q is not valid UTF-8", input, got)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user", "users"},
		{"category", "categories"},
		{"day", "days"},
		{"box", "boxes"},
		{"address", "addresses"},
		{"branch", "branches"},
		{"person", "people"},
		{"order_item", "order_items"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Plural(tt.input); got != tt.want {
				t.Errorf("Plural(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsGoIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Product", true},
		{"orderItem", true},
		{"_x", true},
		{"", false},
		{"2fa", false},
		{"type", false},
		{"user-card", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsGoIdentifier(tt.input); got != tt.want {
				t.Errorf("IsGoIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExportedName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"product", "Product", true},
		{"user-card", "UserCard", true},
		{"order_item", "OrderItem", true},
		{"firstName", "FirstName", true},
		{"émail", "", false},
		{"größe", "", false},
		{"user card", "", false},
		{"2fa", "", false},
		{"_hidden", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExportedName(tt.input)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ExportedName(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsPackageName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"admin", true},
		{"web-app", true},
		{"ui_kit", true},
		{"v2", true},
		{"", false},
		{"Admin", false},
		{"-web", false},
		{"web app", false},
		{"../escape", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsPackageName(tt.input); got != tt.want {
				t.Errorf("IsPackageName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
