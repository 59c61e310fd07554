package character

import (
	"strings"
	"testing"
)

func TestCharacterValidate(t *testing.T) {
	valid := Character{Name: "Thor", Strength: 9, Intelligence: 6, Speed: 7}

	tests := []struct {
		name    string
		mutate  func(*Character)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Character) {}},
		{name: "whitespace name", mutate: func(c *Character) { c.Name = "  " }, wantErr: true},
		{name: "name at limit", mutate: func(c *Character) { c.Name = strings.Repeat("x", NameMaxLength) }},
		{name: "name too long", mutate: func(c *Character) { c.Name = strings.Repeat("x", NameMaxLength+1) }, wantErr: true},
		{name: "strength above range", mutate: func(c *Character) { c.Strength = 11 }, wantErr: true},
		{name: "intelligence below range", mutate: func(c *Character) { c.Intelligence = -1 }, wantErr: true},
		{name: "speed below range", mutate: func(c *Character) { c.Speed = -1 }, wantErr: true},
		{name: "attributes at bounds", mutate: func(c *Character) {
			c.Strength = AttributeMax
			c.Intelligence = AttributeMin
			c.Speed = AttributeMax
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
