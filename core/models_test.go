package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromIdentity(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromIdentity("John_Smith")
		id2 := IDFromIdentity("John_Smith")
		assert.Equal(t, id1, id2)
	})

	t.Run("different identities produce different IDs", func(t *testing.T) {
		id1 := IDFromIdentity("John_Smith")
		id2 := IDFromIdentity("Jane_Smith")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty identity produces stable ID", func(t *testing.T) {
		assert.Equal(t, IDFromIdentity(""), IDFromIdentity(""))
	})
}

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Identity
	}{
		{"simple name", "John Smith", "John_Smith"},
		{"punctuation stripped", "O'Brien, Jr.", "OBrien_Jr"},
		{"multiple spaces collapse", "John   Smith", "John_Smith"},
		{"hyphens collapse", "Anna-Maria  Lopez", "Anna_Maria_Lopez"},
		{"mixed separators", "John - Smith", "John_Smith"},
		{"unicode letters kept", "Håkon Сергей", "Håkon_Сергей"},
		{"empty input", "", "unnamed"},
		{"only punctuation", "!!!...???", "unnamed"},
		{"leading and trailing separators trimmed", "  John Smith  ", "John_Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdentity(tt.input))
		})
	}

	t.Run("length capped", func(t *testing.T) {
		long := ""
		for i := 0; i < 30; i++ {
			long += "abcdefghij"
		}
		id := NormalizeIdentity(long)
		assert.LessOrEqual(t, len([]rune(string(id))), 100)
	})

	t.Run("same normalized name collides by design", func(t *testing.T) {
		// This is the intended dedup key, not a bug.
		assert.Equal(t, NormalizeIdentity("John Smith"), NormalizeIdentity("John  Smith!"))
	})
}

func TestProfileIdentity(t *testing.T) {
	p := &Profile{Name: "John Smith"}
	assert.Equal(t, Identity("John_Smith"), p.Identity())
}

func TestViews(t *testing.T) {
	views := Views()
	require.Len(t, views, 2)
	assert.Equal(t, ViewProfessional, views[0])
	assert.Equal(t, ViewPersonal, views[1])

	assert.True(t, ViewProfessional.Valid())
	assert.True(t, ViewPersonal.Valid())
	assert.False(t, View("social").Valid())
}

func TestProjectionText(t *testing.T) {
	profile := &Profile{
		Name:         "John Smith",
		Expertise:    "hotel operations",
		Business:     "hospitality consulting",
		Hobbies:      []string{"sailing", "chess"},
		FamilyStatus: "married",
		Contacts:     []string{"+1 555 0100", "john@example.com", "smithconsulting.com"},
	}

	t.Run("professional view carries only business facets", func(t *testing.T) {
		text := ViewProfessional.ProjectionText(profile)
		assert.Contains(t, text, "John Smith")
		assert.Contains(t, text, "hospitality consulting")
		assert.Contains(t, text, "hotel operations")
		assert.Contains(t, text, "smithconsulting.com")
		assert.NotContains(t, text, "sailing")
		assert.NotContains(t, text, "married")
		assert.NotContains(t, text, "+1 555 0100")
		assert.NotContains(t, text, "john@example.com")
	})

	t.Run("personal view carries only personal facets", func(t *testing.T) {
		text := ViewPersonal.ProjectionText(profile)
		assert.Contains(t, text, "John Smith")
		assert.Contains(t, text, "sailing")
		assert.Contains(t, text, "chess")
		assert.Contains(t, text, "married")
		assert.NotContains(t, text, "hospitality consulting")
		assert.NotContains(t, text, "hotel operations")
	})

	t.Run("sparse profile still produces text", func(t *testing.T) {
		sparse := &Profile{Name: "Jane Doe"}
		assert.Equal(t, "Name: Jane Doe", ViewProfessional.ProjectionText(sparse))
		assert.Equal(t, "Jane Doe", ViewPersonal.ProjectionText(sparse))
	})

	t.Run("unknown view yields empty text", func(t *testing.T) {
		assert.Empty(t, View("social").ProjectionText(profile))
	})
}

func TestValidateProfile(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		err := ValidateProfile(&Profile{Name: "John Smith"})
		assert.NoError(t, err)
	})

	t.Run("nil profile", func(t *testing.T) {
		err := ValidateProfile(nil)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateProfile(&Profile{})
		assert.ErrorIs(t, err, ErrInvalidProfile)
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestValidateView(t *testing.T) {
	assert.NoError(t, ValidateView(ViewProfessional))
	assert.NoError(t, ValidateView(ViewPersonal))
	assert.ErrorIs(t, ValidateView(View("social")), ErrUnknownView)
}
