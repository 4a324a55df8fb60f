package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{"open", "open", StatusOpen, false},
		{"stalled", "stalled", StatusStalled, false},
		{"closed", "closed", StatusClosed, false},
		{"empty", "", "", true},
		{"unknown value", "resolved", "", true},
		{"case sensitive", "Open", "", true},
		{"whitespace", " open", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTicketStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketStatus_IsValid(t *testing.T) {
	assert.True(t, StatusOpen.IsValid())
	assert.True(t, StatusStalled.IsValid())
	assert.True(t, StatusClosed.IsValid())
	assert.False(t, TicketStatus("pending").IsValid())
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Printer jam"))
	assert.Error(t, ValidateTitle(""))
	assert.Error(t, ValidateTitle("   "), "whitespace-only title is empty after trimming")
	assert.NoError(t, ValidateTitle(strings.Repeat("x", TitleMaxLength)))
	assert.Error(t, ValidateTitle(strings.Repeat("x", TitleMaxLength+1)))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(""), "description may be empty")
	assert.NoError(t, ValidateDescription(strings.Repeat("x", DescriptionMaxLength)))
	assert.Error(t, ValidateDescription(strings.Repeat("x", DescriptionMaxLength+1)))
}

func TestValidationError_Detection(t *testing.T) {
	err := ValidateTitle("")
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrTicketNotFound))
}
