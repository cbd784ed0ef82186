package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected Method
	}{
		{"Content-Based", MethodContent},
		{"content", MethodContent},
		{" CB ", MethodContent},
		{"Collaborative-Based", MethodCollaborative},
		{"collaborative", MethodCollaborative},
		{"cf", MethodCollaborative},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMethod(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestParseMethod_Unknown(t *testing.T) {
	_, err := ParseMethod("hybrid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMethod_Other(t *testing.T) {
	assert.Equal(t, MethodCollaborative, MethodContent.Other())
	assert.Equal(t, MethodContent, MethodCollaborative.Other())
}

func TestMethod_Short(t *testing.T) {
	assert.Equal(t, "content", MethodContent.Short())
	assert.Equal(t, "collaborative", MethodCollaborative.Short())
	assert.Equal(t, "unknown", Method("x").Short())
}

func TestFeedbackRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  FeedbackRecord
		wantErr bool
	}{
		{"valid", FeedbackRecord{Method: MethodContent, Query: "Toy Story", Rating: 4}, false},
		{"min rating", FeedbackRecord{Method: MethodCollaborative, Query: "q", Rating: 1}, false},
		{"zero rating", FeedbackRecord{Method: MethodContent, Query: "q", Rating: 0}, true},
		{"above max", FeedbackRecord{Method: MethodContent, Query: "q", Rating: 6}, true},
		{"unknown method", FeedbackRecord{Method: "Hybrid", Query: "q", Rating: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionRatingState_WithIsCopy(t *testing.T) {
	s := NewSessionRatingState("s1")
	updated := s.With(MethodCollaborative, MethodState{Rating: 5, Query: "Heat"})

	assert.Equal(t, MethodState{}, s.For(MethodCollaborative))
	assert.Equal(t, MethodState{Rating: 5, Query: "Heat"}, updated.For(MethodCollaborative))
	assert.Equal(t, MethodState{}, updated.For(MethodContent))
	assert.Equal(t, MethodContent, updated.Active)
	assert.Equal(t, "s1", updated.ID)
}
