package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SearchMode
		wantErr bool
	}{
		{input: "", want: SearchModeShallow},
		{input: "shallow", want: SearchModeShallow},
		{input: "deep", want: SearchModeDeep},
		{input: "medium", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSearchMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversation_TextRoundTrip(t *testing.T) {
	conv := Conversation{
		{Role: RoleUser, Content: "what is go?"},
		{Role: RoleAssistant, Content: "A programming language.\nWith \"quotes\"."},
		{Role: RoleUser, Content: "who made it?"},
	}

	data, err := conv.MarshalText()
	require.NoError(t, err)

	var loaded Conversation
	require.NoError(t, loaded.UnmarshalText(data))
	assert.Equal(t, conv, loaded)
}

func TestConversation_NilMarshalsAsEmptyArray(t *testing.T) {
	var conv Conversation
	data, err := conv.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestConversation_UnmarshalEmpty(t *testing.T) {
	var conv Conversation
	require.NoError(t, conv.UnmarshalText(nil))
	assert.NotNil(t, conv)
	assert.Empty(t, conv)

	require.NoError(t, conv.UnmarshalText([]byte("null")))
	assert.NotNil(t, conv)
}

func TestConversation_UnmarshalInvalid(t *testing.T) {
	var conv Conversation
	assert.Error(t, conv.UnmarshalText([]byte("{not json")))
}

func TestPageResult_OK(t *testing.T) {
	assert.True(t, PageResult{Page: &WebPage{}}.OK())
	assert.False(t, PageResult{Skipped: true, Page: &WebPage{}}.OK())
	assert.False(t, PageResult{Err: ErrFetchFailed}.OK())
	assert.False(t, PageResult{}.OK())
}

func TestSearch_Clone(t *testing.T) {
	orig := Search{ID: "s1", Conversation: Conversation{{Role: RoleUser, Content: "q"}}}
	cp := orig.Clone()
	cp.Conversation[0].Content = "changed"
	assert.Equal(t, "q", orig.Conversation[0].Content)
}
