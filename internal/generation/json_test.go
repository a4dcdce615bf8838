package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Score     int      `json:"score"`
		Strengths []string `json:"strengths"`
	}

	tests := []struct {
		name string
		text string
		want payload
	}{
		{
			name: "bare JSON",
			text: `{"score": 7, "strengths": ["clear"]}`,
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
		{
			name: "surrounding whitespace",
			text: "\n\n  {\"score\": 7, \"strengths\": [\"clear\"]}  \n",
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
		{
			name: "markdown fence",
			text: "```json\n{\"score\": 7, \"strengths\": [\"clear\"]}\n```",
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
		{
			name: "fence without language tag",
			text: "```\n{\"score\": 7, \"strengths\": [\"clear\"]}\n```",
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
		{
			name: "leading and trailing prose",
			text: "Here is my assessment:\n{\"score\": 7, \"strengths\": [\"clear\"]}\nLet me know if you need more detail.",
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got payload
			require.NoError(t, decodeModelJSON(tc.text, &got))
			assert.Equal(t, tc.want, got)
		})
	}

	repairs := []struct {
		name string
		text string
		want payload
	}{
		{
			name: "trailing comma in object",
			text: `{"score": 7, "strengths": ["clear"],}`,
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
		{
			name: "raw tab inside string",
			text: "{\"score\": 7, \"strengths\": [\"clear\tconcise\"]}",
			want: payload{Score: 7, Strengths: []string{"clear\tconcise"}},
		},
		{
			name: "raw newline inside string",
			text: "{\"score\": 7, \"strengths\": [\"clear\nand direct\"]}",
			want: payload{Score: 7, Strengths: []string{"clear\nand direct"}},
		},
		{
			name: "fence plus trailing comma",
			text: "```json\n{\"score\": 7, \"strengths\": [\"clear\",],}\n```",
			want: payload{Score: 7, Strengths: []string{"clear"}},
		},
	}
	for _, tc := range repairs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got payload
			require.NoError(t, decodeModelJSON(tc.text, &got))
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("trailing comma in array", func(t *testing.T) {
		t.Parallel()
		var got []payload
		require.NoError(t, decodeModelJSON(`[{"score": 7,}]`, &got))
		require.Len(t, got, 1)
		assert.Equal(t, 7, got[0].Score)
	})

	t.Run("array with prose", func(t *testing.T) {
		t.Parallel()
		var got []payload
		text := "Sure! Here are the results:\n[{\"score\": 1}, {\"score\": 2}]"
		require.NoError(t, decodeModelJSON(text, &got))
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[1].Score)
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := decodeModelJSON("   ", &got)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := decodeModelJSON("I cannot answer that as JSON.", &got)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("broken JSON", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := decodeModelJSON(`{"score": 7, "strengths": [`, &got)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestRepairJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "valid JSON unchanged",
			in:   `{"a": [1, 2], "b": "x, y"}`,
			want: `{"a": [1, 2], "b": "x, y"}`,
		},
		{
			name: "trailing comma before brace",
			in:   `{"a": 1,}`,
			want: `{"a": 1}`,
		},
		{
			name: "trailing comma across newline",
			in:   "[1, 2,\n]",
			want: "[1, 2\n]",
		},
		{
			name: "comma inside string kept",
			in:   `{"a": "one,"}`,
			want: `{"a": "one,"}`,
		},
		{
			name: "raw newline escaped",
			in:   "{\"a\": \"x\ny\"}",
			want: `{"a": "x\ny"}`,
		},
		{
			name: "other control char hex escaped",
			in:   "{\"a\": \"x\x01y\"}",
			want: `{"a": "x\u0001y"}`,
		},
		{
			name: "escaped quote does not end string",
			in:   "{\"a\": \"he said \\\"hi\tthere\\\"\"}",
			want: `{"a": "he said \"hi\tthere\""}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, repairJSON(tc.in))
		})
	}
}
