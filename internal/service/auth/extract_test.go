package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid bearer header", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"missing header", "", "", ErrMissingAuthHeader},
		{"wrong scheme", "Basic abc.def.ghi", "", ErrMalformedAuthHeader},
		{"lowercase scheme", "bearer abc.def.ghi", "", ErrMalformedAuthHeader},
		{"no token", "Bearer", "", ErrMalformedAuthHeader},
		{"empty token", "Bearer ", "", ErrMalformedAuthHeader},
		{"extra whitespace segment", "Bearer  abc.def.ghi", "", ErrMalformedAuthHeader},
		{"trailing segment", "Bearer abc.def.ghi extra", "", ErrMalformedAuthHeader},
		{"token only", "abc.def.ghi", "", ErrMalformedAuthHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
