package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "08:00", want: "0 8 * * *"},
		{input: "23:59", want: "59 23 * * *"},
		{input: "00:00", want: "0 0 * * *"},
		{input: "8", wantErr: true},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			spec, err := buildDailySpec(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, spec)
		})
	}
}
