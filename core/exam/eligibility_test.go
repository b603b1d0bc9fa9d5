package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseEligibility(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMin int
		wantMax int
		wantErr bool
	}{
		{name: "plain range", in: "8-12", wantMin: 8, wantMax: 12},
		{name: "free text around range", in: "Grade 8-12 students", wantMin: 8, wantMax: 12},
		{name: "spaces inside range", in: "Class 6 - 10", wantMin: 6, wantMax: 10},
		{name: "single class", in: "Grade 10 only", wantErr: true},
		{name: "no digits", in: "everyone welcome", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "dangling hyphen", in: "Grade 8- students", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := parseEligibility(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}
