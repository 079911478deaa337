package errors

import (
	"testing"
)

func TestValidateGridSize(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		wantErr bool
	}{
		{"single cell", 1, 1, false},
		{"single row", 1, 5, false},
		{"square", 50, 50, false},
		{"max", MaxGridSide, MaxGridSide, false},

		{"zero rows", 0, 5, true},
		{"zero cols", 5, 0, true},
		{"negative", -1, 3, true},
		{"too many rows", MaxGridSide + 1, 1, true},
		{"too many cols", 1, MaxGridSide + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridSize(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGridSize(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateGridSize(%d, %d) code = %v, want %v", tt.rows, tt.cols, GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}

func TestValidateStepLimit(t *testing.T) {
	if err := ValidateStepLimit(0); err != nil {
		t.Errorf("ValidateStepLimit(0) = %v, want nil", err)
	}
	if err := ValidateStepLimit(100); err != nil {
		t.Errorf("ValidateStepLimit(100) = %v, want nil", err)
	}
	if err := ValidateStepLimit(-1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateStepLimit(-1) = %v, want INVALID_INPUT", err)
	}
}
