package errors

// MaxGridSide bounds each grid dimension accepted from files and requests.
// The engine itself has no limit; this protects the CLI and HTTP surfaces
// from allocating absurd grids.
const MaxGridSide = 1024

// ValidateGridSize checks that a grid of rows×cols can be built.
//
// Validation rules:
//   - Both dimensions must be at least 1
//   - Neither dimension may exceed MaxGridSide
func ValidateGridSize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return New(ErrCodeInvalidSize, "grid must have at least one row and one column (got %dx%d)", rows, cols)
	}
	if rows > MaxGridSide || cols > MaxGridSide {
		return New(ErrCodeInvalidSize, "grid too large: %dx%d (max %d per side)", rows, cols, MaxGridSide)
	}
	return nil
}

// ValidateStepLimit checks a user supplied cap on search steps.
// Zero means unlimited.
func ValidateStepLimit(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "step limit cannot be negative (got %d)", n)
	}
	return nil
}
