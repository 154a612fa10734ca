package mdmath

import (
	"errors"
	"slices"
	"testing"

	"github.com/alnah/go-mdmath/internal/assets"
)

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	for _, want := range []string{DefaultStyle, "print"} {
		if !slices.Contains(names, want) {
			t.Errorf("StyleNames() = %v, missing %q", names, want)
		}
	}
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"style not found", assets.ErrStyleNotFound, ErrStyleNotFound},
		{"invalid name", assets.ErrInvalidAssetName, ErrStyleNotFound},
		{"invalid asset dir", assets.ErrInvalidAssetDir, ErrInvalidAssetPath},
		{"outside asset dir", assets.ErrOutsideAssetDir, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertAssetError(tt.err)
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("convertAssetError(%v) = %v, want %v", tt.err, got, tt.wantErr)
			}
			if got.Error() != tt.err.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), tt.err.Error())
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}
	other := errors.New("disk on fire")
	if convertAssetError(other) != other {
		t.Error("unknown errors should pass through unchanged")
	}
}
