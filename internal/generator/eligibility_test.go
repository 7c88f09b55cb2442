package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/errors"
)

func TestCheckEligible(t *testing.T) {
	c := fixtureCatalog(t)

	tests := []struct {
		name     string
		typeName string
		reason   string
	}{
		{"interface", "java.lang.Runnable", ""},
		{"abstract class", "com.example.tasks.Task", ""},
		{"class with private constructor only", "com.example.tasks.Singleton", ""},
		{"final class", "com.example.tasks.Sealed", "final"},
		{"final prelude class", "java.lang.String", "final"},
		{"primitive", "int", "primitive"},
		{"void", "void", "primitive"},
		{"array", "java.lang.Runnable[]", "array"},
		{"local class", "com.example.tasks.LocalWorker", "local"},
		{"anonymous class", "com.example.tasks.AnonymousWorker", "anonymous"},
		{"member interface", "com.example.tasks.Outer.Listener", "member"},
		{"member class by binary name", "com.example.tasks.Outer$Node", "member"},
		{"enum base", "java.lang.Enum", "enumerations"},
		{"no declared constructors", "com.example.tasks.Bare", "no constructors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEligible(lookup(t, c, tt.typeName))
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var genErr *errors.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, errors.UnsupportedErrorCode, genErr.ErrorCode())
			assert.Equal(t, "eligibility", genErr.Stage)
			assert.Contains(t, genErr.Error(), tt.reason)
		})
	}
}

func TestCheckEligible_Nil(t *testing.T) {
	err := CheckEligible(nil)
	assert.True(t, errors.IsKind(err, errors.UnsupportedErrorCode))
}
