package testutils

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-charbuilder/internal/clients/dataset"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// DatasetRoot returns the path of the small SRD fixture dataset
func DatasetRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "srd")
}

// LoadRegistry loads the fixture dataset with no override tables
func LoadRegistry(t testing.TB) *registry.Registry {
	return LoadRegistryWithOverrides(t, "")
}

// LoadRegistryWithOverrides loads the fixture dataset reading override
// tables from dir
func LoadRegistryWithOverrides(t testing.TB, dir string) *registry.Registry {
	t.Helper()

	client, err := dataset.New(&dataset.Config{Root: DatasetRoot()})
	require.NoError(t, err, "failed to open fixture dataset")

	reg, err := registry.Load(context.Background(), &registry.Config{
		Source:       client,
		OverridesDir: dir,
	})
	require.NoError(t, err, "failed to load fixture registry")
	return reg
}
