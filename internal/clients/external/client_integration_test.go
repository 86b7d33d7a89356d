//go:build integration

package external_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-charbuilder/internal/clients/external"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

func TestFetchRaces_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	source, err := external.New(&external.Config{})
	require.NoError(t, err)

	batch, err := source.Fetch(context.Background(), srd.CategoryRace)
	require.NoError(t, err)
	require.NotEmpty(t, batch.Entries)

	names := make(map[string]bool)
	for _, e := range batch.Entries {
		names[e.GetIndex()] = true
	}
	for _, want := range []string{"dragonborn", "half-elf", "human"} {
		assert.True(t, names[want], want)
	}
}

func TestFetchEquipment_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	source, err := external.New(&external.Config{Concurrency: 4})
	require.NoError(t, err)

	batch, err := source.Fetch(context.Background(), srd.CategoryEquipment)
	require.NoError(t, err)

	for _, e := range batch.Entries {
		if e.GetIndex() != "longsword" {
			continue
		}
		sword := e.(*srd.Equipment)
		assert.True(t, sword.IsWeapon())
		require.NotNil(t, sword.Damage)
		assert.Equal(t, "1d8", sword.Damage.DamageDice)
		return
	}
	t.Fatal("longsword not found")
}
