// Package dataset reads the vendored 5e-bits SRD JSON files from disk
package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// Files maps each category to its file in the dataset root
var Files = map[srd.Category]string{
	srd.CategoryRace:              "5e-SRD-Races.json",
	srd.CategorySubrace:           "5e-SRD-Subraces.json",
	srd.CategoryClass:             "5e-SRD-Classes.json",
	srd.CategorySubclass:          "5e-SRD-Subclasses.json",
	srd.CategoryLevel:             "5e-SRD-Levels.json",
	srd.CategoryBackground:        "5e-SRD-Backgrounds.json",
	srd.CategoryFeat:              "5e-SRD-Feats.json",
	srd.CategorySpell:             "5e-SRD-Spells.json",
	srd.CategoryEquipment:         "5e-SRD-Equipment.json",
	srd.CategoryEquipmentCategory: "5e-SRD-Equipment-Categories.json",
	srd.CategoryFeature:           "5e-SRD-Features.json",
	srd.CategoryTrait:             "5e-SRD-Traits.json",
	srd.CategoryProficiency:       "5e-SRD-Proficiencies.json",
	srd.CategoryLanguage:          "5e-SRD-Languages.json",
	srd.CategoryAlignment:         "5e-SRD-Alignments.json",
	srd.CategorySkill:             "5e-SRD-Skills.json",
}

// Config holds the dataset location
type Config struct {
	Root string
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Root", c.Root, vb)
	return vb.Build()
}

// Client reads categories from the dataset root
type Client struct {
	root string
}

// New creates a client. The root must exist.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoad, "dataset root %s is missing", cfg.Root)
	}
	if !info.IsDir() {
		return nil, errors.DataLoadf("dataset root %s is not a directory", cfg.Root)
	}

	return &Client{root: cfg.Root}, nil
}

// Fetch decodes one category file. A missing file yields an empty batch;
// whether that is fatal is the registry's decision.
func (c *Client) Fetch(ctx context.Context, category srd.Category) (*srd.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "dataset load canceled")
	}

	name, ok := Files[category]
	if !ok {
		return &srd.Batch{Category: category}, nil
	}

	path := filepath.Join(c.root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("dataset file not present", "category", category, "file", name)
			return &srd.Batch{Category: category}, nil
		}
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoad, "failed to read %s", name)
	}

	batch := srd.DecodeBatch(category, data)
	slog.Debug("dataset file loaded",
		"category", category,
		"entries", len(batch.Entries),
		"diagnostics", len(batch.Diagnostics),
	)
	return batch, nil
}
