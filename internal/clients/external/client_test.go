package external_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-charbuilder/internal/clients/external"
	externalmock "github.com/KirkDiggler/rpg-charbuilder/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	registrymock "github.com/KirkDiggler/rpg-charbuilder/internal/registry/mock"
	srdcache "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/srd_cache"
	srdcachemock "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/srd_cache/mock"
)

type SourceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	api      *externalmock.MockAPI
	fallback *registrymock.MockSource
	source   *external.Source
	ctx      context.Context
}

func (s *SourceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = externalmock.NewMockAPI(s.ctrl)
	s.fallback = registrymock.NewMockSource(s.ctrl)
	s.ctx = context.Background()

	source, err := external.New(&external.Config{
		API:         s.api,
		Fallback:    s.fallback,
		Concurrency: 2,
	})
	s.Require().NoError(err)
	s.source = source
}

func (s *SourceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SourceTestSuite) TestNewValidatesConfig() {
	_, err := external.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = external.New(&external.Config{API: s.api, Concurrency: -1})
	s.Require().Error(err)
	s.Contains(err.Error(), "Concurrency")
}

func (s *SourceTestSuite) TestFetchRaces() {
	s.api.EXPECT().ListRaces().Return([]*entities.ReferenceItem{
		{Key: "elf", Name: "Elf"},
		{Key: "gnome", Name: "Gnome"},
	}, nil)
	s.api.EXPECT().GetRace("elf").Return(&entities.Race{
		Key:       "elf",
		Name:      "Elf",
		Speed:     30,
		Size:      "Medium",
		Languages: []*entities.ReferenceItem{{Key: "common", Name: "Common"}, {Key: "elvish", Name: "Elvish"}},
		Traits:    []*entities.ReferenceItem{{Key: "darkvision", Name: "Darkvision"}},
		SubRaces:  []*entities.ReferenceItem{{Key: "high-elf", Name: "High Elf"}},
	}, nil)
	s.api.EXPECT().GetRace("gnome").Return(nil, stderrors.New("502 bad gateway"))

	batch, err := s.source.Fetch(s.ctx, srd.CategoryRace)
	s.Require().NoError(err)
	s.Equal(srd.CategoryRace, batch.Category)
	s.Require().Len(batch.Entries, 1)

	elf, ok := batch.Entries[0].(*srd.Race)
	s.Require().True(ok)
	s.Equal("elf", elf.Index)
	s.Equal(30, elf.Speed)
	s.Equal("Medium", elf.Size)
	s.Equal("high-elf", elf.Subraces[0].Key())
	s.Len(elf.Languages, 2)

	s.Require().Len(batch.Diagnostics, 1)
	s.Equal("gnome", batch.Diagnostics[0].Index)
	s.Equal(1, batch.Diagnostics[0].Position)
	s.Contains(batch.Diagnostics[0].Reason, "502")
}

func (s *SourceTestSuite) TestFetchRaceChoices() {
	s.api.EXPECT().ListRaces().Return([]*entities.ReferenceItem{{Key: "half-elf", Name: "Half-Elf"}}, nil)
	s.api.EXPECT().GetRace("half-elf").Return(&entities.Race{
		Key:  "half-elf",
		Name: "Half-Elf",
		StartingProficiencyOptions: &entities.ChoiceOption{
			ChoiceCount: 2,
			ChoiceType:  "proficiencies",
			OptionList: &entities.OptionList{
				Options: []entities.Option{
					&entities.ReferenceOption{Reference: &entities.ReferenceItem{Key: "skill-arcana", Name: "Skill: Arcana"}},
					&entities.ReferenceOption{Reference: &entities.ReferenceItem{Name: "Skill: Animal Handling"}},
				},
			},
		},
	}, nil)

	batch, err := s.source.Fetch(s.ctx, srd.CategoryRace)
	s.Require().NoError(err)
	s.Require().Len(batch.Entries, 1)

	race := batch.Entries[0].(*srd.Race)
	s.Require().NotNil(race.StartingProficiencyOptions)
	s.Equal(2, race.StartingProficiencyOptions.Choose)

	var keys []string
	for _, ref := range race.StartingProficiencyOptions.References() {
		keys = append(keys, ref.Key())
	}
	s.Equal([]string{"skill-arcana", "skill-animal-handling"}, keys)
}

func (s *SourceTestSuite) TestFetchSpells() {
	s.api.EXPECT().ListSpells(gomock.Any()).Return([]*entities.ReferenceItem{{Key: "fire-bolt", Name: "Fire Bolt"}}, nil)
	s.api.EXPECT().GetSpell("fire-bolt").Return(&entities.Spell{
		Key:          "fire-bolt",
		Name:         "Fire Bolt",
		SpellLevel:   0,
		Range:        "120 feet",
		CastingTime:  "1 action",
		Duration:     "Instantaneous",
		SpellSchool:  &entities.ReferenceItem{Key: "evocation", Name: "Evocation"},
		SpellClasses: []*entities.ReferenceItem{{Key: "sorcerer", Name: "Sorcerer"}, {Key: "wizard", Name: "Wizard"}},
	}, nil)

	batch, err := s.source.Fetch(s.ctx, srd.CategorySpell)
	s.Require().NoError(err)
	s.Require().Len(batch.Entries, 1)

	spell := batch.Entries[0].(*srd.Spell)
	s.Equal(0, spell.Level)
	s.Equal("evocation", spell.School.Key())
	s.Equal("120 feet", spell.Range)
	s.Len(spell.Classes, 2)
}

func (s *SourceTestSuite) TestFetchEquipment() {
	s.api.EXPECT().ListEquipment().Return([]*entities.ReferenceItem{
		{Key: "longsword", Name: "Longsword"},
		{Key: "scale-mail", Name: "Scale Mail"},
		{Key: "rope-hempen-50-feet", Name: "Rope, hempen (50 feet)"},
	}, nil)
	s.api.EXPECT().GetEquipment("longsword").Return(&entities.Weapon{
		Key:            "longsword",
		Name:           "Longsword",
		WeaponCategory: "Martial",
		WeaponRange:    "Melee",
		Weight:         3.0,
		Cost:           &entities.Cost{Quantity: 15, Unit: "gp"},
		Damage:         &entities.Damage{DamageDice: "1d8", DamageType: &entities.ReferenceItem{Key: "slashing", Name: "Slashing"}},
		Properties:     []*entities.ReferenceItem{{Name: "Versatile"}},
	}, nil)
	s.api.EXPECT().GetEquipment("scale-mail").Return(&entities.Armor{
		Key:                 "scale-mail",
		Name:                "Scale Mail",
		ArmorCategory:       "Medium",
		Weight:              45.0,
		StealthDisadvantage: true,
		ArmorClass:          &entities.ArmorClass{Base: 14, DexBonus: true},
	}, nil)
	s.api.EXPECT().GetEquipment("rope-hempen-50-feet").Return(&entities.Equipment{
		Key:    "rope-hempen-50-feet",
		Name:   "Rope, hempen (50 feet)",
		Weight: 10.0,
		Cost:   &entities.Cost{Quantity: 1, Unit: "gp"},
	}, nil)

	batch, err := s.source.Fetch(s.ctx, srd.CategoryEquipment)
	s.Require().NoError(err)
	s.Require().Len(batch.Entries, 3)

	sword := batch.Entries[0].(*srd.Equipment)
	s.True(sword.IsWeapon())
	s.Equal("Martial Melee", sword.CategoryRange)
	s.Equal("1d8", sword.Damage.DamageDice)
	s.True(sword.HasProperty("versatile"))
	s.Equal(srd.Cost{Quantity: 15, Unit: "gp"}, sword.Cost)

	mail := batch.Entries[1].(*srd.Equipment)
	s.True(mail.IsArmor())
	s.Equal(&srd.ArmorClass{Base: 14, DexBonus: true, MaxBonus: 2}, mail.ArmorClass)

	rope := batch.Entries[2].(*srd.Equipment)
	s.False(rope.IsWeapon())
	s.False(rope.IsArmor())
	s.InDelta(10.0, rope.Weight, 0.001)
}

func (s *SourceTestSuite) TestListFailureIsDataLoad() {
	s.api.EXPECT().ListSpells(gomock.Any()).Return(nil, stderrors.New("connection reset"))

	_, err := s.source.Fetch(s.ctx, srd.CategorySpell)
	s.Require().Error(err)
	s.True(errors.IsDataLoad(err))
}

func (s *SourceTestSuite) TestOtherCategoriesUseFallback() {
	want := &srd.Batch{Category: srd.CategoryBackground, Entries: []srd.Entry{&srd.Background{Index: "acolyte", Name: "Acolyte"}}}
	s.fallback.EXPECT().Fetch(s.ctx, srd.CategoryBackground).Return(want, nil)

	batch, err := s.source.Fetch(s.ctx, srd.CategoryBackground)
	s.Require().NoError(err)
	s.Same(want, batch)
}

func (s *SourceTestSuite) TestWithoutFallbackOtherCategoriesAreEmpty() {
	source, err := external.New(&external.Config{API: s.api})
	s.Require().NoError(err)

	batch, err := source.Fetch(s.ctx, srd.CategoryFeat)
	s.Require().NoError(err)
	s.Empty(batch.Entries)
}

func (s *SourceTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.source.Fetch(ctx, srd.CategoryRace)
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
}

func (s *SourceTestSuite) cachedSource() (*external.Source, *srdcachemock.MockRepository) {
	cache := srdcachemock.NewMockRepository(s.ctrl)
	source, err := external.New(&external.Config{
		API:      s.api,
		Fallback: s.fallback,
		Cache:    cache,
		BaseURL:  "http://localhost:3000/api/",
	})
	s.Require().NoError(err)
	return source, cache
}

func (s *SourceTestSuite) TestCacheHitSkipsAPI() {
	source, cache := s.cachedSource()
	cached := &srd.Batch{Category: srd.CategorySpell, Entries: []srd.Entry{&srd.Spell{Index: "sleep", Name: "Sleep", Level: 1}}}

	cache.EXPECT().
		Get(s.ctx, srdcache.GetInput{Source: "http://localhost:3000/api/", Category: srd.CategorySpell}).
		Return(&srdcache.GetOutput{Batch: cached}, nil)

	batch, err := source.Fetch(s.ctx, srd.CategorySpell)
	s.Require().NoError(err)
	s.Same(cached, batch)
}

func (s *SourceTestSuite) TestCacheMissStoresBatch() {
	source, cache := s.cachedSource()

	cache.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("no cached spells"))
	s.api.EXPECT().ListSpells(gomock.Any()).Return([]*entities.ReferenceItem{{Key: "sleep", Name: "Sleep"}}, nil)
	s.api.EXPECT().GetSpell("sleep").Return(&entities.Spell{Key: "sleep", Name: "Sleep", SpellLevel: 1}, nil)
	cache.EXPECT().Put(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, input srdcache.PutInput) (*srdcache.PutOutput, error) {
		s.Equal("http://localhost:3000/api/", input.Source)
		s.Equal(srd.CategorySpell, input.Batch.Category)
		s.Len(input.Batch.Entries, 1)
		return &srdcache.PutOutput{}, nil
	})

	batch, err := source.Fetch(s.ctx, srd.CategorySpell)
	s.Require().NoError(err)
	s.Len(batch.Entries, 1)
}

func (s *SourceTestSuite) TestCacheFailuresDoNotFailTheLoad() {
	source, cache := s.cachedSource()

	cache.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("connection refused"))
	s.api.EXPECT().ListRaces().Return(nil, nil)
	cache.EXPECT().Put(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("connection refused"))

	batch, err := source.Fetch(s.ctx, srd.CategoryRace)
	s.Require().NoError(err)
	s.Empty(batch.Entries)
}

func (s *SourceTestSuite) TestFallbackCategoriesBypassCache() {
	source, _ := s.cachedSource()
	want := &srd.Batch{Category: srd.CategoryClass}
	s.fallback.EXPECT().Fetch(s.ctx, srd.CategoryClass).Return(want, nil)

	batch, err := source.Fetch(s.ctx, srd.CategoryClass)
	s.Require().NoError(err)
	s.Same(want, batch)
}

func TestSourceTestSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}
