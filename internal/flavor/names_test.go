package flavor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
)

type NamesTestSuite struct {
	suite.Suite
}

func TestNamesSuite(t *testing.T) {
	suite.Run(t, new(NamesTestSuite))
}

func (s *NamesTestSuite) TestGivenNameTiers() {
	testCases := []struct {
		name   string
		race   string
		gender string
		first  string
		count  int
	}{
		{name: "exact race and gender", race: "elf", gender: "female", first: "Aeris", count: 5},
		{name: "hyphenated race has its own table", race: "half-elf", gender: "male", first: "Aeric", count: 5},
		{name: "race part", race: "hill-dwarf", gender: "male", first: "Baern", count: 5},
		{name: "case insensitive", race: "Elf", gender: "FEMALE", first: "Aeris", count: 5},
		{name: "unknown race", race: "warforged", gender: "female", first: "Ayla", count: 5},
		{name: "no gender draws both lists", race: "elf", gender: "", first: "Aelar", count: 10},
		{name: "no race", race: "", gender: "male", first: "Rowan", count: 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			names := flavor.GivenNames(tc.race, tc.gender)
			s.Require().Len(names, tc.count)
			s.Equal(tc.first, names[0])
		})
	}
}

func (s *NamesTestSuite) TestSurnames() {
	s.Contains(flavor.Surnames("elf"), "Moonwhisper")
	s.Contains(flavor.Surnames("unknown"), "Starling")
}

func (s *NamesTestSuite) TestBuiltinName() {
	name, err := flavor.BuiltinName(rng.NewSeeded(5), "dwarf", "female")
	s.Require().NoError(err)

	given, surname, ok := strings.Cut(name, " ")
	s.Require().True(ok, name)
	s.Contains(flavor.GivenNames("dwarf", "female"), given)
	s.Contains(flavor.Surnames("dwarf"), surname)

	again, err := flavor.BuiltinName(rng.NewSeeded(5), "dwarf", "female")
	s.Require().NoError(err)
	s.Equal(name, again)
}

func (s *NamesTestSuite) TestBuiltinOrigin() {
	origin, err := flavor.BuiltinOrigin(rng.NewSeeded(2))
	s.Require().NoError(err)
	s.Contains(flavor.Origins, origin)
}

func (s *NamesTestSuite) TestPronouns() {
	s.Equal(flavor.Pronouns{Subject: "he", Object: "him", Possessive: "his", Reflexive: "himself"}, flavor.PronounsFor("male"))
	s.Equal(flavor.Pronouns{Subject: "she", Object: "her", Possessive: "her", Reflexive: "herself"}, flavor.PronounsFor("Female"))
	they := flavor.PronounsFor("nonbinary")
	s.Equal("they", they.Subject)
	s.True(they.Plural())
	s.False(flavor.PronounsFor("male").Plural())
}

func (s *NamesTestSuite) TestProfileFor() {
	s.Equal(54, flavor.ProfileFor("elf").BaseHeight)
	s.Equal(48, flavor.ProfileFor("hill-dwarf").BaseHeight)
	s.Equal(58, flavor.ProfileFor("warforged").BaseHeight)
}
