package synthesizer

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	dicesvc "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
)

// equipment builds the inventory from the class loadout, or from the class
// starting equipment when no loadout is configured, then adds background
// gear. The first weapon picks up the magic bonus for the level.
func (r *run) equipment() error {
	if r.locked(character.FieldEquipment) {
		return nil
	}
	r.draft.Inventory = nil

	if loadout, ok := r.o.tuning.LoadoutFor(r.draft.Class); ok {
		r.addLoadout(loadout)
	} else if class, ok := r.reg.Class(r.draft.Class); ok && (len(class.StartingEquipment) > 0 || len(class.StartingEquipmentOptions) > 0) {
		if err := r.addStartingEquipment(class.StartingEquipment, class.StartingEquipmentOptions); err != nil {
			return err
		}
	} else {
		r.addLoadout(r.o.tuning.DefaultLoadout)
	}

	if bg, ok := r.reg.Background(r.draft.Background); ok {
		if err := r.addStartingEquipment(bg.StartingEquipment, bg.StartingEquipmentOptions); err != nil {
			return err
		}
	}

	r.equipBest()
	return nil
}

func (r *run) addLoadout(l config.Loadout) {
	for _, idx := range l.Armor {
		r.addItem(idx, 1)
	}
	for _, w := range l.Weapons {
		r.addItem(w.Index, w.Quantity)
	}
	for _, idx := range l.Gear {
		r.addItem(idx, 1)
	}
}

func (r *run) addStartingEquipment(fixed []srd.StartingEquipment, options []srd.Choice) error {
	for _, se := range fixed {
		r.addItem(se.Equipment.Key(), se.Quantity)
	}
	for i := range options {
		if err := r.addChoice(&options[i]); err != nil {
			return err
		}
	}
	return nil
}

// addChoice resolves one equipment option block by drawing Choose options
func (r *run) addChoice(choice *srd.Choice) error {
	n := choice.Choose
	if n < 1 {
		n = 1
	}

	if choice.From.OptionSetType == srd.OptionSetEquipmentCategory && choice.From.EquipmentCategory != nil {
		items := r.reg.EquipmentInCategory(choice.From.EquipmentCategory.Key())
		picks, err := rng.Sample(r.roller, items, n)
		if err != nil {
			return err
		}
		for _, item := range picks {
			r.addItem(item.Index, 1)
		}
		return nil
	}

	picks, err := rng.Sample(r.roller, choice.From.Options, n)
	if err != nil {
		return err
	}
	for _, opt := range picks {
		if err := r.addOption(opt); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) addOption(opt srd.Option) error {
	switch opt.OptionType {
	case srd.OptionTypeChoice:
		if opt.Choice != nil {
			return r.addChoice(opt.Choice)
		}
	case srd.OptionTypeMultiple:
		for _, item := range opt.Items {
			if err := r.addOption(item); err != nil {
				return err
			}
		}
	default:
		for _, ref := range opt.References() {
			r.addItem(ref.Key(), opt.Quantity())
		}
	}
	return nil
}

func (r *run) addItem(index string, quantity int) {
	item, ok := r.reg.Equipment(index)
	if !ok {
		slog.Debug("skipping unknown equipment", "index", index)
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	r.draft.AddItem(character.Item{Index: item.Index, Quantity: quantity})
}

// equipBest equips the first body armor, the first shield and the first
// weapon. One copy of that weapon receives the level's magic bonus.
func (r *run) equipBest() {
	var armor, shield bool
	weapon := -1
	for i := range r.draft.Inventory {
		line := &r.draft.Inventory[i]
		item, ok := r.reg.Equipment(line.Index)
		if !ok {
			continue
		}
		switch {
		case item.IsShield():
			if !shield {
				line.Equipped, shield = true, true
			}
		case item.IsArmor():
			if !armor {
				line.Equipped, armor = true, true
			}
		case item.IsWeapon() && item.Damage != nil:
			if weapon < 0 {
				weapon = i
			}
		}
	}
	if weapon < 0 {
		return
	}

	bonus := r.o.tuning.MagicBonusFor(r.draft.EffectiveLevel())
	line := &r.draft.Inventory[weapon]
	if bonus == 0 || line.Quantity == 1 {
		line.Equipped = true
		line.MagicBonus = bonus
		return
	}
	line.Quantity--
	r.draft.Inventory = append(r.draft.Inventory, character.Item{
		Index:      line.Index,
		Quantity:   1,
		MagicBonus: bonus,
		Equipped:   true,
	})
}

// hitPoints rolls hit dice past first level when the tuning asks for
// rolled hit points, and clears stale rolls otherwise
func (r *run) hitPoints() error {
	if r.o.tuning.HitPoints != config.HitPointsRolled {
		r.draft.HitPointRolls = nil
		return nil
	}
	class, ok := r.reg.Class(r.draft.Class)
	if !ok || class.HitDie <= 0 {
		r.draft.HitPointRolls = nil
		return nil
	}
	out, err := r.o.dice.RollHitPoints(r.ctx, &dicesvc.RollHitPointsInput{
		HitDie: class.HitDie,
		Level:  r.draft.EffectiveLevel(),
		Roller: r.roller,
	})
	if err != nil {
		return err
	}
	r.draft.HitPointRolls = out.Rolls
	return nil
}

// currency draws a total in copper inside the level's band and splits it
// across denominations without changing the total
func (r *run) currency() error {
	if r.locked(character.FieldCurrency) {
		return nil
	}
	band, ok := r.o.tuning.CurrencyBandFor(r.draft.EffectiveLevel())
	if !ok {
		r.draft.Currency = character.Currency{}
		return nil
	}
	total, err := rng.Between(r.roller, band.MinGold*character.CopperPerGP, band.MaxGold*character.CopperPerGP)
	if err != nil {
		return err
	}
	c, err := r.splitCurrency(total)
	if err != nil {
		return err
	}
	r.draft.Currency = c
	return nil
}

func (r *run) splitCurrency(total int) (character.Currency, error) {
	var c character.Currency
	remaining := total

	// at most a fifth of the purse in platinum
	pp, err := rng.Between(r.roller, 0, remaining/5/character.CopperPerPP)
	if err != nil {
		return c, err
	}
	c.PP = pp
	remaining -= pp * character.CopperPerPP

	gp, err := rng.Between(r.roller, remaining/2/character.CopperPerGP, remaining/character.CopperPerGP)
	if err != nil {
		return c, err
	}
	c.GP = gp
	remaining -= gp * character.CopperPerGP

	ep, err := rng.Between(r.roller, 0, min(2, remaining/character.CopperPerEP))
	if err != nil {
		return c, err
	}
	c.EP = ep
	remaining -= ep * character.CopperPerEP

	sp, err := rng.Between(r.roller, 0, remaining/character.CopperPerSP)
	if err != nil {
		return c, err
	}
	c.SP = sp
	remaining -= sp * character.CopperPerSP

	c.CP = remaining
	return c, nil
}
