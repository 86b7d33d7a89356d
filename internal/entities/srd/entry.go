package srd

func (r *Race) GetIndex() string { return r.Index }
func (r *Race) GetName() string { return r.Name }
func (r *Race) GetCategory() Category { return CategoryRace }

func (s *Subrace) GetIndex() string { return s.Index }
func (s *Subrace) GetName() string { return s.Name }
func (s *Subrace) GetCategory() Category { return CategorySubrace }

func (c *Class) GetIndex() string { return c.Index }
func (c *Class) GetName() string { return c.Name }
func (c *Class) GetCategory() Category { return CategoryClass }

func (s *Subclass) GetIndex() string { return s.Index }
func (s *Subclass) GetName() string { return s.Name }
func (s *Subclass) GetCategory() Category { return CategorySubclass }

func (l *Level) GetIndex() string { return l.Index }
func (l *Level) GetName() string { return l.Index }
func (l *Level) GetCategory() Category { return CategoryLevel }

func (b *Background) GetIndex() string { return b.Index }
func (b *Background) GetName() string { return b.Name }
func (b *Background) GetCategory() Category { return CategoryBackground }

func (f *Feat) GetIndex() string { return f.Index }
func (f *Feat) GetName() string { return f.Name }
func (f *Feat) GetCategory() Category { return CategoryFeat }

func (s *Spell) GetIndex() string { return s.Index }
func (s *Spell) GetName() string { return s.Name }
func (s *Spell) GetCategory() Category { return CategorySpell }

func (e *Equipment) GetIndex() string { return e.Index }
func (e *Equipment) GetName() string { return e.Name }
func (e *Equipment) GetCategory() Category { return CategoryEquipment }

func (e *EquipmentCategory) GetIndex() string { return e.Index }
func (e *EquipmentCategory) GetName() string { return e.Name }
func (e *EquipmentCategory) GetCategory() Category { return CategoryEquipmentCategory }

func (f *Feature) GetIndex() string { return f.Index }
func (f *Feature) GetName() string { return f.Name }
func (f *Feature) GetCategory() Category { return CategoryFeature }

func (t *Trait) GetIndex() string { return t.Index }
func (t *Trait) GetName() string { return t.Name }
func (t *Trait) GetCategory() Category { return CategoryTrait }

func (p *Proficiency) GetIndex() string { return p.Index }
func (p *Proficiency) GetName() string { return p.Name }
func (p *Proficiency) GetCategory() Category { return CategoryProficiency }

func (l *Language) GetIndex() string { return l.Index }
func (l *Language) GetName() string { return l.Name }
func (l *Language) GetCategory() Category { return CategoryLanguage }

func (a *Alignment) GetIndex() string { return a.Index }
func (a *Alignment) GetName() string { return a.Name }
func (a *Alignment) GetCategory() Category { return CategoryAlignment }

func (s *Skill) GetIndex() string { return s.Index }
func (s *Skill) GetName() string { return s.Name }
func (s *Skill) GetCategory() Category { return CategorySkill }
