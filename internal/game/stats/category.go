package stats

import "fmt"

// Category identifies a source of stat contributions. Each category is owned
// by exactly one contributor type.
type Category int

const (
	// CategoryLevel holds permanent growth from level-ups.
	CategoryLevel Category = iota
	// CategorySkills holds per-level bonuses of learned skills.
	CategorySkills
	// CategoryEquipment holds the folded stats of equipped items.
	CategoryEquipment
	// CategorySkillMilestones holds one-off rewards for reaching skill levels.
	CategorySkillMilestones
	// CategoryBooks holds permanent bonuses from read books.
	CategoryBooks
	// CategoryLightLevel holds the lighting penalty or bonus.
	CategoryLightLevel
	// CategoryEnvironment holds the current location's environment effects.
	CategoryEnvironment
	// CategoryElixirs holds permanent bonuses from consumed elixirs.
	CategoryElixirs
	// CategoryActiveEffect holds temporary effects.
	CategoryActiveEffect
	// CategoryStance holds the selected combat stance.
	CategoryStance

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryLevel:           "level",
	CategorySkills:          "skills",
	CategoryEquipment:       "equipment",
	CategorySkillMilestones: "skill_milestones",
	CategoryBooks:           "books",
	CategoryLightLevel:      "light_level",
	CategoryEnvironment:     "environment",
	CategoryElixirs:         "elixirs",
	CategoryActiveEffect:    "active_effect",
	CategoryStance:          "stance",
}

// String returns the snake_case name of the category.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns every category in fold order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory returns the Category named name.
//
// Postcondition: ok is true iff name is a known category name.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}
