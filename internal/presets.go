package internal

import (
	"fmt"
	"strings"
)

// PresetPlan is one purchasable plan of a preset service.
type PresetPlan struct {
	Name  string       `yaml:"name"`
	Cost  float64      `yaml:"cost"`
	Cycle BillingCycle `yaml:"cycle"`
}

// Preset is a well-known service with its plans and display defaults.
type Preset struct {
	Name     string       `yaml:"name"`
	Category Category     `yaml:"category"`
	Color    string       `yaml:"color,omitempty"`
	IconKey  string       `yaml:"icon_key,omitempty"`
	Plans    []PresetPlan `yaml:"plans"`
}

// DefaultPresets is the built-in catalog. Included unless disabled via
// use_default_presets: false.
var DefaultPresets = []Preset{
	{
		Name: "Disney+ Hotstar", Category: CategoryEntertainment, Color: "#13284A", IconKey: "hotstar",
		Plans: []PresetPlan{
			{Name: "Mobile", Cost: 149, Cycle: Quarterly},
			{Name: "Super", Cost: 899, Cycle: Yearly},
			{Name: "Premium", Cost: 1499, Cycle: Yearly},
		},
	},
	{
		Name: "Netflix India", Category: CategoryEntertainment, Color: "#E50914", IconKey: "netflix",
		Plans: []PresetPlan{
			{Name: "Mobile", Cost: 149, Cycle: Monthly},
			{Name: "Basic", Cost: 199, Cycle: Monthly},
			{Name: "Premium", Cost: 649, Cycle: Monthly},
		},
	},
	{
		Name: "Amazon Prime", Category: CategoryEntertainment, Color: "#00A8E1", IconKey: "prime",
		Plans: []PresetPlan{
			{Name: "Monthly", Cost: 299, Cycle: Monthly},
			{Name: "Yearly", Cost: 1499, Cycle: Yearly},
		},
	},
	{
		Name: "Zomato Gold", Category: CategoryFood, Color: "#CB202D", IconKey: "zomato",
		Plans: []PresetPlan{{Name: "3 Months", Cost: 99, Cycle: Quarterly}},
	},
	{
		Name: "Swiggy One", Category: CategoryFood, Color: "#FC8019", IconKey: "swiggy",
		Plans: []PresetPlan{{Name: "3 Months", Cost: 249, Cycle: Quarterly}},
	},
	{
		Name: "YouTube Premium", Category: CategoryEntertainment, Color: "#FF0000", IconKey: "youtube",
		Plans: []PresetPlan{{Name: "Month", Cost: 129, Cycle: Monthly}},
	},
	{
		Name: "Spotify", Category: CategoryMusic, Color: "#1DB954", IconKey: "spotify",
		Plans: []PresetPlan{{Name: "Month", Cost: 119, Cycle: Monthly}},
	},
	{
		Name: "JioCinema Premium", Category: CategoryEntertainment, Color: "#D8046B", IconKey: "jiocinema",
		Plans: []PresetPlan{{Name: "Month", Cost: 29, Cycle: Monthly}},
	},
	{
		Name: "Apple One", Category: CategoryUtility, Color: "#000000", IconKey: "apple",
		Plans: []PresetPlan{{Name: "Month", Cost: 195, Cycle: Monthly}},
	},
	{
		Name: "Blinkit", Category: CategoryFood, Color: "#F8CB46", IconKey: "blinkit",
		Plans: []PresetPlan{{Name: "Month", Cost: 99, Cycle: Monthly}},
	},
}

// Catalog is a searchable list of presets.
type Catalog struct {
	Presets []Preset
}

// NewCatalog returns a catalog of the defaults (when useDefaults) followed by
// the extra presets.
func NewCatalog(useDefaults bool, extra []Preset) *Catalog {
	var presets []Preset
	if useDefaults {
		presets = append(presets, DefaultPresets...)
	}
	presets = append(presets, extra...)
	return &Catalog{Presets: presets}
}

// Search returns presets whose name contains query, case-insensitively. An
// empty query returns everything.
func (c *Catalog) Search(query string) []Preset {
	q := strings.ToLower(strings.TrimSpace(query))
	var result []Preset
	for _, p := range c.Presets {
		if strings.Contains(strings.ToLower(p.Name), q) {
			result = append(result, p)
		}
	}
	return result
}

// Find returns the preset with exactly this name (case-insensitive), falling
// back to the single preset whose name contains it.
func (c *Catalog) Find(name string) (*Preset, error) {
	for i := range c.Presets {
		if strings.EqualFold(c.Presets[i].Name, strings.TrimSpace(name)) {
			return &c.Presets[i], nil
		}
	}
	matches := c.Search(name)
	if len(matches) == 1 {
		return &matches[0], nil
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %q matches %d presets", ErrUnknownPreset, name, len(matches))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Plan returns the named plan. An empty name selects the only plan of a
// single-plan preset.
func (p *Preset) Plan(name string) (*PresetPlan, error) {
	if name == "" && len(p.Plans) == 1 {
		return &p.Plans[0], nil
	}
	for i := range p.Plans {
		if strings.EqualFold(p.Plans[i].Name, strings.TrimSpace(name)) {
			return &p.Plans[i], nil
		}
	}
	names := make([]string, 0, len(p.Plans))
	for _, plan := range p.Plans {
		names = append(names, plan.Name)
	}
	return nil, fmt.Errorf("%s has no plan %q (available: %s)", p.Name, name, strings.Join(names, ", "))
}

// NewSubscription creates a subscription for one of the preset's plans.
func (p *Preset) NewSubscription(planName string, start CivilDate) (*Subscription, error) {
	plan, err := p.Plan(planName)
	if err != nil {
		return nil, err
	}
	name := p.Name
	if len(p.Plans) > 1 {
		name = fmt.Sprintf("%s (%s)", p.Name, plan.Name)
	}
	sub := NewSubscription(name, plan.Cost, plan.Cycle, start, p.Category)
	if p.Color != "" {
		sub.Color = p.Color
	}
	if p.IconKey != "" {
		sub.IconKey = p.IconKey
	}
	return sub, nil
}
