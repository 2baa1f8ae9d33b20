package pipeline

// Rules holds the normalization tables the pipeline applies: the two-seat
// equipment marker, the label sets driving activity classification and the
// alias tables collapsing spelling variants of categorical values. They are
// loaded once at startup and never mutated afterwards.
type Rules struct {
	// Equipment label marking a two-seat / instructional configuration;
	// matching rows are dropped by the cleaning stage
	TwoSeatEquipment string `toml:"two_seat_equipment"`

	// Activity-type labels indicating powered flight
	PoweredTypes []string `toml:"powered_types"`

	// Equipment labels forcing the motorized / unmotorized classification,
	// matched case-insensitively. The unmotorized check runs last, so a label
	// present in both sets resolves unmotorized.
	MotorizedEquipment   []string `toml:"motorized_equipment"`
	UnmotorizedEquipment []string `toml:"unmotorized_equipment"`

	// Spelling variant -> canonical label. Equipment lookups are
	// case-insensitive, site lookups are case-preserving.
	EquipmentAliases map[string]string `toml:"equipment_aliases"`
	SiteAliases      map[string]string `toml:"site_aliases"`
}

// DefaultRules returns the rule tables for the tracking site's vocabulary
func DefaultRules() Rules {
	return Rules{
		TwoSeatEquipment:     "biplace",
		PoweredTypes:         []string{"Vol moteur"},
		MotorizedEquipment:   []string{"piper"},
		UnmotorizedEquipment: []string{"savage"},
		EquipmentAliases: map[string]string{
			"piper":  "PIPER",
			"savage": "savage",
		},
		SiteAliases: map[string]string{
			"Idikl": "Idikel",
		},
	}
}
