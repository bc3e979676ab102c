package microscope

// RetractKey is the caller-chosen label a builder_with_retract call uses to
// identify a retract at configuration time, before the assembly exists and
// can mint its own internal assembly.Id. Microscope.RetractId translates a
// RetractKey into the assembly.Id that find/update/present operations need.
type RetractKey uint64

type retractEntry struct {
	key      RetractKey
	config   RetractConfig
	resolver ResolverRetractConfig
}

// ConfigurationBuilder assembles a Configuration incrementally over the
// fixed chamber/stage/holder/equipment/retract shape rather than an
// arbitrary object tree.
type ConfigurationBuilder struct {
	chamber       *ChamberConfig
	stage         *StageConfig
	stageResolver ResolverStageConfig
	holder        *HolderConfig
	equipment     []EquipmentConfig
	retracts      []retractEntry
}

// NewConfigurationBuilder returns an empty builder.
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{}
}

// WithChamber sets the (required) chamber config.
func (b *ConfigurationBuilder) WithChamber(c ChamberConfig) *ConfigurationBuilder {
	b.chamber = &c
	return b
}

// WithStage sets the (required) stage config and its resolver tuning.
func (b *ConfigurationBuilder) WithStage(c StageConfig, r ResolverStageConfig) *ConfigurationBuilder {
	b.stage = &c
	b.stageResolver = r
	return b
}

// WithHolder sets the optional specimen holder.
func (b *ConfigurationBuilder) WithHolder(c HolderConfig) *ConfigurationBuilder {
	b.holder = &c
	return b
}

// WithEquipment appends one static equipment part.
func (b *ConfigurationBuilder) WithEquipment(c EquipmentConfig) *ConfigurationBuilder {
	b.equipment = append(b.equipment, c)
	return b
}

// WithRetract appends one retract under key, along with its resolver
// tuning. Re-using a key that already exists overwrites the earlier entry.
func (b *ConfigurationBuilder) WithRetract(key RetractKey, c RetractConfig, r ResolverRetractConfig) *ConfigurationBuilder {
	for i, e := range b.retracts {
		if e.key == key {
			b.retracts[i] = retractEntry{key: key, config: c, resolver: r}
			return b
		}
	}
	b.retracts = append(b.retracts, retractEntry{key: key, config: c, resolver: r})
	return b
}

// Build validates the required fields and produces an immutable
// Configuration. The builder may be discarded afterward.
func (b *ConfigurationBuilder) Build() (*Configuration, error) {
	if b.chamber == nil {
		return nil, MissingChamber
	}
	if b.stage == nil {
		return nil, MissingStage
	}
	return &Configuration{
		chamber:       *b.chamber,
		stage:         *b.stage,
		stageResolver: b.stageResolver,
		holder:        b.holder,
		equipment:     append([]EquipmentConfig{}, b.equipment...),
		retracts:      append([]retractEntry{}, b.retracts...),
	}, nil
}

// Configuration is an immutable, fully-validated snapshot ready to become a
// live Microscope via FromConfig.
type Configuration struct {
	chamber       ChamberConfig
	stage         StageConfig
	stageResolver ResolverStageConfig
	holder        *HolderConfig
	equipment     []EquipmentConfig
	retracts      []retractEntry
}
