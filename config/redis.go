package config

// RedisConfig contains Redis configuration for the persisted identity slot.
// The portal stores exactly one value in Redis: the serialized identity of
// the signed-in user, under SlotKey.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// SlotKey is the fixed key holding the serialized identity.
	SlotKey string `env:"SLOT_KEY" envDefault:"sections-ui:identity"`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	if r.SlotKey == "" {
		r.SlotKey = "sections-ui:identity"
	}
}
