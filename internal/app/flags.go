package app

import "flag"

// Config represents the command-line parameters shared by the frontends.
// Empty values defer to the game file, then to the variant preset.
type Config struct {
	Variant     string
	MapPath     string
	ConfigPath  string
	Input       string
	HandStream  string
	TPS         int
	WindowScale float64
	Seed        int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{WindowScale: 1.5, Seed: 1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "game variant: garden or garden-gesture")
	fs.StringVar(&c.MapPath, "map", c.MapPath, "collision map file")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML game file")
	fs.StringVar(&c.Input, "input", c.Input, "input source: keyboard, terminal or gesture")
	fs.StringVar(&c.HandStream, "hand-stream", c.HandStream, "msgpack hand landmark stream (file or fifo) for gesture input")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Float64Var(&c.WindowScale, "window-scale", c.WindowScale, "window size multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed recorded on reset")
}
