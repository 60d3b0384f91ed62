package server

// Config holds configuration for the local paste-UI server.
type Config struct {
	// Host is the listen address. The paste UI is a local tool, so it binds
	// to loopback unless explicitly reconfigured.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8765"`
	// Target is the default account name used to label paste-UI reports.
	Target string `mapstructure:"target" default:"my_account"`
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
