package config

// DatabaseConfig holds connection settings for the relational sink.
// The sink is optional: runs without a database still publish snapshots.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Enabled:  boolEnvOrDefault(envDatabaseOn, false),
		Host:     envOrDefault(envDatabaseHost, "localhost"),
		Port:     intEnvOrDefault(envDatabasePort, defaultDatabasePort),
		Name:     envOrDefault(envDatabaseName, defaultDatabaseName),
		User:     envOrDefault(envDatabaseUser, ""),
		Password: envOrDefault(envDatabasePass, ""),
		SSLMode:  envOrDefault(envDatabaseSSL, ""),
		MaxConns: intEnvOrDefault(envDatabaseConns, defaultMaxConns),
	}
}
