package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	AdminEmails   string
	Turso         TursoConfig
	ProjectID     string
	Pubsub        PubsubConfig
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PubsubConfig struct {
	GameReportsTopic string
}
