package config

const (
	EnvPrefix = "tcghub"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TCGHUB_DB_DSN"
	EnvDBHost = "TCGHUB_DB_HOST"
	EnvDBUser = "TCGHUB_DB_USER"
	EnvDBName = "TCGHUB_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
