package config

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string `json:"-" toml:"-"`
	Name       string
	GormEngine string // mysql, postgres or sqlite
	Path       string // database file for sqlite
}
