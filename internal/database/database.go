package database

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// Connect opens the readings database. Only used when USE_DATABASE is set;
// the default deployment loads the dataset from CSV instead.
func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}
