// Command migrate bootstraps the delivery database: it creates the target
// database if it does not exist, then migrates the table schema.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"okdelivery/cmd"
	"okdelivery/internal/adapters/out/postgres/assignmentrepo"
	"okdelivery/internal/adapters/out/postgres/ledgerrepo"
	"okdelivery/internal/adapters/out/postgres/locationlog"
	"okdelivery/internal/adapters/out/postgres/merchantrepo"
	"okdelivery/internal/adapters/out/postgres/packagerepo"
	"okdelivery/internal/adapters/out/postgres/riderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	ensureDatabaseExists(configs)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&packagerepo.PackageDTO{},
		&riderrepo.RiderDTO{},
		&merchantrepo.MerchantDTO{},
		&assignmentrepo.AssignmentDTO{},
		&ledgerrepo.LedgerEntryDTO{},
		&locationlog.LocationRecordDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	log.Infof("Schema migrated for database %s", configs.DBName)
}

// ensureDatabaseExists connects to the maintenance database and creates the
// target database when missing. GORM cannot do this step itself because it
// needs the target database to already exist.
func ensureDatabaseExists(configs cmd.Config) {
	adminDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", adminDSN)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err = db.Ping(); err != nil {
		log.Fatalf("Failed to ping postgres: %v", err)
	}

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}
	if exists {
		return
	}

	if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName)); err != nil {
		log.Fatalf("Failed to create database %s: %v", configs.DBName, err)
	}
	log.Infof("Created database %s", configs.DBName)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}
