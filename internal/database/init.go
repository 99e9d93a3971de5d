package db

import (
	"database/sql"
	"fmt"
)

type Database struct {
	dbName      string
	MysqlClient *sql.DB
}

func NewDatabase(client *sql.DB, dbName string) *Database {
	return &Database{
		dbName:      dbName,
		MysqlClient: client,
	}
}

const createActivitiesTable = `
	CREATE TABLE IF NOT EXISTS activities (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		wallet VARCHAR(44) NOT NULL,
		mint VARCHAR(44) NOT NULL,
		action VARCHAR(16) NOT NULL,
		amount BIGINT UNSIGNED NOT NULL,
		signature VARCHAR(88) NOT NULL UNIQUE,
		timestamp BIGINT NOT NULL,
		INDEX idx_wallet (wallet),
		INDEX idx_signature (signature)
	)
`

func (d *Database) CreateDatabaseAndTable() error {
	if _, err := d.MysqlClient.Exec(`CREATE DATABASE IF NOT EXISTS ` + d.dbName); err != nil {
		return fmt.Errorf("failed to create db %s: %v", d.dbName, err)
	}

	if _, err := d.MysqlClient.Exec(`USE ` + d.dbName); err != nil {
		return fmt.Errorf("failed to use db %s: %v", d.dbName, err)
	}

	if _, err := d.MysqlClient.Exec(createActivitiesTable); err != nil {
		return fmt.Errorf("failed to create activities table: %v", err)
	}

	return nil
}
