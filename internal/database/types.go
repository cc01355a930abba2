package database

import (
	"database/sql"
	"time"
)

// Database define a interface para operações de banco de dados
type Database interface {
	// Connection
	Open() error
	Close() error
	Ping() error
	GetDB() *sql.DB

	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
	Begin() (*sql.Tx, error)

	// Placeholder retorna o placeholder correto para o driver (? para SQLite, $N para PostgreSQL)
	Placeholder(index int) string

	CreateTables() error
}

// UserBalance representa o saldo de um usuário
type UserBalance struct {
	ID      string
	Balance int64
}

// APIKeyStruct representa uma chave de API
type APIKeyStruct struct {
	Key       string
	Name      string
	CreatedAt time.Time
}

// DB é a instância global do database
var DB Database
