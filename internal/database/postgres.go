package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresDatabase implementa a interface Database para PostgreSQL usando pgx
type PostgresDatabase struct {
	connString string
	db         *sql.DB
}

// NewPostgresDatabase cria uma nova instância do database PostgreSQL
func NewPostgresDatabase(connString string) *PostgresDatabase {
	return &PostgresDatabase{
		connString: connString,
	}
}

// Open abre a conexão com o banco de dados
func (p *PostgresDatabase) Open() error {
	log.Printf("Connecting to PostgreSQL using pgx driver...")
	log.Printf("Connection string (masked): %s", maskPassword(p.connString))

	db, err := sql.Open("pgx", p.connString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	p.db = db
	return nil
}

// maskPassword oculta a senha na string de conexão para logs
func maskPassword(connString string) string {
	result := connString
	if idx := strings.Index(result, "://"); idx >= 0 {
		start := idx + 3
		if atIdx := strings.Index(result[start:], "@"); atIdx >= 0 {
			userPass := result[start : start+atIdx]
			if colonIdx := strings.Index(userPass, ":"); colonIdx >= 0 {
				user := userPass[:colonIdx]
				result = result[:start] + user + ":****@" + result[start+atIdx+1:]
			}
		}
	}
	return result
}

// Close fecha a conexão com o banco de dados
func (p *PostgresDatabase) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Ping verifica se a conexão está ativa
func (p *PostgresDatabase) Ping() error {
	if p.db == nil {
		return fmt.Errorf("database not connected")
	}
	return p.db.Ping()
}

// GetDB retorna a instância *sql.DB subjacente
func (p *PostgresDatabase) GetDB() *sql.DB {
	return p.db
}

// Query executa uma query SELECT
func (p *PostgresDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return p.db.Query(query, args...)
}

// QueryRow executa uma query que retorna uma única linha
func (p *PostgresDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return p.db.QueryRow(query, args...)
}

// Exec executa uma query que não retorna linhas
func (p *PostgresDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return p.db.Exec(query, args...)
}

// Begin inicia uma transação
func (p *PostgresDatabase) Begin() (*sql.Tx, error) {
	return p.db.Begin()
}

// Placeholder retorna $N para PostgreSQL (1-indexed)
func (p *PostgresDatabase) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// CreateTables cria as tabelas necessárias para PostgreSQL
func (p *PostgresDatabase) CreateTables() error {
	if os.Getenv("DB_SKIP_TABLE_CREATION") == "true" {
		log.Println("Skipping table creation (DB_SKIP_TABLE_CREATION=true)")
		return nil
	}

	log.Println("Creating PostgreSQL tables if not exists...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			balance BIGINT DEFAULT 0,
			last_daily TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS api_keys (
			key TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT,
			created_at TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS withdrawable (
			user_id TEXT PRIMARY KEY,
			amount BIGINT DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS banned_players (
			user_id TEXT PRIMARY KEY,
			banned BOOLEAN DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS game_state (
			id INTEGER PRIMARY KEY,
			data TEXT,
			updated_at TIMESTAMP
		);`,
	}

	for _, stmt := range statements {
		if _, err := p.db.Exec(stmt); err != nil {
			log.Printf("Warning: error creating table (may already exist): %v", err)
		}
	}

	log.Println("Table creation completed")
	return nil
}
