package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase implementa a interface Database para SQLite
type SQLiteDatabase struct {
	connString string
	db         *sql.DB
}

// NewSQLiteDatabase cria uma nova instância do database SQLite
func NewSQLiteDatabase(connString string) *SQLiteDatabase {
	return &SQLiteDatabase{
		connString: connString,
	}
}

// Open abre a conexão com o banco de dados
func (s *SQLiteDatabase) Open() error {
	db, err := sql.Open("sqlite3", s.connString)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// Close fecha a conexão com o banco de dados
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifica se a conexão está ativa
func (s *SQLiteDatabase) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	return s.db.Ping()
}

// GetDB retorna a instância *sql.DB subjacente
func (s *SQLiteDatabase) GetDB() *sql.DB {
	return s.db
}

// Query executa uma query SELECT
func (s *SQLiteDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.Query(query, args...)
}

// QueryRow executa uma query que retorna uma única linha
func (s *SQLiteDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return s.db.QueryRow(query, args...)
}

// Exec executa uma query que não retorna linhas
func (s *SQLiteDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return s.db.Exec(query, args...)
}

// Begin inicia uma transação
func (s *SQLiteDatabase) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// Placeholder retorna ? para SQLite (não usa índice)
func (s *SQLiteDatabase) Placeholder(index int) string {
	return "?"
}

// CreateTables cria as tabelas necessárias para SQLite
func (s *SQLiteDatabase) CreateTables() error {
	createUsersSQL := `CREATE TABLE IF NOT EXISTS users (
		"id" TEXT NOT NULL PRIMARY KEY,
		"balance" INTEGER DEFAULT 0,
		"last_daily" DATETIME
	);`
	if _, err := s.db.Exec(createUsersSQL); err != nil {
		return err
	}

	createApiTableSQL := `CREATE TABLE IF NOT EXISTS api_keys (
		"key" TEXT NOT NULL PRIMARY KEY,
		"user_id" TEXT NOT NULL,
		"name" TEXT,
		"created_at" DATETIME
	);`
	if _, err := s.db.Exec(createApiTableSQL); err != nil {
		return err
	}

	createWithdrawableSQL := `CREATE TABLE IF NOT EXISTS withdrawable (
		"user_id" TEXT NOT NULL PRIMARY KEY,
		"amount" INTEGER DEFAULT 0
	);`
	if _, err := s.db.Exec(createWithdrawableSQL); err != nil {
		return err
	}

	createBansSQL := `CREATE TABLE IF NOT EXISTS banned_players (
		"user_id" TEXT NOT NULL PRIMARY KEY,
		"banned" BOOLEAN DEFAULT FALSE
	);`
	if _, err := s.db.Exec(createBansSQL); err != nil {
		return err
	}

	createGameStateSQL := `CREATE TABLE IF NOT EXISTS game_state (
		"id" INTEGER NOT NULL PRIMARY KEY,
		"data" TEXT,
		"updated_at" DATETIME
	);`
	if _, err := s.db.Exec(createGameStateSQL); err != nil {
		return err
	}

	return nil
}
