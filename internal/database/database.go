package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"timebet/pkg/config"
)

// Initialize inicializa o banco de dados baseado na configuração
func Initialize() {
	var err error

	switch config.DBType {
	case "postgres":
		log.Println("Initializing PostgreSQL database...")
		DB, err = NewPostgres(config.ConnString)
	case "sqlite":
		fallthrough
	default:
		log.Println("Initializing SQLite database...")
		DB, err = NewSQLite(config.ConnString)
	}

	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Printf("Database initialized successfully (type: %s)", config.DBType)
}

// NewSQLite cria e inicializa um banco SQLite
func NewSQLite(connString string) (Database, error) {
	db := NewSQLiteDatabase(connString)
	if err := db.Open(); err != nil {
		return nil, err
	}
	if err := db.CreateTables(); err != nil {
		return nil, err
	}
	return db, nil
}

// NewPostgres cria e inicializa um banco PostgreSQL
func NewPostgres(connString string) (Database, error) {
	db := NewPostgresDatabase(connString)
	if err := db.Open(); err != nil {
		return nil, err
	}
	if err := db.CreateTables(); err != nil {
		return nil, err
	}
	return db, nil
}

// prepareQuery converte uma query com ? para o formato correto do driver
func prepareQuery(query string) string {
	if config.DBType == "postgres" {
		return convertPlaceholders(query)
	}
	return query
}

// convertPlaceholders converte ? placeholders para $N (PostgreSQL)
func convertPlaceholders(query string) string {
	result := ""
	placeholderIndex := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result += fmt.Sprintf("$%d", placeholderIndex)
			placeholderIndex++
		} else {
			result += string(query[i])
		}
	}
	return result
}

// GetBalance retorna o saldo de um usuário, criando a linha se não existir
func GetBalance(userID string) int64 {
	var balance int64
	err := DB.QueryRow(prepareQuery("SELECT balance FROM users WHERE id = ?"), userID).Scan(&balance)
	if err == nil {
		return balance
	}

	if err == sql.ErrNoRows {
		if _, insertErr := DB.Exec(prepareQuery("INSERT INTO users (id, balance) VALUES (?, 0)"), userID); insertErr != nil {
			log.Printf("[DB] error inserting user %s: %v", userID, insertErr)
		}
		return 0
	}

	log.Printf("[DB] error getting balance for %s: %v", userID, err)
	return 0
}

// AddCoins adiciona moedas a um usuário
func AddCoins(userID string, amount int64) error {
	if config.DBType == "postgres" {
		query := `INSERT INTO users (id, balance) VALUES ($1, $2)
				  ON CONFLICT(id) DO UPDATE SET balance = users.balance + $2`
		_, err := DB.Exec(query, userID, amount)
		return err
	}
	query := "INSERT INTO users (id, balance) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET balance = balance + ?"
	_, err := DB.Exec(query, userID, amount, amount)
	return err
}

// RemoveCoins remove moedas de um usuário, falhando se o saldo for insuficiente
func RemoveCoins(userID string, amount int64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow(prepareQuery("SELECT balance FROM users WHERE id = ?"), userID).Scan(&balance)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("insufficient balance: have %d, need %d", balance, amount)
	}

	if _, err := tx.Exec(prepareQuery("UPDATE users SET balance = balance - ? WHERE id = ?"), amount, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// TransferCoins transfere moedas entre usuários
func TransferCoins(fromID, toID string, amount int64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var fromBalance int64
	err = tx.QueryRow(prepareQuery("SELECT balance FROM users WHERE id = ?"), fromID).Scan(&fromBalance)
	if err != nil {
		return err
	}

	if fromBalance < amount {
		return fmt.Errorf("insufficient balance: have %d, need %d", fromBalance, amount)
	}

	if _, err := tx.Exec(prepareQuery("UPDATE users SET balance = balance - ? WHERE id = ?"), amount, fromID); err != nil {
		return err
	}

	if config.DBType == "postgres" {
		_, err = tx.Exec(`INSERT INTO users (id, balance) VALUES ($1, $2)
						  ON CONFLICT(id) DO UPDATE SET balance = users.balance + $2`,
			toID, amount)
	} else {
		_, err = tx.Exec("INSERT INTO users (id, balance) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET balance = balance + ?",
			toID, amount, amount)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetLeaderboard retorna o ranking de saldos
func GetLeaderboard(limit int) ([]UserBalance, error) {
	rows, err := DB.Query(prepareQuery("SELECT id, balance FROM users ORDER BY balance DESC LIMIT ?"), limit)
	if err != nil {
		log.Printf("[DB] leaderboard query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []UserBalance
	for rows.Next() {
		var u UserBalance
		if err := rows.Scan(&u.ID, &u.Balance); err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// CanDaily verifica se o usuário pode coletar o daily
func CanDaily(userID string) (bool, time.Time) {
	var lastDaily sql.NullTime
	err := DB.QueryRow(prepareQuery("SELECT last_daily FROM users WHERE id = ?"), userID).Scan(&lastDaily)
	if err != nil || !lastDaily.Valid {
		return true, time.Now()
	}
	next := lastDaily.Time.Add(24 * time.Hour)
	return time.Since(lastDaily.Time) >= 24*time.Hour, next
}

// ClaimDaily coleta a recompensa diária
func ClaimDaily(userID string, reward int64) error {
	ok, _ := CanDaily(userID)
	if !ok {
		return fmt.Errorf("daily not available yet")
	}

	now := time.Now()
	if config.DBType == "postgres" {
		query := `INSERT INTO users (id, balance, last_daily) VALUES ($1, $2, $3)
				  ON CONFLICT(id) DO UPDATE SET balance = users.balance + $2, last_daily = $3`
		_, err := DB.Exec(query, userID, reward, now)
		return err
	}
	query := `INSERT INTO users (id, balance, last_daily) VALUES (?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET balance = balance + ?, last_daily = ?`
	_, err := DB.Exec(query, userID, reward, now, reward, now)
	return err
}

// CreateAPIKey cria uma nova chave de API
func CreateAPIKey(key, userID, name string) error {
	query := prepareQuery("INSERT INTO api_keys (key, user_id, name, created_at) VALUES (?, ?, ?, ?)")
	_, err := DB.Exec(query, key, userID, name, time.Now())
	return err
}

// GetUserByAPIKey retorna o userID de uma chave de API
func GetUserByAPIKey(key string) (string, error) {
	var userID string
	query := prepareQuery("SELECT user_id FROM api_keys WHERE key = ?")
	err := DB.QueryRow(query, key).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// ListAPIKeys lista todas as chaves de API de um usuário
func ListAPIKeys(userID string) ([]APIKeyStruct, error) {
	query := prepareQuery("SELECT key, name, created_at FROM api_keys WHERE user_id = ?")
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []APIKeyStruct
	for rows.Next() {
		var k APIKeyStruct
		if err := rows.Scan(&k.Key, &k.Name, &k.CreatedAt); err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// DeleteAPIKey deleta uma chave de API pelo prefixo
func DeleteAPIKey(userID, prefix string) error {
	query := prepareQuery("DELETE FROM api_keys WHERE user_id = ? AND key LIKE ?")
	_, err := DB.Exec(query, userID, prefix+"%")
	return err
}
