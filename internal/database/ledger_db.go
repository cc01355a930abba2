package database

import (
	"database/sql"
	"time"

	"timebet/pkg/config"
)

// LedgerStore expõe a persistência do jogo (ledger de saques, banimentos
// e snapshot da partida) como a interface game.Store. Cada operação é
// uma transação única: ou tudo é gravado, ou nada.
type LedgerStore struct{}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

// LoadWithdrawable carrega todos os saldos pendentes de saque
func (ls *LedgerStore) LoadWithdrawable() (map[string]int64, error) {
	rows, err := DB.Query("SELECT user_id, amount FROM withdrawable")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var user string
		var amount int64
		if err := rows.Scan(&user, &amount); err != nil {
			return nil, err
		}
		if amount != 0 {
			out[user] = amount
		}
	}
	return out, rows.Err()
}

// CreditWithdrawable credita um lote de pagamentos em uma única transação
func (ls *LedgerStore) CreditWithdrawable(credits map[string]int64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for user, amount := range credits {
		if config.DBType == "postgres" {
			_, err = tx.Exec(`INSERT INTO withdrawable (user_id, amount) VALUES ($1, $2)
							  ON CONFLICT(user_id) DO UPDATE SET amount = withdrawable.amount + $2`,
				user, amount)
		} else {
			_, err = tx.Exec(`INSERT INTO withdrawable (user_id, amount) VALUES (?, ?)
							  ON CONFLICT(user_id) DO UPDATE SET amount = amount + ?`,
				user, amount, amount)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PayOutWithdrawable zera o saldo pendente e credita as moedas na conta
// do usuário na mesma transação, devolvendo o valor pago
func (ls *LedgerStore) PayOutWithdrawable(user string) (int64, error) {
	tx, err := DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var amount int64
	err = tx.QueryRow(prepareQuery("SELECT amount FROM withdrawable WHERE user_id = ?"), user).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	if _, err := tx.Exec(prepareQuery("UPDATE withdrawable SET amount = 0 WHERE user_id = ?"), user); err != nil {
		return 0, err
	}

	if config.DBType == "postgres" {
		_, err = tx.Exec(`INSERT INTO users (id, balance) VALUES ($1, $2)
						  ON CONFLICT(id) DO UPDATE SET balance = users.balance + $2`,
			user, amount)
	} else {
		_, err = tx.Exec(`INSERT INTO users (id, balance) VALUES (?, ?)
						  ON CONFLICT(id) DO UPDATE SET balance = balance + ?`,
			user, amount, amount)
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return amount, nil
}

// LoadBans carrega a lista de jogadores banidos
func (ls *LedgerStore) LoadBans() (map[string]bool, error) {
	rows, err := DB.Query("SELECT user_id, banned FROM banned_players")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var user string
		var banned bool
		if err := rows.Scan(&user, &banned); err != nil {
			return nil, err
		}
		out[user] = banned
	}
	return out, rows.Err()
}

// SetBan grava o estado de banimento de um jogador
func (ls *LedgerStore) SetBan(player string, banned bool) error {
	if config.DBType == "postgres" {
		_, err := DB.Exec(`INSERT INTO banned_players (user_id, banned) VALUES ($1, $2)
						   ON CONFLICT(user_id) DO UPDATE SET banned = $2`,
			player, banned)
		return err
	}
	_, err := DB.Exec(`INSERT INTO banned_players (user_id, banned) VALUES (?, ?)
					   ON CONFLICT(user_id) DO UPDATE SET banned = ?`,
		player, banned, banned)
	return err
}

// SaveGame grava o snapshot JSON da partida atual (linha única, id=1)
func (ls *LedgerStore) SaveGame(data []byte) error {
	now := time.Now()
	if config.DBType == "postgres" {
		_, err := DB.Exec(`INSERT INTO game_state (id, data, updated_at) VALUES (1, $1, $2)
						   ON CONFLICT(id) DO UPDATE SET data = $1, updated_at = $2`,
			string(data), now)
		return err
	}
	_, err := DB.Exec(`INSERT INTO game_state (id, data, updated_at) VALUES (1, ?, ?)
					   ON CONFLICT(id) DO UPDATE SET data = ?, updated_at = ?`,
		string(data), now, string(data), now)
	return err
}

// LoadGame devolve o snapshot salvo, ou nil se não houver
func (ls *LedgerStore) LoadGame() ([]byte, error) {
	var data string
	err := DB.QueryRow("SELECT data FROM game_state WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}
