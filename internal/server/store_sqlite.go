package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playterritory/conquest/internal/game"
	"github.com/playterritory/conquest/internal/geo"
)

// timeLayout is fixed-width UTC so that stored timestamps compare correctly
// as strings, matching sqlite's strftime('%Y-%m-%dT%H:%M:%fZ') defaults.
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) JoinGame(ctx context.Context, name string, team game.Team) (PlayerRecord, string, error) {
	p := PlayerRecord{Name: name, Team: team}
	var token string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO players (name, team)
		VALUES (?, ?)
		RETURNING id, session_id, joined_at
	`, name, string(team)).Scan(&p.ID, &token, &p.JoinedAt)
	return p, token, err
}

func (s *SQLiteStore) PlayerFromToken(ctx context.Context, token string) (playerSession, error) {
	var sess playerSession
	var team string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, team FROM players WHERE session_id = ?
	`, token).Scan(&sess.PlayerID, &sess.Name, &team)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, errNoSession
	}
	sess.Team = game.NormalizeTeam(team)
	return sess, err
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]PlayerRecord, error) {
	return s.queryPlayers(ctx, `
		SELECT id, name, team, score, joined_at FROM players ORDER BY joined_at
	`)
}

func (s *SQLiteStore) Leaderboard(ctx context.Context) ([]PlayerRecord, error) {
	return s.queryPlayers(ctx, `
		SELECT id, name, team, score, joined_at FROM players
		ORDER BY score DESC, joined_at
	`)
}

func (s *SQLiteStore) queryPlayers(ctx context.Context, query string) ([]PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []PlayerRecord{}
	for rows.Next() {
		var p PlayerRecord
		var team string
		if err := rows.Scan(&p.ID, &p.Name, &team, &p.Score, &p.JoinedAt); err != nil {
			return nil, err
		}
		p.Team = game.NormalizeTeam(team)
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *SQLiteStore) AdjustScore(ctx context.Context, playerID string, delta int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE players SET score = MAX(0, score + ?) WHERE id = ?
	`, delta, playerID)
	return err
}

func (s *SQLiteStore) ListActiveTerritories(ctx context.Context) ([]game.Territory, error) {
	return s.queryTerritories(ctx, `
		SELECT id, team, player_id, ring, area_km2, status, created_at, expires_at
		FROM territories WHERE status = 'active' ORDER BY created_at
	`)
}

func (s *SQLiteStore) ListTerritories(ctx context.Context) ([]game.Territory, error) {
	return s.queryTerritories(ctx, `
		SELECT id, team, player_id, ring, area_km2, status, created_at, expires_at
		FROM territories ORDER BY created_at
	`)
}

func (s *SQLiteStore) ListExpiredTerritories(ctx context.Context, now time.Time) ([]game.Territory, error) {
	return s.queryTerritories(ctx, `
		SELECT id, team, player_id, ring, area_km2, status, created_at, expires_at
		FROM territories WHERE status = 'active' AND expires_at <= ?
		ORDER BY expires_at
	`, formatTime(now))
}

func (s *SQLiteStore) queryTerritories(ctx context.Context, query string, args ...any) ([]game.Territory, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	territories := []game.Territory{}
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		territories = append(territories, t)
	}
	return territories, rows.Err()
}

func scanTerritory(rows *sql.Rows) (game.Territory, error) {
	var t game.Territory
	var team, ringJSON, createdAt, expiresAt string
	if err := rows.Scan(&t.ID, &team, &t.PlayerID, &ringJSON, &t.AreaKm2, &t.Status, &createdAt, &expiresAt); err != nil {
		return t, err
	}
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(ringJSON), &pairs); err != nil {
		return t, fmt.Errorf("decoding ring for territory %s: %w", t.ID, err)
	}
	t.Team = game.NormalizeTeam(team)
	t.Ring = geo.RingFromPairs(pairs)
	t.CreatedAt = parseTime(createdAt)
	t.ExpiresAt = parseTime(expiresAt)
	return t, nil
}

func (s *SQLiteStore) CreateTerritory(ctx context.Context, t game.Territory) error {
	ringJSON, err := json.Marshal(geo.RingToPairs(t.Ring))
	if err != nil {
		return fmt.Errorf("encoding ring: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO territories (id, team, player_id, ring, area_km2, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, string(t.Team), t.PlayerID, string(ringJSON), t.AreaKm2, string(t.Status),
		formatTime(t.CreatedAt), formatTime(t.ExpiresAt))
	return err
}

// TransitionStatus flips a territory away from active and appends the
// matching history row. It returns false without writing history when the
// territory was already non-active, which makes racing conquests and expiry
// sweeps safe to replay.
func (s *SQLiteStore) TransitionStatus(ctx context.Context, territoryID string, to game.Status, rec game.ConquestRecord) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE territories SET status = ? WHERE id = ? AND status = 'active'
	`, string(to), territoryID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO conquest_history (id, territory_id, conquering_team, conquered_team, area_delta_km2, player_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.TerritoryID, rec.ConqueringTeam, string(rec.ConqueredTeam),
		rec.AreaDeltaKm2, rec.PlayerID, formatTime(rec.CreatedAt))
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (s *SQLiteStore) ListConquests(ctx context.Context) ([]game.ConquestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, territory_id, conquering_team, conquered_team, area_delta_km2, player_id, created_at
		FROM conquest_history ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []game.ConquestRecord{}
	for rows.Next() {
		var rec game.ConquestRecord
		var conquered, createdAt string
		if err := rows.Scan(&rec.ID, &rec.TerritoryID, &rec.ConqueringTeam, &conquered,
			&rec.AreaDeltaKm2, &rec.PlayerID, &createdAt); err != nil {
			return nil, err
		}
		rec.ConqueredTeam = game.NormalizeTeam(conquered)
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

// ResetWorld wipes territories, history and scores but keeps player accounts
// and admin credentials.
func (s *SQLiteStore) ResetWorld(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM conquest_history`,
		`DELETE FROM territories`,
		`UPDATE players SET score = 0`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CreateAdmin inserts an admin account; used by seeding.
func (s *SQLiteStore) CreateAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON CONFLICT(email) DO NOTHING
	`, email, passwordHash)
	return err
}
